package sim

import (
	"github.com/memmaker/boomheadshot/engine/snapshot"
	"github.com/memmaker/boomheadshot/game"
	"github.com/pkg/errors"
	"github.com/yohamta/donburi"
)

// ReplayedEvent links a recorded event to the entities spawned for it.
type ReplayedEvent struct {
	Index    int
	Target   donburi.Entity
	Attacker donburi.Entity
	// HasAttacker is false for environment damage.
	HasAttacker bool
}

// LoadScenario spawns the entities of every recorded event and queues its damage.
// Each event gets its own entities, recorded positions are taken as they are.
func (w *World) LoadScenario(scenario *snapshot.Scenario) ([]ReplayedEvent, error) {
	if scenario == nil {
		return nil, errors.New("no scenario")
	}
	replayed := make([]ReplayedEvent, 0, len(scenario.Events))
	for i, record := range scenario.Events {
		if !record.Target.Present() {
			return replayed, errors.Errorf("event %d has no target", i)
		}
		world := DefaultWorld
		if record.World != "" {
			world = game.WorldID(game.NormalizeID(record.World))
		}
		event := ReplayedEvent{Index: i, Target: w.SpawnSnapshot(world, record.Target)}
		var err error
		if record.Attacker.Present() {
			event.Attacker = w.SpawnSnapshot(world, record.Attacker)
			event.HasAttacker = true
			err = w.QueueDamage(event.Target, event.Attacker, record.Damage)
		} else {
			err = w.QueueEnvironmentDamage(event.Target, record.Damage)
		}
		if err != nil {
			return replayed, errors.Wrapf(err, "queue event %d", i)
		}
		replayed = append(replayed, event)
	}
	return replayed, nil
}
