package sim

import (
	"context"
	"math"
	"sort"

	"github.com/memmaker/boomheadshot/engine/util"
	"github.com/memmaker/boomheadshot/server"
	"github.com/pkg/errors"
	"github.com/yohamta/donburi"
)

// QueueDamage records a hit by attacker on target for the next damage update.
func (w *World) QueueDamage(target, attacker donburi.Entity, amount float64) error {
	if !w.ecs.Valid(attacker) {
		return errors.Errorf("attacker %v does not exist", attacker)
	}
	return w.queue(target, Hit{Attacker: attacker, HasAttacker: true, Amount: amount})
}

// QueueEnvironmentDamage records damage without a source entity, such as falling or drowning.
func (w *World) QueueEnvironmentDamage(target donburi.Entity, amount float64) error {
	return w.queue(target, Hit{Amount: amount})
}

func (w *World) queue(target donburi.Entity, hit Hit) error {
	if !w.ecs.Valid(target) {
		return errors.Errorf("target %v does not exist", target)
	}
	w.nextSeq++
	hit.Seq = w.nextSeq
	entry := w.ecs.Entry(target)
	if !entry.HasComponent(PendingDamage) {
		donburi.Add(entry, PendingDamage, &PendingDamageData{})
	}
	pending := PendingDamage.Get(entry)
	pending.Hits = append(pending.Hits, hit)
	return nil
}

type DamageResult struct {
	Target  donburi.Entity
	Name    string
	Outcome server.Outcome
	// Health left after the hit, NaN for targets without health.
	Health float64
}

func (r DamageResult) Killed() bool {
	return !math.IsNaN(r.Health) && r.Health <= 0
}

// DamageSystem applies queued hits. Every hit passes the headshot system first and the final
// damage is subtracted from the target's health.
type DamageSystem struct {
	world     *World
	headshots *server.HeadshotSystem
	timer     *util.Timer
}

func NewDamageSystem(world *World, headshots *server.HeadshotSystem) *DamageSystem {
	return &DamageSystem{world: world, headshots: headshots, timer: util.NewTimer()}
}

// Timer holds the duration of every Update.
func (s *DamageSystem) Timer() *util.Timer {
	return s.timer
}

// Update drains all pending damage in the order it was queued.
func (s *DamageSystem) Update(ctx context.Context) []DamageResult {
	defer s.timer.Start("damage")()
	type queuedHit struct {
		target donburi.Entity
		hit    Hit
	}
	var hits []queuedHit
	var drained []*donburi.Entry
	PendingDamage.Each(s.world.ecs, func(entry *donburi.Entry) {
		for _, hit := range PendingDamage.Get(entry).Hits {
			hits = append(hits, queuedHit{target: entry.Entity(), hit: hit})
		}
		drained = append(drained, entry)
	})
	for _, entry := range drained {
		donburi.Remove[PendingDamageData](entry, PendingDamage)
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].hit.Seq < hits[j].hit.Seq
	})

	results := make([]DamageResult, 0, len(hits))
	for _, queued := range hits {
		result, ok := s.apply(ctx, queued.target, queued.hit)
		if ok {
			results = append(results, result)
		}
	}
	return results
}

func (s *DamageSystem) apply(ctx context.Context, entity donburi.Entity, hit Hit) (DamageResult, bool) {
	target, ok := s.world.Target(entity)
	if !ok {
		return DamageResult{}, false
	}
	event := &server.DamageEvent{Target: target, Damage: hit.Amount}
	if hit.HasAttacker {
		if attacker, ok := s.world.Attacker(hit.Attacker); ok {
			event.Attacker = attacker
		} else {
			util.Log(util.LogHost).Debug().Str("target", target.Name()).Msg("attacker is gone, applying as environment damage")
		}
	}
	outcome := s.headshots.HandleDamage(ctx, event)

	result := DamageResult{Target: entity, Name: target.Name(), Outcome: outcome, Health: math.NaN()}
	entry := s.world.ecs.Entry(entity)
	if entry.HasComponent(Health) {
		health := Health.Get(entry)
		health.Current = math.Max(0, health.Current-event.Damage)
		result.Health = health.Current
	}
	return result, true
}
