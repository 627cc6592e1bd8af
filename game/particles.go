package game

import (
	"math/rand"
	"sync"

	"github.com/memmaker/boomheadshot/engine/util"
)

const burstParticleLifetime = 0.75

// PlanBurst lays out the particles of a headshot burst. Each particle is offset from the hit
// by a random spread vector and flies back towards the attacker, carrying the same spread as drift.
func PlanBurst(hit HeadshotContext, hints ParticleHints, rng *rand.Rand) []util.ParticleProperties {
	if hints.Count <= 0 {
		return nil
	}
	backwards := hit.AttackDirection.Mul(-hints.Speed)
	result := make([]util.ParticleProperties, 0, hints.Count)
	for i := 0; i < hints.Count; i++ {
		spread := util.RandomSpread(rng, hints.Spread)
		result = append(result, util.ParticleProperties{
			Position: hit.HitPosition.Add(spread),
			Velocity: backwards.Add(spread),
			Lifetime: burstParticleLifetime,
		})
	}
	return result
}

// BurstEmitter turns headshots into particles in the particle system of the world they happened in.
type BurstEmitter struct {
	mu        sync.Mutex
	rng       *rand.Rand
	systemFor func(WorldID) *util.ParticleSystem
}

func NewBurstEmitter(systemFor func(WorldID) *util.ParticleSystem, rng *rand.Rand) *BurstEmitter {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &BurstEmitter{rng: rng, systemFor: systemFor}
}

func (b *BurstEmitter) EmitHeadshot(world WorldID, hit HeadshotContext, hints ParticleHints) {
	system := b.systemFor(world)
	if system == nil {
		util.Log(util.LogEffects).Debug().Str("world", string(world)).Msg("no particle system for world")
		return
	}
	b.mu.Lock()
	burst := PlanBurst(hit, hints, b.rng)
	b.mu.Unlock()
	for _, props := range burst {
		system.Emit(props)
	}
}
