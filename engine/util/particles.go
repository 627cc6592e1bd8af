package util

import (
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

type ParticleProperties struct {
	Position                    mgl64.Vec3
	Velocity, VelocityVariation mgl64.Vec3
	Lifetime                    float64
}

type Particle struct {
	id                     uint64
	Position, Velocity     mgl64.Vec3
	Lifetime, LifetimeLeft float64
	IsActive               bool
}

func (p Particle) GetID() uint64 {
	return p.id
}

// ParticleSystem is a fixed-size ring pool; emitting into a full pool recycles the oldest slot.
type ParticleSystem struct {
	mu        sync.Mutex
	pool      []*Particle
	poolIndex int
	rng       *rand.Rand
	emitted   uint64
}

func NewParticleSystem(capacity int, rng *rand.Rand) *ParticleSystem {
	if capacity < 1 {
		capacity = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	initialPool := make([]*Particle, capacity)
	for i := uint64(0); i < uint64(capacity); i++ {
		initialPool[i] = &Particle{id: i}
	}
	return &ParticleSystem{
		pool:      initialPool,
		poolIndex: len(initialPool) - 1,
		rng:       rng,
	}
}

func (p *ParticleSystem) Emit(props ParticleProperties) {
	p.mu.Lock()
	defer p.mu.Unlock()
	particle := p.pool[p.poolIndex]

	particle.IsActive = true
	particle.Position = props.Position
	particle.Velocity = mgl64.Vec3{
		props.Velocity.X() + props.VelocityVariation.X()*(p.rng.Float64()-0.5),
		props.Velocity.Y() + props.VelocityVariation.Y()*(p.rng.Float64()-0.5),
		props.Velocity.Z() + props.VelocityVariation.Z()*(p.rng.Float64()-0.5),
	}
	particle.Lifetime = props.Lifetime
	particle.LifetimeLeft = props.Lifetime
	p.emitted++

	p.poolIndex--
	if p.poolIndex < 0 {
		p.poolIndex = len(p.pool) - 1
	}
}

func (p *ParticleSystem) Update(deltaTime float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, particle := range p.pool {
		if !particle.IsActive {
			continue
		}
		if particle.LifetimeLeft <= 0 {
			particle.IsActive = false
			continue
		}
		particle.LifetimeLeft -= deltaTime
		particle.Position = particle.Position.Add(particle.Velocity.Mul(deltaTime))
	}
}

// Active returns copies of the currently alive particles.
func (p *ParticleSystem) Active() []Particle {
	p.mu.Lock()
	defer p.mu.Unlock()
	var result []Particle
	for _, particle := range p.pool {
		if particle.IsActive {
			result = append(result, *particle)
		}
	}
	return result
}

// Emitted is the total number of particles ever emitted, including recycled ones.
func (p *ParticleSystem) Emitted() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.emitted
}
