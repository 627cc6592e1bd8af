// Package sim is a small entity host that feeds damage through the headshot system. It keeps
// entities in a donburi world and advances them in fixed ticks. A World is not safe for
// concurrent use.
package sim

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/boomheadshot/engine/snapshot"
	"github.com/memmaker/boomheadshot/engine/util"
	"github.com/memmaker/boomheadshot/game"
	"github.com/memmaker/boomheadshot/server"
	"github.com/pkg/errors"
	"github.com/yohamta/donburi"
)

// TickDuration is the length of one game tick in seconds.
const TickDuration = 1.0 / 20.0

const DefaultWorld game.WorldID = "minecraft:overworld"

const (
	defaultMaxHealth        = 20.0
	defaultParticleCapacity = 1024
)

type World struct {
	ecs     donburi.World
	catalog *Catalog
	nextSeq uint64

	particleMutex    sync.Mutex
	particles        map[game.WorldID]*util.ParticleSystem
	particleCapacity int
}

func NewWorld(catalog *Catalog) *World {
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &World{
		ecs:              donburi.NewWorld(),
		catalog:          catalog,
		particles:        make(map[game.WorldID]*util.ParticleSystem),
		particleCapacity: defaultParticleCapacity,
	}
}

func (w *World) ECS() donburi.World {
	return w.ecs
}

func (w *World) Catalog() *Catalog {
	return w.catalog
}

type SpawnOptions struct {
	Kind     string
	Name     string
	World    game.WorldID
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64
	Pitch    float64
	// Helmet is an item id, bare ids get the minecraft namespace.
	Helmet string
	Stance Stance
	// MaxHealth defaults to 20 for living entities.
	MaxHealth float64
}

func (w *World) Spawn(opts SpawnOptions) donburi.Entity {
	kind := game.NormalizeID(opts.Kind)
	spec, known := w.catalog.Lookup(kind)
	if !known {
		util.Log(util.LogHost).Debug().Str("kind", kind).Msg("unknown entity kind, using fallback body")
	}
	if opts.World == "" {
		opts.World = DefaultWorld
	}
	if opts.Name == "" {
		opts.Name = kind
	}

	entity := w.ecs.Create(Identity, Transform, Motion, Look, Body, Equipment)
	entry := w.ecs.Entry(entity)
	Identity.Set(entry, &IdentityData{Kind: kind, Name: opts.Name, World: opts.World})
	Transform.Set(entry, &TransformData{Position: opts.Position})
	Motion.Set(entry, &MotionData{Velocity: opts.Velocity})
	Look.Set(entry, &LookData{Yaw: opts.Yaw, Pitch: opts.Pitch})
	Body.Set(entry, &BodyData{Class: spec.Class, Base: spec.Dimensions, Stance: opts.Stance})
	Equipment.Set(entry, &EquipmentData{Head: game.NormalizeID(opts.Helmet)})

	if spec.Class == ClassLiving {
		maxHealth := opts.MaxHealth
		if maxHealth <= 0 {
			maxHealth = defaultMaxHealth
		}
		donburi.Add(entry, Health, &HealthData{Current: maxHealth, Max: maxHealth})
		donburi.Add(entry, StatusEffects, &StatusEffectsData{Active: make(map[string]int)})
	}
	return entity
}

// SpawnSnapshot recreates a recorded entity in the given world.
func (w *World) SpawnSnapshot(world game.WorldID, recorded snapshot.Entity) donburi.Entity {
	return w.Spawn(SpawnOptions{
		Kind:     recorded.ID,
		Name:     recorded.Name(),
		World:    world,
		Position: recorded.Position(),
		Velocity: recorded.Velocity(),
		Yaw:      recorded.Yaw(),
		Pitch:    recorded.Pitch(),
		Helmet:   recorded.HelmetID(),
		Stance:   StanceFromName(recorded.Pose),
	})
}

func (w *World) Despawn(entity donburi.Entity) {
	if w.ecs.Valid(entity) {
		w.ecs.Remove(entity)
	}
}

func (w *World) SetStance(entity donburi.Entity, stance Stance) error {
	if !w.ecs.Valid(entity) {
		return errors.Errorf("entity %v does not exist", entity)
	}
	Body.Get(w.ecs.Entry(entity)).Stance = stance
	return nil
}

// Health returns the current health, false for entities without health.
func (w *World) Health(entity donburi.Entity) (float64, bool) {
	if !w.ecs.Valid(entity) {
		return 0, false
	}
	entry := w.ecs.Entry(entity)
	if !entry.HasComponent(Health) {
		return 0, false
	}
	return Health.Get(entry).Current, true
}

// StatusEffects returns a copy of the active effects and their remaining ticks.
func (w *World) StatusEffects(entity donburi.Entity) map[string]int {
	result := make(map[string]int)
	if !w.ecs.Valid(entity) {
		return result
	}
	entry := w.ecs.Entry(entity)
	if !entry.HasComponent(StatusEffects) {
		return result
	}
	for id, ticks := range StatusEffects.Get(entry).Active {
		result[id] = ticks
	}
	return result
}

// Target adapts an entity to the headshot system's view of a damaged entity.
func (w *World) Target(entity donburi.Entity) (server.Target, bool) {
	if !w.ecs.Valid(entity) {
		return nil, false
	}
	return entityTarget{world: w, entity: entity}, true
}

// Attacker adapts an entity by class: projectiles fly along their motion, living entities
// aim with their view and everything else attacks from where it stands.
func (w *World) Attacker(entity donburi.Entity) (game.Attacker, bool) {
	if !w.ecs.Valid(entity) {
		return nil, false
	}
	entry := w.ecs.Entry(entity)
	position := Transform.Get(entry).Position
	body := Body.Get(entry)
	switch body.Class {
	case ClassProjectile:
		return game.Projectile{Position: position, Velocity: Motion.Get(entry).Velocity}, true
	case ClassLiving:
		look := Look.Get(entry)
		eye := position.Add(mgl64.Vec3{0, body.Dimensions().EyeHeight, 0})
		return game.NewCombatantFromAngles(eye, look.Yaw, look.Pitch), true
	}
	return game.GenericEntity{Position: position}, true
}

type entityTarget struct {
	world  *World
	entity donburi.Entity
}

func (t entityTarget) entry() *donburi.Entry {
	return t.world.ecs.Entry(t.entity)
}

func (t entityTarget) Name() string {
	return Identity.Get(t.entry()).Name
}

func (t entityTarget) Pose() game.TargetPose {
	entry := t.entry()
	dims := Body.Get(entry).Dimensions()
	return game.TargetPose{
		Position:  Transform.Get(entry).Position,
		EyeHeight: dims.EyeHeight,
		Width:     dims.Width,
		Height:    dims.Height,
	}
}

func (t entityTarget) HelmetID() string {
	return Equipment.Get(t.entry()).Head
}

func (t entityTarget) World() game.WorldID {
	return Identity.Get(t.entry()).World
}

func (t entityTarget) String() string {
	return fmt.Sprintf("%s(%v)", t.Name(), t.entity)
}

// ApplyStatusEffects adds the valid entries to the target's active effects. A running effect
// keeps the longer of the two durations.
func (w *World) ApplyStatusEffects(target server.Target, effects game.EffectSpec) {
	et, ok := target.(entityTarget)
	if !ok || et.world != w || !w.ecs.Valid(et.entity) {
		util.Log(util.LogEffects).Warn().Str("target", target.Name()).Msg("status effects for a target outside this world")
		return
	}
	entry := w.ecs.Entry(et.entity)
	if !entry.HasComponent(StatusEffects) {
		util.Log(util.LogEffects).Debug().Str("target", target.Name()).Msg("target cannot have status effects")
		return
	}
	active := StatusEffects.Get(entry).Active
	for _, effect := range effects {
		if !effect.Valid() {
			util.Log(util.LogEffects).Warn().Str("effect", effect.ID).Int("duration", effect.Duration).Msg("skipping invalid status effect")
			continue
		}
		if active[effect.ID] < effect.Duration {
			active[effect.ID] = effect.Duration
		}
	}
}

// Particles returns the particle system of a dimension, creating it on first use.
func (w *World) Particles(world game.WorldID) *util.ParticleSystem {
	w.particleMutex.Lock()
	defer w.particleMutex.Unlock()
	system, ok := w.particles[world]
	if !ok {
		system = util.NewParticleSystem(w.particleCapacity, nil)
		w.particles[world] = system
	}
	return system
}

// Tick advances particles and counts down status effects by one game tick.
func (w *World) Tick() {
	w.particleMutex.Lock()
	for _, system := range w.particles {
		system.Update(TickDuration)
	}
	w.particleMutex.Unlock()

	StatusEffects.Each(w.ecs, func(entry *donburi.Entry) {
		active := StatusEffects.Get(entry).Active
		for id, ticks := range active {
			if ticks <= 1 {
				delete(active, id)
				continue
			}
			active[id] = ticks - 1
		}
	})
}
