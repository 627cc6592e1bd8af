package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/boomheadshot/engine/snapshot"
	"github.com/memmaker/boomheadshot/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawn_Living(t *testing.T) {
	world := NewWorld(nil)
	entity := world.Spawn(SpawnOptions{Kind: "zombie", Position: mgl64.Vec3{1, 64, 2}, Helmet: "minecraft:iron_helmet"})

	health, ok := world.Health(entity)
	require.True(t, ok)
	assert.Equal(t, 20.0, health)

	target, ok := world.Target(entity)
	require.True(t, ok)
	assert.Equal(t, "minecraft:zombie", target.Name())
	assert.Equal(t, DefaultWorld, target.World())
	assert.Equal(t, "minecraft:iron_helmet", target.HelmetID())
	assert.Equal(t, game.TargetPose{Position: mgl64.Vec3{1, 64, 2}, EyeHeight: 1.74, Width: 0.6, Height: 1.95}, target.Pose())
}

func TestSpawn_ProjectileHasNoHealth(t *testing.T) {
	world := NewWorld(nil)
	entity := world.Spawn(SpawnOptions{Kind: "minecraft:arrow"})

	_, ok := world.Health(entity)
	assert.False(t, ok)
	assert.Empty(t, world.StatusEffects(entity))
}

func TestTarget_StanceChangesPose(t *testing.T) {
	world := NewWorld(nil)
	entity := world.Spawn(SpawnOptions{Kind: "player"})
	require.NoError(t, world.SetStance(entity, StanceCrouching))

	target, _ := world.Target(entity)
	assert.InDelta(t, 1.27, target.Pose().EyeHeight, 1e-9)

	arrow := world.Spawn(SpawnOptions{Kind: "arrow"})
	require.NoError(t, world.SetStance(arrow, StanceCrouching))
	target, _ = world.Target(arrow)
	assert.Equal(t, 0.13, target.Pose().EyeHeight, "only living bodies change with stance")
}

func TestAttacker_ByClass(t *testing.T) {
	world := NewWorld(nil)

	arrow := world.Spawn(SpawnOptions{Kind: "arrow", Position: mgl64.Vec3{0, 65, -1}, Velocity: mgl64.Vec3{0, 0, 2}})
	attacker, ok := world.Attacker(arrow)
	require.True(t, ok)
	assert.Equal(t, game.Projectile{Position: mgl64.Vec3{0, 65, -1}, Velocity: mgl64.Vec3{0, 0, 2}}, attacker)

	player := world.Spawn(SpawnOptions{Kind: "player", Position: mgl64.Vec3{0, 64, -10}, Yaw: 0, Pitch: 0})
	attacker, ok = world.Attacker(player)
	require.True(t, ok)
	combatant, ok := attacker.(game.Combatant)
	require.True(t, ok)
	assert.True(t, combatant.EyePosition.ApproxEqual(mgl64.Vec3{0, 65.62, -10}))
	assert.True(t, combatant.Look.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9))

	tnt := world.Spawn(SpawnOptions{Kind: "tnt", Position: mgl64.Vec3{3, 64, 3}})
	attacker, ok = world.Attacker(tnt)
	require.True(t, ok)
	assert.Equal(t, game.GenericEntity{Position: mgl64.Vec3{3, 64, 3}}, attacker)

	world.Despawn(tnt)
	_, ok = world.Attacker(tnt)
	assert.False(t, ok)
}

func TestApplyStatusEffects_KeepsLongerDuration(t *testing.T) {
	world := NewWorld(nil)
	entity := world.Spawn(SpawnOptions{Kind: "player"})
	target, _ := world.Target(entity)

	world.ApplyStatusEffects(target, game.EffectSpec{{ID: "minecraft:blindness", Duration: 100}})
	world.ApplyStatusEffects(target, game.EffectSpec{
		{ID: "minecraft:blindness", Duration: 40},
		{ID: "minecraft:slowness", Duration: 0},
		{ID: "minecraft:poison", Duration: 20},
	})

	assert.Equal(t, map[string]int{"minecraft:blindness": 100, "minecraft:poison": 20}, world.StatusEffects(entity))
}

func TestApplyStatusEffects_ForeignTarget(t *testing.T) {
	world := NewWorld(nil)
	other := NewWorld(nil)
	entity := other.Spawn(SpawnOptions{Kind: "player"})
	target, _ := other.Target(entity)

	world.ApplyStatusEffects(target, game.DefaultHeadshotEffects())

	assert.Empty(t, other.StatusEffects(entity))
}

func TestTick_CountsDownEffects(t *testing.T) {
	world := NewWorld(nil)
	entity := world.Spawn(SpawnOptions{Kind: "player"})
	target, _ := world.Target(entity)
	world.ApplyStatusEffects(target, game.EffectSpec{{ID: "minecraft:blindness", Duration: 2}, {ID: "minecraft:nausea", Duration: 5}})

	world.Tick()
	assert.Equal(t, map[string]int{"minecraft:blindness": 1, "minecraft:nausea": 4}, world.StatusEffects(entity))
	world.Tick()
	assert.Equal(t, map[string]int{"minecraft:nausea": 3}, world.StatusEffects(entity))
}

func TestParticles_PerWorld(t *testing.T) {
	world := NewWorld(nil)
	overworld := world.Particles(DefaultWorld)
	assert.Same(t, overworld, world.Particles(DefaultWorld))
	assert.NotSame(t, overworld, world.Particles("minecraft:the_nether"))
}

func TestSpawnSnapshot(t *testing.T) {
	world := NewWorld(nil)
	entity := world.SpawnSnapshot("minecraft:the_end", snapshot.Entity{
		ID:         "minecraft:skeleton",
		CustomName: "Bones",
		Pos:        []float64{4, 70, -2},
		Rotation:   []float32{90, 10},
		ArmorItems: []snapshot.Item{{}, {}, {}, {ID: "minecraft:golden_helmet", Count: 1}},
		Pose:       "crouching",
	})

	target, ok := world.Target(entity)
	require.True(t, ok)
	assert.Equal(t, "Bones", target.Name())
	assert.Equal(t, game.WorldID("minecraft:the_end"), target.World())
	assert.Equal(t, "minecraft:golden_helmet", target.HelmetID())
	assert.InDelta(t, 1.74*crouchEyeRatio, target.Pose().EyeHeight, 1e-9)
}
