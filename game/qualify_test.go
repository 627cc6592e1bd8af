package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/boomheadshot/engine/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualify(t *testing.T) {
	box := util.NewAABBFromCorners(mgl64.Vec3{-0.25, 65.45, -0.25}, mgl64.Vec3{0.25, 65.95, 0.25})
	tests := []struct {
		name      string
		origin    mgl64.Vec3
		direction mgl64.Vec3
		distance  float64
		hit       bool
	}{
		{"straight at the head", mgl64.Vec3{0, 65.62, -10}, mgl64.Vec3{0, 0, 1}, 32, true},
		{"out of reach", mgl64.Vec3{0, 65.62, -40}, mgl64.Vec3{0, 0, 1}, 32, false},
		{"head behind the origin", mgl64.Vec3{0, 65.62, 10}, mgl64.Vec3{0, 0, 1}, 32, false},
		{"aimed at the body", mgl64.Vec3{0, 65.0, -10}, mgl64.Vec3{0, 0, 1}, 32, false},
		{"zero direction", mgl64.Vec3{0, 65.62, -10}, mgl64.Vec3{}, 32, false},
		{"zero direction inside the head", mgl64.Vec3{0, 65.62, 0}, mgl64.Vec3{}, 32, false},
		{"nan direction", mgl64.Vec3{0, 65.62, -10}, mgl64.Vec3{math.NaN(), 0, 1}, 32, false},
		{"grazes the top", mgl64.Vec3{0, 65.95, -10}, mgl64.Vec3{0, 0, 1}, 32, true},
		{"origin inside the head", mgl64.Vec3{0, 65.62, 0}, mgl64.Vec3{0, 0, 1}, 32, false},
		{"origin inside the head looking away", mgl64.Vec3{0, 65.62, 0.1}, mgl64.Vec3{0, 0, 1}, 32, false},
		{"origin on the head surface", mgl64.Vec3{0, 65.62, -0.25}, mgl64.Vec3{0, 0, 1}, 32, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, hit := Qualify(tt.origin, tt.direction, box, tt.distance)
			require.Equal(t, tt.hit, hit)
			if hit {
				assert.Equal(t, tt.origin, ctx.AttackerOrigin)
				assert.Equal(t, tt.direction, ctx.AttackDirection)
				assert.True(t, box.Contains(ctx.HitPosition))
			} else {
				assert.Equal(t, HeadshotContext{}, ctx)
			}
		})
	}
}

func TestDetectHeadshot_CombatantScenario(t *testing.T) {
	cfg := DefaultConfig()
	attacker := Combatant{EyePosition: mgl64.Vec3{0, 65.62, -10}, Look: mgl64.Vec3{0, 0, 1}}

	d := DetectHeadshot(attacker, zombiePose(), cfg)

	require.True(t, d.Headshot)
	assert.True(t, d.Context.HitPosition.ApproxEqualThreshold(mgl64.Vec3{0, 65.62, -0.25}, 1e-9))
	assert.InDelta(t, 20.0, ComposeDamage(10, cfg.HelmetProtections.Lookup(""), cfg.HeadshotMultiplier), 1e-9)
	assert.InDelta(t, 0.0, ComposeDamage(10, cfg.HelmetProtections.Lookup("minecraft:netherite_helmet"), cfg.HeadshotMultiplier), 1e-9)
	assert.InDelta(t, 8.0, ComposeDamage(10, cfg.HelmetProtections.Lookup("minecraft:iron_helmet"), cfg.HeadshotMultiplier), 1e-9)
}

func TestDetectHeadshot_LookingAway(t *testing.T) {
	attacker := NewCombatantFromAngles(mgl64.Vec3{0, 65.62, -10}, 180, 0)
	d := DetectHeadshot(attacker, zombiePose(), DefaultConfig())
	assert.False(t, d.Headshot)
}

func TestDetectHeadshot_ArrowInsideTheHead(t *testing.T) {
	// arrows report damage once they are already embedded, backtracking puts the origin just outside
	arrow := Projectile{Position: mgl64.Vec3{0, 65.7, -0.2}, Velocity: mgl64.Vec3{0, 0, 2.5}}
	d := DetectHeadshot(arrow, zombiePose(), DefaultConfig())
	require.True(t, d.Headshot)
	assert.InDelta(t, -0.25, d.Context.HitPosition.Z(), 1e-9)
}

func TestDetectHeadshot_StartingInsideTheHead(t *testing.T) {
	tests := []struct {
		name     string
		attacker Attacker
	}{
		{"combatant looking away", Combatant{EyePosition: mgl64.Vec3{0, 65.62, 0.1}, Look: mgl64.Vec3{0, 0, 1}}},
		{"combatant looking through", Combatant{EyePosition: mgl64.Vec3{0, 65.62, 0.1}, Look: mgl64.Vec3{0, 0, -1}}},
		{"arrow leaving the head", Projectile{Position: mgl64.Vec3{0, 65.7, 0.1}, Velocity: mgl64.Vec3{0, 0, 2.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DetectHeadshot(tt.attacker, zombiePose(), DefaultConfig())
			require.True(t, d.HeadBox.Contains(d.Origin))
			assert.False(t, d.Headshot)
			assert.Equal(t, HeadshotContext{}, d.Context)
		})
	}
}

func TestDetectHeadshot_GenericEntityAimsAtFeet(t *testing.T) {
	// aiming at the feet position from level ground passes below the head
	d := DetectHeadshot(GenericEntity{Position: mgl64.Vec3{0, 64, -5}}, zombiePose(), DefaultConfig())
	assert.False(t, d.Headshot)

	// from directly above the line to the feet crosses the head first
	d = DetectHeadshot(GenericEntity{Position: mgl64.Vec3{0, 70, 0}}, zombiePose(), DefaultConfig())
	require.True(t, d.Headshot)
	assert.InDelta(t, 65.62+0.5*2.0/3.0, d.Context.HitPosition.Y(), 1e-9)
}
