package game

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestBuildHeadBox_Defaults(t *testing.T) {
	box := BuildHeadBox(zombiePose(), DefaultConfig())

	assert.InDelta(t, -0.25, box.Min().X(), 1e-9)
	assert.InDelta(t, 0.25, box.Max().X(), 1e-9)
	assert.InDelta(t, -0.25, box.Min().Z(), 1e-9)
	assert.InDelta(t, 0.25, box.Max().Z(), 1e-9)
	assert.InDelta(t, 65.62-0.5/3, box.Min().Y(), 1e-9)
	assert.InDelta(t, 65.62+0.5*2.0/3.0, box.Max().Y(), 1e-9)
}

func TestBuildHeadBox_NarrowTargetKeepsItsWidth(t *testing.T) {
	pose := TargetPose{Position: mgl64.Vec3{10, 0, -3}, EyeHeight: 0.2, Width: 0.25, Height: 0.25}
	box := BuildHeadBox(pose, DefaultConfig())

	assert.InDelta(t, 0.25, box.Max().X()-box.Min().X(), 1e-9)
	assert.InDelta(t, 10, box.Center().X(), 1e-9)
	assert.InDelta(t, -3, box.Center().Z(), 1e-9)
}

func TestBuildHeadBox_MinNeverExceedsMax(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		cfg := DefaultConfig()
		cfg.MaxHeadWidth = 0.1 + rng.Float64()*1.9
		cfg.HeadHeightRatio = 0.1 + rng.Float64()*0.9
		cfg.HeadHeightBottomRatio = rng.Float64()
		cfg.HeadHeightTopRatio = rng.Float64()
		pose := TargetPose{
			Position:  mgl64.Vec3{rng.Float64()*200 - 100, rng.Float64() * 300, rng.Float64()*200 - 100},
			EyeHeight: rng.Float64() * 3,
			Width:     rng.Float64()*4 - 1,
			Height:    rng.Float64() * 3,
		}
		box := BuildHeadBox(pose, cfg)
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, box.Min()[axis], box.Max()[axis])
		}
	}
}
