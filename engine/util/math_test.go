package util

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLookVector(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float64
		want       mgl64.Vec3
	}{
		{"south", 0, 0, mgl64.Vec3{0, 0, 1}},
		{"west", 90, 0, mgl64.Vec3{-1, 0, 0}},
		{"north", 180, 0, mgl64.Vec3{0, 0, -1}},
		{"east", -90, 0, mgl64.Vec3{1, 0, 0}},
		{"straight down", 0, 90, mgl64.Vec3{0, -1, 0}},
		{"straight up", 0, -90, mgl64.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LookVector(tt.yaw, tt.pitch)
			assert.True(t, got.ApproxEqualThreshold(tt.want, 1e-9), "got %v", got)
			assert.InDelta(t, 1.0, got.Len(), 1e-9)
		})
	}
}

func TestNormalizeSafe(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, NormalizeSafe(mgl64.Vec3{}))
	assert.Equal(t, mgl64.Vec3{}, NormalizeSafe(mgl64.Vec3{math.NaN(), 0, 1}))
	assert.Equal(t, mgl64.Vec3{}, NormalizeSafe(mgl64.Vec3{math.Inf(1), 0, 0}))
	assert.True(t, NormalizeSafe(mgl64.Vec3{0, 0, 5}).ApproxEqual(mgl64.Vec3{0, 0, 1}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.4, Clamp(0.4, 0, 1))
}

func TestRandomSpread_StaysWithinHalfSpread(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		v := RandomSpread(rng, 0.5)
		for _, c := range v {
			assert.GreaterOrEqual(t, c, -0.25)
			assert.Less(t, c, 0.25)
		}
	}
	assert.Equal(t, mgl64.Vec3{}, RandomSpread(rng, 0))
}
