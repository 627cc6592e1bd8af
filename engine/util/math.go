package util

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

func ToRadian(angle float64) float64 {
	return mgl64.DegToRad(angle)
}

func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}

func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// NormalizeSafe returns the zero vector for zero-length or non-finite input
// instead of the NaN components mgl64 would produce.
func NormalizeSafe(v mgl64.Vec3) mgl64.Vec3 {
	if !IsFinite(v) {
		return mgl64.Vec3{}
	}
	length := v.Len()
	if length == 0 || math.IsInf(length, 0) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / length)
}

// LookVector converts yaw and pitch in degrees into a unit view direction.
// Yaw 0 faces +Z and increases clockwise seen from above, positive pitch looks down.
func LookVector(yawDegrees, pitchDegrees float64) mgl64.Vec3 {
	yaw := ToRadian(yawDegrees)
	pitch := ToRadian(pitchDegrees)
	cosPitch := math.Cos(pitch)
	return mgl64.Vec3{
		-math.Sin(yaw) * cosPitch,
		-math.Sin(pitch),
		math.Cos(yaw) * cosPitch,
	}
}

// RandomSpread returns a vector whose components are uniform in [-spread/2, spread/2).
func RandomSpread(rng *rand.Rand, spread float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(rng.Float64() - 0.5) * spread,
		(rng.Float64() - 0.5) * spread,
		(rng.Float64() - 0.5) * spread,
	}
}
