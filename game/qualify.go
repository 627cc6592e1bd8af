package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/boomheadshot/engine/util"
)

// HeadshotContext describes a qualified headshot. It is only produced on success.
type HeadshotContext struct {
	AttackerOrigin  mgl64.Vec3
	AttackDirection mgl64.Vec3
	HitPosition     mgl64.Vec3
}

// Qualify casts a segment of length maxDistance from origin along direction and reports
// the first point inside the head box. direction is expected to be a unit vector.
func Qualify(origin, direction mgl64.Vec3, headBox util.AABB, maxDistance float64) (HeadshotContext, bool) {
	if !util.IsFinite(origin) || !util.IsFinite(direction) || direction.Len() == 0 {
		return HeadshotContext{}, false
	}
	end := origin.Add(direction.Mul(maxDistance))
	hit, ok := headBox.ClipSegment(origin, end)
	if !ok {
		return HeadshotContext{}, false
	}
	return HeadshotContext{
		AttackerOrigin:  origin,
		AttackDirection: direction,
		HitPosition:     hit,
	}, true
}

// Detection keeps the intermediate results of one evaluation for diagnostics.
type Detection struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	HeadBox   util.AABB
	Context   HeadshotContext
	Headshot  bool
}

// DetectHeadshot runs the attack vector resolver, head box builder and qualifier against a single config snapshot.
func DetectHeadshot(attacker Attacker, pose TargetPose, cfg *HeadshotConfig) Detection {
	origin, direction := ResolveAttackVector(attacker, pose, cfg)
	headBox := BuildHeadBox(pose, cfg)
	hitContext, headshot := Qualify(origin, direction, headBox, cfg.RayTraceDistance)
	return Detection{
		Origin:    origin,
		Direction: direction,
		HeadBox:   headBox,
		Context:   hitContext,
		Headshot:  headshot,
	}
}
