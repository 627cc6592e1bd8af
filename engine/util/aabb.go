package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB keeps its corners exactly as given so that boundary tests stay exact.
type AABB struct {
	min mgl64.Vec3
	max mgl64.Vec3
}

func NewAABB(center, extents mgl64.Vec3) AABB {
	half := absVec(extents).Mul(0.5)
	return AABB{
		min: center.Sub(half),
		max: center.Add(half),
	}
}

func NewAABBFromMin(min, extents mgl64.Vec3) AABB {
	return AABB{
		min: min,
		max: min.Add(absVec(extents)),
	}
}

// NewAABBFromCorners accepts the corners in any order, the result always satisfies Min() <= Max().
func NewAABBFromCorners(a, b mgl64.Vec3) AABB {
	return AABB{
		min: mgl64.Vec3{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()), math.Min(a.Z(), b.Z())},
		max: mgl64.Vec3{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()), math.Max(a.Z(), b.Z())},
	}
}

func (a AABB) Min() mgl64.Vec3 {
	return a.min
}

func (a AABB) Max() mgl64.Vec3 {
	return a.max
}

func (a AABB) Center() mgl64.Vec3 {
	return a.min.Add(a.max).Mul(0.5)
}

// Extents is the size along each axis.
func (a AABB) Extents() mgl64.Vec3 {
	return a.max.Sub(a.min)
}

func (a AABB) Contains(vec3 mgl64.Vec3) bool {
	minVal := a.Min()
	maxVal := a.Max()
	return InRange(vec3.X(), minVal.X(), maxVal.X()) &&
		InRange(vec3.Y(), minVal.Y(), maxVal.Y()) &&
		InRange(vec3.Z(), minVal.Z(), maxVal.Z())
}

// ClipSegment intersects the segment start->end with the box using the slab method.
// It returns the point where the segment enters the box.
// Boundaries are inclusive: a segment touching a face, edge or corner counts as a hit.
// A segment that starts inside the box or on its surface never enters it and misses.
func (a AABB) ClipSegment(start, end mgl64.Vec3) (mgl64.Vec3, bool) {
	minVal := a.Min()
	maxVal := a.Max()
	delta := end.Sub(start)
	tEnter, tExit := 0.0, 1.0
	for axis := 0; axis < 3; axis++ {
		s, d := start[axis], delta[axis]
		if d == 0 {
			// parallel to this slab
			if !InRange(s, minVal[axis], maxVal[axis]) {
				return mgl64.Vec3{}, false
			}
			continue
		}
		t0 := (minVal[axis] - s) / d
		t1 := (maxVal[axis] - s) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
		}
		if t1 < tExit {
			tExit = t1
		}
		if tEnter > tExit {
			return mgl64.Vec3{}, false
		}
	}
	if tEnter <= 0 {
		return mgl64.Vec3{}, false
	}
	hit := start.Add(delta.Mul(tEnter))
	// rounding may push the entry point a hair outside the face it entered through
	for axis := 0; axis < 3; axis++ {
		hit[axis] = Clamp(hit[axis], minVal[axis], maxVal[axis])
	}
	return hit, true
}

func InRange(x, min, max float64) bool {
	return x >= min && x <= max
}

func absVec(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())}
}
