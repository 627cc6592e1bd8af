package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/boomheadshot/engine/util"
)

type WorldID string

// TargetPose is the pose-dependent shape of a target at the moment it is hit.
// Position is the feet position, EyeHeight is measured from there.
type TargetPose struct {
	Position  mgl64.Vec3
	EyeHeight float64
	Width     float64
	Height    float64
}

func (p TargetPose) EyePosition() mgl64.Vec3 {
	return p.Position.Add(mgl64.Vec3{0, p.EyeHeight, 0})
}

// BuildHeadBox returns the head region around the eye line. The horizontal size is
// capped by MaxHeadWidth, the vertical span extends below the eyes proportionally to
// the head width and above them proportionally to HeadHeightRatio.
func BuildHeadBox(pose TargetPose, cfg *HeadshotConfig) util.AABB {
	width := math.Max(0, math.Min(pose.Width, cfg.MaxHeadWidth))
	eyeY := pose.Position.Y() + pose.EyeHeight
	bottom := eyeY - width*cfg.HeadHeightBottomRatio
	top := eyeY + cfg.HeadHeightRatio*cfg.HeadHeightTopRatio
	halfWidth := width / 2
	return util.NewAABBFromCorners(
		mgl64.Vec3{pose.Position.X() - halfWidth, bottom, pose.Position.Z() - halfWidth},
		mgl64.Vec3{pose.Position.X() + halfWidth, top, pose.Position.Z() + halfWidth},
	)
}
