package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/boomheadshot/engine/util"
)

func vecField(v mgl64.Vec3) []float64 {
	return []float64{v.X(), v.Y(), v.Z()}
}

// LogDetection dumps the geometry of one evaluation.
func LogDetection(targetName string, attacker Attacker, d Detection) {
	util.LogHeadshotDebug("=== Headshot Detection Debug ===")
	util.Log(util.LogHeadshot).Debug().
		Str("target", targetName).
		Str("attacker", attacker.Kind()).
		Floats64("headMin", vecField(d.HeadBox.Min())).
		Floats64("headMax", vecField(d.HeadBox.Max())).
		Floats64("origin", vecField(d.Origin)).
		Floats64("direction", vecField(d.Direction)).
		Bool("hit", d.Headshot).
		Msg("head hitbox and attack vector")
}

// LogConfirmation reports a confirmed headshot. multiplier is the effective one, after the
// helmet took its share.
func LogConfirmation(targetName string, hit HeadshotContext, originalDamage, finalDamage, protection, multiplier float64) {
	util.Log(util.LogHeadshot).Debug().
		Str("target", targetName).
		Floats64("hit", vecField(hit.HitPosition)).
		Float64("originalDamage", originalDamage).
		Float64("newDamage", finalDamage).
		Float64("protection", protection).
		Float64("multiplier", multiplier).
		Msg("HEADSHOT CONFIRMED!")
}
