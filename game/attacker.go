package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/boomheadshot/engine/util"
)

// Attacker is the closed set of things that can deal damage: Projectile, Combatant and GenericEntity.
type Attacker interface {
	Kind() string
	isAttacker()
}

// Projectile is a moving missile such as an arrow. Its effective origin is backtracked
// along the flight path because by the time damage is dealt it already sits inside the target.
type Projectile struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// Combatant is a living attacker aiming from its eyes.
type Combatant struct {
	EyePosition mgl64.Vec3
	Look        mgl64.Vec3
}

// GenericEntity has a position but no meaningful facing, it is assumed to aim straight at the target.
type GenericEntity struct {
	Position mgl64.Vec3
}

func (Projectile) Kind() string    { return "projectile" }
func (Combatant) Kind() string     { return "combatant" }
func (GenericEntity) Kind() string { return "entity" }

func (Projectile) isAttacker()    {}
func (Combatant) isAttacker()     {}
func (GenericEntity) isAttacker() {}

// NewCombatantFromAngles builds a combatant from a yaw/pitch view angle in degrees.
func NewCombatantFromAngles(eyePosition mgl64.Vec3, yaw, pitch float64) Combatant {
	return Combatant{
		EyePosition: eyePosition,
		Look:        util.LookVector(yaw, pitch),
	}
}

// ResolveAttackVector derives where an attack comes from and which way it travels.
// A degenerate direction comes back as the zero vector, callers treat that as "no headshot".
func ResolveAttackVector(attacker Attacker, target TargetPose, cfg *HeadshotConfig) (origin, direction mgl64.Vec3) {
	switch a := attacker.(type) {
	case Projectile:
		direction = util.NormalizeSafe(a.Velocity)
		origin = a.Position.Sub(direction.Mul(cfg.ArrowBacktrack))
	case Combatant:
		origin = a.EyePosition
		direction = util.NormalizeSafe(a.Look)
	case GenericEntity:
		origin = a.Position
		direction = util.NormalizeSafe(target.Position.Sub(origin))
	}
	return origin, direction
}
