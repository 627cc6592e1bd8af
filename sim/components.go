package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/boomheadshot/game"
	"github.com/yohamta/donburi"
)

type IdentityData struct {
	Kind  string
	Name  string
	World game.WorldID
}

// TransformData holds the position of the entity's feet.
type TransformData struct {
	Position mgl64.Vec3
}

type MotionData struct {
	Velocity mgl64.Vec3
}

// LookData is the view rotation in degrees.
type LookData struct {
	Yaw   float64
	Pitch float64
}

type BodyData struct {
	Class  Class
	Base   Dimensions
	Stance Stance
}

// Dimensions applies the stance to living bodies only.
func (b *BodyData) Dimensions() Dimensions {
	if b.Class != ClassLiving {
		return b.Base
	}
	return b.Base.In(b.Stance)
}

type EquipmentData struct {
	Head string
}

type HealthData struct {
	Current float64
	Max     float64
}

// StatusEffectsData maps effect ids to their remaining ticks.
type StatusEffectsData struct {
	Active map[string]int
}

type Hit struct {
	Seq         uint64
	Attacker    donburi.Entity
	HasAttacker bool
	Amount      float64
}

// PendingDamageData collects the hits an entity took since the last damage update.
type PendingDamageData struct {
	Hits []Hit
}

var Identity = donburi.NewComponentType[IdentityData]()
var Transform = donburi.NewComponentType[TransformData]()
var Motion = donburi.NewComponentType[MotionData]()
var Look = donburi.NewComponentType[LookData]()
var Body = donburi.NewComponentType[BodyData]()
var Equipment = donburi.NewComponentType[EquipmentData]()
var Health = donburi.NewComponentType[HealthData]()
var StatusEffects = donburi.NewComponentType[StatusEffectsData]()
var PendingDamage = donburi.NewComponentType[PendingDamageData]()
