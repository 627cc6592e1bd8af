package sim

import (
	"sync"

	"github.com/memmaker/boomheadshot/engine/util"
	"github.com/memmaker/boomheadshot/game"
	"github.com/pkg/errors"
)

// Class decides how an entity attacks.
type Class int

const (
	ClassOther Class = iota
	ClassLiving
	ClassProjectile
)

func (c Class) String() string {
	switch c {
	case ClassLiving:
		return "living"
	case ClassProjectile:
		return "projectile"
	}
	return "other"
}

// Dimensions are the collision box size of an entity, measured from its feet.
type Dimensions struct {
	Width     float64
	Height    float64
	EyeHeight float64
}

// Stance changes the body of living entities.
type Stance int

const (
	StanceStanding Stance = iota
	StanceCrouching
	StanceSwimming
)

func (s Stance) String() string {
	switch s {
	case StanceCrouching:
		return "crouching"
	case StanceSwimming:
		return "swimming"
	}
	return "standing"
}

// StanceFromName maps the snapshot pose names, anything unknown is standing.
func StanceFromName(name string) Stance {
	switch name {
	case "crouching", "sneaking":
		return StanceCrouching
	case "swimming", "fall_flying", "spin_attack":
		return StanceSwimming
	}
	return StanceStanding
}

const (
	crouchHeightRatio = 1.5 / 1.8
	crouchEyeRatio    = 1.27 / 1.62
	swimEyeRatio      = 0.4 / 0.6
	defaultEyeRatio   = 0.85
)

// In returns the dimensions for the given stance. Crouching and swimming scale the standing body
// the way a player's body shrinks.
func (d Dimensions) In(stance Stance) Dimensions {
	switch stance {
	case StanceCrouching:
		return Dimensions{Width: d.Width, Height: d.Height * crouchHeightRatio, EyeHeight: d.EyeHeight * crouchEyeRatio}
	case StanceSwimming:
		return Dimensions{Width: d.Width, Height: d.Width, EyeHeight: d.Width * swimEyeRatio}
	}
	return d
}

type KindSpec struct {
	Class      Class
	Dimensions Dimensions
}

var builtinKinds = map[string]KindSpec{
	"minecraft:player":         {ClassLiving, Dimensions{0.6, 1.8, 1.62}},
	"minecraft:zombie":         {ClassLiving, Dimensions{0.6, 1.95, 1.74}},
	"minecraft:husk":           {ClassLiving, Dimensions{0.6, 1.95, 1.74}},
	"minecraft:skeleton":       {ClassLiving, Dimensions{0.6, 1.99, 1.74}},
	"minecraft:stray":          {ClassLiving, Dimensions{0.6, 1.99, 1.74}},
	"minecraft:pillager":       {ClassLiving, Dimensions{0.6, 1.95, 1.62}},
	"minecraft:villager":       {ClassLiving, Dimensions{0.6, 1.95, 1.62}},
	"minecraft:piglin":         {ClassLiving, Dimensions{0.6, 1.95, 1.79}},
	"minecraft:enderman":       {ClassLiving, Dimensions{0.6, 2.9, 2.55}},
	"minecraft:creeper":        {ClassLiving, Dimensions{0.6, 1.7, 1.445}},
	"minecraft:spider":         {ClassLiving, Dimensions{1.4, 0.9, 0.65}},
	"minecraft:iron_golem":     {ClassLiving, Dimensions{1.4, 2.7, 2.295}},
	"minecraft:arrow":          {ClassProjectile, Dimensions{0.5, 0.5, 0.13}},
	"minecraft:spectral_arrow": {ClassProjectile, Dimensions{0.5, 0.5, 0.13}},
	"minecraft:trident":        {ClassProjectile, Dimensions{0.5, 0.5, 0.13}},
	"minecraft:snowball":       {ClassProjectile, Dimensions{0.25, 0.25, 0.2125}},
	"minecraft:egg":            {ClassProjectile, Dimensions{0.25, 0.25, 0.2125}},
	"minecraft:small_fireball": {ClassProjectile, Dimensions{0.3125, 0.3125, 0.265625}},
	"minecraft:tnt":            {ClassOther, Dimensions{0.98, 0.98, 0.15}},
	"minecraft:falling_block":  {ClassOther, Dimensions{0.98, 0.98, 0.833}},
	"minecraft:armor_stand":    {ClassOther, Dimensions{0.5, 1.975, 1.7775}},
	"minecraft:experience_orb": {ClassOther, Dimensions{0.5, 0.5, 0.425}},
}

var fallbackKind = KindSpec{Class: ClassOther, Dimensions: Dimensions{0.6, 1.8, 1.8 * defaultEyeRatio}}

// Catalog maps entity kinds to their class and body. It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	kinds map[string]KindSpec
}

func NewCatalog() *Catalog {
	c := &Catalog{kinds: make(map[string]KindSpec, len(builtinKinds))}
	for kind, spec := range builtinKinds {
		c.kinds[kind] = spec
	}
	return c
}

func (c *Catalog) Register(kind string, spec KindSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kinds[game.NormalizeID(kind)] = spec
}

// Lookup reports whether kind is known. Unknown kinds still get a player sized body of class other.
func (c *Catalog) Lookup(kind string) (KindSpec, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	spec, ok := c.kinds[game.NormalizeID(kind)]
	if !ok {
		return fallbackKind, false
	}
	return spec, true
}

// LoadModel sizes a kind from the bounds of a glTF model. The eye sits at eyeRatio of the model
// height, a non-positive ratio uses the vanilla default of 0.85.
func (c *Catalog) LoadModel(kind, filename string, class Class, eyeRatio float64) error {
	box, err := util.LoadModelExtents(filename)
	if err != nil {
		return errors.Wrapf(err, "size kind %s", kind)
	}
	if eyeRatio <= 0 {
		eyeRatio = defaultEyeRatio
	}
	size := box.Extents()
	width := size.X()
	if size.Z() > width {
		width = size.Z()
	}
	dims := Dimensions{Width: width, Height: size.Y(), EyeHeight: size.Y() * eyeRatio}
	if dims.Height <= 0 {
		return errors.Errorf("model %s has no height", filename)
	}
	c.Register(kind, KindSpec{Class: class, Dimensions: dims})
	util.LogHostInfo("sized " + game.NormalizeID(kind) + " from " + filename)
	return nil
}
