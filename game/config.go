package game

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/memmaker/boomheadshot/engine/util"
)

const (
	KeyHeadshotMultiplier    = "headshotMultiplier"
	KeyEnableHeadshotEffects = "enableHeadshotEffects"
	KeyHeadshotEffects       = "headshotEffects"
	KeyRayTraceDistance      = "rayTraceDistance"
	KeyArrowBacktrack        = "arrowBacktrack"
	KeyMaxHeadWidth          = "maxHeadWidth"
	KeyHeadHeightRatio       = "headHeightRatio"
	KeyHeadHeightBottomRatio = "headHeightBottomRatio"
	KeyHeadHeightTopRatio    = "headHeightTopRatio"
	KeyParticleCount         = "particleCount"
	KeyParticleSpread        = "particleSpread"
	KeyParticleSpeed         = "particleSpeed"
	KeyHelmetProtections     = "helmetProtections"
	KeyDebug                 = "debug"
)

// HeadshotConfig is one immutable snapshot of all tunables. Publish a new value instead of mutating.
type HeadshotConfig struct {
	HeadshotMultiplier    float64
	EnableHeadshotEffects bool
	HeadshotEffects       EffectSpec
	RayTraceDistance      float64
	ArrowBacktrack        float64
	MaxHeadWidth          float64
	HeadHeightRatio       float64
	HeadHeightBottomRatio float64
	HeadHeightTopRatio    float64
	ParticleCount         int
	ParticleSpread        float64
	ParticleSpeed         float64
	HelmetProtections     ProtectionTable
	Debug                 bool
}

func DefaultHelmetProtections() ProtectionTable {
	return ProtectionTable{
		"minecraft:leather_helmet":   0.2,
		"minecraft:chainmail_helmet": 0.4,
		"minecraft:iron_helmet":      0.6,
		"minecraft:golden_helmet":    0.3,
		"minecraft:diamond_helmet":   0.8,
		"minecraft:netherite_helmet": 1.0,
		"minecraft:turtle_helmet":    0.5,
	}
}

// DefaultHelmetOrder is the order the default helmets are listed in generated settings.
var DefaultHelmetOrder = []string{
	"minecraft:leather_helmet",
	"minecraft:chainmail_helmet",
	"minecraft:iron_helmet",
	"minecraft:golden_helmet",
	"minecraft:diamond_helmet",
	"minecraft:netherite_helmet",
	"minecraft:turtle_helmet",
}

func DefaultHeadshotEffects() EffectSpec {
	return EffectSpec{{ID: "minecraft:blindness", Duration: 60}}
}

func DefaultConfig() *HeadshotConfig {
	cfg := &HeadshotConfig{
		EnableHeadshotEffects: false,
		HeadshotEffects:       DefaultHeadshotEffects(),
		HelmetProtections:     DefaultHelmetProtections(),
		Debug:                 false,
	}
	for _, option := range numericOptions {
		option.set(cfg, option.Default)
	}
	return cfg
}

func (c *HeadshotConfig) Clone() *HeadshotConfig {
	clone := *c
	clone.HeadshotEffects = c.HeadshotEffects.Clone()
	clone.HelmetProtections = c.HelmetProtections.Clone()
	return &clone
}

func (c *HeadshotConfig) ParticleHints() ParticleHints {
	return ParticleHints{
		Count:  c.ParticleCount,
		Spread: c.ParticleSpread,
		Speed:  c.ParticleSpeed,
	}
}

// NumericOption describes a ranged tunable. Values outside [Min, Max] are replaced by Default.
type NumericOption struct {
	Key     string
	Comment string
	Min     float64
	Max     float64
	Default float64
	Integer bool
	get     func(*HeadshotConfig) float64
	set     func(*HeadshotConfig, float64)
}

var numericOptions = []NumericOption{
	{
		Key: KeyHeadshotMultiplier, Comment: "Damage multiplier for headshots",
		Min: 1.1, Max: 10.0, Default: 2.0,
		get: func(c *HeadshotConfig) float64 { return c.HeadshotMultiplier },
		set: func(c *HeadshotConfig, v float64) { c.HeadshotMultiplier = v },
	},
	{
		Key: KeyRayTraceDistance, Comment: "Maximum distance for headshot detection",
		Min: 1.0, Max: 64.0, Default: 32.0,
		get: func(c *HeadshotConfig) float64 { return c.RayTraceDistance },
		set: func(c *HeadshotConfig, v float64) { c.RayTraceDistance = v },
	},
	{
		Key: KeyArrowBacktrack, Comment: "Distance projectiles are traced back along their flight path",
		Min: 0.0, Max: 1.0, Default: 0.1,
		get: func(c *HeadshotConfig) float64 { return c.ArrowBacktrack },
		set: func(c *HeadshotConfig, v float64) { c.ArrowBacktrack = v },
	},
	{
		Key: KeyMaxHeadWidth, Comment: "Maximum width of the head hitbox",
		Min: 0.1, Max: 2.0, Default: 0.5,
		get: func(c *HeadshotConfig) float64 { return c.MaxHeadWidth },
		set: func(c *HeadshotConfig, v float64) { c.MaxHeadWidth = v },
	},
	{
		Key: KeyHeadHeightRatio, Comment: "Head height as a ratio of the entity height",
		Min: 0.1, Max: 1.0, Default: 0.5,
		get: func(c *HeadshotConfig) float64 { return c.HeadHeightRatio },
		set: func(c *HeadshotConfig, v float64) { c.HeadHeightRatio = v },
	},
	{
		Key: KeyHeadHeightBottomRatio, Comment: "Part of the head width that extends below the eyes",
		Min: 0.0, Max: 1.0, Default: 1.0 / 3.0,
		get: func(c *HeadshotConfig) float64 { return c.HeadHeightBottomRatio },
		set: func(c *HeadshotConfig, v float64) { c.HeadHeightBottomRatio = v },
	},
	{
		Key: KeyHeadHeightTopRatio, Comment: "Part of the head height that extends above the eyes",
		Min: 0.0, Max: 1.0, Default: 2.0 / 3.0,
		get: func(c *HeadshotConfig) float64 { return c.HeadHeightTopRatio },
		set: func(c *HeadshotConfig, v float64) { c.HeadHeightTopRatio = v },
	},
	{
		Key: KeyParticleCount, Comment: "Number of particles spawned on a headshot",
		Min: 0, Max: 100, Default: 20, Integer: true,
		get: func(c *HeadshotConfig) float64 { return float64(c.ParticleCount) },
		set: func(c *HeadshotConfig, v float64) { c.ParticleCount = int(v) },
	},
	{
		Key: KeyParticleSpread, Comment: "Spread of headshot particles",
		Min: 0.0, Max: 2.0, Default: 0.5,
		get: func(c *HeadshotConfig) float64 { return c.ParticleSpread },
		set: func(c *HeadshotConfig, v float64) { c.ParticleSpread = v },
	},
	{
		Key: KeyParticleSpeed, Comment: "Speed of headshot particles",
		Min: 0.0, Max: 1.0, Default: 0.1,
		get: func(c *HeadshotConfig) float64 { return c.ParticleSpeed },
		set: func(c *HeadshotConfig, v float64) { c.ParticleSpeed = v },
	},
}

func NumericOptions() []NumericOption {
	return append([]NumericOption(nil), numericOptions...)
}

func (o NumericOption) InRange(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if o.Integer && v != math.Trunc(v) {
		return false
	}
	return v >= o.Min && v <= o.Max
}

func (o NumericOption) Value(c *HeadshotConfig) float64 {
	return o.get(c)
}

// Apply stores v without range checking, see InRange.
func (o NumericOption) Apply(c *HeadshotConfig, v float64) {
	o.set(c, v)
}

// OptionViolation records an option that was reset to its default.
type OptionViolation struct {
	Key      string
	Value    float64
	Replaced float64
}

func (v OptionViolation) String() string {
	return fmt.Sprintf("%s=%v is out of range, using default %v", v.Key, v.Value, v.Replaced)
}

// Sanitized returns a copy where every out-of-range numeric option is reset to its default,
// together with the list of replaced options. Protections outside [0, 1] are dropped.
func (c *HeadshotConfig) Sanitized() (*HeadshotConfig, []OptionViolation) {
	result := c.Clone()
	var violations []OptionViolation
	for _, option := range numericOptions {
		value := option.get(result)
		if option.InRange(value) {
			continue
		}
		option.set(result, option.Default)
		violations = append(violations, OptionViolation{Key: option.Key, Value: value, Replaced: option.Default})
	}
	for id, fraction := range result.HelmetProtections {
		if fraction < 0 || fraction > 1 || math.IsNaN(fraction) {
			violations = append(violations, OptionViolation{Key: KeyHelmetProtections + "." + id, Value: fraction, Replaced: 0})
			delete(result.HelmetProtections, id)
		}
	}
	return result, violations
}

// ConfigStore publishes config snapshots. Readers take one snapshot per event and never see a partial update.
type ConfigStore struct {
	current atomic.Pointer[HeadshotConfig]
}

func NewConfigStore(initial *HeadshotConfig) *ConfigStore {
	store := &ConfigStore{}
	store.Publish(initial)
	return store
}

func (s *ConfigStore) Snapshot() *HeadshotConfig {
	return s.current.Load()
}

// Publish swaps in a sanitized copy of cfg, nil restores the defaults.
func (s *ConfigStore) Publish(cfg *HeadshotConfig) {
	if cfg == nil {
		s.current.Store(DefaultConfig())
		return
	}
	sanitized, violations := cfg.Sanitized()
	for _, violation := range violations {
		util.LogConfigWarning(violation.String())
	}
	s.current.Store(sanitized)
}
