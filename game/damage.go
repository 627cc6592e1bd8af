package game

import (
	"strings"

	"github.com/memmaker/boomheadshot/engine/util"
)

const DefaultNamespace = "minecraft"

// ComposeDamage applies the headshot multiplier and the helmet's protection fraction.
// The result is not clamped.
func ComposeDamage(baseDamage, protection, multiplier float64) float64 {
	return baseDamage * multiplier * (1 - util.Clamp(protection, 0, 1))
}

// ProtectionTable maps helmet item ids to the fraction of headshot damage they absorb.
type ProtectionTable map[string]float64

// Lookup returns the protection of a helmet, 0 for unknown or empty ids.
// itemID must match a table key exactly, including its namespace.
func (t ProtectionTable) Lookup(itemID string) float64 {
	if itemID == "" {
		return 0
	}
	return util.Clamp(t[itemID], 0, 1)
}

// EffectiveMultiplier is the factor a headshot applies to the base damage once the helmet is
// accounted for.
func EffectiveMultiplier(protection, multiplier float64) float64 {
	return ComposeDamage(1, protection, multiplier)
}

func (t ProtectionTable) Clone() ProtectionTable {
	clone := make(ProtectionTable, len(t))
	for id, fraction := range t {
		clone[id] = fraction
	}
	return clone
}

// NormalizeID adds the default namespace to bare identifiers.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, ":") {
		return id
	}
	return DefaultNamespace + ":" + id
}
