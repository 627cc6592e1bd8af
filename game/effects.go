package game

// EffectEntry is a status effect applied to a target's head on a headshot. Duration is in ticks.
type EffectEntry struct {
	ID       string
	Duration int
}

func (e EffectEntry) Valid() bool {
	return e.ID != "" && e.Duration > 0
}

type EffectSpec []EffectEntry

// Valid returns the applicable entries in their original order.
func (s EffectSpec) Valid() EffectSpec {
	result := make(EffectSpec, 0, len(s))
	for _, entry := range s {
		if entry.Valid() {
			result = append(result, entry)
		}
	}
	return result
}

func (s EffectSpec) Clone() EffectSpec {
	return append(EffectSpec(nil), s...)
}

// ParticleHints are forwarded to the particle collaborator.
type ParticleHints struct {
	Count  int
	Spread float64
	Speed  float64
}
