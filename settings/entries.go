package settings

import (
	"strconv"
	"strings"

	"github.com/memmaker/boomheadshot/engine/util"
	"github.com/memmaker/boomheadshot/game"
	"github.com/pkg/errors"
)

// splitEntry splits "namespace:path:value" at the last colon, so namespaced ids stay intact.
func splitEntry(entry string) (string, string, error) {
	entry = strings.TrimSpace(entry)
	idx := strings.LastIndex(entry, ":")
	if idx <= 0 || idx == len(entry)-1 {
		return "", "", errors.Errorf("entry %q is not of the form id:value", entry)
	}
	id := game.NormalizeID(entry[:idx])
	if !validID(id) {
		return "", "", errors.Errorf("entry %q has an invalid id", entry)
	}
	return id, strings.TrimSpace(entry[idx+1:]), nil
}

func validID(id string) bool {
	parts := strings.Split(id, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	return !strings.ContainsAny(id, " \t")
}

// ParseEffectEntry parses "id:duration" where duration is a positive number of ticks.
func ParseEffectEntry(entry string) (game.EffectEntry, error) {
	id, value, err := splitEntry(entry)
	if err != nil {
		return game.EffectEntry{}, err
	}
	duration, err := strconv.Atoi(value)
	if err != nil {
		return game.EffectEntry{}, errors.Wrapf(err, "entry %q has an invalid duration", entry)
	}
	if duration <= 0 {
		return game.EffectEntry{}, errors.Errorf("entry %q has a non-positive duration", entry)
	}
	return game.EffectEntry{ID: id, Duration: duration}, nil
}

// ParseProtectionEntry parses "id:fraction" where fraction lies in [0, 1].
func ParseProtectionEntry(entry string) (string, float64, error) {
	id, value, err := splitEntry(entry)
	if err != nil {
		return "", 0, err
	}
	fraction, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", 0, errors.Wrapf(err, "entry %q has an invalid protection value", entry)
	}
	if fraction < 0 || fraction > 1 {
		return "", 0, errors.Errorf("entry %q has a protection value outside [0, 1]", entry)
	}
	return id, fraction, nil
}

// ParseEffects keeps the valid entries in order and logs a warning for every skipped one.
func ParseEffects(entries []string) game.EffectSpec {
	spec := make(game.EffectSpec, 0, len(entries))
	for _, entry := range entries {
		effect, err := ParseEffectEntry(entry)
		if err != nil {
			util.Log(util.LogConfig).Warn().Err(err).Str("option", game.KeyHeadshotEffects).Msg("skipping invalid effect entry")
			continue
		}
		spec = append(spec, effect)
	}
	return spec
}

// ParseProtections builds the helmet table. Later entries override earlier ones with the same id.
func ParseProtections(entries []string) game.ProtectionTable {
	table := make(game.ProtectionTable, len(entries))
	for _, entry := range entries {
		id, fraction, err := ParseProtectionEntry(entry)
		if err != nil {
			util.Log(util.LogConfig).Warn().Err(err).Str("option", game.KeyHelmetProtections).Msg("skipping invalid helmet entry")
			continue
		}
		table[id] = fraction
	}
	return table
}

func FormatEffects(spec game.EffectSpec) []string {
	result := make([]string, 0, len(spec))
	for _, effect := range spec {
		result = append(result, effect.ID+":"+strconv.Itoa(effect.Duration))
	}
	return result
}

// FormatProtections lists the ids in order first, followed by the remaining ids sorted.
func FormatProtections(table game.ProtectionTable, order []string) []string {
	result := make([]string, 0, len(table))
	seen := make(map[string]bool, len(table))
	appendEntry := func(id string) {
		fraction, ok := table[id]
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		result = append(result, id+":"+strconv.FormatFloat(fraction, 'f', -1, 64))
	}
	for _, id := range order {
		appendEntry(id)
	}
	for _, id := range sortedKeys(table) {
		appendEntry(id)
	}
	return result
}
