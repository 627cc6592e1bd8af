package server

import (
	"context"

	"github.com/memmaker/boomheadshot/game"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Target is anything that can take damage.
type Target interface {
	Name() string
	Pose() game.TargetPose
	HelmetID() string
	World() game.WorldID
}

// DamageEvent is raised by the host before damage is applied. Damage is overwritten on a headshot.
// A nil Attacker means environmental damage.
type DamageEvent struct {
	Target   Target
	Attacker game.Attacker
	Damage   float64
}

// EffectEmitter spawns the visual feedback for a headshot.
type EffectEmitter interface {
	EmitHeadshot(world game.WorldID, hit game.HeadshotContext, hints game.ParticleHints)
}

// StatusEffectApplier applies status effects to a target. Implementations skip entries they cannot resolve.
type StatusEffectApplier interface {
	ApplyStatusEffects(target Target, effects game.EffectSpec)
}

type Outcome struct {
	Headshot       bool
	Context        game.HeadshotContext
	OriginalDamage float64
	FinalDamage    float64
	Protection     float64
}

// HeadshotSystem turns damage events into headshots. It holds no per-event state and may be
// called from any number of goroutines.
type HeadshotSystem struct {
	store   *game.ConfigStore
	emitter EffectEmitter
	applier StatusEffectApplier

	events    metric.Int64Counter
	headshots metric.Int64Counter
	damage    metric.Float64Histogram
}

// NewHeadshotSystem wires the system to its collaborators, emitter and applier may be nil.
// Uses the global OTel meter for metrics (no-op if not configured).
func NewHeadshotSystem(store *game.ConfigStore, emitter EffectEmitter, applier StatusEffectApplier) (*HeadshotSystem, error) {
	s := &HeadshotSystem{
		store:   store,
		emitter: emitter,
		applier: applier,
	}
	m := meter()

	var err error
	s.events, err = m.Int64Counter(
		"boomheadshot.damage_events",
		metric.WithDescription("Damage events evaluated for headshots"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating damage event counter")
	}
	s.headshots, err = m.Int64Counter(
		"boomheadshot.headshots",
		metric.WithDescription("Damage events qualified as headshots"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating headshot counter")
	}
	s.damage, err = m.Float64Histogram(
		"boomheadshot.headshot_damage",
		metric.WithDescription("Final damage dealt by headshots"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating headshot damage histogram")
	}
	return s, nil
}

func (s *HeadshotSystem) Config() *game.HeadshotConfig {
	return s.store.Snapshot()
}

// HandleDamage evaluates one event against a single config snapshot. On a headshot the event's
// damage is replaced and the effect collaborators are invoked, otherwise the event is untouched.
func (s *HeadshotSystem) HandleDamage(ctx context.Context, ev *DamageEvent) Outcome {
	if ev == nil {
		return Outcome{}
	}
	outcome := Outcome{OriginalDamage: ev.Damage, FinalDamage: ev.Damage}
	if ev.Attacker == nil || ev.Target == nil {
		return outcome
	}
	cfg := s.store.Snapshot()
	kind := attribute.String("attacker", ev.Attacker.Kind())
	s.events.Add(ctx, 1, metric.WithAttributes(kind))

	detection := game.DetectHeadshot(ev.Attacker, ev.Target.Pose(), cfg)
	if cfg.Debug {
		game.LogDetection(ev.Target.Name(), ev.Attacker, detection)
	}
	if !detection.Headshot {
		return outcome
	}

	outcome.Headshot = true
	outcome.Context = detection.Context
	outcome.Protection = cfg.HelmetProtections.Lookup(ev.Target.HelmetID())
	outcome.FinalDamage = game.ComposeDamage(ev.Damage, outcome.Protection, cfg.HeadshotMultiplier)
	ev.Damage = outcome.FinalDamage

	s.headshots.Add(ctx, 1, metric.WithAttributes(kind))
	s.damage.Record(ctx, outcome.FinalDamage, metric.WithAttributes(kind))
	if cfg.Debug {
		game.LogConfirmation(ev.Target.Name(), detection.Context, outcome.OriginalDamage, outcome.FinalDamage, outcome.Protection,
			game.EffectiveMultiplier(outcome.Protection, cfg.HeadshotMultiplier))
	}

	if s.emitter != nil {
		s.emitter.EmitHeadshot(ev.Target.World(), detection.Context, cfg.ParticleHints())
	}
	if cfg.EnableHeadshotEffects && s.applier != nil {
		s.applier.ApplyStatusEffects(ev.Target, cfg.HeadshotEffects)
	}
	return outcome
}
