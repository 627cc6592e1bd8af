package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/memmaker/boomheadshot/engine/snapshot"
	"github.com/memmaker/boomheadshot/engine/util"
	"github.com/memmaker/boomheadshot/game"
	"github.com/memmaker/boomheadshot/server"
	"github.com/memmaker/boomheadshot/settings"
	"github.com/memmaker/boomheadshot/sim"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const appName = "boomheadshot"

type options struct {
	configDir    string
	configFile   string
	useStore     bool
	saveStore    bool
	scenarioFile string
	logLevel     string
	watch        bool
	models       map[string]string
}

func main() {
	fs := pflag.NewFlagSet(appName, pflag.ExitOnError)
	opts := options{}
	fs.StringVar(&opts.configDir, "config-dir", ".", "Directory holding boomheadshot.{toml,json,yaml}")
	fs.StringVar(&opts.configFile, "config", "", "Settings file, overrides --config-dir")
	fs.BoolVar(&opts.useStore, "store", false, "Read settings from the per-user data store")
	fs.BoolVar(&opts.saveStore, "save-store", false, "Save the loaded settings to the per-user data store")
	fs.StringVar(&opts.scenarioFile, "scenario", "", "Recorded damage events (.nbt or .dat)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level: trace, debug, info, warn or error")
	fs.BoolVar(&opts.watch, "watch", false, "Replay the scenario again whenever the settings file changes")
	fs.StringToStringVar(&opts.models, "model", nil, "Size an entity kind from a glTF model, kind=file")
	settings.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	if err := util.SetupLogging(os.Stderr, opts.logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, fs, opts); err != nil {
		util.LogHostError(err, "headshot simulation failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, fs *pflag.FlagSet, opts options) error {
	if opts.scenarioFile == "" {
		return errors.New("--scenario is required")
	}
	loader, items, err := newLoader(opts)
	if err != nil {
		return err
	}
	if err := loader.BindFlags(fs); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	store := game.NewConfigStore(nil)
	// a failed load already published the defaults
	_ = loader.Reload(store)

	if opts.saveStore {
		if items == nil {
			if items, err = settings.OpenItemStore(appName); err != nil {
				return err
			}
		}
		if err := settings.SaveToStore(items, store.Snapshot()); err != nil {
			return err
		}
		util.LogHostInfo("saved settings to the data store")
	}

	catalog := sim.NewCatalog()
	for kind, filename := range opts.models {
		if err := catalog.LoadModel(kind, filename, sim.ClassLiving, 0); err != nil {
			return err
		}
	}

	scenario, err := snapshot.LoadFile(opts.scenarioFile)
	if err != nil {
		return err
	}
	if err := replay(ctx, store, catalog, scenario); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	if err := loader.Watch(ctx, store); err != nil {
		return err
	}
	return watchAndReplay(ctx, store, catalog, scenario)
}

func newLoader(opts options) (*settings.Loader, settings.ItemStore, error) {
	switch {
	case opts.useStore:
		items, err := settings.OpenItemStore(appName)
		if err != nil {
			return nil, nil, err
		}
		return settings.NewStoreLoader(items), items, nil
	case opts.configFile != "":
		return settings.NewFileLoader(opts.configFile), nil, nil
	}
	return settings.NewDirLoader(opts.configDir), nil, nil
}

// watchAndReplay polls for a newly published snapshot until ctx is done.
func watchAndReplay(ctx context.Context, store *game.ConfigStore, catalog *sim.Catalog, scenario *snapshot.Scenario) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	last := store.Snapshot()
	util.LogHostInfo("watching settings, press Ctrl+C to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current := store.Snapshot()
			if current == last {
				continue
			}
			last = current
			if err := replay(ctx, store, catalog, scenario); err != nil {
				return err
			}
		}
	}
}

func replay(ctx context.Context, store *game.ConfigStore, catalog *sim.Catalog, scenario *snapshot.Scenario) error {
	world := sim.NewWorld(catalog)
	emitter := game.NewBurstEmitter(world.Particles, rand.New(rand.NewSource(time.Now().UnixNano())))
	headshots, err := server.NewHeadshotSystem(store, emitter, world)
	if err != nil {
		return err
	}
	if _, err := world.LoadScenario(scenario); err != nil {
		return errors.Wrapf(err, "load scenario %s", scenario.Name)
	}

	damage := sim.NewDamageSystem(world, headshots)
	results := damage.Update(ctx)
	headshotCount := 0
	for i, result := range results {
		if result.Outcome.Headshot {
			headshotCount++
		}
		util.Log(util.LogHost).Info().
			Int("event", i).
			Str("target", result.Name).
			Bool("headshot", result.Outcome.Headshot).
			Float64("damage", result.Outcome.OriginalDamage).
			Float64("finalDamage", result.Outcome.FinalDamage).
			Float64("protection", result.Outcome.Protection).
			Bool("killed", result.Killed()).
			Msg("replayed damage event")
	}
	world.Tick()
	stats, _ := damage.Timer().Stats("damage")
	util.Log(util.LogHost).Info().
		Str("scenario", scenario.Name).
		Int("events", len(results)).
		Int("headshots", headshotCount).
		Float64("ms", stats.Last).
		Msg("scenario replayed")
	return nil
}
