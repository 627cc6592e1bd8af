// Package settings loads headshot tunables from a settings file, flags or the
// per-user data store and publishes them as config snapshots.
package settings

import (
	"bytes"
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/memmaker/boomheadshot/engine/util"
	"github.com/memmaker/boomheadshot/game"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigName is the settings file name without extension, json, toml and yaml are accepted.
const ConfigName = "boomheadshot"

// Loader reads settings from one source and converts them into snapshots.
// It is safe to reload from several goroutines, also while a Watch is running.
type Loader struct {
	mu       sync.Mutex
	v        *viper.Viper
	read     func(v *viper.Viper) error
	watching bool
	canWatch bool
}

func newLoader(read func(v *viper.Viper) error) *Loader {
	v := viper.New()
	setDefaults(v)
	return &Loader{v: v, read: read}
}

func setDefaults(v *viper.Viper) {
	for _, option := range game.NumericOptions() {
		v.SetDefault(option.Key, option.Default)
	}
	v.SetDefault(game.KeyEnableHeadshotEffects, false)
	v.SetDefault(game.KeyHeadshotEffects, FormatEffects(game.DefaultHeadshotEffects()))
	v.SetDefault(game.KeyHelmetProtections, FormatProtections(game.DefaultHelmetProtections(), game.DefaultHelmetOrder))
	v.SetDefault(game.KeyDebug, false)
}

// NewDirLoader looks for boomheadshot.{json,toml,yaml} in dir. When none exists a
// default boomheadshot.toml is written on the first load.
func NewDirLoader(dir string) *Loader {
	l := newLoader(nil)
	l.v.SetConfigName(ConfigName)
	l.v.AddConfigPath(dir)
	l.read = func(v *viper.Viper) error {
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		filename := filepath.Join(dir, ConfigName+".toml")
		if err := v.SafeWriteConfigAs(filename); err != nil {
			return errors.Wrapf(err, "write default settings to %s", filename)
		}
		util.Log(util.LogConfig).Info().Str("file", filename).Msg("created settings file with default values")
		return v.ReadInConfig()
	}
	l.canWatch = true
	return l
}

// NewFileLoader reads exactly one settings file, the format follows the file extension.
func NewFileLoader(filename string) *Loader {
	l := newLoader(func(v *viper.Viper) error {
		return v.ReadInConfig()
	})
	l.v.SetConfigFile(filename)
	l.canWatch = true
	return l
}

// NewStoreLoader reads the settings blob saved in the per-user data store.
// A missing item means nothing was saved yet and yields the defaults.
func NewStoreLoader(items ItemStore) *Loader {
	l := newLoader(func(v *viper.Viper) error {
		data, err := items.LoadItem(ItemKey)
		if err != nil {
			return errors.Wrapf(err, "load item %s", ItemKey)
		}
		if data == nil {
			return v.ReadConfig(bytes.NewReader([]byte("{}")))
		}
		return v.ReadConfig(bytes.NewReader(data))
	})
	l.v.SetConfigType("json")
	return l
}

// BindFlags lets command line flags named after options override the settings source.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var bindErr error
	fs.VisitAll(func(flag *pflag.Flag) {
		if bindErr != nil || !isOptionKey(flag.Name) {
			return
		}
		bindErr = l.v.BindPFlag(flag.Name, flag)
	})
	return bindErr
}

// Load reads the source and returns the resulting snapshot.
func (l *Loader) Load() (*game.HeadshotConfig, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(l.v); err != nil {
		return nil, errors.Wrap(err, "error reading settings")
	}
	return l.build(), nil
}

// Reload publishes a new snapshot into store. On failure the defaults are published instead.
func (l *Loader) Reload(store *game.ConfigStore) error {
	cfg, err := l.Load()
	if err != nil {
		util.LogConfigError(err, "Failed to load headshot settings")
		store.Publish(game.DefaultConfig())
		util.LogConfigWarning("Loaded default configuration values due to loading error")
		return err
	}
	store.Publish(cfg)
	util.LogConfigInfo("Successfully loaded headshot settings")
	return nil
}

// Watch reloads into store whenever the settings file changes, until ctx is done.
// Every read of the file goes through Reload and holds the loader lock.
func (l *Loader) Watch(ctx context.Context, store *game.ConfigStore) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.canWatch {
		return errors.New("only file based settings can be watched")
	}
	if l.watching {
		return nil
	}
	filename := l.v.ConfigFileUsed()
	if filename == "" {
		return errors.New("settings must be loaded before they can be watched")
	}
	filename = filepath.Clean(filename)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create settings watcher")
	}
	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		_ = watcher.Close()
		return errors.Wrapf(err, "watch %s", filename)
	}
	l.watching = true
	go l.watch(ctx, watcher, filename, l.onChange(store))
	return nil
}

func (l *Loader) watch(ctx context.Context, watcher *fsnotify.Watcher, filename string, changed func(fsnotify.Event)) {
	defer func() {
		_ = watcher.Close()
		l.mu.Lock()
		l.watching = false
		l.mu.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) == filename && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				changed(event)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			util.LogConfigError(err, "settings watcher failed")
		}
	}
}

func (l *Loader) onChange(store *game.ConfigStore) func(fsnotify.Event) {
	return func(event fsnotify.Event) {
		util.Log(util.LogConfig).Info().Str("file", event.Name).Str("op", event.Op.String()).Msg("settings file changed")
		_ = l.Reload(store)
	}
}

func (l *Loader) build() *game.HeadshotConfig {
	cfg := game.DefaultConfig()
	for _, option := range game.NumericOptions() {
		raw := l.v.Get(option.Key)
		value, err := cast.ToFloat64E(raw)
		if err != nil || !option.InRange(value) {
			util.Log(util.LogConfig).Warn().
				Str("option", option.Key).
				Interface("value", raw).
				Float64("min", option.Min).
				Float64("max", option.Max).
				Float64("default", option.Default).
				Msg("invalid value, using default")
			continue
		}
		option.Apply(cfg, value)
	}
	cfg.EnableHeadshotEffects = l.boolOption(game.KeyEnableHeadshotEffects, cfg.EnableHeadshotEffects)
	cfg.Debug = l.boolOption(game.KeyDebug, cfg.Debug)
	if entries, ok := l.listOption(game.KeyHeadshotEffects); ok {
		cfg.HeadshotEffects = ParseEffects(entries)
	}
	if entries, ok := l.listOption(game.KeyHelmetProtections); ok {
		cfg.HelmetProtections = ParseProtections(entries)
	}
	return cfg
}

func (l *Loader) boolOption(key string, fallback bool) bool {
	raw := l.v.Get(key)
	value, err := cast.ToBoolE(raw)
	if err != nil {
		util.Log(util.LogConfig).Warn().Str("option", key).Interface("value", raw).Msg("invalid value, using default")
		return fallback
	}
	return value
}

func (l *Loader) listOption(key string) ([]string, bool) {
	raw := l.v.Get(key)
	entries, err := cast.ToStringSliceE(raw)
	if err != nil {
		util.Log(util.LogConfig).Warn().Str("option", key).Interface("value", raw).Msg("invalid list, using default")
		return nil, false
	}
	return entries, true
}

func isOptionKey(name string) bool {
	switch name {
	case game.KeyEnableHeadshotEffects, game.KeyHeadshotEffects, game.KeyHelmetProtections, game.KeyDebug:
		return true
	}
	for _, option := range game.NumericOptions() {
		if option.Key == name {
			return true
		}
	}
	return false
}

func sortedKeys(table game.ProtectionTable) []string {
	keys := make([]string, 0, len(table))
	for id := range table {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}
