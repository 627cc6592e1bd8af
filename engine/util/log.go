package util

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var GLOBAL_LOG_CATEGORIES = LogHeadshot | LogConfig | LogEffects | LogSnapshot | LogHost

type LogCategory int

const (
	LogHeadshot LogCategory = 1 << iota
	LogConfig
	LogEffects
	LogSnapshot
	LogHost
)

func (c LogCategory) String() string {
	switch c {
	case LogHeadshot:
		return "headshot"
	case LogConfig:
		return "config"
	case LogEffects:
		return "effects"
	case LogSnapshot:
		return "snapshot"
	case LogHost:
		return "host"
	}
	return "unknown"
}

var rootLogger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	rootLogger.Store(&l)
}

// SetupLogging installs a console logger writing to out at the given level name
// ("debug", "info", "warn", ...). Colors are only used when out is a terminal.
func SetupLogging(out io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}
	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	SetLogger(zerolog.New(console).Level(lvl).With().Timestamp().Logger())
	return nil
}

func SetLogger(l zerolog.Logger) {
	rootLogger.Store(&l)
}

func RootLogger() zerolog.Logger {
	return *rootLogger.Load()
}

// Log returns the logger for a category, or a disabled logger if the category is masked out.
func Log(cat LogCategory) *zerolog.Logger {
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		nop := zerolog.Nop()
		return &nop
	}
	l := rootLogger.Load().With().Str("category", cat.String()).Logger()
	return &l
}

func LogHeadshotDebug(txt string) {
	Log(LogHeadshot).Debug().Msg(txt)
}

func LogConfigInfo(txt string) {
	Log(LogConfig).Info().Msg(txt)
}

func LogConfigWarning(txt string) {
	Log(LogConfig).Warn().Msg(txt)
}

func LogConfigError(err error, txt string) {
	Log(LogConfig).Error().Err(err).Msg(txt)
}

func LogHostInfo(txt string) {
	Log(LogHost).Info().Msg(txt)
}

func LogHostError(err error, txt string) {
	Log(LogHost).Error().Err(err).Msg(txt)
}
