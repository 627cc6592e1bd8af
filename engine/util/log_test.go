package util

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := RootLogger()
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { SetLogger(previous) })
	return &buf
}

func TestLog_AddsCategory(t *testing.T) {
	buf := captureLogs(t)

	LogConfigWarning("value out of range")

	assert.Contains(t, buf.String(), `"category":"config"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "value out of range")
}

func TestLog_MaskedCategoryIsSilent(t *testing.T) {
	buf := captureLogs(t)
	previous := GLOBAL_LOG_CATEGORIES
	GLOBAL_LOG_CATEGORIES = LogConfig
	t.Cleanup(func() { GLOBAL_LOG_CATEGORIES = previous })

	LogHeadshotDebug("hidden")
	LogConfigInfo("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupLogging(t *testing.T) {
	previous := RootLogger()
	t.Cleanup(func() { SetLogger(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogging(&buf, "warn"))
	LogConfigInfo("dropped")
	LogConfigWarning("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	assert.Error(t, SetupLogging(&buf, "loud"))
}
