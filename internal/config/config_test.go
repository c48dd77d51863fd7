package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Config{
		Rows:          DefaultRows,
		Width:         DefaultWidth,
		StepsPerFrame: DefaultStepsPerFrame,
		StepDelay:     DefaultStepDelay,
		Port:          DefaultPort,
		LogLevel:      DefaultLogLevel,
	}, cfg)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pathviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows: 20\nwidth: 600\nstep_delay: 250ms\nlog_level: debug\n"), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Rows)
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 250*time.Millisecond, cfg.StepDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultStepsPerFrame, cfg.StepsPerFrame)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATHVIZ_ROWS", "12")
	t.Setenv("PORT", "9999")
	t.Setenv("PATHVIZ_LAYOUT", "maze.txt")
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Rows)
	assert.Equal(t, "maze.txt", cfg.Layout)
	assert.Equal(t, "9999", cfg.Port)
}

func TestValidate(t *testing.T) {
	good := Config{Rows: 10, Width: 100, StepsPerFrame: 1, LogLevel: "info"}
	assert.NoError(t, good.Validate())

	cases := map[string]Config{
		"one row":     {Rows: 1, Width: 100, StepsPerFrame: 1, LogLevel: "info"},
		"narrow":      {Rows: 10, Width: 9, StepsPerFrame: 1, LogLevel: "info"},
		"no steps":    {Rows: 10, Width: 100, StepsPerFrame: 0, LogLevel: "info"},
		"negative":    {Rows: 10, Width: 100, StepsPerFrame: 1, StepDelay: -time.Second, LogLevel: "info"},
		"bogus level": {Rows: 10, Width: 100, StepsPerFrame: 1, LogLevel: "loud"},
	}
	for name, cfg := range cases {
		assert.ErrorIs(t, cfg.Validate(), ErrInvalid, name)
	}
}

func TestApplyLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	Config{LogLevel: "warn"}.ApplyLogging()
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}
