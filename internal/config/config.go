// Package config loads pathviz settings from flags, PATHVIZ_* environment
// variables and an optional pathviz.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	configFileName = "pathviz"
	configFileType = "yaml"
	envPrefix      = "PATHVIZ"

	KeyRows          = "rows"
	KeyWidth         = "width"
	KeyStepsPerFrame = "steps_per_frame"
	KeyStepDelay     = "step_delay"
	KeyPort          = "port"
	KeyLogLevel      = "log_level"
	KeyLayout        = "layout"

	DefaultRows          = 40
	DefaultWidth         = 800
	DefaultStepsPerFrame = 1
	DefaultStepDelay     = 10 * time.Millisecond
	DefaultPort          = "8080"
	DefaultLogLevel      = "info"

	// HudHeight is the strip below the grid used for status text.
	HudHeight = 28
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Rows          int
	Width         int
	StepsPerFrame int
	StepDelay     time.Duration
	Port          string
	LogLevel      string
	// Layout is an optional layout file to start from.
	Layout string
}

// New returns a viper instance with defaults and environment bindings set.
// Callers bind their cobra flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRows, DefaultRows)
	v.SetDefault(KeyWidth, DefaultWidth)
	v.SetDefault(KeyStepsPerFrame, DefaultStepsPerFrame)
	v.SetDefault(KeyStepDelay, DefaultStepDelay)
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLayout, "")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// the hosting platform hands the port over as plain PORT
	_ = v.BindEnv(KeyPort, envPrefix+"_PORT", "PORT")
	return v
}

// Load reads the config file, if any, and validates the result. file may be
// empty, in which case pathviz.yaml is looked up in the working directory and
// in ~/.pathviz. A missing file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pathviz"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Infof("config loaded from %s", v.ConfigFileUsed())
	}

	cfg := Config{
		Rows:          v.GetInt(KeyRows),
		Width:         v.GetInt(KeyWidth),
		StepsPerFrame: v.GetInt(KeyStepsPerFrame),
		StepDelay:     v.GetDuration(KeyStepDelay),
		Port:          v.GetString(KeyPort),
		LogLevel:      v.GetString(KeyLogLevel),
		Layout:        v.GetString(KeyLayout),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Rows < 2 {
		return fmt.Errorf("%w: rows must be at least 2, got %d", ErrInvalid, c.Rows)
	}
	if c.Width < c.Rows {
		return fmt.Errorf("%w: width %d leaves no pixels for %d rows", ErrInvalid, c.Width, c.Rows)
	}
	if c.StepsPerFrame < 1 {
		return fmt.Errorf("%w: steps_per_frame must be positive, got %d", ErrInvalid, c.StepsPerFrame)
	}
	if c.StepDelay < 0 {
		return fmt.Errorf("%w: step_delay must not be negative", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ApplyLogging sets the logrus level.
func (c Config) ApplyLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
