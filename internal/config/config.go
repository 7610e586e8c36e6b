// Package config loads navkit configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the coordinator's tunables.
type Config struct {
	Stack      StackConfig
	Pool       PoolConfig
	Transition TransitionConfig
	Telemetry  TelemetryConfig
	Log        LogConfig
}

// StackConfig holds navigation stack settings.
type StackConfig struct {
	MaxDepth int
}

// PoolConfig holds object pool settings.
type PoolConfig struct {
	// MaxIdle bounds each kind's idle collection.
	MaxIdle int
	// Warmup is how many instances per kind to pre-populate at startup.
	Warmup int
}

// TransitionConfig holds show/hide transition settings.
type TransitionConfig struct {
	Duration time.Duration
	Disabled bool
}

// TelemetryConfig holds trace export settings.
type TelemetryConfig struct {
	Endpoint    string
	ServiceName string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string
	Debug bool
}

// Load reads configuration from file and env. Env var overrides use prefix
// NAVKIT_ (e.g. NAVKIT_STACK_MAX_DEPTH); the config file is toml, found via
// NAVKIT_CONFIG or ~/.config/navkit/config.toml. A missing file is fine.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("stack.max_depth", 10)
	v.SetDefault("pool.max_idle", 4)
	v.SetDefault("pool.warmup", 0)
	v.SetDefault("transition.duration_ms", 150)
	v.SetDefault("transition.disabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service_name", "navkit")
	v.SetDefault("log.path", "")
	v.SetDefault("log.debug", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("NAVKIT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "navkit"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("NAVKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// read config file if present; defaults and env cover the rest
	_ = v.ReadInConfig()

	cfg := Config{
		Stack: StackConfig{MaxDepth: v.GetInt("stack.max_depth")},
		Pool: PoolConfig{
			MaxIdle: v.GetInt("pool.max_idle"),
			Warmup:  v.GetInt("pool.warmup"),
		},
		Transition: TransitionConfig{
			Duration: time.Duration(v.GetInt("transition.duration_ms")) * time.Millisecond,
			Disabled: v.GetBool("transition.disabled"),
		},
		Telemetry: TelemetryConfig{
			Endpoint:    v.GetString("telemetry.endpoint"),
			ServiceName: v.GetString("telemetry.service_name"),
		},
		Log: LogConfig{
			Path:  v.GetString("log.path"),
			Debug: v.GetBool("log.debug"),
		},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Stack.MaxDepth < 1 {
		return fmt.Errorf("config: stack.max_depth must be >= 1, got %d", c.Stack.MaxDepth)
	}
	if c.Pool.MaxIdle < 0 {
		return fmt.Errorf("config: pool.max_idle must be >= 0, got %d", c.Pool.MaxIdle)
	}
	return nil
}
