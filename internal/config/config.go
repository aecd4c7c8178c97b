// Package config loads chanscope settings from the environment and an
// optional chanscope.yaml file. Every knob has a safe default; invalid
// values are clamped back to it rather than failing the host program.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Defaults for all tunables. The port matches the console protocol's
// conventional endpoint.
const (
	DefaultPort         = 6770
	DefaultLogLimit     = 50
	DefaultPushInterval = time.Second
)

// Config represents the instrumentation configuration
type Config struct {
	// Port is the loopback TCP port the snapshot server listens on.
	Port int `mapstructure:"port"`
	// LogLimit caps the per-entity message log ring.
	LogLimit int `mapstructure:"log_limit"`
	// Disabled skips starting the snapshot server entirely.
	Disabled bool `mapstructure:"disabled"`
	// MDNS advertises the snapshot server over multicast DNS.
	MDNS bool `mapstructure:"mdns"`
	// PushInterval is the delay between websocket snapshot pushes.
	PushInterval time.Duration `mapstructure:"push_interval"`
	// Verbosity raises the log level: 0 = warn, 1 = info, 2+ = debug.
	Verbosity int `mapstructure:"verbosity"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Port:         DefaultPort,
		LogLimit:     DefaultLogLimit,
		Disabled:     false,
		MDNS:         false,
		PushInterval: DefaultPushInterval,
		Verbosity:    0,
	}
}

// Load reads configuration from chanscope.yaml and CHANSCOPE_* environment
// variables, the environment taking precedence. A missing file is not an
// error; a malformed one is, and callers are expected to log it and carry
// on with defaults.
func Load() (*Config, error) {
	config := DefaultConfig()

	// A private viper instance keeps us out of the host program's way
	v := viper.New()
	v.SetConfigName("chanscope")
	v.SetConfigType("yaml")

	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "chanscope"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("CHANSCOPE")
	v.AutomaticEnv()

	// Defaults must be registered for env-only keys to resolve
	v.SetDefault("port", config.Port)
	v.SetDefault("log_limit", config.LogLimit)
	v.SetDefault("disabled", config.Disabled)
	v.SetDefault("mdns", config.MDNS)
	v.SetDefault("push_interval", config.PushInterval)
	v.SetDefault("verbosity", config.Verbosity)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found - env and defaults apply
	}

	if err := v.Unmarshal(config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}

	config.clamp()
	return config, nil
}

// clamp pulls out-of-range values back to their defaults.
func (c *Config) clamp() {
	if c.Port < 1 || c.Port > 65535 {
		c.Port = DefaultPort
	}
	if c.LogLimit < 1 {
		c.LogLimit = DefaultLogLimit
	}
	if c.PushInterval <= 0 {
		c.PushInterval = DefaultPushInterval
	}
	if c.Verbosity < 0 {
		c.Verbosity = 0
	}
}

// Addr returns the loopback listen address for the snapshot server.
func (c *Config) Addr() string {
	return fmt.Sprintf("127.0.0.1:%d", c.Port)
}
