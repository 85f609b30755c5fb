package library

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds configuration for a prompt Library.
type Config struct {
	// Dir is the directory prompt files are loaded from.
	// Optional. An empty Dir gives an in-memory library filled with Register.
	Dir string `json:"dir" yaml:"dir" toml:"dir"`

	// Watch reloads the library when files in Dir change, for as long as
	// the context passed to New lives. Requires Dir.
	Watch bool `json:"watch" yaml:"watch" toml:"watch"`

	// Debounce is how long to wait after the last change before reloading.
	// Default: 200ms. New applies the default when Debounce is zero.
	Debounce time.Duration `json:"debounce" yaml:"debounce" toml:"debounce"`

	// ValidateAll validates every prompt at load time, regardless of the
	// definition's own validate flag.
	ValidateAll bool `json:"validate_all" yaml:"validate_all" toml:"validate_all"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Debounce: 200 * time.Millisecond,
	}
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the PROMPTKIT_ prefix and take precedence over
// existing values.
//
// Supported variables:
//   - PROMPTKIT_DIR: Prompt directory
//   - PROMPTKIT_WATCH: Reload on change ("true"/"false")
//   - PROMPTKIT_DEBOUNCE: Reload debounce (e.g., "500ms")
//   - PROMPTKIT_VALIDATE_ALL: Validate every prompt ("true"/"false")
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("PROMPTKIT_DIR"); v != "" {
		c.Dir = v
	}
	if v := os.Getenv("PROMPTKIT_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Watch = b
		}
	}
	if v := os.Getenv("PROMPTKIT_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Debounce = d
		}
	}
	if v := os.Getenv("PROMPTKIT_VALIDATE_ALL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ValidateAll = b
		}
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Watch && c.Dir == "" {
		return fmt.Errorf("watch requires dir")
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0, got %v", c.Debounce)
	}
	return nil
}
