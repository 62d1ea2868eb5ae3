package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"mukesh.dev/internal/background"
	"mukesh.dev/internal/contact"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PORTFOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PORTFOLIO_*). Nested keys use a double
// underscore: PORTFOLIO_CONTACT__DSN -> contact.dsn.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// LoadDotEnv loads a .env file into the process environment if it exists.
// Variables already set are left alone.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogFormats = map[string]bool{"text": true, "json": true}

var validDrivers = map[string]bool{
	contact.DriverSQLite:   true,
	contact.DriverPostgres: true,
	contact.DriverMemory:   true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("server_addr is required")
	}
	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}

	b := c.Background
	if b.ParticleCount <= 0 {
		return fmt.Errorf("background.particle_count must be positive")
	}
	if b.Spread <= 0 {
		return fmt.Errorf("background.spread must be positive")
	}
	if b.FOV <= 0 || b.FOV >= 180 {
		return fmt.Errorf("background.fov must be between 0 and 180 degrees")
	}
	if b.Near <= 0 || b.Near >= b.Far {
		return fmt.Errorf("background.near must be positive and less than background.far")
	}
	if b.FrameRate < 1 || b.FrameRate > 240 {
		return fmt.Errorf("background.frame_rate must be between 1 and 240")
	}
	if b.Opacity < 0 || b.Opacity > 1 {
		return fmt.Errorf("background.opacity must be between 0 and 1")
	}
	if b.StreamInterval < 1 {
		return fmt.Errorf("background.stream_interval must be at least 1")
	}
	if b.MaxStreams < 0 {
		return fmt.Errorf("background.max_streams must not be negative")
	}
	if b.StillRateLimit < 0 || b.StillRateBurst < 1 {
		return fmt.Errorf("background still rate limit must be non-negative with a burst of at least 1")
	}

	if c.Viewport.Breakpoint <= 0 {
		return fmt.Errorf("viewport.breakpoint must be positive")
	}
	if c.Viewport.DefaultWidth <= 0 || c.Viewport.DefaultHeight <= 0 {
		return fmt.Errorf("viewport default size must be positive")
	}

	if !validDrivers[c.Contact.Driver] {
		return fmt.Errorf("invalid contact.driver %q: must be one of sqlite, postgres, memory", c.Contact.Driver)
	}
	if c.Contact.Driver != contact.DriverMemory && c.Contact.DSN == "" {
		return fmt.Errorf("contact.dsn is required for driver %s", c.Contact.Driver)
	}
	if c.Contact.RateLimit < 0 || c.Contact.RateBurst < 1 {
		return fmt.Errorf("contact rate limit must be non-negative with a burst of at least 1")
	}

	return nil
}

// BackgroundSettings converts the background section for the effect
func (c *Config) BackgroundSettings() background.Settings {
	b := c.Background
	return background.Settings{
		ParticleCount: b.ParticleCount,
		Spread:        b.Spread,
		RotationStep:  b.RotationStep,
		FOV:           b.FOV,
		Near:          b.Near,
		Far:           b.Far,
		CameraZ:       b.CameraZ,
		Color:         b.Color,
		PointSize:     b.PointSize,
		Opacity:       b.Opacity,
		FrameRate:     b.FrameRate,
		Seed:          b.Seed,
	}
}
