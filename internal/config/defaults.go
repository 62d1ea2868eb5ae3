package config

import (
	"mukesh.dev/internal/background"
	"mukesh.dev/internal/contact"
	"mukesh.dev/internal/viewport"
)

// DefaultPath is the config file read when none is given
const DefaultPath = "portfolio.yml"

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	b := background.DefaultSettings()
	return &Config{
		ServerAddr: ":8080",
		DataPath:   "data",
		LogLevel:   "info",
		LogFormat:  "text",
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Background: BackgroundConfig{
			ParticleCount:  b.ParticleCount,
			Spread:         b.Spread,
			RotationStep:   b.RotationStep,
			FOV:            b.FOV,
			Near:           b.Near,
			Far:            b.Far,
			CameraZ:        b.CameraZ,
			Color:          b.Color,
			PointSize:      b.PointSize,
			Opacity:        b.Opacity,
			FrameRate:      b.FrameRate,
			Seed:           b.Seed,
			StreamInterval: 4,
			MaxStreams:     32,
			StillRateLimit: 1,
			StillRateBurst: 10,
		},
		Viewport: ViewportConfig{
			Breakpoint:    viewport.DefaultBreakpoint,
			DefaultWidth:  1280,
			DefaultHeight: 800,
		},
		Contact: ContactConfig{
			Driver:    contact.DriverSQLite,
			DSN:       "data/contact.db",
			RateLimit: 0.1,
			RateBurst: 3,
		},
	}
}
