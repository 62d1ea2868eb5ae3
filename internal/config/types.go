// Package config loads server configuration from defaults, an optional YAML
// file and the environment.
package config

// Config holds all application configuration
type Config struct {
	ServerAddr  string           `yaml:"server_addr" koanf:"server_addr"`
	DataPath    string           `yaml:"data_path" koanf:"data_path"`
	ContentFile string           `yaml:"content_file" koanf:"content_file"`
	LogLevel    string           `yaml:"log_level" koanf:"log_level"`
	LogFormat   string           `yaml:"log_format" koanf:"log_format"`
	CORS        CORSConfig       `yaml:"cors" koanf:"cors"`
	Background  BackgroundConfig `yaml:"background" koanf:"background"`
	Viewport    ViewportConfig   `yaml:"viewport" koanf:"viewport"`
	Contact     ContactConfig    `yaml:"contact" koanf:"contact"`
}

// CORSConfig controls which origins may call the JSON API
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// BackgroundConfig holds the particle field settings
type BackgroundConfig struct {
	ParticleCount  int     `yaml:"particle_count" koanf:"particle_count"`
	Spread         float64 `yaml:"spread" koanf:"spread"`
	RotationStep   float64 `yaml:"rotation_step" koanf:"rotation_step"`
	FOV            float64 `yaml:"fov" koanf:"fov"`
	Near           float64 `yaml:"near" koanf:"near"`
	Far            float64 `yaml:"far" koanf:"far"`
	CameraZ        float64 `yaml:"camera_z" koanf:"camera_z"`
	Color          string  `yaml:"color" koanf:"color"`
	PointSize      float64 `yaml:"point_size" koanf:"point_size"`
	Opacity        float64 `yaml:"opacity" koanf:"opacity"`
	FrameRate      int     `yaml:"frame_rate" koanf:"frame_rate"`
	Seed           uint64  `yaml:"seed" koanf:"seed"`
	StreamInterval int     `yaml:"stream_interval" koanf:"stream_interval"` // send every Nth frame as PNG
	MaxStreams     int     `yaml:"max_streams" koanf:"max_streams"`         // 0 means unlimited
	StillRateLimit float64 `yaml:"still_rate_limit" koanf:"still_rate_limit"`
	StillRateBurst int     `yaml:"still_rate_burst" koanf:"still_rate_burst"`
}

// ViewportConfig holds layout settings
type ViewportConfig struct {
	Breakpoint    int `yaml:"breakpoint" koanf:"breakpoint"`
	DefaultWidth  int `yaml:"default_width" koanf:"default_width"`
	DefaultHeight int `yaml:"default_height" koanf:"default_height"`
}

// ContactConfig selects contact message storage and submission limits
type ContactConfig struct {
	Driver    string  `yaml:"driver" koanf:"driver"`
	DSN       string  `yaml:"dsn" koanf:"dsn"`
	RateLimit float64 `yaml:"rate_limit" koanf:"rate_limit"` // submissions per second per IP
	RateBurst int     `yaml:"rate_burst" koanf:"rate_burst"`
}
