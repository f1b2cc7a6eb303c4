package config

import "time"

// StartPosition is the standard chess starting position in FEN.
const StartPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format"`
	StaticDir         string        `mapstructure:"static_dir" yaml:"static_dir"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`

	InitialPosition string        `mapstructure:"initial_position" yaml:"initial_position"`
	DefaultRating   int           `mapstructure:"default_rating" yaml:"default_rating"`
	NameAttempts    int           `mapstructure:"name_attempts" yaml:"name_attempts"`
	RoomIdleTTL     time.Duration `mapstructure:"room_idle_ttl" yaml:"room_idle_ttl"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`

	IntentRate      float64 `mapstructure:"intent_rate" yaml:"intent_rate"`
	IntentBurst     int     `mapstructure:"intent_burst" yaml:"intent_burst"`
	MaxMessageBytes int64   `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	OutboundBuffer  int     `mapstructure:"outbound_buffer" yaml:"outbound_buffer"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3001",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		StaticDir:         "dist",
		AllowedOrigins:    []string{"*"},
		InitialPosition:   StartPosition,
		DefaultRating:     400,
		NameAttempts:      16,
		RoomIdleTTL:       30 * time.Minute,
		SweepInterval:     time.Minute,
		IntentRate:        20,
		IntentBurst:       40,
		MaxMessageBytes:   64 << 10,
		OutboundBuffer:    32,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.StaticDir != "" {
		c.StaticDir = other.StaticDir
	}
	if len(other.AllowedOrigins) > 0 {
		c.AllowedOrigins = other.AllowedOrigins
	}
}
