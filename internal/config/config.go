package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Worker   WorkerConfig   `mapstructure:"worker" validate:"required"`
	Scoring  ScoringConfig  `mapstructure:"scoring" validate:"required"`
}

// ServerConfig contains process-wide settings.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// WorkerConfig controls the poll loop and job assembly.
type WorkerConfig struct {
	// PollInterval is how long an idle poller sleeps between claim attempts.
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`

	// ErrorCooldown is the pause after an unexpected error in the loop body.
	ErrorCooldown time.Duration `mapstructure:"error_cooldown" validate:"gt=0"`

	// MaxFrames caps the number of frames sent to the scorer per job.
	MaxFrames int `mapstructure:"max_frames" validate:"gte=1"`

	// DefaultSampleFPS is used when a session has no batches.
	DefaultSampleFPS int `mapstructure:"default_sample_fps" validate:"gte=1"`

	// Count is the number of pollers run in this process.
	Count int `mapstructure:"count" validate:"gte=1,lte=64"`
}

// ScoringConfig contains settings for the external posture scoring service.
type ScoringConfig struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MaxRetries     int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" validate:"gt=0"`

	// EngineConfig is forwarded verbatim as the "config" object of every
	// scoring request. Omitted when empty.
	EngineConfig map[string]any `mapstructure:"engine_config"`
}
