package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown, including the wait for
	// an in-flight task file write.
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"     validate:"required,min=1,dive,required"`
}

// StorageConfig contains the settings of the task data file.
type StorageConfig struct {
	DataFile string `mapstructure:"data_file" validate:"required"`
	// AtomicWrite replaces the data file via write-to-temp-then-rename.
	// Off by default: the file is overwritten in place.
	AtomicWrite bool `mapstructure:"atomic_write"`
}
