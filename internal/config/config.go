// Package config loads the server configuration from defaults, an optional
// YAML file, .env files and ROOMBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. ROOMBOARD_ADDR or
// ROOMBOARD_LOG_FILE.
const EnvPrefix = "ROOMBOARD"

// Config is the effective server configuration.
type Config struct {
	DB              string   `mapstructure:"db"               yaml:"db"`
	Addr            string   `mapstructure:"addr"             yaml:"addr"`
	AdminUser       string   `mapstructure:"admin_user"       yaml:"admin_user"`
	TokenTTL        string   `mapstructure:"token_ttl"        yaml:"token_ttl"`
	ShutdownTimeout string   `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxUploadBytes  int64    `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"  yaml:"allowed_origins"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig configures logging. File is optional; when set, every record is
// also written there with size-based rotation.
type LogConfig struct {
	Level    string         `mapstructure:"level"    yaml:"level"`
	File     string         `mapstructure:"file"     yaml:"file"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

// RotationConfig mirrors lumberjack's rotation knobs.
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool `mapstructure:"compress"    yaml:"compress"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DB:              "roomboard.sqlite3",
		Addr:            ":8080",
		AdminUser:       "admin",
		TokenTTL:        "168h",
		ShutdownTimeout: "5s",
		MaxUploadBytes:  10 << 20,
		AllowedOrigins:  []string{},
		Log: LogConfig{
			Level: "info",
			Rotation: RotationConfig{
				MaxSize:    64,
				MaxBackups: 5,
				MaxAge:     30,
			},
		},
	}
}

// SetDefaults registers Default() with v.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("db", d.DB)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("admin_user", d.AdminUser)
	v.SetDefault("token_ttl", d.TokenTTL)
	v.SetDefault("shutdown_timeout", d.ShutdownTimeout)
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("allowed_origins", d.AllowedOrigins)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.rotation.max_size", d.Log.Rotation.MaxSize)
	v.SetDefault("log.rotation.max_backups", d.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age", d.Log.Rotation.MaxAge)
	v.SetDefault("log.rotation.compress", d.Log.Rotation.Compress)
}

// Init prepares v: it loads .env files, points v at the config file (path,
// or config.yaml in the usual search paths) and enables ROOMBOARD_*
// environment overrides. A missing config file is not an error.
func Init(v *viper.Viper, path string) error {
	envFiles := []string{".env", ".env.local"}
	for _, envFile := range envFiles {
		// Missing .env files are fine.
		_ = godotenv.Load(envFile)
	}

	if path != "" {
		v.SetConfigFile(path)
		configDir := filepath.Dir(path)
		for _, envFile := range envFiles {
			_ = godotenv.Load(filepath.Join(configDir, envFile))
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/roomboard")
		v.AddConfigPath("$HOME/.roomboard")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be caught by unmarshaling.
func (c *Config) Validate() error {
	if c.DB == "" {
		return errors.New("db path must not be empty")
	}
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := c.TokenLifetime(); err != nil {
		return err
	}
	if _, err := c.ShutdownWait(); err != nil {
		return err
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}

// TokenLifetime parses TokenTTL.
func (c *Config) TokenLifetime() (time.Duration, error) {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid token_ttl %q", c.TokenTTL)
	}
	return d, nil
}

// ShutdownWait parses ShutdownTimeout.
func (c *Config) ShutdownWait() (time.Duration, error) {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid shutdown_timeout %q", c.ShutdownTimeout)
	}
	return d, nil
}
