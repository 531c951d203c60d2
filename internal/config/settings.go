package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SAVINGSCALC_LOG_LEVEL.
const EnvPrefix = "SAVINGSCALC"

// Settings holds the application settings shared by the CLI and the server.
type Settings struct {
	Log     LogSettings     `mapstructure:"log"`
	Server  ServerSettings  `mapstructure:"server"`
	Session SessionSettings `mapstructure:"session"`
}

// LogSettings holds logging configuration options
type LogSettings struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console, json
}

// ServerSettings defines runtime parameters for the HTTP server.
type ServerSettings struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxBodyBytes   int64    `mapstructure:"max_body_bytes"`
}

// SessionSettings locates the persistent session store. Path defaults to
// savingscalc.db; setting it to "" in a settings file keeps sessions in
// memory for the lifetime of one command.
type SessionSettings struct {
	Path string `mapstructure:"path"`
	ID   string `mapstructure:"id"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("session.path", "savingscalc.db")
	v.SetDefault("session.id", "default")
}

// LoadSettings reads the optional settings file at path and applies
// SAVINGSCALC_* environment overrides on top of the defaults.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks the enumerated settings.
func (s *Settings) Validate() error {
	s.Log.Level = strings.ToLower(strings.TrimSpace(s.Log.Level))
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", s.Log.Level)
	}

	s.Log.Format = strings.ToLower(strings.TrimSpace(s.Log.Format))
	switch s.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log.format %q", s.Log.Format)
	}

	if s.Server.Address == "" {
		return fmt.Errorf("server.address cannot be empty")
	}
	if s.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if s.Session.ID == "" {
		s.Session.ID = "default"
	}
	return nil
}
