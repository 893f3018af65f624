package config

import (
	"time"
)

// Config represents the complete configuration structure
type Config struct {
	Service  string                   `mapstructure:"default_service"`
	Site     string                   `mapstructure:"default_site"`
	Debug    bool                     `mapstructure:"default_debug"`
	Services map[string]ServiceConfig `mapstructure:"services"`
	Sites    map[string]ServiceConfig `mapstructure:"sites"`
	Logging  LoggingConfig            `mapstructure:"logging"`
}

// ServiceConfig holds the connection details of one Moodle web service
type ServiceConfig struct {
	BaseURL string        `mapstructure:"baseurl"`
	Token   string        `mapstructure:"token"`
	Verify  *bool         `mapstructure:"verify"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// VerifyTLS reports whether the server certificate should be checked, which
// is the default
func (s ServiceConfig) VerifyTLS() bool {
	return s.Verify == nil || *s.Verify
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Color      bool   `mapstructure:"color"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}
