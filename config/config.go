package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// DefaultFile is the config file name looked up in the home directory
const DefaultFile = ".mdl"

var (
	// ErrNoService indicates no service was named and no default is configured
	ErrNoService = errors.New("no service specified")
	// ErrNoSite indicates no site was named and no default is configured
	ErrNoSite = errors.New("no site specified")
)

// DefaultPath returns ~/.mdl
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFile
	}
	return filepath.Join(home, DefaultFile)
}

// Load loads the configuration from file. An empty path means DefaultPath.
// Values may be overridden with MUDDLE_ environment variables, e.g.
// MUDDLE_DEFAULT_SERVICE or MUDDLE_LOGGING_LEVEL.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)
	// ~/.mdl has no extension to infer the format from
	v.SetConfigType("json")

	v.SetEnvPrefix("MUDDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("default_service", "")
	v.SetDefault("default_site", "")
	v.SetDefault("default_debug", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	for _, group := range []struct {
		kind    string
		entries map[string]ServiceConfig
	}{
		{"services", cfg.Services},
		{"sites", cfg.Sites},
	} {
		for _, name := range sortedNames(group.entries) {
			entry := group.entries[name]
			if entry.BaseURL == "" {
				return fmt.Errorf("%s.%s.baseurl is required", group.kind, name)
			}
			if entry.Token == "" {
				return fmt.Errorf("%s.%s.token is required", group.kind, name)
			}
			if entry.Timeout < 0 {
				return fmt.Errorf("%s.%s.timeout must not be negative", group.kind, name)
			}
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// GetService returns the named service, or the default service when name is empty
func (c *Config) GetService(name string) (ServiceConfig, error) {
	if name == "" {
		name = c.Service
	}
	if name == "" {
		return ServiceConfig{}, ErrNoService
	}

	svc, ok := c.Services[strings.ToLower(name)]
	if !ok {
		return ServiceConfig{}, fmt.Errorf("no config available for service %q", name)
	}
	return svc, nil
}

// GetSite returns the named site, or the default site when name is empty
func (c *Config) GetSite(name string) (ServiceConfig, error) {
	if name == "" {
		name = c.Site
	}
	if name == "" {
		return ServiceConfig{}, ErrNoSite
	}

	site, ok := c.Sites[strings.ToLower(name)]
	if !ok {
		return ServiceConfig{}, fmt.Errorf("no config available for site %q", name)
	}
	return site, nil
}

// ServiceNames returns the configured service names in order
func (c *Config) ServiceNames() []string {
	return sortedNames(c.Services)
}

func sortedNames(m map[string]ServiceConfig) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
