package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Temperature display units accepted in area configuration.
const (
	UnitCelsius    = "°C"
	UnitFahrenheit = "°F"
)

// Config is the root configuration structure for Hearth Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Hub     HubConfig     `yaml:"hub"`
	Sync    SyncConfig    `yaml:"sync"`
	Logging LoggingConfig `yaml:"logging"`
	Areas   []AreaConfig  `yaml:"areas"`
}

// HubConfig contains the connection parameters for the home-automation hub.
type HubConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	TLS  bool   `yaml:"tls"`

	// AccessToken is the long-lived token presented during the
	// authentication handshake. Always set via HEARTH_HUB_TOKEN in
	// production; never commit it to a config file.
	AccessToken string `yaml:"access_token"`
}

// SyncConfig contains settings for the state synchronisation engine.
type SyncConfig struct {
	// RefreshInterval is how often the full registry set is re-requested
	// to self-heal from missed events, in seconds.
	RefreshInterval int `yaml:"refresh_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// AreaConfig is one row of the static per-area dashboard table. It names
// the sensor entities to surface for an area and the unit temperatures
// should be displayed in. The area IDs listed here are the only valid
// inputs for area-scoped sensor queries.
type AreaConfig struct {
	ID string `yaml:"id"`

	TemperatureEntity   string `yaml:"temperature_entity"`
	HumidityEntity      string `yaml:"humidity_entity"`
	CarbonDioxideEntity string `yaml:"carbon_dioxide_entity"`

	// TemperatureUnit is the target display unit for this area.
	// Readings arriving in the other unit are converted.
	TemperatureUnit string `yaml:"temperature_unit"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HEARTH_SECTION_KEY
// For example: HEARTH_HUB_HOST, HEARTH_HUB_TOKEN
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Hub: HubConfig{
			Host: "homeassistant.local",
			Port: 8123,
		},
		Sync: SyncConfig{
			RefreshInterval: 600,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: HEARTH_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HEARTH_HUB_HOST"); v != "" {
		cfg.Hub.Host = v
	}
	if v := os.Getenv("HEARTH_HUB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Hub.Port = port
		}
	}
	if v := os.Getenv("HEARTH_HUB_TLS"); v != "" {
		if tls, err := strconv.ParseBool(v); err == nil {
			cfg.Hub.TLS = tls
		}
	}
	if v := os.Getenv("HEARTH_HUB_TOKEN"); v != "" {
		cfg.Hub.AccessToken = v
	}
	if v := os.Getenv("HEARTH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Hub.Host == "" {
		errs = append(errs, "hub.host is required")
	}
	if c.Hub.Port < 1 || c.Hub.Port > 65535 {
		errs = append(errs, "hub.port must be between 1 and 65535")
	}
	if c.Hub.AccessToken == "" {
		errs = append(errs, "hub.access_token is required (set HEARTH_HUB_TOKEN environment variable)")
	}
	if c.Sync.RefreshInterval < 1 {
		errs = append(errs, "sync.refresh_interval must be at least 1 second")
	}

	seen := make(map[string]bool, len(c.Areas))
	for i, area := range c.Areas {
		if area.ID == "" {
			errs = append(errs, fmt.Sprintf("areas[%d].id is required", i))
			continue
		}
		if seen[area.ID] {
			errs = append(errs, fmt.Sprintf("areas[%d].id %q is duplicated", i, area.ID))
		}
		seen[area.ID] = true

		switch area.TemperatureUnit {
		case UnitCelsius, UnitFahrenheit:
		case "":
			errs = append(errs, fmt.Sprintf("areas[%d].temperature_unit is required", i))
		default:
			errs = append(errs, fmt.Sprintf("areas[%d].temperature_unit must be %q or %q", i, UnitCelsius, UnitFahrenheit))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// Area returns the dashboard configuration for the given area ID.
func (c *Config) Area(areaID string) (AreaConfig, bool) {
	for _, area := range c.Areas {
		if area.ID == areaID {
			return area, true
		}
	}
	return AreaConfig{}, false
}

// GetRefreshInterval returns the registry refresh interval as a Duration.
func (c *Config) GetRefreshInterval() time.Duration {
	return time.Duration(c.Sync.RefreshInterval) * time.Second
}
