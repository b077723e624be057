// Package config provides YAML-based configuration loading for Launchpad.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Launchpad configuration, loaded from launchpad.yaml.
type Config struct {
	Owner        string              `yaml:"owner"`
	Database     DatabaseConfig      `yaml:"database"`
	Dashboard    DashboardConfig     `yaml:"dashboard"`
	Template     string              `yaml:"template"`
	Notify       NotifyConfig        `yaml:"notify"`
	RoleDefaults []RoleDefaultConfig `yaml:"role_defaults"`
}

// DatabaseConfig holds connection settings for the MySQL server.
type DatabaseConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Name string `yaml:"name"`
}

// DashboardConfig holds settings for the dashboard HTTP server.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// NotifyConfig holds chat notification settings for launch digests.
// Platform selects the adapter; leave it empty to disable notifications.
type NotifyConfig struct {
	Platform   string `yaml:"platform"` // "slack" or "discord"
	Token      string `yaml:"token"`
	Channel    string `yaml:"channel"`
	DigestCron string `yaml:"digest_cron"` // 5-field cron expression
}

// RoleDefaultConfig is a team-wide fallback owner for a role, seeded into
// the role_defaults table.
type RoleDefaultConfig struct {
	Role       string `yaml:"role"`
	OwnerEmail string `yaml:"owner_email"`
	Note       string `yaml:"note"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" && c.Owner != "" {
		c.Database.Name = "launchpad_" + c.Owner
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
	if c.Template == "" {
		c.Template = "TMP-GENERAL"
	}
	if c.Notify.Platform != "" && c.Notify.DigestCron == "" {
		c.Notify.DigestCron = "0 9 * * *"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Owner == "" {
		errs = append(errs, "owner is required")
	}
	switch c.Notify.Platform {
	case "", "slack", "discord":
	default:
		errs = append(errs, fmt.Sprintf("notify.platform %q not supported (slack, discord)", c.Notify.Platform))
	}
	if c.Notify.Platform != "" {
		if c.Notify.Token == "" {
			errs = append(errs, "notify.token is required when notify.platform is set")
		}
		if c.Notify.Channel == "" {
			errs = append(errs, "notify.channel is required when notify.platform is set")
		}
	}
	for i, rd := range c.RoleDefaults {
		if rd.Role == "" {
			errs = append(errs, fmt.Sprintf("role_defaults[%d].role is required", i))
		}
		if rd.OwnerEmail == "" {
			errs = append(errs, fmt.Sprintf("role_defaults[%d].owner_email is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
