// Package config loads and validates the service configuration from a YAML
// file, a .env file, and EQUIPHUB_-prefixed environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/skillsenselab/equiphub/internal/database"
	"github.com/skillsenselab/equiphub/internal/logger"
	"github.com/skillsenselab/equiphub/internal/observability"
	"github.com/skillsenselab/equiphub/internal/server"
)

// Config is the root configuration for the equiphub service.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`

	Server   server.Config               `yaml:"server" mapstructure:"server"`
	Database database.Config             `yaml:"database" mapstructure:"database"`
	Auth     AuthConfig                  `yaml:"auth" mapstructure:"auth"`
	Logging  logger.Config               `yaml:"logging" mapstructure:"logging"`
	Tracing  observability.TracingConfig `yaml:"tracing" mapstructure:"tracing"`
}

// AuthConfig configures the authentication core.
type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens. Required; the process
	// refuses to start without it.
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`

	// TokenTTL is the fixed bearer-token lifetime.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`

	// BcryptCost is the bcrypt work factor for credential hashing.
	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`

	// PasswordMinLength is the minimum accepted credential length.
	PasswordMinLength int `yaml:"password_min_length" mapstructure:"password_min_length"`
}

// ApplyDefaults fills zero-valued fields with the service defaults.
func (c *AuthConfig) ApplyDefaults() {
	if c.TokenTTL == 0 {
		c.TokenTTL = 3600 * time.Second
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}
	if c.PasswordMinLength == 0 {
		c.PasswordMinLength = 6
	}
}

// Validate checks the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31 (got: %d)", c.BcryptCost)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive (got: %s)", c.TokenTTL)
	}
	return nil
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "equiphub"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Tracing.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}
