package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. EQUIPHUB_AUTH_JWT_SECRET.
const envPrefix = "EQUIPHUB"

// LoaderOption customizes Load.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// Load reads the configuration from config.yml and .env files (searched in
// standard locations unless overridden), applies environment overrides,
// then fills defaults and validates. The returned config is ready to use.
func Load(opts ...LoaderOption) (*Config, error) {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.envFile == "" {
		o.envFile = findFirst(".env.equiphub", ".env")
	}
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load %s: %v\n", o.envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.configFile == "" {
		o.configFile = findFirst(
			"./cmd/equiphub/config.yml",
			"./config/config.yml",
			"./config.yml",
		)
	}
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", o.configFile, err)
		}
	}

	bindEnvKeys(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// bindEnvKeys registers the keys viper should consider for env overrides.
// AutomaticEnv alone does not surface nested keys that are absent from the
// YAML file, so the ones that matter are bound explicitly.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"environment",
		"server.host", "server.port",
		"database.dsn", "database.auto_migrate",
		"auth.jwt_secret", "auth.token_ttl", "auth.bcrypt_cost", "auth.password_min_length",
		"logging.level", "logging.format",
		"tracing.enabled", "tracing.endpoint", "tracing.sample_rate",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
