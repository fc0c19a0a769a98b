// Package config loads runtime settings from defaults, environment variables
// and an optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends
const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

// Config holds the server settings
type Config struct {
	Port            string        `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	DBPath          string        `mapstructure:"db_path"`
	StoreBackend    string        `mapstructure:"store_backend"`
	StorageSlot     string        `mapstructure:"storage_slot"`
	SuccessRedirect string        `mapstructure:"success_redirect"`
	ListingPage     string        `mapstructure:"listing_page"`
	RedirectDelay   time.Duration `mapstructure:"redirect_delay"`
	KeyringDir      string        `mapstructure:"keyring_dir"`
	KeyringPassword string        `mapstructure:"keyring_password"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:            "8080",
		Env:             "development",
		DBPath:          "./app-registry.db",
		StoreBackend:    BackendSQLite,
		StorageSlot:     "ai_apps_list_v1",
		SuccessRedirect: "/apps",
		ListingPage:     "/apps",
		RedirectDelay:   2000 * time.Millisecond,
		KeyringPassword: "app-registry-secret-key",
	}
}

// IsProduction reports whether the server runs with ENV=production
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// SetDefaults registers every default on v so env lookups resolve
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("port", d.Port)
	v.SetDefault("env", d.Env)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("store_backend", d.StoreBackend)
	v.SetDefault("storage_slot", d.StorageSlot)
	v.SetDefault("success_redirect", d.SuccessRedirect)
	v.SetDefault("listing_page", d.ListingPage)
	v.SetDefault("redirect_delay", d.RedirectDelay)
	v.SetDefault("keyring_dir", d.KeyringDir)
	v.SetDefault("keyring_password", d.KeyringPassword)
}

// Load reads the configuration. cfgFile may be empty.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendKeyring:
	default:
		return fmt.Errorf("unknown store backend %q (want %s or %s)", c.StoreBackend, BackendSQLite, BackendKeyring)
	}
	if strings.TrimSpace(c.StorageSlot) == "" {
		return fmt.Errorf("storage slot must not be empty")
	}
	if c.RedirectDelay < 0 {
		return fmt.Errorf("redirect delay must not be negative")
	}
	return nil
}
