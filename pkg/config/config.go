package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/miketth/wise/pkg/bundleid"
	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type Config struct {
	CoreApps       []string      `mapstructure:"core_apps"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	BridgeDir      string        `mapstructure:"bridge_dir"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Store          string        `mapstructure:"store"`
	StorePath      string        `mapstructure:"store_path"`
	Debug          bool          `mapstructure:"debug"`
}

// Load reads $XDG_CONFIG_HOME/wise/config.yaml (or --config), then WISE_*
// environment variables, then command line flags, later ones winning.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("wise", pflag.ContinueOnError)
	configFile := fs.String("config", "", "path to config file")
	fs.StringSlice("core-app", nil, "bundle id of a core application, repeatable")
	fs.Duration("poll-interval", 2*time.Second, "how often to re-apply layouts, 0 disables polling")
	fs.String("bridge-dir", "", "directory holding the accessibility bridge sockets")
	fs.Duration("request-timeout", 500*time.Millisecond, "timeout for a single accessibility bridge request")
	fs.String("store", StoreMemory, "where to remember directives per app: memory, json or sqlite")
	fs.String("store-path", "", "file for the json or sqlite store")
	fs.Bool("debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "wise"))
	if *configFile != "" {
		v.SetConfigFile(*configFile)
	}

	v.SetEnvPrefix("WISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"core_apps":       "core-app",
		"poll_interval":   "poll-interval",
		"bridge_dir":      "bridge-dir",
		"request_timeout": "request-timeout",
		"store":           "store",
		"store_path":      "store-path",
		"debug":           "debug",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.resolveStorePath(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.CoreApps) == 0 {
		return errors.New("no core apps configured")
	}

	for i, app := range c.CoreApps {
		id, err := bundleid.Parse(strings.TrimSpace(app))
		if err != nil {
			return fmt.Errorf("core app %q: %w", app, err)
		}
		c.CoreApps[i] = id
	}

	switch c.Store {
	case StoreMemory, StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if c.PollInterval < 0 {
		return fmt.Errorf("negative poll interval %s", c.PollInterval)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}

	return nil
}

func (c *Config) resolveStorePath() error {
	if c.StorePath != "" || c.Store == StoreMemory {
		return nil
	}

	name := "wise/directives.db"
	if c.Store == StoreJSON {
		name = "wise/directives.json"
	}

	path, err := xdg.StateFile(name)
	if err != nil {
		return fmt.Errorf("get state file: %w", err)
	}
	c.StorePath = path

	return nil
}
