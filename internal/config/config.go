// Package config resolves the runtime configuration once at startup: where
// patient records are stored, where the district list lives and where the log
// file goes. Values come from flags, environment (ONCOENTRY_*) or an optional
// YAML config file, in that precedence order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir       string `mapstructure:"data_dir"`
	DistrictsFile string `mapstructure:"districts_file"`
	LogFile       string `mapstructure:"log_file"`
}

// Load builds the configuration. cfgFile may be empty; a missing config file
// is not an error, flags and environment still apply.
func Load(cfgFile string, overrides map[string]string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", "data")
	v.SetDefault("districts_file", "districts.txt")
	v.SetDefault("log_file", "oncoentry.log")

	v.SetEnvPrefix("ONCOENTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Flag values win over file and environment.
	for key, val := range overrides {
		if val != "" {
			v.Set(key, val)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate resolves the data directory to an absolute path, creates it and
// probes it for writability so the first save cannot fail on permissions.
func (c *Config) Validate() error {
	dir, err := expand(c.DataDir)
	if err != nil {
		return err
	}
	c.DataDir = dir

	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", c.DataDir, err)
	}

	probe := filepath.Join(c.DataDir, ".write_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("data directory %s is not writable: %w", c.DataDir, err)
	}
	_ = os.Remove(probe)

	return nil
}

// LogPath returns the log file location inside the data directory, unless an
// absolute path was configured.
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}

func expand(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving data directory %s: %w", path, err)
	}
	return abs, nil
}
