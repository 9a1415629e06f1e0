// Package config loads the quelf configuration file. Service
// credentials live in the file and pass through to the adapters
// untouched; paths can be overridden through the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Environment overrides. QUELF_CONFIG moves the config file,
// QUELF_DATA_DIR moves the data directory.
const (
	EnvConfig  = "QUELF_CONFIG"
	EnvDataDir = "QUELF_DATA_DIR"
)

// SleepCycleConfig holds the SleepSecure account credentials.
type SleepCycleConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// TogglConfig holds the Toggl reports API credentials.
type TogglConfig struct {
	APIToken    string `yaml:"api_token"`
	Email       string `yaml:"email"`
	WorkspaceID string `yaml:"workspace_id"`
}

// Config is the parsed configuration file.
type Config struct {
	DataDir    string           `yaml:"data_dir"`
	SleepCycle SleepCycleConfig `yaml:"sleepcycle"`
	Toggl      TogglConfig      `yaml:"toggl"`
}

// DefaultPath returns the config file path: QUELF_CONFIG if set,
// otherwise config.yml under the XDG config directory.
func DefaultPath() string {
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quelf", "config.yml")
}

// Load reads the configuration file at path, or the default location
// when path is empty. A missing file is not an error: commands that
// only touch local data work without any configuration, and the
// remote clients complain about absent credentials themselves.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	data, err := os.ReadFile(expandHome(path))
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if env := os.Getenv(EnvDataDir); env != "" {
		cfg.DataDir = env
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	cfg.DataDir = expandHome(cfg.DataDir)

	return cfg, nil
}

// CachePath returns the sleep session cache file path.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "sleepsessions.json")
}

// DatabasePath returns the analytics database path.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "quelf.db")
}

// ExportZipPath returns where the downloaded export archive lands.
func (c *Config) ExportZipPath() string {
	return filepath.Join(c.DataDir, "sleepcycle_data.zip")
}

// ExportRecordsPath returns where the extracted export records land.
func (c *Config) ExportRecordsPath() string {
	return filepath.Join(c.DataDir, "data_json.txt")
}

// Template is the starter configuration written by WriteTemplate. All
// values are commented out so a fresh file behaves like no file at all.
const Template = `# quelf configuration.
#
# data_dir: ~/.local/share/quelf

# SleepSecure account. Needed for syncing and export downloads.
# sleepcycle:
#   email: you@example.com
#   password: hunter2

# Toggl reports API. Find the token under Profile settings.
# toggl:
#   api_token: ""
#   email: you@example.com
#   workspace_id: "123456"
`

// WriteTemplate writes the starter configuration to path, creating
// parent directories as needed. Existing files are left alone.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0600); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}

func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quelf")
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
