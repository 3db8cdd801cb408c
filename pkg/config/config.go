// Package config loads user defaults for sysinfo from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comfortablynick/sysinfo/pkg/format"
	"github.com/comfortablynick/sysinfo/pkg/provider"
	"github.com/comfortablynick/sysinfo/pkg/uptime"
)

const (
	appDir         = "sysinfo"
	fileName       = "config.yaml"
	defaultAddr    = "127.0.0.1:9133"
	defaultProcDir = "/proc"
	defaultSysDir  = "/sys"
)

// ErrInvalid is returned when a config file holds values out of range.
var ErrInvalid = errors.New("invalid config")

// Config holds defaults that command-line flags override.
type Config struct {
	Provider     string        `yaml:"provider"`
	ProcRoot     string        `yaml:"proc_root"`
	SysRoot      string        `yaml:"sys_root"`
	DecimalUnits bool          `yaml:"decimal_units"`
	CPUInterval  time.Duration `yaml:"cpu_interval"`
	LoadCount    int           `yaml:"load_count"`
	Celsius      bool          `yaml:"celsius"`
	Uptime       uptime.Policy `yaml:"uptime"`
	Serve        ServeConfig   `yaml:"serve"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider:    provider.NameAuto,
		ProcRoot:    defaultProcDir,
		SysRoot:     defaultSysDir,
		CPUInterval: provider.DefaultSampleInterval,
		LoadCount:   format.MaxLoadAverages,
		Serve:       ServeConfig{Addr: defaultAddr},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sysinfo/config.yaml, or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDir, fileName)
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values a file could set out of range.
func (c *Config) Validate() error {
	switch c.Provider {
	case provider.NameAuto, provider.NameProcfs, provider.NameGopsutil:
	default:
		return fmt.Errorf("%w: provider %q", ErrInvalid, c.Provider)
	}

	if c.LoadCount < 1 || c.LoadCount > format.MaxLoadAverages {
		return fmt.Errorf("%w: load_count %d", ErrInvalid, c.LoadCount)
	}

	if c.CPUInterval < 0 {
		return fmt.Errorf("%w: cpu_interval %s", ErrInvalid, c.CPUInterval)
	}

	return nil
}

// ProviderOptions returns the options for provider.New.
func (c *Config) ProviderOptions() provider.Options {
	return provider.Options{ProcRoot: c.ProcRoot, SysRoot: c.SysRoot}
}

func (c *Config) applyDefaults() {
	def := Default()

	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.ProcRoot == "" {
		c.ProcRoot = def.ProcRoot
	}
	if c.SysRoot == "" {
		c.SysRoot = def.SysRoot
	}
	if c.CPUInterval == 0 {
		c.CPUInterval = def.CPUInterval
	}
	if c.LoadCount == 0 {
		c.LoadCount = def.LoadCount
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = def.Serve.Addr
	}
}
