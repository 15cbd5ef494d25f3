// Package config loads deepzoom settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds settings that can also be given as command line flags.
type Config struct {
	Tile struct {
		Name    string `toml:"name" yaml:"name"`
		Output  string `toml:"output" yaml:"output"`
		Size    int    `toml:"size" yaml:"size"`
		Overlap int    `toml:"overlap" yaml:"overlap"`
		Workers int    `toml:"workers" yaml:"workers"`
		Filter  string `toml:"filter" yaml:"filter"`
		Viewer  bool   `toml:"viewer" yaml:"viewer"`
	} `toml:"tile" yaml:"tile"`

	Server struct {
		Port    int      `toml:"port" yaml:"port"`
		Origins []string `toml:"origins" yaml:"origins"`
	} `toml:"server" yaml:"server"`

	Log struct {
		File       string `toml:"file" yaml:"file"`
		MaxSize    int    `toml:"max_size" yaml:"maxSize"` // megabytes
		MaxBackups int    `toml:"max_backups" yaml:"maxBackups"`
		Verbose    bool   `toml:"verbose" yaml:"verbose"`
	} `toml:"log" yaml:"log"`

	DB string `toml:"db" yaml:"db"`
}

// Default returns a configuration with default values
func Default() *Config {
	cfg := &Config{}

	cfg.Tile.Output = "."
	cfg.Tile.Size = 256
	cfg.Tile.Workers = runtime.NumCPU()
	cfg.Tile.Filter = "catmullrom"

	cfg.Server.Port = 10000

	cfg.Log.MaxSize = 100
	cfg.Log.MaxBackups = 3

	return cfg
}

// Load reads configuration from path on top of the defaults. A missing
// file is not an error. Files ending in .toml are parsed as TOML, anything
// else as YAML.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	return cfg, nil
}
