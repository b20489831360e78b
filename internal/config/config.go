package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 640
	DefaultHeight  = 480
	DefaultFPS     = 30
	DefaultPattern = "cellular-automaton"
	DefaultAddr    = "127.0.0.1:8080"
	DefaultLevel   = "warn"
)

type Config struct {
	DataDir    string                    `yaml:"data_dir"`
	Width      int                       `yaml:"width"`
	Height     int                       `yaml:"height"`
	FPS        int                       `yaml:"fps"`
	Pattern    string                    `yaml:"pattern"`
	ContentDir string                    `yaml:"content_dir"`
	LogLevel   string                    `yaml:"log_level"`
	Server     ServerConfig              `yaml:"server"`
	Values     map[string]map[string]any `yaml:"values"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultDataDir is ~/.genlab, or .genlab when there is no home directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".genlab"
	}
	return filepath.Join(home, ".genlab")
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir(),
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FPS:      DefaultFPS,
		Pattern:  DefaultPattern,
		LogLevel: DefaultLevel,
		Server:   ServerConfig{Addr: DefaultAddr},
		Values:   map[string]map[string]any{},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PatternValues returns the configured overrides for a pattern, or nil.
func (c *Config) PatternValues(id string) map[string]any {
	if c.Values == nil {
		return nil
	}
	return c.Values[id]
}

// PresetFile is the location of the saved preset list.
func (c *Config) PresetFile() string {
	return filepath.Join(c.DataDir, "presets.json")
}
