package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up next to the executable.
const FileName = ".promptkit.yaml"

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Render      RenderConfig      `yaml:"render"`
	Definitions DefinitionsConfig `yaml:"definitions"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// RenderConfig holds the defaults of the render command. Flags override them.
type RenderConfig struct {
	// Separator joins rendered sections. Default: a blank line.
	Separator Separator `yaml:"separator"`
	// DefaultLabels prefixes unlabeled sections with their kind's label.
	DefaultLabels bool `yaml:"default_labels"`
	SkipEmpty     bool `yaml:"skip_empty"`
}

// Separator is written as a double-quoted scalar so leading and trailing
// newlines survive a save and load.
type Separator string

func (s Separator) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Style: yaml.DoubleQuotedStyle,
		Value: string(s),
	}, nil
}

// DefinitionsConfig locates prompt definitions referenced by name.
type DefinitionsConfig struct {
	Dir string `yaml:"dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Render: RenderConfig{
			Separator: "\n\n",
			SkipEmpty: true,
		},
		Definitions: DefinitionsConfig{
			Dir: "prompts",
		},
	}
}

func ConfigPath() string {
	return filepath.Join(getExecutableDir(), FileName)
}

// Load reads the config next to the executable. A missing file yields the
// defaults.
func Load() (*Config, error) {
	cfg, err := LoadFromPath(ConfigPath())
	if err != nil && os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFromPath reads the config at path over the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to path, or to ConfigPath when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
