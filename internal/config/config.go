// Package config loads .gpc.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".gpc.yaml"

var (
	ErrNoSource      = errors.New("source glob is required")
	ErrNoDestination = errors.New("destination is required")
	ErrSameDir       = errors.New("destination must differ from base")
	ErrNoPassName    = errors.New("pass without a name")
)

type Config struct {
	// Source is a doublestar glob selecting the input feature files.
	Source string `mapstructure:"source" yaml:"source"`
	// Base is stripped from input paths before they are placed under
	// Destination.
	Base        string       `mapstructure:"base" yaml:"base"`
	Destination string       `mapstructure:"destination" yaml:"destination"`
	Clean       bool         `mapstructure:"clean" yaml:"clean"`
	Record      bool         `mapstructure:"record" yaml:"record"`
	Format      FormatConfig `mapstructure:"format" yaml:"format"`
	Passes      []PassConfig `mapstructure:"passes" yaml:"passes"`
}

type FormatConfig struct {
	Indent int `mapstructure:"indent" yaml:"indent"`
}

type PassConfig struct {
	Name    string         `mapstructure:"name" yaml:"name"`
	Options map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

func Default() *Config {
	return &Config{
		Source:      "features/**/*.feature",
		Base:        "features",
		Destination: "dist",
		Format:      FormatConfig{Indent: 2},
		Passes: []PassConfig{
			{Name: "filter", Options: map[string]any{"expression": "not @wip"}},
			{Name: "macro"},
			{Name: "scenario-outline-expander"},
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("source", d.Source)
	v.SetDefault("base", d.Base)
	v.SetDefault("destination", d.Destination)
	v.SetDefault("clean", d.Clean)
	v.SetDefault("record", d.Record)
	v.SetDefault("format.indent", d.Format.Indent)
}

// Load reads the config at path, or FileName in the working directory when
// path is empty. A missing default file is not an error. Environment
// variables prefixed GPC_ override file values, e.g. GPC_FORMAT_INDENT.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GPC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if file := v.ConfigFileUsed(); file != "" && v.InConfig("passes") {
		passes, err := readPasses(file)
		if err != nil {
			return nil, err
		}
		cfg.Passes = passes
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readPasses decodes the passes section straight from the YAML file. Viper
// lowercases map keys, which would break case-sensitive pass options such as
// replacer placeholders.
func readPasses(file string) ([]PassConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var raw struct {
		Passes []PassConfig `yaml:"passes"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding passes: %w", err)
	}
	return raw.Passes, nil
}

func (c *Config) Validate() error {
	if c.Source == "" {
		return ErrNoSource
	}
	if c.Destination == "" {
		return ErrNoDestination
	}
	if filepath.Clean(c.Destination) == filepath.Clean(c.Base) {
		return fmt.Errorf("%s: %w", c.Destination, ErrSameDir)
	}
	for i, p := range c.Passes {
		if p.Name == "" {
			return fmt.Errorf("passes[%d]: %w", i, ErrNoPassName)
		}
	}
	return nil
}

// Write stores c as YAML at path.
func Write(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
