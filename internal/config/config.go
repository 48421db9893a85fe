package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/andyballingall/fmtcommit/internal/fs"
)

const (
	// ConfigFile is looked up at the repository root when no explicit path is given.
	ConfigFile = ".fmtcommit.yml"
	// ConfigEnvVar names an explicit config file, overridden by --config.
	ConfigEnvVar = "FMTCOMMIT_CONFIG"
)

const (
	DefaultFormatterCommand = "cargo"
	DefaultVCSCommand       = "git"
)

// DefaultFormatterArgs puts the default formatter into its format-in-place mode.
var DefaultFormatterArgs = []string{"fmt"}

// FormatterConfig names the external formatter and the arguments that select
// its default format-in-place mode.
type FormatterConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

type VCSConfig struct {
	Command string `yaml:"command"`
}

type CommitConfig struct {
	StageAll *bool `yaml:"stageAll"`
	Signoff  bool  `yaml:"signoff"`
	NoVerify bool  `yaml:"noVerify"`
}

type Config struct {
	Formatter FormatterConfig `yaml:"formatter"`
	VCS       VCSConfig       `yaml:"vcs"`
	Commit    CommitConfig    `yaml:"commit"`
	Path      string          `yaml:"-"` // empty when built-in defaults are in use.
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// ShouldStageAll reports whether every working tree change is staged before committing.
func (c *Config) ShouldStageAll() bool {
	return c.Commit.StageAll == nil || *c.Commit.StageAll
}

// FormatterCommandLine returns the formatter program followed by its arguments.
func (c *Config) FormatterCommandLine() []string {
	return append([]string{c.Formatter.Command}, c.Formatter.Args...)
}

func (c *Config) applyDefaults() {
	// Args belong to the command they were written for, so a missing command
	// replaces both.
	if c.Formatter.Command == "" {
		c.Formatter.Command = DefaultFormatterCommand
		c.Formatter.Args = append([]string(nil), DefaultFormatterArgs...)
	}
	if c.VCS.Command == "" {
		c.VCS.Command = DefaultVCSCommand
	}
	if c.Commit.StageAll == nil {
		stageAll := true
		c.Commit.StageAll = &stageAll
	}
}

// Load reads, validates and defaults the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &MissingConfigError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c.Path = path
	return c, nil
}

// Parse validates YAML config content against the config schema and decodes it.
// Empty content yields the defaults.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}
	if doc == nil {
		return Default(), nil
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}
	c.applyDefaults()
	return &c, nil
}

// Resolve finds the config for a run. An explicit path (flag, then
// FMTCOMMIT_CONFIG) must exist. Otherwise .fmtcommit.yml in repoRoot is used
// when present, and the defaults when it is not.
func Resolve(explicitPath string, env fs.EnvProvider, repoRoot string) (*Config, error) {
	if explicitPath == "" && env != nil {
		explicitPath = env.Get(ConfigEnvVar)
	}
	if explicitPath != "" {
		return Load(explicitPath)
	}

	path := filepath.Join(repoRoot, ConfigFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}
