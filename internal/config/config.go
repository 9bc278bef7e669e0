// Package config loads the settings of the mylang command line tool from an
// optional YAML file.
//
// Lookup order: an explicit path (the --config flag), then $MYLANG_CONFIG,
// then ~/.mylang.yaml. Only the default location may be missing; an explicit
// path that does not exist is an error. Fields omitted from the file keep
// their defaults, and unknown fields are rejected.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/idan-at/mylang"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "MYLANG_CONFIG"

// DefaultFileName is looked up in the user's home directory.
const DefaultFileName = ".mylang.yaml"

// Config holds CLI and REPL settings.
type Config struct {
	// Prompt is shown before each REPL line.
	Prompt string `yaml:"prompt"`
	// ContinuationPrompt is shown while an unfinished expression is being
	// read.
	ContinuationPrompt string `yaml:"continuationPrompt"`
	// EchoPrefix precedes each value the REPL echoes.
	EchoPrefix string `yaml:"echoPrefix"`
	// HistoryFile stores REPL history; empty disables history. A leading
	// "~/" is expanded.
	HistoryFile string `yaml:"historyFile"`
	// Color enables colored diagnostics.
	Color bool `yaml:"color"`
	// MaxCallDepth bounds nested calls before a stack overflow error. It
	// must lie in 1..mylang.MaxCallDepthLimit.
	MaxCallDepth int `yaml:"maxCallDepth"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prompt:             "> ",
		ContinuationPrompt: ". ",
		EchoPrefix:         "; ",
		HistoryFile:        "~/.mylang_history",
		Color:              true,
		MaxCallDepth:       mylang.DefaultMaxCallDepth,
	}
}

// Load resolves the config file location and reads it over the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if p := os.Getenv(EnvVar); p != "" {
			path, explicit = p, true
		}
	}
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, DefaultFileName)
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes YAML from r over the defaults and validates the result. An
// empty document yields the defaults.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if c.Prompt == "" {
		errs = multierror.Append(errs, errors.New("prompt must not be empty"))
	}
	if c.ContinuationPrompt == "" {
		errs = multierror.Append(errs, errors.New("continuationPrompt must not be empty"))
	}
	switch {
	case c.MaxCallDepth < 1:
		errs = multierror.Append(errs, fmt.Errorf("maxCallDepth must be positive, got %d", c.MaxCallDepth))
	case c.MaxCallDepth > mylang.MaxCallDepthLimit:
		errs = multierror.Append(errs, fmt.Errorf("maxCallDepth must be at most %d, got %d", mylang.MaxCallDepthLimit, c.MaxCallDepth))
	}
	return errs.ErrorOrNil()
}

// HistoryPath returns HistoryFile with a leading "~/" expanded, or "" when
// history is disabled or the home directory is unknown.
func (c *Config) HistoryPath() string {
	p := c.HistoryFile
	if len(p) >= 2 && p[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, p[2:])
	}
	return p
}
