package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const fileName = "jjdemo.toml"

// Environment overrides, also read from a .env file in the working directory
const (
	EnvBinary      = "JJDEMO_JJ_BIN"
	EnvMaxAttempts = "JJDEMO_MAX_ATTEMPTS"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const longDescription = `bak version 1

This is an initial implementation, nothing fancy.
It reads single file from the args list and backs it up.

More fun stuff to come.`

type Config struct {
	JJ       JJConfig       `toml:"jj"`
	Identity IdentityConfig `toml:"identity"`
	Setup    SetupConfig    `toml:"setup"`
	Scenario ScenarioConfig `toml:"scenario"`
	Messages MessagesConfig `toml:"messages"`
}

type JJConfig struct {
	Binary     string `toml:"binary"`
	MinVersion string `toml:"min_version"`
}

type IdentityConfig struct {
	Email string `toml:"email"`
	Name  string `toml:"name"`
}

type SetupConfig struct {
	// UserPaginateNever runs "jj config set --user ui.paginate never"
	UserPaginateNever bool `toml:"user_paginate_never"`
	// ExtraCommands are jj argument strings run after the identity is set
	ExtraCommands []string `toml:"extra_commands"`
}

type ScenarioConfig struct {
	FileName      string `toml:"file_name"`
	FirstVersion  string `toml:"first_version"`
	SecondVersion string `toml:"second_version"`
	ScratchRoot   string `toml:"scratch_root"`
	ScratchPrefix string `toml:"scratch_prefix"`
	MaxAttempts   int    `toml:"max_attempts"`
	KeepAll       bool   `toml:"keep_all"`
}

type MessagesConfig struct {
	First  string `toml:"first"`
	Long   string `toml:"long"`
	Second string `toml:"second"`
}

func DefaultConfig() *Config {
	return &Config{
		JJ: JJConfig{
			Binary:     "jj",
			MinVersion: "0.15.0",
		},
		Identity: IdentityConfig{
			Email: "codelab@example.com",
			Name:  "Code Lab",
		},
		Setup: SetupConfig{
			UserPaginateNever: true,
		},
		Scenario: ScenarioConfig{
			FileName:      "bak.py",
			ScratchPrefix: "jjdemo-",
		},
		Messages: MessagesConfig{
			First:  "bak version 1",
			Long:   longDescription,
			Second: "it's important to comment our code",
		},
	}
}

// Path returns the default config file location
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, fileName), nil
}

// Load reads the config at path, or at Path() when path is empty.
// A missing file yields the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return finish(DefaultConfig())
		}
		path = p
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return finish(DefaultConfig())
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides values from the environment
func (c *Config) ApplyEnv() error {
	if bin := os.Getenv(EnvBinary); bin != "" {
		c.JJ.Binary = bin
	}
	if v := os.Getenv(EnvMaxAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvMaxAttempts, v, err)
		}
		c.Scenario.MaxAttempts = n
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.JJ.Binary == "":
		return fmt.Errorf("%w: jj.binary is empty", ErrInvalidConfig)
	case c.Scenario.FileName == "" || filepath.Base(c.Scenario.FileName) != c.Scenario.FileName:
		return fmt.Errorf("%w: scenario.file_name %q must be a plain file name", ErrInvalidConfig, c.Scenario.FileName)
	case c.Scenario.MaxAttempts < 0:
		return fmt.Errorf("%w: scenario.max_attempts must not be negative", ErrInvalidConfig)
	case c.Messages.First == "" || c.Messages.Second == "":
		return fmt.Errorf("%w: messages.first and messages.second are required", ErrInvalidConfig)
	}
	return nil
}

// Save writes the config to path, or to Path() when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// ScratchRoot returns the directory scratch repositories are created in;
// empty means the system temp dir.
func (c *Config) ScratchRoot() (string, error) {
	if c.Scenario.ScratchRoot == "" {
		return "", nil
	}
	return homedir.Expand(c.Scenario.ScratchRoot)
}

// ReadVersions returns the custom file contents configured for the scenario.
// Empty results mean the built-in contents should be used.
func (c *Config) ReadVersions() (first, second []byte, err error) {
	read := func(p string) ([]byte, error) {
		if p == "" {
			return nil, nil
		}
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(expanded)
	}

	if first, err = read(c.Scenario.FirstVersion); err != nil {
		return nil, nil, err
	}
	if second, err = read(c.Scenario.SecondVersion); err != nil {
		return nil, nil, err
	}
	return first, second, nil
}
