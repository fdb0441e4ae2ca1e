package robot

import (
	"encoding/json"
	"fmt"
	"os"
)

const DefaultConfigFile = "biped.json"

// Backend names accepted in the config file.
const (
	BackendFeetech = "feetech"
	BackendSim     = "sim"
)

// Config holds the robot configuration
type Config struct {
	Port    string         `json:"port,omitempty"`
	Backend string         `json:"backend,omitempty"`
	IDs     [NumJoints]int `json:"ids"`
	Trims   Trims          `json:"trims"`

	path string
	// file holds the values read from disk while an override is active.
	file *Config
}

// DefaultConfig returns a simulator config with servo IDs 1..4 and zero trims.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendSim,
		IDs:     [NumJoints]int{1, 2, 3, 4},
		path:    DefaultConfigFile,
	}
}

// IsConfigured returns true if a hardware port has been recorded
func (c *Config) IsConfigured() bool {
	return c.Backend == BackendSim || c.Port != ""
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
// BIPED_PORT and BIPED_BACKEND override the file contents.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.path = path
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Override(os.Getenv("BIPED_PORT"), os.Getenv("BIPED_BACKEND"))
}

// Override replaces the port and backend for this run only. Empty values
// leave the field alone. Saving trims keeps the values from the file.
func (c *Config) Override(port, backend string) {
	if port == "" && backend == "" {
		return
	}
	if c.file == nil {
		f := *c
		c.file = &f
	}
	if port != "" {
		c.Port = port
	}
	if backend != "" {
		c.Backend = backend
	}
}

// Path returns the file the config was loaded from or will be saved to.
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultConfigFile
	}
	return c.path
}

// SetPath changes the file Save writes to.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Save saves configuration to the file it was loaded from
func (c *Config) Save() error {
	return c.SaveTo(c.Path())
}

// SaveTo saves configuration to a specific file. The current values,
// overrides included, become the file values.
func (c *Config) SaveTo(path string) error {
	if err := writeConfig(path, c); err != nil {
		return err
	}
	c.path = path
	c.file = nil
	return nil
}

// SaveTrims records t and writes it to the config file in one update.
// Port and backend overrides are not written.
func (c *Config) SaveTrims(t Trims) error {
	c.Trims = t
	out := c
	if c.file != nil {
		c.file.Trims = t
		out = c.file
	}
	return writeConfig(c.Path(), out)
}

func writeConfig(path string, c *Config) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}

// ConfigStore is a TrimStore backed by the trims array of a Config.
// Writes are persisted to the config file immediately.
type ConfigStore struct {
	Config *Config
}

var _ TrimsWriter = ConfigStore{}

// ReadTrim returns the trim recorded in the config.
func (s ConfigStore) ReadTrim(addr int) (int8, error) {
	if err := checkAddr(addr); err != nil {
		return 0, err
	}
	return s.Config.Trims[addr], nil
}

// WriteTrim records the trim and saves the config file.
func (s ConfigStore) WriteTrim(addr int, trim int8) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	t := s.Config.Trims
	t[addr] = trim
	return s.Config.SaveTrims(t)
}

// WriteTrims records all trims and saves the config file once.
func (s ConfigStore) WriteTrims(t Trims) error {
	return s.Config.SaveTrims(t)
}
