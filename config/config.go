// Package config holds simulator configuration: the result-bus count, the
// three function-unit class sizes, and the fetch rate, loadable from and
// savable to JSON the way timing/latency.TimingConfig is loaded and saved,
// but carrying five positive integers instead of a per-opcode latency table,
// since this simulator has no variable-latency execution to tabulate.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// SimulatorConfig holds the five positive integers that size a simulation
// run.
type SimulatorConfig struct {
	// R is the result-bus count: how many instructions can complete State
	// Update in a single cycle. Default 8.
	R uint64 `json:"r"`

	// K0, K1, K2 are the function-unit counts for classes 0, 1, 2.
	// Defaults 1, 2, 3.
	K0 uint64 `json:"k0"`
	K1 uint64 `json:"k1"`
	K2 uint64 `json:"k2"`

	// F is the fetch rate per cycle. Default 4.
	F uint64 `json:"f"`
}

// DefaultConfig returns the standard defaults: R=8, K0=1, K1=2, K2=3, F=4.
func DefaultConfig() *SimulatorConfig {
	return &SimulatorConfig{
		R:  8,
		K0: 1,
		K1: 2,
		K2: 3,
		F:  4,
	}
}

// RSSize returns the derived reservation-station capacity, 2*(k0+k1+k2).
func (c *SimulatorConfig) RSSize() uint64 {
	return 2 * (c.K0 + c.K1 + c.K2)
}

// LoadConfig reads a SimulatorConfig from a JSON file, starting from
// DefaultConfig so a partial file only overrides the fields it sets.
func LoadConfig(path string) (*SimulatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulator config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse simulator config: %w", err)
	}

	return cfg, nil
}

// Save writes c to path as indented JSON.
func (c *SimulatorConfig) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize simulator config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write simulator config file: %w", err)
	}

	return nil
}

// Validate rejects any of R, K0, K1, K2, F being zero. An invalid
// configuration is rejected by the caller before setup; the core assumes
// positive values throughout.
func (c *SimulatorConfig) Validate() error {
	if c.R == 0 {
		return fmt.Errorf("r must be > 0")
	}
	if c.K0 == 0 {
		return fmt.Errorf("k0 must be > 0")
	}
	if c.K1 == 0 {
		return fmt.Errorf("k1 must be > 0")
	}
	if c.K2 == 0 {
		return fmt.Errorf("k2 must be > 0")
	}
	if c.F == 0 {
		return fmt.Errorf("f must be > 0")
	}
	return nil
}

// Clone returns a deep copy of c (SimulatorConfig has no reference fields,
// so this is just a value copy through a new pointer).
func (c *SimulatorConfig) Clone() *SimulatorConfig {
	clone := *c
	return &clone
}
