// Copyright 2026 The Wavefold Authors
// SPDX-License-Identifier: Apache-2.0

package hybrid

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wavefold/wavefold/lib/backend"
	"github.com/wavefold/wavefold/lib/fold"
	"github.com/wavefold/wavefold/lib/wavelet"
)

// ErrConfig reports an unusable encoder configuration, such as an
// unsupported family in the candidate set.
var ErrConfig = errors.New("hybrid: invalid configuration")

// Config carries every tunable of the encode pipeline. Behavior is
// fully determined by the explicit Config passed into each call —
// there is no package-level mutable state, so repeated encodes of the
// same signal are reproducible byte for byte.
type Config struct {
	// Families is the candidate set, in tie-break order: when two
	// families produce equally small artifacts, the earlier one wins.
	Families []wavelet.Family `yaml:"-"`

	// FamilyNames is the YAML-facing spelling of Families ("db4",
	// "sym8", "coif5", "bior4.4").
	FamilyNames []string `yaml:"families,omitempty"`

	// MinFoldLength is the shortest approximation band eligible for
	// antipodal folding.
	MinFoldLength int `yaml:"min_fold_length"`

	// OverheadBits is the fixed metadata cost the MDL gate charges
	// against the modeled folding gain.
	OverheadBits float64 `yaml:"overhead_bits"`

	// Backend selects the byte compressor. Zero means automatic:
	// the preferred available backend.
	Backend backend.Tag `yaml:"-"`

	// BackendName is the YAML-facing spelling of Backend ("zstd",
	// "gzip", "lz4", or empty for automatic).
	BackendName string `yaml:"backend,omitempty"`
}

// DefaultConfig returns the standard configuration: all four families
// in tie-break order, the default fold gate, automatic backend.
func DefaultConfig() Config {
	return Config{
		Families:      wavelet.DefaultFamilies(),
		MinFoldLength: fold.DefaultMinLength,
		OverheadBits:  fold.DefaultOverheadBits,
	}
}

// LoadConfig reads a YAML configuration file, applying defaults for
// absent fields. The file is the single source of truth: no
// environment variables are consulted.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if len(cfg.FamilyNames) > 0 {
		cfg.Families = cfg.Families[:0]
		for _, name := range cfg.FamilyNames {
			f, err := wavelet.ParseFamily(name)
			if err != nil {
				return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
			}
			cfg.Families = append(cfg.Families, f)
		}
	}
	if cfg.BackendName != "" {
		tag, err := backend.ParseTag(cfg.BackendName)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		cfg.Backend = tag
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Families) == 0 {
		return fmt.Errorf("%w: empty family set", ErrConfig)
	}
	seen := make(map[wavelet.Family]bool, len(c.Families))
	for _, f := range c.Families {
		if !f.Valid() {
			return fmt.Errorf("%w: unsupported family %d", ErrConfig, uint8(f))
		}
		if seen[f] {
			return fmt.Errorf("%w: duplicate family %s", ErrConfig, f)
		}
		seen[f] = true
	}
	if c.MinFoldLength < 0 {
		return fmt.Errorf("%w: negative min_fold_length", ErrConfig)
	}
	if c.Backend != 0 && !backend.Available(c.Backend) {
		return fmt.Errorf("%w: backend %s unavailable", ErrConfig, c.Backend)
	}
	return nil
}

// gate returns the fold routing gate for this configuration.
func (c *Config) gate() fold.Gate {
	return fold.Gate{MinLength: c.MinFoldLength, OverheadBits: c.OverheadBits}
}

// backendTag resolves the configured backend, falling back to the
// preferred available one.
func (c *Config) backendTag() (backend.Tag, error) {
	if c.Backend != 0 {
		if !backend.Available(c.Backend) {
			return backend.Default()
		}
		return c.Backend, nil
	}
	return backend.Default()
}
