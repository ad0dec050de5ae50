package scalarfl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EngineConfig holds the two behaviors original_source exposed as compile
// time flags (TE_NAT_LOG and TE_POW_FROM_RIGHT) as runtime, YAML-loadable
// settings instead.
type EngineConfig struct {
	// NaturalLog switches the "log" builtin from base-10 (the default) to
	// natural log, per spec.md §4.1.
	NaturalLog bool `yaml:"naturalLog"`

	// PowRightAssociative switches "^" from left- (the default) to
	// right-associative, per spec.md §4.3.
	PowRightAssociative bool `yaml:"powRightAssociative"`
}

// DefaultConfig mirrors original_source's defaults: base-10 log,
// left-associative "^".
func DefaultConfig() EngineConfig {
	return EngineConfig{}
}

// LoadConfig reads an EngineConfig from a YAML file. A missing file is not
// an error: it returns DefaultConfig() so callers can wire this straight
// into a flag default without a separate existence check.
func LoadConfig(path string) (EngineConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading engine config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing engine config %q: %w", path, err)
	}
	return cfg, nil
}
