/*
PURPOSE:
  Defines the configuration structure and loading logic for genbench.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of RPC endpoint, chain id, contract address,
    signing key, output locations, and the benchmarks to run.
  - A signing key is required only for write benchmarks; its absence
    must never block read-only benchmarking.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Per-benchmark iteration/warmup defaults (100 / 5) must apply when
    the yaml omits them, while an explicit warmup of 0 stays 0.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Validate surfaces every precondition failure before any RPC work.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should be sensible (Asimov testnet, 60s timeout).

USAGE:
  cfg, err := config.Load("genbench.yaml")
  if err := cfg.Validate(); err != nil { ... }

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update
    DefaultConfig().

RELATED FILES:
  - internal/cli/run.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kmelnick/genbench/internal/model"
)

const (
	// Asimov testnet defaults.
	DefaultRPCURL  = "http://34.32.169.58:9151"
	DefaultChainID = 4221

	DefaultIterations = 100
	DefaultWarmup     = 5
)

// Duration wraps time.Duration so yaml accepts "60s" style values
// (yaml.v3 has no native duration support).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Benchmark configures a single benchmark run. Iterations and Warmup
// are pointers so "omitted" and "explicit zero" are distinguishable;
// omitted values take the package defaults.
type Benchmark struct {
	Method     string `yaml:"method"`
	Args       []any  `yaml:"args"`
	Read       bool   `yaml:"read"`
	Iterations *int   `yaml:"iterations"`
	Warmup     *int   `yaml:"warmup"`
}

// Spec resolves the benchmark into a RunSpec with defaults applied.
func (b Benchmark) Spec() model.RunSpec {
	spec := model.RunSpec{
		Method:     b.Method,
		Args:       b.Args,
		Read:       b.Read,
		Iterations: DefaultIterations,
		Warmup:     DefaultWarmup,
	}
	if b.Iterations != nil {
		spec.Iterations = *b.Iterations
	}
	if b.Warmup != nil {
		spec.Warmup = *b.Warmup
	}
	return spec
}

// Config represents the full configuration for genbench.
type Config struct {
	RPCURL          string      `yaml:"rpc_url"`
	ChainID         int64       `yaml:"chain_id"`
	ContractAddress string      `yaml:"contract_address"`
	PrivateKey      string      `yaml:"private_key"`
	RequestTimeout  Duration    `yaml:"request_timeout"`
	OutputDir       string      `yaml:"output_dir"`
	ChartsDir       string      `yaml:"charts_dir"`
	Benchmarks      []Benchmark `yaml:"benchmarks"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RPCURL:         DefaultRPCURL,
		ChainID:        DefaultChainID,
		RequestTimeout: Duration(60 * time.Second),
		OutputDir:      ".",
		ChartsDir:      "benchmark_charts",
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		// Search for defaults
		defaults := []string{"genbench.yaml", "genbench.yml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			// No config file found, return default
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every precondition that must hold before any RPC
// work starts. It reports the first violation found.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("rpc_url is required")
	}
	if c.ContractAddress == "" {
		return fmt.Errorf("contract_address is required")
	}
	if len(c.Benchmarks) == 0 {
		return fmt.Errorf("no benchmarks configured")
	}

	for i, b := range c.Benchmarks {
		spec := b.Spec()
		if spec.Method == "" {
			return fmt.Errorf("benchmark %d: method is required", i)
		}
		if spec.Iterations < 1 {
			return fmt.Errorf("benchmark %d (%s): iterations must be >= 1, got %d", i, spec.Method, spec.Iterations)
		}
		if spec.Warmup < 0 {
			return fmt.Errorf("benchmark %d (%s): warmup must be >= 0, got %d", i, spec.Method, spec.Warmup)
		}
		if !spec.Read && c.PrivateKey == "" {
			return fmt.Errorf("benchmark %d (%s): write benchmarks require private_key", i, spec.Method)
		}
	}

	return nil
}
