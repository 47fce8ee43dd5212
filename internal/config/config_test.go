package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kmelnick/genbench/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genbench.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
rpc_url: http://localhost:9151
contract_address: "0x1111111111111111111111111111111111111111"
request_timeout: 10s
benchmarks:
  - method: getStorage
    read: true
    iterations: 25
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RPCURL != "http://localhost:9151" {
		t.Errorf("RPCURL = %q", cfg.RPCURL)
	}
	if cfg.ChainID != config.DefaultChainID {
		t.Errorf("ChainID = %d, want default %d", cfg.ChainID, config.DefaultChainID)
	}
	if cfg.RequestTimeout != config.Duration(10*time.Second) {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.ChartsDir != "benchmark_charts" {
		t.Errorf("ChartsDir = %q, want default", cfg.ChartsDir)
	}

	if len(cfg.Benchmarks) != 1 {
		t.Fatalf("benchmarks = %d, want 1", len(cfg.Benchmarks))
	}
	spec := cfg.Benchmarks[0].Spec()
	if spec.Iterations != 25 {
		t.Errorf("Iterations = %d, want 25", spec.Iterations)
	}
	if spec.Warmup != config.DefaultWarmup {
		t.Errorf("Warmup = %d, want default %d", spec.Warmup, config.DefaultWarmup)
	}
}

func TestBenchmarkSpecDefaults(t *testing.T) {
	zero := 0
	cases := []struct {
		name       string
		b          config.Benchmark
		iterations int
		warmup     int
	}{
		{"all omitted", config.Benchmark{Method: "m"}, config.DefaultIterations, config.DefaultWarmup},
		{"explicit zero warmup", config.Benchmark{Method: "m", Warmup: &zero}, config.DefaultIterations, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := tc.b.Spec()
			if spec.Iterations != tc.iterations {
				t.Errorf("Iterations = %d, want %d", spec.Iterations, tc.iterations)
			}
			if spec.Warmup != tc.warmup {
				t.Errorf("Warmup = %d, want %d", spec.Warmup, tc.warmup)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	zero := 0
	negative := -2

	valid := func() *config.Config {
		cfg := config.DefaultConfig()
		cfg.ContractAddress = "0x1111111111111111111111111111111111111111"
		cfg.Benchmarks = []config.Benchmark{{Method: "getStorage", Read: true}}
		return cfg
	}

	t.Run("valid read-only without key", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
	})

	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			"missing contract",
			func(c *config.Config) { c.ContractAddress = "" },
			"contract_address",
		},
		{
			"no benchmarks",
			func(c *config.Config) { c.Benchmarks = nil },
			"no benchmarks",
		},
		{
			"empty method",
			func(c *config.Config) { c.Benchmarks[0].Method = "" },
			"method",
		},
		{
			"zero iterations",
			func(c *config.Config) { c.Benchmarks[0].Iterations = &zero },
			"iterations",
		},
		{
			"negative warmup",
			func(c *config.Config) { c.Benchmarks[0].Warmup = &negative },
			"warmup",
		},
		{
			"write without key",
			func(c *config.Config) { c.Benchmarks[0].Read = false },
			"private_key",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}

	t.Run("write with key", func(t *testing.T) {
		cfg := valid()
		cfg.Benchmarks[0].Read = false
		cfg.PrivateKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
	})
}
