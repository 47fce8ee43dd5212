/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the configured benchmark suite.

REQUIREMENTS:
  User-specified:
  - Run the benchmarks.
  - Specific flags for overrides, including a one-off benchmark built
    entirely from flags (--method).

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.
  - --method replaces the configured benchmark list with a single
    flag-built entry; --iterations/--warmup/--args/--read only make
    sense alongside it.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails, validation fails, or the
    engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  genbench run --contract 0xabc... --method getStorage --read

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/kmelnick/genbench/internal/config"
	"github.com/kmelnick/genbench/internal/engine"
)

var (
	rpcURLOverride    string
	chainIDOverride   int64
	contractOverride  string
	keyOverride       string
	outputDirOverride string
	chartsDirOverride string

	methodFlag     string
	argsFlag       []string
	readFlag       bool
	iterationsFlag int
	warmupFlag     int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark suite",
	Long: `Executes the configured benchmarks against an intelligent contract.
Each benchmark runs a warmup phase (discarded) followed by the measured
phase: strictly sequential timed invocations, one sample per iteration,
failures recorded rather than aborting the run.

Results are saved to timestamped CSV and JSON files, and three charts
(latency distribution, latency trend, gas distribution) are rendered
under the charts directory.`,
	Example: `  # Run the benchmarks listed in genbench.yaml
  genbench run

  # One-off read benchmark built from flags
  genbench run --contract 0xbc88...5717 --method getStorage --read --iterations 50

  # Write benchmark (requires private_key in config or --private-key)
  genbench run --contract 0xbc88...5717 --method updateStorage --args hello --iterations 20

  # Point results somewhere else
  genbench run -o ./results --charts-dir ./results/charts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		if rpcURLOverride != "" {
			cfg.RPCURL = rpcURLOverride
		}
		if chainIDOverride != 0 {
			cfg.ChainID = chainIDOverride
		}
		if contractOverride != "" {
			cfg.ContractAddress = contractOverride
		}
		if keyOverride != "" {
			cfg.PrivateKey = keyOverride
		}
		if outputDirOverride != "" {
			cfg.OutputDir = outputDirOverride
		}
		if chartsDirOverride != "" {
			cfg.ChartsDir = chartsDirOverride
		}

		if methodFlag != "" {
			b := config.Benchmark{Method: methodFlag, Read: readFlag}
			for _, a := range argsFlag {
				b.Args = append(b.Args, a)
			}
			if cmd.Flags().Changed("iterations") {
				b.Iterations = &iterationsFlag
			}
			if cmd.Flags().Changed("warmup") {
				b.Warmup = &warmupFlag
			}
			cfg.Benchmarks = []config.Benchmark{b}
		}

		// 3. Execution
		return engine.Run(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&rpcURLOverride, "rpc-url", "", "GenLayer RPC endpoint (overrides config)")
	runCmd.Flags().Int64Var(&chainIDOverride, "chain-id", 0, "Chain id (overrides config)")
	runCmd.Flags().StringVar(&contractOverride, "contract", "", "Contract address to benchmark (overrides config)")
	runCmd.Flags().StringVar(&keyOverride, "private-key", "", "Signing key for write benchmarks (overrides config)")
	runCmd.Flags().StringVarP(&outputDirOverride, "output-dir", "o", "", "Output directory for CSV/JSON results")
	runCmd.Flags().StringVar(&chartsDirOverride, "charts-dir", "", "Directory for rendered charts")

	runCmd.Flags().StringVar(&methodFlag, "method", "", "Run a single benchmark of this contract method (replaces configured benchmarks)")
	runCmd.Flags().StringSliceVar(&argsFlag, "args", nil, "Comma-separated call arguments for --method")
	runCmd.Flags().BoolVar(&readFlag, "read", false, "Treat --method as a read-only call")
	runCmd.Flags().IntVar(&iterationsFlag, "iterations", config.DefaultIterations, "Measured iterations for --method")
	runCmd.Flags().IntVar(&warmupFlag, "warmup", config.DefaultWarmup, "Warmup calls for --method")
}
