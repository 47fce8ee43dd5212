/*
PURPOSE:
  High-level runner that orchestrates the benchmarking process.
  Drives warmup and measured invocation loops and hands completed runs
  to the exporters.

REQUIREMENTS:
  User-specified:
  - Warmup calls are discarded entirely; measured calls are recorded
    one sample per iteration, failures included.
  - Log results to CSV/JSON and generate charts.

  Implementation-discovered:
  - A failed invocation must not abort the run; resilience over
    strict-fail, so one flaky call costs one failed sample.
  - Needs to report progress to the CLI (every 10 iterations).

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine (Client, Recorder), internal/stats,
    internal/output

ERROR HANDLING:
  - Configuration/precondition failures abort before any invocation.
  - Per-invocation failures are captured as data and the loop continues.

IMPLEMENTATION RULES:
  - Strictly sequential: one invocation at a time, each completes before
    the next begins. No concurrent issuance.
  - The sample slice is exclusively owned by the driver during a run
    and read-only afterwards.

USAGE:
  engine.Run(cfg)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/client.go
  - internal/engine/recorder.go

MAINTENANCE:
  - Update iteration logic if parallelism is ever introduced (it is
    intentionally absent: concurrent issuance would contaminate
    per-call latency).
*/

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kmelnick/genbench/internal/config"
	"github.com/kmelnick/genbench/internal/model"
	"github.com/kmelnick/genbench/internal/output"
	"github.com/kmelnick/genbench/internal/stats"
)

// progressEvery controls how often the measured loop logs progress.
const progressEvery = 10

// Invoker performs one contract invocation. Implemented by Client;
// tests substitute fakes.
type Invoker interface {
	Invoke(ctx context.Context, method string, args []any, read bool) model.Outcome
}

// Runner drives benchmark runs against a single invoker.
type Runner struct {
	invoker Invoker
}

// NewRunner creates a Runner.
func NewRunner(inv Invoker) *Runner {
	return &Runner{invoker: inv}
}

// RunBenchmark executes one benchmark: warmup calls (discarded), then
// exactly spec.Iterations sequential measured calls. It returns the
// fully populated run only after every iteration has completed;
// individual invocation failures are recorded, not propagated.
func (r *Runner) RunBenchmark(ctx context.Context, spec model.RunSpec) (*model.Run, error) {
	if spec.Method == "" {
		return nil, fmt.Errorf("method name is required")
	}
	if spec.Iterations < 1 {
		return nil, fmt.Errorf("iterations must be >= 1, got %d", spec.Iterations)
	}
	if spec.Warmup < 0 {
		return nil, fmt.Errorf("warmup must be >= 0, got %d", spec.Warmup)
	}

	output.Logger.Info("Starting benchmark",
		"method", spec.Method,
		"iterations", spec.Iterations,
		"warmup", spec.Warmup,
		"read", spec.Read,
	)

	run := &model.Run{Spec: spec, StartedAt: time.Now()}

	// Warmup phase: prime caches and connections. Results are discarded
	// entirely and never reach the recorder or the statistics.
	for i := 0; i < spec.Warmup; i++ {
		out := r.invoker.Invoke(ctx, spec.Method, spec.Args, spec.Read)
		if out.Err != nil {
			output.Logger.Debug("Warmup call failed", "method", spec.Method, "attempt", i+1, "error", out.Err)
		}
	}
	if spec.Warmup > 0 {
		output.Logger.Info("Warmup complete", "method", spec.Method, "calls", spec.Warmup)
	}

	rec := NewRecorder(spec.Iterations)

	for i := 0; i < spec.Iterations; i++ {
		start := time.Now()
		out := r.invoker.Invoke(ctx, spec.Method, spec.Args, spec.Read)
		elapsed := time.Since(start)

		sample := resolveSample(i, start, elapsed, spec, out)

		if !spec.Read && sample.Succeeded && sample.GasUsed == nil {
			// Degraded condition, not an error: the node accepted the
			// write but the receipt carried no gas figure.
			output.Logger.Warn("Successful write reported no gas", "method", spec.Method, "iteration", i)
		}

		if err := rec.Record(sample); err != nil {
			return nil, fmt.Errorf("record sample: %w", err)
		}

		if (i+1)%progressEvery == 0 {
			output.Logger.Info("Progress", "method", spec.Method, "completed", i+1, "total", spec.Iterations)
		}
	}

	run.Samples = rec.Samples()
	run.FinishedAt = time.Now()

	return run, nil
}

// resolveSample folds an adapter outcome into a fixed-shape sample at
// the point of capture, rather than leaving the variant to be inferred
// downstream.
func resolveSample(index int, start time.Time, elapsed time.Duration, spec model.RunSpec, out model.Outcome) model.Sample {
	s := model.Sample{
		Index:     index,
		Timestamp: start,
		Method:    spec.Method,
		Duration:  elapsed,
		Read:      spec.Read,
		Succeeded: out.Err == nil,
	}

	if out.Err != nil {
		s.Error = out.Err.Error()
		return s
	}

	s.GasUsed = out.GasUsed
	s.TxHash = out.TxHash
	s.BlockNumber = out.BlockNumber
	return s
}

// Run executes the full benchmark suite described by cfg: validates the
// configuration, runs every benchmark sequentially, prints per-run
// summaries, and exports samples, summaries and charts.
func Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := NewClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	// Ensure output directory exists
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	runner := NewRunner(client)
	ctx := context.Background()

	var runs []*model.Run
	for _, b := range cfg.Benchmarks {
		run, err := runner.RunBenchmark(ctx, b.Spec())
		if err != nil {
			return err
		}
		runs = append(runs, run)

		summary := stats.Summarize(run.Samples)
		output.PrintSummary(os.Stdout, run.Spec.Method, summary)
	}

	return export(cfg, runs)
}

// export writes the CSV, JSON and chart artifacts for the completed
// runs. An empty total sample set skips every artifact with a warning.
func export(cfg *config.Config, runs []*model.Run) error {
	var all []model.Sample
	for _, run := range runs {
		all = append(all, run.Samples...)
	}

	if len(all) == 0 {
		output.Logger.Warn("No samples collected; skipping export")
		return nil
	}

	now := time.Now()

	csvPath := filepath.Join(cfg.OutputDir, output.ResultFileName("csv", now))
	csvWriter, err := output.NewCSVWriter(csvPath)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	for _, s := range all {
		if err := csvWriter.Write(s); err != nil {
			csvWriter.Close()
			return fmt.Errorf("failed to write sample to CSV: %w", err)
		}
	}
	if err := csvWriter.Close(); err != nil {
		return err
	}
	output.Logger.Info("Results exported", "path", csvPath)

	report := output.Report{GeneratedAt: now}
	for _, run := range runs {
		report.Runs = append(report.Runs, output.RunReport{
			Spec:    run.Spec,
			Summary: stats.Summarize(run.Samples),
			Samples: run.Samples,
		})
	}

	jsonPath := filepath.Join(cfg.OutputDir, output.ResultFileName("json", now))
	if err := output.WriteJSON(jsonPath, report); err != nil {
		return err
	}
	output.Logger.Info("Results exported", "path", jsonPath)

	if err := output.GenerateCharts(cfg.ChartsDir, all); err != nil {
		return err
	}

	return nil
}
