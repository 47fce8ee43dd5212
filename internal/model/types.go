/*
PURPOSE:
  Defines the core data structures used throughout genbench.
  These models represent individual invocation samples and benchmark runs.

REQUIREMENTS:
  User-specified:
  - Record duration, gas used, success/failure per contract invocation.
  - Track method name, call arguments, iteration counts per run.

  Implementation-discovered:
  - Need JSON tags for the JSON export format.
  - Gas/tx fields must be optional: read calls never carry them, failed
    writes may not.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/stats, internal/output
  - Dependencies: none (pure data)

ERROR HANDLING:
  - N/A (data only). Error is carried as a string so a sample serializes.

IMPLEMENTATION RULES:
  - A Sample is immutable once recorded.
  - A Run is mutated only by the driver, and only during its own run.

USAGE:
  s := model.Sample{Index: 0, Method: "getStorage", Succeeded: true}

SELF-HEALING INSTRUCTIONS:
  - When adding fields, update the CSV header in internal/output/csv.go.

RELATED FILES:
  - internal/output/csv.go - column mapping for Sample.
  - internal/stats/stats.go - aggregation over []Sample.

MAINTENANCE:
  - Update when the adapter starts reporting new per-call metrics.
*/

package model

import (
	"time"
)

// Sample is one measured contract invocation.
type Sample struct {
	// Index is the 0-based position among measured (non-warmup) calls,
	// in call order.
	Index     int           `json:"index"`
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Duration  time.Duration `json:"duration_ns"`

	// GasUsed is present only for write calls that succeeded and
	// reported gas. Read calls never consume gas.
	GasUsed   *uint64 `json:"gas_used,omitempty"`
	Succeeded bool    `json:"succeeded"`
	Error     string  `json:"error,omitempty"` // set iff Succeeded is false
	Read      bool    `json:"read"`

	TxHash      string  `json:"tx_hash,omitempty"`
	BlockNumber *uint64 `json:"block_number,omitempty"`
}

// DurationMs returns the sample latency in milliseconds.
func (s Sample) DurationMs() float64 {
	return float64(s.Duration) / float64(time.Millisecond)
}

// RunSpec describes one benchmark to execute.
type RunSpec struct {
	Method     string `json:"method"`
	Args       []any  `json:"args,omitempty"`
	Read       bool   `json:"read"`
	Iterations int    `json:"iterations"`
	Warmup     int    `json:"warmup"`
}

// Run is the unit of a single benchmark execution: the RunSpec it ran under
// plus one Sample per measured iteration, in call order.
//
// The driver owns and mutates Samples while the run is in flight; once
// RunBenchmark returns, the Run is immutable and safe to share with the
// aggregator and exporters.
type Run struct {
	Spec       RunSpec   `json:"spec"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Samples    []Sample  `json:"samples"`
}

// Outcome is what the invocation adapter reports for a single call.
// The driver resolves it into a Sample at point of capture.
type Outcome struct {
	GasUsed     *uint64
	TxHash      string
	BlockNumber *uint64
	Err         error
}
