/*
PURPOSE:
  Renders a human-readable summary block for one completed benchmark.

REQUIREMENTS:
  User-specified:
  - A readable per-run report on stdout: counts, latency distribution,
    gas usage, throughput.

  Implementation-discovered:
  - Undefined statistics (no samples, no gas, no successes) print as
    "n/a" instead of misleading zeros.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/stats.Summary

ERROR HANDLING:
  - N/A (best-effort writes to the given writer).

IMPLEMENTATION RULES:
  - Pure formatting; no side effects beyond the writer.

USAGE:
  output.PrintSummary(os.Stdout, "getStorage", summary)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/stats/stats.go

MAINTENANCE:
  - Keep field layout in sync with Summary.
*/

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/kmelnick/genbench/internal/stats"
)

// PrintSummary writes a formatted result block for one benchmark run.
func PrintSummary(w io.Writer, method string, s stats.Summary) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "BENCHMARK RESULTS: %s\n", method)
	fmt.Fprintf(w, "%s\n\n", rule)

	fmt.Fprintf(w, "Execution Summary:\n")
	fmt.Fprintf(w, "  Total Runs:      %d\n", s.Total)
	fmt.Fprintf(w, "  Successful:      %d\n", s.Successful)
	fmt.Fprintf(w, "  Failed:          %d\n", s.Failed)
	fmt.Fprintf(w, "  Success Rate:    %.2f%%\n\n", s.SuccessRate*100)

	if s.Latency == nil {
		fmt.Fprintf(w, "Execution Time:    n/a (no samples)\n\n")
		return
	}

	fmt.Fprintf(w, "Execution Time (ms):\n")
	fmt.Fprintf(w, "  Mean:            %.2f\n", s.Latency.MeanMs)
	fmt.Fprintf(w, "  Median:          %.2f\n", s.Latency.MedianMs)
	fmt.Fprintf(w, "  Min:             %.2f\n", s.Latency.MinMs)
	fmt.Fprintf(w, "  Max:             %.2f\n", s.Latency.MaxMs)
	fmt.Fprintf(w, "  Std Dev:         %.2f\n", s.Latency.StdDevMs)
	fmt.Fprintf(w, "  95th percentile: %.2f\n", s.Latency.P95Ms)
	fmt.Fprintf(w, "  99th percentile: %.2f\n\n", s.Latency.P99Ms)

	if s.Gas != nil {
		fmt.Fprintf(w, "Gas Usage:\n")
		fmt.Fprintf(w, "  Mean:            %.0f\n", s.Gas.Mean)
		fmt.Fprintf(w, "  Median:          %.0f\n", s.Gas.Median)
		fmt.Fprintf(w, "  Min:             %d\n", s.Gas.Min)
		fmt.Fprintf(w, "  Max:             %d\n\n", s.Gas.Max)
	} else {
		fmt.Fprintf(w, "Gas Usage:         n/a (no gas-reporting samples)\n\n")
	}

	if s.ThroughputTPS != nil {
		fmt.Fprintf(w, "Throughput:\n")
		fmt.Fprintf(w, "  TPS:             %.2f\n\n", *s.ThroughputTPS)
	}
}
