/*
PURPOSE:
  Computes summary statistics over a completed sequence of invocation
  samples: latency distribution, gas usage, success rate, throughput.

REQUIREMENTS:
  User-specified:
  - min/max/mean/median/stddev/P95/P99 for latency, min/max/mean/median
    for gas, success rate, TPS.

  Implementation-discovered:
  - Percentile conventions vary; the rank rule must be pinned down so
    results are reproducible. This package uses nearest-rank:
    P_k = sorted[ceil(k/100 * n) - 1], 0-indexed, latencies ascending.
  - Standard deviation is the population formula (divide by n).
  - Median is the midpoint of the two central values for even n.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (after a run), internal/output (export)
  - Consumes: []model.Sample

ERROR HANDLING:
  - Never fails. An empty input yields Summary{Total: 0} with nil
    Latency/Gas/Throughput; callers check Total before interpreting.

IMPLEMENTATION RULES:
  - Summarize is a pure function of its input. No caching, no state.
  - Latency stats cover every sample, failed ones included (a failure
    still took time). Gas stats cover only samples that reported gas.

USAGE:
  summary := stats.Summarize(run.Samples)

SELF-HEALING INSTRUCTIONS:
  - If percentile expectations shift, check the rank rule first.

RELATED FILES:
  - internal/model/types.go
  - internal/output/print.go - renders a Summary.

MAINTENANCE:
  - Update when new per-sample metrics need aggregating.
*/

package stats

import (
	"math"
	"sort"

	"github.com/kmelnick/genbench/internal/model"
)

// LatencySummary holds latency statistics in milliseconds.
type LatencySummary struct {
	MinMs    float64 `json:"min_ms"`
	MaxMs    float64 `json:"max_ms"`
	MeanMs   float64 `json:"mean_ms"`
	MedianMs float64 `json:"median_ms"`
	StdDevMs float64 `json:"stdev_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

// GasSummary holds gas statistics over the samples that reported gas.
type GasSummary struct {
	Min    uint64  `json:"min"`
	Max    uint64  `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Summary is the aggregate view of one sample sequence. Latency, Gas and
// ThroughputTPS are nil when undefined (no samples, no gas samples, or no
// successful call respectively) rather than zero.
type Summary struct {
	Total       int             `json:"total_executions"`
	Successful  int             `json:"successful_executions"`
	Failed      int             `json:"failed_executions"`
	SuccessRate float64         `json:"success_rate"`
	Latency     *LatencySummary `json:"execution_time,omitempty"`
	Gas         *GasSummary     `json:"gas_usage,omitempty"`

	// ThroughputTPS approximates achievable calls per second under
	// sequential execution: 1000 / mean latency in ms.
	ThroughputTPS *float64 `json:"throughput_tps,omitempty"`
}

// Summarize computes a Summary from the sample sequence. It is
// deterministic and does not modify its input.
func Summarize(samples []model.Sample) Summary {
	s := Summary{Total: len(samples)}
	if s.Total == 0 {
		return s
	}

	latencies := make([]float64, 0, len(samples))
	var gas []float64
	var gasMin, gasMax uint64

	for _, sample := range samples {
		latencies = append(latencies, sample.DurationMs())

		if sample.Succeeded {
			s.Successful++
		}

		if sample.GasUsed == nil {
			continue
		}

		g := *sample.GasUsed
		if len(gas) == 0 || g < gasMin {
			gasMin = g
		}
		if len(gas) == 0 || g > gasMax {
			gasMax = g
		}
		gas = append(gas, float64(g))
	}

	s.Failed = s.Total - s.Successful
	s.SuccessRate = float64(s.Successful) / float64(s.Total)

	sort.Float64s(latencies)
	s.Latency = &LatencySummary{
		MinMs:    latencies[0],
		MaxMs:    latencies[len(latencies)-1],
		MeanMs:   mean(latencies),
		MedianMs: median(latencies),
		StdDevMs: stddev(latencies),
		P95Ms:    percentile(latencies, 95),
		P99Ms:    percentile(latencies, 99),
	}

	if len(gas) > 0 {
		sort.Float64s(gas)
		s.Gas = &GasSummary{
			Min:    gasMin,
			Max:    gasMax,
			Mean:   mean(gas),
			Median: median(gas),
		}
	}

	if s.Successful > 0 && s.Latency.MeanMs > 0 {
		tps := 1000 / s.Latency.MeanMs
		s.ThroughputTPS = &tps
	}

	return s
}

func mean(sorted []float64) float64 {
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

// median interpolates the midpoint of the two central values for even n.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stddev is the population standard deviation (divide by n).
// A single sample has no spread, so n == 1 yields 0.
func stddev(sorted []float64) float64 {
	m := mean(sorted)
	var sum float64
	for _, v := range sorted {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(sorted)))
}

// percentile applies the nearest-rank rule on an ascending-sorted slice:
// the value at index ceil(p/100 * n) - 1.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	idx := int(math.Ceil(p/100*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}
