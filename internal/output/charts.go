/*
PURPOSE:
  Renders the benchmark charts: latency distribution histogram, latency
  trend over the measured sequence, and gas usage histogram.

REQUIREMENTS:
  User-specified:
  - Three PNG charts under a fixed charts directory, derived purely
    from the recorded samples.

  Implementation-discovered:
  - The gas histogram only makes sense when at least one sample carries
    gas; it is skipped otherwise, as is everything on an empty set.
  - A line series needs two points to render; a one-sample trend chart
    is skipped.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Sample
  - Dependencies: github.com/wcharczuk/go-chart/v2

ERROR HANDLING:
  - Returns error on directory creation or render failure; skipped
    charts are not errors.

IMPLEMENTATION RULES:
  - Histograms bucket values into at most 30 equal-width bins.
  - Charts never mutate the sample sequence.

USAGE:
  err := output.GenerateCharts("benchmark_charts", samples)

SELF-HEALING INSTRUCTIONS:
  - If rendering fails with font errors, go-chart's embedded Roboto
    failed to load; check the go-chart version.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Keep bin count in sync with what the analysis docs describe.
*/

package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/kmelnick/genbench/internal/model"
)

const histogramBins = 30

// GenerateCharts renders all charts for the sample sequence into dir.
// An empty sequence produces no charts and no error.
func GenerateCharts(dir string, samples []model.Sample) error {
	if len(samples) == 0 {
		Logger.Warn("No samples to visualize; skipping charts")
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create charts directory %s: %w", dir, err)
	}

	latencies := make([]float64, len(samples))
	for i, s := range samples {
		latencies[i] = s.DurationMs()
	}

	path := filepath.Join(dir, "latency_distribution.png")
	if err := renderHistogram(path, "Execution Time Distribution", "ms", latencies); err != nil {
		return err
	}
	Logger.Info("Chart saved", "path", path)

	if len(samples) >= 2 {
		path = filepath.Join(dir, "latency_trend.png")
		if err := renderTrend(path, latencies); err != nil {
			return err
		}
		Logger.Info("Chart saved", "path", path)
	}

	var gas []float64
	for _, s := range samples {
		if s.GasUsed != nil {
			gas = append(gas, float64(*s.GasUsed))
		}
	}
	if len(gas) > 0 {
		path = filepath.Join(dir, "gas_distribution.png")
		if err := renderHistogram(path, "Gas Usage Distribution", "gas", gas); err != nil {
			return err
		}
		Logger.Info("Chart saved", "path", path)
	}

	return nil
}

// renderHistogram buckets values into equal-width bins and renders a
// bar chart.
func renderHistogram(path, title, unit string, values []float64) error {
	bars := binValues(values, unit)

	// 30 bars at 24px + 8px spacing fit the 1024px canvas; the default
	// bar spacing would overflow it and fail the render.
	graph := chart.BarChart{
		Title:      title,
		Height:     512,
		Width:      1024,
		BarWidth:   24,
		BarSpacing: 8,
		Bars:       bars,
	}

	return renderPNG(path, graph.Render)
}

func renderTrend(path string, latencies []float64) error {
	xs := make([]float64, len(latencies))
	for i := range latencies {
		xs[i] = float64(i)
	}

	graph := chart.Chart{
		Title:  "Execution Time Over Test Duration",
		Height: 512,
		Width:  1024,
		XAxis:  chart.XAxis{Name: "Execution Number"},
		YAxis:  chart.YAxis{Name: "Execution Time (ms)"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: latencies,
			},
		},
	}

	return renderPNG(path, graph.Render)
}

// binValues distributes values into at most histogramBins equal-width
// buckets. A flat distribution (min == max) collapses into one bucket.
func binValues(values []float64, unit string) []chart.Value {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	bins := histogramBins
	if len(values) < bins {
		bins = len(values)
	}
	if hi == lo || bins < 1 {
		return []chart.Value{{
			Value: float64(len(values)),
			Label: fmt.Sprintf("%.1f %s", lo, unit),
		}}
	}

	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	bars := make([]chart.Value, bins)
	for i, c := range counts {
		bars[i] = chart.Value{
			Value: float64(c),
			Label: fmt.Sprintf("%.1f", lo+float64(i)*width),
		}
	}
	return bars
}

func renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}

	return f.Close()
}
