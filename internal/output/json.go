/*
PURPOSE:
  Writes the structured JSON export: every run's spec, summary
  statistics, and full sample sequence in one document.

REQUIREMENTS:
  User-specified:
  - JSON output carrying both raw samples and the computed summaries.

  Implementation-discovered:
  - One indented document per suite execution beats NDJSON here: the
    summaries reference whole runs, not individual samples.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Run, internal/stats.Summary

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json with indentation for human inspection.

USAGE:
  err := output.WriteJSON(path, report)

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go
  - internal/stats/stats.go

MAINTENANCE:
  - Update Report when runs gain new derived data.
*/

package output

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kmelnick/genbench/internal/model"
	"github.com/kmelnick/genbench/internal/stats"
)

// RunReport pairs a completed run with its summary statistics.
type RunReport struct {
	Spec    model.RunSpec  `json:"spec"`
	Summary stats.Summary  `json:"summary"`
	Samples []model.Sample `json:"samples"`
}

// Report is the top-level JSON export document.
type Report struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Runs        []RunReport `json:"runs"`
}

// WriteJSON writes the report to path, overwriting any existing file.
func WriteJSON(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	if err := enc.Encode(r); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
