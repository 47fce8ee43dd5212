/*
PURPOSE:
  Writes benchmark samples to a CSV file, one row per invocation.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Output to CSV, timestamped filename benchmark_results_<ts>.csv.

  Implementation-discovered:
  - Optional fields (gas, block number) serialize as empty cells, not
    zeros, so spreadsheet aggregation stays honest.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Sample

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Use Mutex if concurrent writes are expected.

USAGE:
  w, err := output.NewCSVWriter(path)
  w.Write(sample)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when Sample struct changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/kmelnick/genbench/internal/model"
)

// ResultFileName builds the timestamped export filename,
// benchmark_results_<YYYYMMDD_HHMMSS>.<ext>.
func ResultFileName(ext string, t time.Time) string {
	return fmt.Sprintf("benchmark_results_%s.%s", t.Format("20060102_150405"), ext)
}

// CSVWriter handles writing samples to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"index", "timestamp", "method", "duration_ms",
		"gas_used", "succeeded", "error", "read",
		"tx_hash", "block_number",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single sample to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(s model.Sample) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	gas := ""
	if s.GasUsed != nil {
		gas = strconv.FormatUint(*s.GasUsed, 10)
	}
	block := ""
	if s.BlockNumber != nil {
		block = strconv.FormatUint(*s.BlockNumber, 10)
	}

	record := []string{
		strconv.Itoa(s.Index),
		s.Timestamp.Format(time.RFC3339Nano),
		s.Method,
		fmt.Sprintf("%.4f", s.DurationMs()),
		gas,
		strconv.FormatBool(s.Succeeded),
		s.Error,
		strconv.FormatBool(s.Read),
		s.TxHash,
		block,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
