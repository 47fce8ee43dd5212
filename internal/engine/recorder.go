/*
PURPOSE:
  Append-only accumulator for measured invocation samples.
  Guards the insertion-order invariant the aggregator relies on.

REQUIREMENTS:
  User-specified:
  - One record per invocation, in call order.

  Implementation-discovered:
  - An out-of-order index is a driver bug, not a recoverable condition;
    it is rejected rather than silently re-indexed.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.Sample

ERROR HANDLING:
  - Record returns an error when the sample index does not equal the
    current length.

IMPLEMENTATION RULES:
  - Append-only. No removal, no mutation of recorded samples.
  - Not safe for concurrent use; the driver is the only writer.

USAGE:
  rec := engine.NewRecorder(iterations)
  err := rec.Record(sample)

SELF-HEALING INSTRUCTIONS:
  - An ordering error means the driver's index bookkeeping drifted;
    check the measured loop in runner.go.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - None expected.
*/

package engine

import (
	"fmt"

	"github.com/kmelnick/genbench/internal/model"
)

// Recorder accumulates samples in call order.
type Recorder struct {
	samples []model.Sample
}

// NewRecorder creates a Recorder with capacity for the expected number
// of samples.
func NewRecorder(capacity int) *Recorder {
	if capacity < 0 {
		capacity = 0
	}
	return &Recorder{samples: make([]model.Sample, 0, capacity)}
}

// Record appends a sample. The sample's Index must equal the number of
// samples recorded so far.
func (r *Recorder) Record(s model.Sample) error {
	if s.Index != len(r.samples) {
		return fmt.Errorf("sample index %d out of order, expected %d", s.Index, len(r.samples))
	}
	r.samples = append(r.samples, s)
	return nil
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int {
	return len(r.samples)
}

// Samples returns the recorded sequence.
func (r *Recorder) Samples() []model.Sample {
	return r.samples
}
