package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/kmelnick/genbench/internal/engine"
	"github.com/kmelnick/genbench/internal/model"
	"github.com/kmelnick/genbench/internal/output"
	"github.com/kmelnick/genbench/internal/stats"
)

func init() {
	// Keep benchmark progress logging out of test output.
	output.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeInvoker scripts outcomes per call, counting every invocation
// (warmup included).
type fakeInvoker struct {
	calls      int
	lastMethod string
	lastRead   bool
	outcome    func(call int) model.Outcome
}

func (f *fakeInvoker) Invoke(_ context.Context, method string, _ []any, read bool) model.Outcome {
	f.calls++
	f.lastMethod = method
	f.lastRead = read
	if f.outcome == nil {
		return model.Outcome{}
	}
	return f.outcome(f.calls)
}

func readSpec(iterations, warmup int) model.RunSpec {
	return model.RunSpec{
		Method:     "getStorage",
		Read:       true,
		Iterations: iterations,
		Warmup:     warmup,
	}
}

func TestRunBenchmarkSampleCount(t *testing.T) {
	inv := &fakeInvoker{}
	runner := engine.NewRunner(inv)

	run, err := runner.RunBenchmark(context.Background(), readSpec(5, 2))
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}

	if inv.calls != 7 {
		t.Errorf("invocations = %d, want 7 (2 warmup + 5 measured)", inv.calls)
	}
	if len(run.Samples) != 5 {
		t.Fatalf("samples = %d, want 5", len(run.Samples))
	}
	for i, s := range run.Samples {
		if s.Index != i {
			t.Errorf("sample %d has index %d", i, s.Index)
		}
		if !s.Read || s.Method != "getStorage" {
			t.Errorf("sample %d lost spec fields: read=%v method=%q", i, s.Read, s.Method)
		}
	}
	if !inv.lastRead || inv.lastMethod != "getStorage" {
		t.Errorf("adapter saw read=%v method=%q", inv.lastRead, inv.lastMethod)
	}
}

func TestRunBenchmarkWarmupDiscarded(t *testing.T) {
	// Warmup calls fail, measured calls succeed; warmup must leave no
	// trace in the samples or the statistics.
	inv := &fakeInvoker{outcome: func(call int) model.Outcome {
		if call <= 3 {
			return model.Outcome{Err: errors.New("cold cache")}
		}
		return model.Outcome{}
	}}
	runner := engine.NewRunner(inv)

	run, err := runner.RunBenchmark(context.Background(), readSpec(4, 3))
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}

	s := stats.Summarize(run.Samples)
	if s.Total != 4 || s.Failed != 0 {
		t.Errorf("summary total/failed = %d/%d, want 4/0", s.Total, s.Failed)
	}
}

func TestRunBenchmarkFailuresDoNotAbort(t *testing.T) {
	inv := &fakeInvoker{outcome: func(call int) model.Outcome {
		if call%2 == 0 {
			return model.Outcome{Err: errors.New("rpc timeout")}
		}
		return model.Outcome{}
	}}
	runner := engine.NewRunner(inv)

	run, err := runner.RunBenchmark(context.Background(), readSpec(6, 0))
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}

	if len(run.Samples) != 6 {
		t.Fatalf("samples = %d, want 6 despite failures", len(run.Samples))
	}

	failed := 0
	for _, s := range run.Samples {
		if s.Succeeded && s.Error != "" {
			t.Errorf("sample %d succeeded but carries error %q", s.Index, s.Error)
		}
		if !s.Succeeded {
			failed++
			if s.Error == "" {
				t.Errorf("failed sample %d has empty error", s.Index)
			}
		}
	}
	if failed != 3 {
		t.Errorf("failed samples = %d, want 3", failed)
	}
}

func TestRunBenchmarkPreconditions(t *testing.T) {
	cases := []struct {
		name string
		spec model.RunSpec
	}{
		{"zero iterations", model.RunSpec{Method: "getStorage", Read: true, Iterations: 0}},
		{"negative warmup", model.RunSpec{Method: "getStorage", Read: true, Iterations: 1, Warmup: -1}},
		{"empty method", model.RunSpec{Read: true, Iterations: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &fakeInvoker{}
			runner := engine.NewRunner(inv)

			if _, err := runner.RunBenchmark(context.Background(), tc.spec); err == nil {
				t.Fatal("expected error")
			}
			if inv.calls != 0 {
				t.Errorf("adapter was invoked %d times before precondition failure", inv.calls)
			}
		})
	}
}

func TestRunBenchmarkCapturesWriteOutcome(t *testing.T) {
	gas := uint64(21_500)
	block := uint64(8_412_003)
	inv := &fakeInvoker{outcome: func(int) model.Outcome {
		return model.Outcome{GasUsed: &gas, TxHash: "0xdeadbeef", BlockNumber: &block}
	}}
	runner := engine.NewRunner(inv)

	spec := model.RunSpec{Method: "updateStorage", Iterations: 2, Warmup: 0}
	run, err := runner.RunBenchmark(context.Background(), spec)
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}

	for _, s := range run.Samples {
		if s.GasUsed == nil || *s.GasUsed != gas {
			t.Errorf("sample %d gas = %v, want %d", s.Index, s.GasUsed, gas)
		}
		if s.TxHash != "0xdeadbeef" {
			t.Errorf("sample %d tx hash = %q", s.Index, s.TxHash)
		}
		if s.BlockNumber == nil || *s.BlockNumber != block {
			t.Errorf("sample %d block = %v, want %d", s.Index, s.BlockNumber, block)
		}
	}

	s := stats.Summarize(run.Samples)
	if s.Gas == nil || s.Gas.Min != gas || s.Gas.Max != gas {
		t.Errorf("gas summary = %+v, want min=max=%d", s.Gas, gas)
	}
}
