package engine_test

import (
	"testing"

	"github.com/kmelnick/genbench/internal/engine"
	"github.com/kmelnick/genbench/internal/model"
)

func TestRecorderAppendsInOrder(t *testing.T) {
	rec := engine.NewRecorder(3)

	for i := 0; i < 3; i++ {
		if err := rec.Record(model.Sample{Index: i}); err != nil {
			t.Fatalf("Record(%d) failed: %v", i, err)
		}
	}

	if rec.Len() != 3 {
		t.Fatalf("Len = %d, want 3", rec.Len())
	}
	for i, s := range rec.Samples() {
		if s.Index != i {
			t.Errorf("sample %d has index %d", i, s.Index)
		}
	}
}

func TestRecorderRejectsOutOfOrder(t *testing.T) {
	rec := engine.NewRecorder(2)

	if err := rec.Record(model.Sample{Index: 1}); err == nil {
		t.Fatal("expected error for index 1 on empty recorder")
	}
	if err := rec.Record(model.Sample{Index: 0}); err != nil {
		t.Fatalf("Record(0) failed: %v", err)
	}
	if err := rec.Record(model.Sample{Index: 0}); err == nil {
		t.Fatal("expected error for duplicate index 0")
	}
	if err := rec.Record(model.Sample{Index: 2}); err == nil {
		t.Fatal("expected error for skipped index")
	}

	if rec.Len() != 1 {
		t.Errorf("Len = %d after rejections, want 1", rec.Len())
	}
}
