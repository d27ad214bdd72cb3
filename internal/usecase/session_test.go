package usecase

import (
	"math"
	"testing"

	"github.com/aalvaropc/skein/internal/domain"
)

func TestNewSession_EvaluatesSeedRows(t *testing.T) {
	s := NewSession()

	ev := s.Evaluation()
	if ev.Result == nil {
		t.Fatalf("expected a result for the seed rows, errors=%v", ev.Errors)
	}
	if math.Abs(ev.Result.Combined-202.41) > 0.01 {
		t.Fatalf("expected ~202.41, got %v", ev.Result.Combined)
	}
	if s.TotalStrandCount() != 3 {
		t.Fatalf("expected 3 strands, got %d", s.TotalStrandCount())
	}
}

func TestSession_RecomputesAfterEveryMutation(t *testing.T) {
	s := NewSession()

	// New row has an empty length: the whole form becomes invalid.
	id := s.Add()
	if s.Evaluation().Result != nil {
		t.Fatalf("expected result cleared after adding an incomplete row")
	}
	if !s.Evaluation().Errors.Has(id, domain.FieldLength) {
		t.Fatalf("expected length error on new row %d", id)
	}

	s.Update(id, domain.FieldLength, "400")
	ev := s.Evaluation()
	if ev.Result == nil {
		t.Fatalf("expected result restored, errors=%v", ev.Errors)
	}
	if ev.Result.TotalStrands != 4 {
		t.Fatalf("expected 4 strands, got %d", ev.Result.TotalStrands)
	}

	before := ev.Result.Combined
	if !s.Remove(id) {
		t.Fatalf("expected removal")
	}
	after := s.Evaluation().Result.Combined
	if after <= before {
		t.Fatalf("expected fewer strands to raise the yardage: before=%v after=%v", before, after)
	}
}

func TestSession_TransientInputClearsResult(t *testing.T) {
	s := NewSession()

	s.Update(1, domain.FieldMass, "-")
	if s.Evaluation().Result != nil {
		t.Fatalf("expected no result while typing a lone minus sign")
	}
	e, _ := s.Entry(1)
	if e.Mass != "-" {
		t.Fatalf("expected raw text stored, got %q", e.Mass)
	}
}

func TestSession_RemoveLastRowIsNoop(t *testing.T) {
	s := NewSession(WithEntries([]domain.YarnEntry{{ID: 1, Mass: "100", Length: "700", Strands: "1"}}))

	if s.Remove(1) {
		t.Fatalf("expected no-op removal")
	}
	if s.Len() != 1 {
		t.Fatalf("expected one row, got %d", s.Len())
	}
	if s.Evaluation().Result == nil {
		t.Fatalf("expected result to survive")
	}
}

func TestSession_UnknownIDUpdateIsNoop(t *testing.T) {
	s := NewSession()
	before := s.Evaluation()

	if s.Update(99, domain.FieldMass, "1") {
		t.Fatalf("expected no-op")
	}
	if s.Evaluation().Result.Combined != before.Result.Combined {
		t.Fatalf("expected unchanged result")
	}
}

func TestSession_UsesDefaults(t *testing.T) {
	s := NewSession(WithDefaults(domain.EntryDefaults{Mass: "50", Length: "100", Strands: "1"}))
	id := s.Add()

	e, ok := s.Entry(id)
	if !ok || e.Mass != "50" || e.Length != "100" {
		t.Fatalf("expected configured defaults, got %+v", e)
	}
	if s.Evaluation().Result == nil {
		t.Fatalf("expected valid form with complete defaults")
	}
}

func TestSession_ManualRecalculateIsStable(t *testing.T) {
	s := NewSession()
	a := s.Recalculate()
	b := s.Recalculate()
	if a.Result.Combined != b.Result.Combined {
		t.Fatalf("expected identical results")
	}
}
