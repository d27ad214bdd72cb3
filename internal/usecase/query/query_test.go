package query

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/aalvaropc/skein/internal/domain"
)

func TestApply_NoExpressions(t *testing.T) {
	if res := Apply(map[string]any{"a": 1}, nil); len(res) != 0 {
		t.Fatalf("expected no results, got %v", res)
	}
}

func TestApply_CombinedFromEvaluation(t *testing.T) {
	ev := domain.Evaluate(domain.SeedEntries())

	res := Apply(ev, []string{"$.result.combined", "$.result.total_strands"})
	if Failed(res) != 0 {
		t.Fatalf("expected all queries to succeed, got %+v", res)
	}

	combined, err := strconv.ParseFloat(res[0].Value, 64)
	if err != nil {
		t.Fatalf("expected a number, got %q", res[0].Value)
	}
	if math.Abs(combined-202.41) > 0.01 {
		t.Fatalf("expected ~202.41, got %v", combined)
	}
	if res[1].Value != "3" {
		t.Fatalf("expected 3 strands, got %q", res[1].Value)
	}
}

func TestApply_WildcardReturnsArray(t *testing.T) {
	ev := domain.Evaluate(domain.SeedEntries())

	res := Apply(ev, []string{"$.entries[*].mass"})
	if !res[0].OK {
		t.Fatalf("expected success, got %+v", res[0])
	}
	if res[0].Value != `["100","25"]` {
		t.Fatalf("unexpected value %q", res[0].Value)
	}
}

func TestApply_MissingResultOnInvalidForm(t *testing.T) {
	ev := domain.Evaluate([]domain.YarnEntry{{ID: 1, Mass: "0", Length: "1", Strands: "1"}})

	res := Apply(ev, []string{"$.result.combined", "$.errors[\"1\"].mass"})
	if res[0].OK {
		t.Fatalf("expected failure for missing result, got %+v", res[0])
	}
	if !res[1].OK || res[1].Value != domain.MsgMassNotPositive {
		t.Fatalf("expected mass error message, got %+v", res[1])
	}
	if Failed(res) != 1 {
		t.Fatalf("expected 1 failure, got %d", Failed(res))
	}
}

func TestApply_BadExpressions(t *testing.T) {
	res := Apply(map[string]any{"a": 1}, []string{"  ", "$.[", "$.missing"})
	for _, r := range res {
		if r.OK {
			t.Fatalf("expected failure, got %+v", r)
		}
	}
	if !strings.Contains(res[0].Message, "empty") {
		t.Fatalf("expected empty-expression message, got %q", res[0].Message)
	}
}

func TestApply_UnencodableValue(t *testing.T) {
	res := Apply(math.Inf(1), []string{"$"})
	if res[0].OK || !strings.Contains(res[0].Message, "JSON") {
		t.Fatalf("expected encoding failure, got %+v", res[0])
	}
}
