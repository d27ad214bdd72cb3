package domain

import "math"

// ReferenceMass is the mass (grams) yardage figures are normalized to.
const ReferenceMass = 100.0

// EntryFigure is the per-row breakdown of a computed result.
type EntryFigure struct {
	ID              int     `json:"id"`
	MeteragePer100g float64 `json:"meterage_per_100g"`
	Strands         int     `json:"strands"`
}

// Result is the combined yardage of a fully valid form.
type Result struct {
	// Combined is the meterage per 100 g of all strands held together.
	Combined      float64       `json:"combined"`
	ReciprocalSum float64       `json:"-"`
	TotalStrands  int           `json:"total_strands"`
	ZeroLength    bool          `json:"zero_length"`
	PerEntry      []EntryFigure `json:"per_entry"`
}

// Evaluation is the derived state of a form: its rows, their errors and,
// when every row is valid, the combined result.
type Evaluation struct {
	Entries []YarnEntry      `json:"entries"`
	Errors  ValidationErrors `json:"errors,omitempty"`
	Result  *Result          `json:"result"`
}

// Valid reports whether every row passed validation.
func (ev Evaluation) Valid() bool { return len(ev.Errors) == 0 }

// Evaluate validates the rows and, only if all pass, computes the result.
func Evaluate(entries []YarnEntry) Evaluation {
	rows := make([]YarnEntry, len(entries))
	copy(rows, entries)

	ev := Evaluation{Entries: rows, Errors: Validate(rows)}
	if !ev.Valid() {
		return ev
	}

	res := Compute(rows)
	ev.Result = &res
	return ev
}

// Compute sums 1/meterage for every strand and inverts the sum, like
// resistors in parallel. Rows must already be valid. A strand with zero
// length makes the sum +Inf, so the combined figure is 0.
func Compute(entries []YarnEntry) Result {
	res := Result{PerEntry: make([]EntryFigure, 0, len(entries))}

	sum := 0.0
	for _, e := range entries {
		mass, _ := parseDecimal(e.Mass)
		length, _ := parseDecimal(e.Length)
		strands, _ := parseInteger(e.Strands)

		m := meteragePerStrand(mass, length)
		if m == 0 {
			res.ZeroLength = true
		}
		sum += float64(strands) * reciprocal(m)

		res.TotalStrands += strands
		res.PerEntry = append(res.PerEntry, EntryFigure{ID: e.ID, MeteragePer100g: m, Strands: strands})
	}

	res.ReciprocalSum = sum
	switch {
	case math.IsInf(sum, 1):
		res.Combined = 0
	case sum > 0:
		res.Combined = 1 / sum
	}
	// Keep figures JSON-encodable even when 1/sum overflows.
	if math.IsInf(res.Combined, 0) {
		res.Combined = math.MaxFloat64
	}
	return res
}

func meteragePerStrand(mass, length float64) float64 {
	return (length / mass) * ReferenceMass
}

func reciprocal(v float64) float64 {
	if v == 0 {
		return math.Inf(1)
	}
	return 1 / v
}
