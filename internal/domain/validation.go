package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Field validation messages.
const (
	MsgMassNotPositive = "mass must be greater than 0"
	MsgLengthNegative  = "length cannot be negative"
	MsgStrandsTooFew   = "at least 1 strand required"
)

// FieldError is a validation failure scoped to one row and one field.
type FieldError struct {
	EntryID int
	Field   Field
	Message string
}

func (e *FieldError) Error() string {
	return "yarn " + strconv.Itoa(e.EntryID) + ": " + string(e.Field) + ": " + e.Message
}

// FieldErrors holds at most one message per field of a row.
type FieldErrors map[Field]string

// ValidationErrors maps an entry id to its field errors. Valid rows are absent.
type ValidationErrors map[int]FieldErrors

// Has reports whether the given row/field has an error.
func (v ValidationErrors) Has(id int, f Field) bool {
	_, ok := v[id][f]
	return ok
}

// Message returns the error message for a row/field, or "".
func (v ValidationErrors) Message(id int, f Field) string {
	return v[id][f]
}

// List flattens the map into FieldErrors sorted by id then field order.
func (v ValidationErrors) List() []*FieldError {
	ids := make([]int, 0, len(v))
	for id := range v {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []*FieldError
	for _, id := range ids {
		for _, f := range Fields {
			if msg, ok := v[id][f]; ok {
				out = append(out, &FieldError{EntryID: id, Field: f, Message: msg})
			}
		}
	}
	return out
}

// ValidateEntry checks each field of a row independently.
func ValidateEntry(e YarnEntry) FieldErrors {
	errs := FieldErrors{}

	mass, massOK := parseDecimal(e.Mass)
	if !massOK || mass <= 0 {
		errs[FieldMass] = MsgMassNotPositive
	}
	length, lengthOK := parseDecimal(e.Length)
	if !lengthOK || length < 0 {
		errs[FieldLength] = MsgLengthNegative
	}
	// A mass so small that length/mass overflows has no usable meterage.
	if _, bad := errs[FieldMass]; !bad && lengthOK && length >= 0 {
		if m := meteragePerStrand(mass, length); math.IsInf(m, 0) || math.IsNaN(m) {
			errs[FieldMass] = MsgMassNotPositive
		}
	}
	if n, ok := parseInteger(e.Strands); !ok || n < 1 {
		errs[FieldStrands] = MsgStrandsTooFew
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate runs ValidateEntry over every row. An empty map means the form is valid.
func Validate(entries []YarnEntry) ValidationErrors {
	out := ValidationErrors{}
	for _, e := range entries {
		if errs := ValidateEntry(e); errs != nil {
			out[e.ID] = errs
		}
	}
	return out
}

func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseInteger(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
