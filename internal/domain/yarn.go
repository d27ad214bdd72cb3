package domain

import (
	"fmt"
	"math"
	"strings"
)

// Field names an editable column of a yarn row.
type Field string

const (
	FieldMass    Field = "mass"
	FieldLength  Field = "length"
	FieldStrands Field = "strands"
)

// Fields lists the editable fields in display order.
var Fields = []Field{FieldMass, FieldLength, FieldStrands}

// ParseField maps user-facing field names (and a few aliases) to a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mass", "weight":
		return FieldMass, nil
	case "length":
		return FieldLength, nil
	case "strands", "strandcount", "strand_count":
		return FieldStrands, nil
	default:
		return "", &OpError{
			Op:   "domain.parse_field",
			Kind: KindInvalidInput,
			Err:  fmt.Errorf("unknown field %q: %w", s, ErrInvalidInput),
		}
	}
}

// YarnEntry is one yarn row. Fields hold raw text so partially typed values
// survive until validation.
type YarnEntry struct {
	ID      int    `json:"id"`
	Mass    string `json:"mass"`
	Length  string `json:"length"`
	Strands string `json:"strands"`
}

// Value returns the raw text of the given field.
func (e YarnEntry) Value(f Field) string {
	switch f {
	case FieldMass:
		return e.Mass
	case FieldLength:
		return e.Length
	case FieldStrands:
		return e.Strands
	default:
		return ""
	}
}

func (e *YarnEntry) set(f Field, value string) bool {
	switch f {
	case FieldMass:
		e.Mass = value
	case FieldLength:
		e.Length = value
	case FieldStrands:
		e.Strands = value
	default:
		return false
	}
	return true
}

// MeteragePer100g is the length per 100 g of a single strand. It reports
// false when mass or length do not parse, mass is not positive, or the
// figure overflows.
func (e YarnEntry) MeteragePer100g() (float64, bool) {
	mass, ok := parseDecimal(e.Mass)
	if !ok || mass <= 0 {
		return 0, false
	}
	length, ok := parseDecimal(e.Length)
	if !ok {
		return 0, false
	}
	m := meteragePerStrand(mass, length)
	if math.IsInf(m, 0) || math.IsNaN(m) {
		return 0, false
	}
	return m, true
}

// EntryList is the mutable, never-empty list of yarn rows.
type EntryList struct {
	entries  []YarnEntry
	defaults EntryDefaults
}

// SeedEntries returns the two example rows a new form starts with.
func SeedEntries() []YarnEntry {
	return []YarnEntry{
		{ID: 1, Mass: "100", Length: "700", Strands: "2"},
		{ID: 2, Mass: "25", Length: "120", Strands: "1"},
	}
}

// NewEntryList builds a list from the given rows. Rows with a zero or
// duplicate id get a fresh one; an empty input falls back to the seed rows.
func NewEntryList(rows []YarnEntry, defaults EntryDefaults) *EntryList {
	l := &EntryList{defaults: defaults}
	if len(rows) == 0 {
		rows = SeedEntries()
	}

	seen := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r.ID <= 0 || seen[r.ID] {
			r.ID = l.nextID(rows)
		}
		seen[r.ID] = true
		l.entries = append(l.entries, r)
	}
	return l
}

// nextID is max(id) + 1 across the current list and any pending rows.
func (l *EntryList) nextID(pending []YarnEntry) int {
	maxID := 0
	for _, e := range l.entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	for _, e := range pending {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

// Add appends a row with the configured defaults and returns its id.
func (l *EntryList) Add() int {
	id := l.nextID(nil)
	l.entries = append(l.entries, YarnEntry{
		ID:      id,
		Mass:    l.defaults.Mass,
		Length:  l.defaults.Length,
		Strands: l.defaults.Strands,
	})
	return id
}

// Remove drops the row with the given id unless it is the last one left.
func (l *EntryList) Remove(id int) bool {
	if len(l.entries) <= 1 {
		return false
	}
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Update stores raw text into one field of a row. Unknown ids are ignored.
func (l *EntryList) Update(id int, f Field, value string) bool {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return l.entries[i].set(f, value)
		}
	}
	return false
}

// Get returns a copy of the row with the given id.
func (l *EntryList) Get(id int) (YarnEntry, bool) {
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return YarnEntry{}, false
}

// Entries returns a copy of the rows in display order.
func (l *EntryList) Entries() []YarnEntry {
	out := make([]YarnEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *EntryList) Len() int { return len(l.entries) }

// TotalStrandCount sums strand counts; unparseable counts contribute zero.
func (l *EntryList) TotalStrandCount() int {
	return TotalStrandCount(l.entries)
}

// TotalStrandCount is the list-free form of EntryList.TotalStrandCount.
func TotalStrandCount(entries []YarnEntry) int {
	total := 0
	for _, e := range entries {
		if n, ok := parseInteger(e.Strands); ok {
			total += n
		}
	}
	return total
}
