package domain

import (
	"reflect"
	"testing"
)

func validEntry() YarnEntry {
	return YarnEntry{ID: 1, Mass: "100", Length: "700", Strands: "1"}
}

func TestValidateEntry_Mass(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"0", true},
		{"-5", true},
		{"abc", true},
		{"", true},
		{"NaN", true},
		{"Inf", true},
		{"1e-310", true},
		{"50", false},
		{" 12.5 ", false},
	}
	for _, c := range cases {
		e := validEntry()
		e.Mass = c.in
		errs := ValidateEntry(e)
		_, got := errs[FieldMass]
		if got != c.wantErr {
			t.Errorf("mass=%q: error=%v, want %v", c.in, got, c.wantErr)
		}
		if got && errs[FieldMass] != MsgMassNotPositive {
			t.Errorf("mass=%q: unexpected message %q", c.in, errs[FieldMass])
		}
	}
}

func TestValidateEntry_Length(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"-1", true},
		{"", true},
		{"x", true},
		{"0", false},
		{"120.5", false},
	}
	for _, c := range cases {
		e := validEntry()
		e.Length = c.in
		errs := ValidateEntry(e)
		_, got := errs[FieldLength]
		if got != c.wantErr {
			t.Errorf("length=%q: error=%v, want %v", c.in, got, c.wantErr)
		}
		if got && errs[FieldLength] != MsgLengthNegative {
			t.Errorf("length=%q: unexpected message %q", c.in, errs[FieldLength])
		}
	}
}

func TestValidateEntry_Strands(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"0", true},
		{"1.5", true},
		{"-2", true},
		{"", true},
		{"3", false},
		{"1", false},
	}
	for _, c := range cases {
		e := validEntry()
		e.Strands = c.in
		errs := ValidateEntry(e)
		_, got := errs[FieldStrands]
		if got != c.wantErr {
			t.Errorf("strands=%q: error=%v, want %v", c.in, got, c.wantErr)
		}
		if got && errs[FieldStrands] != MsgStrandsTooFew {
			t.Errorf("strands=%q: unexpected message %q", c.in, errs[FieldStrands])
		}
	}
}

func TestValidateEntry_FieldsIndependent(t *testing.T) {
	errs := ValidateEntry(YarnEntry{ID: 1, Mass: "0", Length: "-1", Strands: "0"})
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", errs)
	}
	if ValidateEntry(validEntry()) != nil {
		t.Fatalf("expected nil errors for a valid row")
	}
}

func TestValidate_Idempotent(t *testing.T) {
	entries := []YarnEntry{
		{ID: 1, Mass: "0", Length: "700", Strands: "2"},
		{ID: 2, Mass: "25", Length: "", Strands: "1.5"},
		{ID: 3, Mass: "25", Length: "120", Strands: "1"},
	}

	first := Validate(entries)
	second := Validate(entries)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical error maps, got %v and %v", first, second)
	}
	if _, ok := first[3]; ok {
		t.Fatalf("expected valid row to be absent from the map")
	}
	if !first.Has(2, FieldStrands) || first.Message(2, FieldLength) != MsgLengthNegative {
		t.Fatalf("unexpected errors for row 2: %v", first[2])
	}
}

func TestValidationErrors_ListIsOrdered(t *testing.T) {
	v := ValidationErrors{
		4: {FieldStrands: MsgStrandsTooFew, FieldMass: MsgMassNotPositive},
		2: {FieldLength: MsgLengthNegative},
	}

	list := v.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(list))
	}
	if list[0].EntryID != 2 || list[1].Field != FieldMass || list[2].Field != FieldStrands {
		t.Fatalf("unexpected order: %v %v %v", list[0], list[1], list[2])
	}
	if list[0].Error() != "yarn 2: length: length cannot be negative" {
		t.Fatalf("unexpected message %q", list[0].Error())
	}
}
