package disambtoken

import "testing"

func TestAddTokens_Reference(t *testing.T) {
	ref := &Reference{
		ID:       "smith2020",
		Ordinary: map[string]string{"title": "On Disambiguation"},
		Number:   map[string]string{"volume": "12"},
		Name: map[string][]Name{
			"author": {{Family: "Smith", Given: "Jane"}},
		},
		Date: map[string]DateOrRange{
			"issued": {Single: &DateValue{Year: 2020, Month: 3, Day: 15}},
		},
	}

	set := NewSet()
	AddTokens(ref, set)

	if !set.Contains(NewStr("On Disambiguation")) {
		t.Error("missing title token")
	}
	if !set.Contains(NewNum("12")) {
		t.Error("missing volume token")
	}
	if !set.Contains(NewStr("Smith")) || !set.Contains(NewStr("Jane")) {
		t.Error("missing name tokens")
	}
	if !set.Contains(NewDate(DateValue{Year: 2020, Month: 3, Day: 15})) {
		t.Error("missing full-precision date token")
	}
	// cite-side mode must not add the coarser date variants
	if set.Contains(NewDate(DateValue{Year: 2020})) {
		t.Error("AddTokens should not add year-only date variant")
	}
}

func TestAddTokensIndex_DateGranularity(t *testing.T) {
	ref := &Reference{
		Date: map[string]DateOrRange{
			"issued": {Single: &DateValue{Year: 2020, Month: 3, Day: 15}},
		},
	}
	set := NewSet()
	AddTokensIndex(ref, set)

	for _, d := range []DateValue{
		{Year: 2020, Month: 3, Day: 15},
		{Year: 2020, Month: 3},
		{Year: 2020},
	} {
		if !set.Contains(NewDate(d)) {
			t.Errorf("missing indexed date variant %+v", d)
		}
	}
}

func TestAddTokens_LiteralName(t *testing.T) {
	ref := &Reference{
		Name: map[string][]Name{"author": {{Literal: "United Nations"}}},
	}
	set := NewSet()
	AddTokens(ref, set)
	if !set.Contains(NewStr("United Nations")) {
		t.Error("literal name should contribute a single Str token")
	}
}

func TestAddTokens_DateRange(t *testing.T) {
	ref := &Reference{
		Date: map[string]DateOrRange{
			"issued": {Range: [2]*DateValue{{Year: 2018}, {Year: 2020}}},
		},
	}
	set := NewSet()
	AddTokens(ref, set)
	if !set.Contains(NewDate(DateValue{Year: 2018})) || !set.Contains(NewDate(DateValue{Year: 2020})) {
		t.Error("date range should contribute both endpoints")
	}
}

func TestAddTokens_ReportsMalformedFields(t *testing.T) {
	ref := &Reference{
		ID:       "bad2020",
		Number:   map[string]string{"volume": "n/a"},
		Date:     map[string]DateOrRange{"issued": {Single: &DateValue{Year: 2020, Month: 99}}},
	}
	set := NewSet()
	errs := AddTokens(ref, set)

	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(errs), errs)
	}
	if set.Contains(NewNum("n/a")) {
		t.Error("malformed number field should not be indexed")
	}
	if set.Contains(NewDate(DateValue{Year: 2020, Month: 99})) {
		t.Error("malformed date field should not be indexed")
	}
	for _, e := range errs {
		if e.ReferenceID != "bad2020" {
			t.Errorf("ReferenceFieldError.ReferenceID = %q, want bad2020", e.ReferenceID)
		}
	}
}
