package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"0", "1042", "000123"}
	invalid := []string{"", "12a", "-5", "1.5", " 12"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-03-01"); !ok {
		t.Error("IsValidDate(2025-03-01) = false, want true")
	}
	invalid := []string{"", "2025-13-01", "01-03-2025", "2025/03/01", "2025-03-01T00:00:00Z"}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "08:00", "17:30", "23:59"}
	invalid := []string{"", "8:0:0", "24:00", "08:60", "0800"}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{
		"2025-03-01T08:00:00Z",
		"2025-03-01T08:00:00+08:00",
		"2025-03-01T08:00:00.123456789+08:00",
	}
	invalid := []string{"", "2025-03-01", "2025-03-01 08:00:00", "not-a-date"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "branch_id", Message: "is required"},
		{Field: "status", Message: "must be CHECK_IN, CHECK_OUT or UNKNOWN"},
	}

	if got := errs.Error(); got != "branch_id: is required; status: must be CHECK_IN, CHECK_OUT or UNKNOWN" {
		t.Errorf("Error() = %q", got)
	}

	m := errs.ToMap()
	if m["branch_id"] != "is required" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
}
