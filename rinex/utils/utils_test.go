package utils

import (
	"testing"
	"time"
)

// TestSubstring checks that Substring clamps its bounds to the line.
func TestSubstring(t *testing.T) {
	var testData = []struct {
		description string
		line        string
		start       int
		end         int
		want        string
	}{
		{"within", "abcdef", 1, 3, "bc"},
		{"end beyond line", "abcdef", 4, 10, "ef"},
		{"start beyond line", "abc", 5, 10, ""},
		{"to end of line", "abcdef", 2, -1, "cdef"},
		{"empty line", "", 0, 3, ""},
	}

	for _, td := range testData {
		got := Substring(td.line, td.start, td.end)
		if got != td.want {
			t.Errorf("%s: want \"%s\", got \"%s\"", td.description, td.want, got)
		}
	}
}

// TestField checks that Field trims the clamped substring.
func TestField(t *testing.T) {
	got := Field("     3.04           OBSERVATION DATA    M", 20, 40)
	if got != "OBSERVATION DATA" {
		t.Errorf("want \"OBSERVATION DATA\", got \"%s\"", got)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2023, time.November, 2, 0, 0, 0, 0, time.UTC)

	got, err := ParseDate("2023-11-02")
	if err != nil {
		t.Fatal(err)
	}

	if !got.Equal(want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestParseDateWithError(t *testing.T) {
	for _, s := range []string{"", "2023/11/02", "2023-13-01", "20231102", "junk"} {
		_, err := ParseDate(s)
		if err == nil {
			t.Errorf("%s: expected an error", s)
		}
	}
}
