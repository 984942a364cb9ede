package redcore

import (
	"testing"
	"time"
)

func TestParseHTTPDateRFC1123(t *testing.T) {
	got, ok := parseHTTPDate("Sun, 06 Nov 1994 08:49:37 GMT")
	if !ok {
		t.Fatal("expected parse success")
	}
	want := time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseHTTPDateRFC850TwoDigitYearPivot(t *testing.T) {
	// RFC 850 year "94" should resolve to 1994, not 2094.
	got, ok := parseHTTPDate("Sunday, 06-Nov-94 08:49:37 GMT")
	if !ok {
		t.Fatal("expected parse success")
	}
	if got.Year() != 1994 {
		t.Errorf("Year() = %d, want 1994", got.Year())
	}

	got2, ok := parseHTTPDate("Tuesday, 06-Nov-68 08:49:37 GMT")
	if !ok {
		t.Fatal("expected parse success")
	}
	if got2.Year() != 2068 {
		t.Errorf("Year() = %d, want 2068", got2.Year())
	}
}

func TestParseHTTPDateAsctime(t *testing.T) {
	got, ok := parseHTTPDate("Sun Nov  6 08:49:37 1994")
	if !ok {
		t.Fatal("expected parse success")
	}
	if got.Year() != 1994 || got.Month() != time.November || got.Day() != 6 {
		t.Errorf("got %v, want 1994-11-06", got)
	}
}

func TestParseHTTPDateInvalid(t *testing.T) {
	if _, ok := parseHTTPDate("not a date"); ok {
		t.Error("expected parse failure for garbage input")
	}
}

func TestFormatHTTPDateRoundTrip(t *testing.T) {
	in := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)
	s := formatHTTPDate(in)
	out, ok := parseHTTPDate(s)
	if !ok {
		t.Fatalf("parseHTTPDate(%q) failed", s)
	}
	if !out.Equal(in) {
		t.Errorf("round trip got %v, want %v", out, in)
	}
}

func TestParseDeltaSeconds(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantOK  bool
	}{
		{"0", 0, true},
		{"3600", 3600, true},
		{"  42  ", 42, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseDeltaSeconds(c.in)
		if ok != c.wantOK || (ok && got != c.want) {
			t.Errorf("parseDeltaSeconds(%q) = %d, %v, want %d, %v", c.in, got, ok, c.want, c.wantOK)
		}
	}
}
