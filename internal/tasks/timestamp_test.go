package tasks

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeDue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-01", "2024-03-01 23:59:59"},
		{"2024-03-01 10:00:00", "2024-03-01 10:00:00"},
	}
	for _, tt := range tests {
		got, err := NormalizeDue(tt.in)
		if err != nil {
			t.Fatalf("NormalizeDue(%q): %v", tt.in, err)
		}
		if s := FormatTimestamp(*got); s != tt.want {
			t.Errorf("NormalizeDue(%q) = %q, want %q", tt.in, s, tt.want)
		}
	}
}

func TestNormalizeDueAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	saved := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = saved })

	for _, in := range []string{"2024-03-10", "2024-11-03"} {
		got, err := NormalizeDue(in)
		if err != nil {
			t.Fatalf("NormalizeDue(%q): %v", in, err)
		}
		if want := in + " 23:59:59"; FormatTimestamp(*got) != want {
			t.Errorf("NormalizeDue(%q) = %q, want %q", in, FormatTimestamp(*got), want)
		}
	}
}

func TestNormalizeDueEmpty(t *testing.T) {
	got, err := NormalizeDue("")
	if err != nil || got != nil {
		t.Errorf("NormalizeDue(\"\") = %v, %v; want nil, nil", got, err)
	}
}

func TestNormalizeDueInvalid(t *testing.T) {
	for _, in := range []string{"03/01/2024", "2024-03-01T10:00:00", "2024-13-01", "tomorrow"} {
		if _, err := NormalizeDue(in); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("NormalizeDue(%q): got %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 6, 10, 17, 45, 12, 500, time.UTC)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if got := StartOfDay(in); !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseStatus("blocked"); err == nil {
		t.Error("ParseStatus(blocked): expected error")
	}
}
