package dateutil

import (
	"testing"
	"time"
)

func TestParseISO(t *testing.T) {
	t.Parallel()

	d, err := ParseISO("2025-11-14")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.November || d.Day() != 14 {
		t.Errorf("Expected 2025-11-14, got %v", d)
	}
	if h, m, s := d.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("Expected midnight, got %02d:%02d:%02d", h, m, s)
	}

	if _, err := ParseISO("14/11/2025"); err == nil {
		t.Error("Expected error for non-ISO input")
	}
	if _, err := ParseISO(""); err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 11, 10, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, 11, 14, 0, 1, 0, 0, time.UTC)

	if got := DaysBetween(from, to); got != 4 {
		t.Errorf("Expected 4 days, got %d", got)
	}
	if got := DaysBetween(to, from); got != -4 {
		t.Errorf("Expected -4 days, got %d", got)
	}
	if got := DaysBetween(from, from); got != 0 {
		t.Errorf("Expected 0 days, got %d", got)
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 11, 14, 15, 4, 5, 0, time.UTC)

	if got := FormatISO(d); got != "2025-11-14" {
		t.Errorf("Expected 2025-11-14, got %s", got)
	}
	if got := FormatLabel(d); got != "14/11/2025" {
		t.Errorf("Expected 14/11/2025, got %s", got)
	}
}
