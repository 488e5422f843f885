package booking

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"disjoint before", "2030-01-01", "2030-01-03", "2030-01-04", "2030-01-06", false},
		{"disjoint after", "2030-01-04", "2030-01-06", "2030-01-01", "2030-01-03", false},
		{"partial overlap left", "2030-01-01", "2030-01-04", "2030-01-03", "2030-01-06", true},
		{"partial overlap right", "2030-01-03", "2030-01-06", "2030-01-01", "2030-01-04", true},
		{"a contains b", "2030-01-01", "2030-01-10", "2030-01-03", "2030-01-05", true},
		{"b contains a", "2030-01-03", "2030-01-05", "2030-01-01", "2030-01-10", true},
		{"exact match", "2030-01-01", "2030-01-05", "2030-01-01", "2030-01-05", true},
		{"touching end", "2030-01-01", "2030-01-03", "2030-01-03", "2030-01-05", true},
		{"touching start", "2030-01-03", "2030-01-05", "2030-01-01", "2030-01-03", true},
		{"same single day", "2030-01-03", "2030-01-03", "2030-01-03", "2030-01-03", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			if got != tt.want {
				t.Errorf("Overlaps(%s..%s, %s..%s) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	today := day("2030-06-15")

	if err := ValidateRange(day("2030-06-14"), day("2030-06-20"), today); err != ErrPastStartDate {
		t.Errorf("start yesterday: got %v, want ErrPastStartDate", err)
	}
	if err := ValidateRange(day("2030-06-20"), day("2030-06-18"), today); err != ErrStartAfterEnd {
		t.Errorf("start after end: got %v, want ErrStartAfterEnd", err)
	}
	// inverted future range is still rejected
	if err := ValidateRange(day("2030-07-10"), day("2030-07-05"), today); err != ErrStartAfterEnd {
		t.Errorf("inverted future range: got %v, want ErrStartAfterEnd", err)
	}
	if err := ValidateRange(day("2030-06-15"), day("2030-06-15"), today); err != nil {
		t.Errorf("same-day stay starting today: got %v, want nil", err)
	}
	if err := ValidateRange(day("2030-06-16"), day("2030-06-18"), today); err != nil {
		t.Errorf("future range: got %v, want nil", err)
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2030-01-01", "2030-01-01", 1}, // same-day stay counts as one night
		{"2030-01-01", "2030-01-02", 1},
		{"2030-01-01", "2030-01-03", 2},
		{"2030-01-01", "2030-01-11", 10},
	}
	for _, tt := range tests {
		if got := Nights(day(tt.start), day(tt.end)); got != tt.want {
			t.Errorf("Nights(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
	got, err := ParseDate("2030-02-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 0 || got.Location() != time.UTC {
		t.Errorf("parsed date not pinned to UTC midnight: %v", got)
	}
}
