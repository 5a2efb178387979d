package biztime

import (
	"testing"
	"time"
)

func TestAddDays(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	got := AddDays(start, 30)
	want := time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AddDays(30) = %v, want %v", got, want)
	}

	if !AddDays(start, 0).Equal(start) {
		t.Error("AddDays(0) should return the same instant")
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		b    time.Time
		want int
	}{
		{"exact ten days", a.Add(10 * 24 * time.Hour), 10},
		{"partial day truncates", a.Add(10*24*time.Hour + 23*time.Hour), 10},
		{"same instant", a, 0},
		{"negative", a.Add(-48 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}
