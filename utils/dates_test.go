package utils

import (
	"testing"
	"time"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2026, 8, 30, 17, 45, 12, 999, time.UTC)
	got := BeginningOfDay(in)
	want := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("BeginningOfDay = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 8, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 29 {
		t.Errorf("DaysBetween = %d, want 29", got)
	}
	if got := DaysBetween(end, end); got != 0 {
		t.Errorf("DaysBetween same day = %d, want 0", got)
	}
}
