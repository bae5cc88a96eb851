package handlers

import (
	"testing"
	"time"
)

func TestFormatOrderNumberPadsSequence(t *testing.T) {
	day := time.Date(2025, 3, 9, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		seq  int64
		want string
	}{
		{1, "ORD-20250309-001"},
		{42, "ORD-20250309-042"},
		{999, "ORD-20250309-999"},
	}
	for _, tt := range tests {
		if got := formatOrderNumber(day, tt.seq); got != tt.want {
			t.Fatalf("formatOrderNumber(seq=%d) = %q, want %q", tt.seq, got, tt.want)
		}
	}
}

func TestFormatOrderNumberGrowsPastThreeDigits(t *testing.T) {
	day := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := formatOrderNumber(day, 1000); got != "ORD-20250309-1000" {
		t.Fatalf("expected ORD-20250309-1000, got %q", got)
	}
}

func TestOrderDateKeyUsesCalendarDate(t *testing.T) {
	day := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	if got := orderDateKey(day); got != "20241231" {
		t.Fatalf("expected 20241231, got %q", got)
	}
}
