package handlers

import "testing"

func TestNextProductCodeIncrementsSuffix(t *testing.T) {
	tests := []struct {
		last string
		want string
	}{
		{"BG007", "BG008"},
		{"BG099", "BG100"},
		{"BG999", "BG1000"},
		{"TOY001", "TOY002"},
	}
	for _, tt := range tests {
		if got := nextProductCode(tt.last); got != tt.want {
			t.Fatalf("nextProductCode(%q) = %q, want %q", tt.last, got, tt.want)
		}
	}
}

func TestHighestProductCodeComparesSuffixesNumerically(t *testing.T) {
	codes := []string{"BG998", "BG1000", "BG999"}
	if got := highestProductCode(codes); got != "BG1000" {
		t.Fatalf("expected BG1000 to rank highest, got %q", got)
	}
	if got := nextProductCode(highestProductCode(codes)); got != "BG1001" {
		t.Fatalf("expected next code BG1001, got %q", got)
	}
}

func TestHighestProductCodeIgnoresNonNumericCodes(t *testing.T) {
	if got := highestProductCode([]string{"LEGACY", "BG002", "SAMPLE"}); got != "BG002" {
		t.Fatalf("expected BG002, got %q", got)
	}
	if got := highestProductCode(nil); got != "" {
		t.Fatalf("expected empty string for empty catalog, got %q", got)
	}
}

func TestNextProductCodeStartsFromBG001(t *testing.T) {
	if got := nextProductCode(""); got != "BG001" {
		t.Fatalf("expected BG001 for empty catalog, got %q", got)
	}
	if got := nextProductCode("LEGACY"); got != "BG001" {
		t.Fatalf("expected BG001 for code without numeric suffix, got %q", got)
	}
}
