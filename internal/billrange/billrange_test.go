package billrange

import "testing"

func TestCompress(t *testing.T) {
	tests := []struct {
		name  string
		bills []string
		want  string
	}{
		{"empty", nil, ""},
		{"singleton", []string{"A1"}, "A1"},
		{"contiguous run", []string{"A1", "A2", "A3"}, "A1-A3"},
		{"run plus singleton", []string{"A1", "A2", "A3", "B7"}, "A1-A3 / B7"},
		{"appearance order ignored", []string{"B7", "A2", "A1", "A3"}, "A1-A3 / B7"},
		{"two runs", []string{"IV001", "IV002", "IV005", "IV006"}, "IV001-IV002 / IV005-IV006"},
		{"decorated endpoints keep spelling", []string{"IV-001", "IV-002", "IV-003"}, "IV-001-IV-003"},
		{"gap breaks run", []string{"A1", "A3"}, "A1 / A3"},
		{"digitless sorts first and never merges", []string{"A2", "ยกมา", "A1"}, "ยกมา / A1-A2"},
		{"only digitless", []string{"XX", "YY"}, "XX / YY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compress(tt.bills); got != tt.want {
				t.Fatalf("Compress(%v) = %q, want %q", tt.bills, got, tt.want)
			}
		})
	}
}

func TestCompressStableForEqualPayloads(t *testing.T) {
	// Two digitless identifiers keep their appearance order.
	got := Compress([]string{"BB", "AA"})
	if got != "BB / AA" {
		t.Fatalf("Compress() = %q, want %q", got, "BB / AA")
	}
}

func TestDigitsOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"IV-001", "001"},
		{"A1B2", "12"},
		{"ยกมา", ""},
	}

	for _, tt := range tests {
		if got := digitsOf(tt.in); got != tt.want {
			t.Fatalf("digitsOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
