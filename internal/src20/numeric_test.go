package src20

import "testing"

func TestNormalizeDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1000000", "1000000"},
		{"1000.000", "1000"},
		{"1000.500", "1000.5"},
		{"0", "0"},
		{"0.0", "0"},
		{"00042", "42"},
		{".5", "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeDecimal(tt.in)
			if err != nil {
				t.Fatalf("normalizeDecimal(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("normalizeDecimal(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDecimalIdempotent(t *testing.T) {
	inputs := []string{"1000.500", "42", "0.00", "123456789012345678901234567890.100"}
	for _, in := range inputs {
		once, err := normalizeDecimal(in)
		if err != nil {
			t.Fatalf("normalizeDecimal(%q): %v", in, err)
		}
		twice, err := normalizeDecimal(once)
		if err != nil {
			t.Fatalf("normalizeDecimal(%q): %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent: normalize(%q)=%q, normalize(that)=%q", in, once, twice)
		}
	}
}

func TestNormalizeDecimalRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "-5", "1,000"} {
		if _, err := normalizeDecimal(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}
