package order

import (
	"testing"

	"github.com/storefront-labs/orderflow/internal/apperr"
)

func TestParseMoney(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"499.90", 49990, false},
		{"0", 0, false},
		{"12", 1200, false},
		{"0.05", 5, false},
		{"12.345", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseMoney("total", tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseMoney(%q): expected error", tc.in)
			}
			if !apperr.IsValidation(err) {
				t.Fatalf("ParseMoney(%q): error %v is not a ValidationError", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMoney(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	if got := FormatMoney(49990); got != "499.90" {
		t.Fatalf("FormatMoney(49990) = %q", got)
	}
	if got := FormatMoney(5); got != "0.05" {
		t.Fatalf("FormatMoney(5) = %q", got)
	}
}
