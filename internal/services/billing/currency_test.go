package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCleanCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string // "" means nil
	}{
		{"350", "350"},
		{"350.50", "350.50"},
		{"$350", "350"},
		{"NRS 350", "350"},
		{"NRS350.25", "350.25"},
		{" $ 12.00 ", "12.00"},
		{"", ""},
		{"Insufficient", ""},
		{"abc", ""},
	}

	for _, tc := range tests {
		got := cleanCurrency(tc.in)
		if tc.want == "" {
			if got != nil {
				t.Errorf("cleanCurrency(%q) = %s, want nil", tc.in, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("cleanCurrency(%q) = nil, want %s", tc.in, tc.want)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("cleanCurrency(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
