package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// cleanCurrency parses a free-text currency field from the billing form.
// Currency markers are stripped; empty, sentinel ("Insufficient") and
// unparsable values resolve to nil rather than an error.
func cleanCurrency(value string) *decimal.Decimal {
	v := strings.TrimSpace(value)
	if v == "" || v == "Insufficient" {
		return nil
	}

	v = strings.ReplaceAll(v, "$", "")
	v = strings.ReplaceAll(v, "NRS", "")
	v = strings.TrimSpace(v)

	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}
