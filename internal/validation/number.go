package validation

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a lenient JSON number. It accepts JSON numbers, numeric strings
// (with "." or "," as decimal separator), empty strings and null. Input that
// does not parse decodes as zero with Valid unset.
type Number struct {
	decimal.Decimal
	Valid bool
}

// NewNumber wraps a decimal as a valid Number.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{Decimal: decimal.Zero}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	}
	if raw == "" {
		return nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	n.Decimal = d
	n.Valid = true
	return nil
}

// MarshalJSON renders the number, or null when it never held a valid value.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(n.Decimal.String()), nil
}

// Ptr returns the decimal when valid, nil otherwise.
func (n *Number) Ptr() *decimal.Decimal {
	if n == nil || !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
