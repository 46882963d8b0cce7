package quote

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The screener mixes U.S. and European numeric conventions across fields and
// over time: plain JSON numbers, "1,234.56", "1234,56", "1 234,56", values
// with a trailing percent sign, and the sentinels "", "-" and "N/A". Decimal
// and Integer absorb all of that during unmarshalling. A cell that still does
// not parse after normalization decodes as "no value" rather than an error,
// so one bad field never aborts a whole page fetch. Marshalling emits a bare
// JSON number, or null when there is no value.

// Decimal is an optional fixed-precision decimal.
type Decimal struct {
	Decimal decimal.Decimal
	Valid   bool
}

// DecimalFrom returns a valid Decimal holding v.
func DecimalFrom(v decimal.Decimal) Decimal {
	return Decimal{Decimal: v, Valid: true}
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	*d = Decimal{}
	switch kind(data) {
	case tokenNumber:
		// Parse the raw token so representable values survive exactly,
		// without an intermediate float64 round trip.
		if v, err := decimal.NewFromString(string(data)); err == nil {
			*d = DecimalFrom(v)
		}
	case tokenString:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s, ok := normalizeDecimal(s)
		if !ok {
			return nil
		}
		if v, err := decimal.NewFromString(s); err == nil {
			*d = DecimalFrom(v)
		}
	}
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(d.Decimal.String()), nil
}

// Equal reports whether both sides are valid and numerically equal, or both
// carry no value.
func (d Decimal) Equal(o Decimal) bool {
	if d.Valid != o.Valid {
		return false
	}
	return !d.Valid || d.Decimal.Equal(o.Decimal)
}

// Integer is an optional signed integer.
type Integer struct {
	Int64 int64
	Valid bool
}

// IntegerFrom returns a valid Integer holding v.
func IntegerFrom(v int64) Integer {
	return Integer{Int64: v, Valid: true}
}

func (i *Integer) UnmarshalJSON(data []byte) error {
	*i = Integer{}
	switch kind(data) {
	case tokenNumber:
		if v, err := strconv.ParseInt(string(data), 10, 64); err == nil {
			*i = IntegerFrom(v)
		}
	case tokenString:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s, ok := normalizeInteger(s)
		if !ok {
			return nil
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			*i = IntegerFrom(v)
		}
	}
	return nil
}

func (i Integer) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(i.Int64, 10)), nil
}

type tokenKind int

const (
	tokenOther tokenKind = iota
	tokenNull
	tokenNumber
	tokenString
)

func kind(data []byte) tokenKind {
	if len(data) == 0 {
		return tokenOther
	}
	switch c := data[0]; {
	case c == 'n':
		return tokenNull
	case c == '"':
		return tokenString
	case c == '-' || (c >= '0' && c <= '9'):
		return tokenNumber
	default:
		return tokenOther
	}
}

// normalizeDecimal reduces a raw cell to invariant "sign digits . digits"
// form. The second return is false for sentinel "no data" tokens.
func normalizeDecimal(s string) (string, bool) {
	s, ok := stripSentinels(s)
	if !ok {
		return "", false
	}
	// Spaces are thousands grouping in Nordic formatting.
	s = strings.ReplaceAll(s, " ", "")
	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		// Both present: assume ',' is the thousands separator.
		s = strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ","):
		// ',' alone is the decimal separator.
		s = strings.ReplaceAll(s, ",", ".")
	}
	// Percent-tagged values still map to a plain magnitude.
	s = strings.TrimRight(s, "%")
	return s, s != ""
}

// normalizeInteger is the integer variant: commas can only be grouping, so
// all of them are dropped.
func normalizeInteger(s string) (string, bool) {
	s, ok := stripSentinels(s)
	if !ok {
		return "", false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	return s, s != ""
}

func stripSentinels(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || strings.EqualFold(s, "N/A") {
		return "", false
	}
	return s, true
}
