package text

import (
	"errors"
	"fmt"
)

// priceScale converts between the wire's 7.5 decimal form and the
// book's fixed-point representation (units of 1e-5).
const priceScale = 100000

var errBadPrice = errors.New("invalid price")

// ParsePrice parses a positive price with up to 7 integer digits and
// exactly 5 fractional digits, e.g. "100.00000". The text form is the
// only place decimals exist; everything past this point is scaled
// integers, so equal prices always compare equal.
func ParsePrice(s string) (int64, error) {
	dot := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			if dot >= 0 {
				return 0, errBadPrice
			}
			dot = i
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return 0, errBadPrice
		}
	}
	if dot < 1 || dot > 7 || len(s)-dot-1 != 5 {
		return 0, errBadPrice
	}

	var whole int64
	for i := 0; i < dot; i++ {
		whole = whole*10 + int64(s[i]-'0')
	}
	var frac int64
	for i := dot + 1; i < len(s); i++ {
		frac = frac*10 + int64(s[i]-'0')
	}

	px := whole*priceScale + frac
	if px <= 0 {
		return 0, errBadPrice
	}
	return px, nil
}

// FormatPrice renders a scaled price back into the 7.5 form.
func FormatPrice(px int64) string {
	return fmt.Sprintf("%d.%05d", px/priceScale, px%priceScale)
}
