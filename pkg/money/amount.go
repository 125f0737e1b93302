package money

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMinorUnits parses an integer amount in minor units (satoshi, wei, cents).
// Anything that is not a plain base-10 integer yields zero and ok=false.
func ParseMinorUnits(s string) (amount *big.Int, ok bool) {
	i := new(big.Int)
	if _, ok := i.SetString(s, 10); !ok {
		return big.NewInt(0), false
	}
	return i, true
}

// ToWholeUnits converts minor units to whole token units
// E.g., 150000000 with 8 decimals → 1.5
func ToWholeUnits(amount *big.Int, decimals int) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, int32(-decimals))
}

// Valuate returns (amount / 10^decimals) * price as a float
func Valuate(amount *big.Int, decimals int, price float64) float64 {
	return ToWholeUnits(amount, decimals).Mul(decimal.NewFromFloat(price)).InexactFloat64()
}

// FromBaseUnits converts base units (big.Int) to a human-readable string
// E.g., 150000000 with 8 decimals → "1.5"
func FromBaseUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	return ToWholeUnits(amount, decimals).String()
}

// FormatDouble renders a float64 the way the JVM prints a double:
// plain notation with at least one fractional digit for 1e-3 <= |v| < 1e7,
// computerized scientific notation ("1.0E7") otherwise.
func FormatDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(v)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// 'e' yields e.g. "1.2345e+07" or "5e-04"
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(n)
}
