package speech

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// maxFixedDigits caps the precision accepted by toFixed.
const maxFixedDigits = 100

// text returns the spoken form of v: strings verbatim, numbers in their
// shortest decimal form.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// toNumber coerces v to a float64. Values that cannot be read as a number
// become NaN.
func toNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		return parseNumber(x)
	case fmt.Stringer:
		return parseNumber(x.String())
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	// ParseFloat also accepts "inf" and "nan" spellings.
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return math.NaN()
	}
	return f
}

// formatFloat renders f the way a number is printed in running text:
// fixed notation between 1e-6 and 1e21, exponent notation outside it.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Go pads the exponent to two digits ("1e-07"); drop the padding.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[0]
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "e" + string(sign) + digits
}

// toFixed formats f with exactly digits decimals. Rounding works on the exact
// binary value of f and resolves ties away from zero, so 0.6515 (stored as
// 0.65149999...) becomes "0.651" while 12.5 becomes "13".
func toFixed(f float64, digits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= 1e21 {
		return formatFloat(f)
	}
	if digits < 0 {
		digits = 0
	}
	if digits > maxFixedDigits {
		digits = maxFixedDigits
	}
	return new(big.Rat).SetFloat64(f).FloatString(digits)
}
