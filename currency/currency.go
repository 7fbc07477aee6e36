// Package currency converts between the canonical storage currency and the
// display currency at a fixed rate. Stored and projected amounts are always
// canonical; conversion happens only when parsing input and formatting output.
package currency

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Code string

const (
	USD Code = "USD" // canonical
	NGN Code = "NGN"

	Canonical = USD
)

// Rate is the number of NGN per 1 USD.
const Rate = 1500.0

func Parse(s string) (Code, error) {
	switch Code(strings.ToUpper(strings.TrimSpace(s))) {
	case "", USD:
		return USD, nil
	case NGN:
		return NGN, nil
	default:
		return "", fmt.Errorf("unknown currency %q (supported: USD, NGN)", s)
	}
}

// ToDisplay converts a canonical value into code. Unknown codes are treated
// as canonical.
func ToDisplay(v float64, code Code) float64 {
	if code == NGN {
		return v * Rate
	}
	return v
}

// ToCanonical is the inverse of ToDisplay.
func ToCanonical(v float64, code Code) float64 {
	if code == NGN {
		return v / Rate
	}
	return v
}

func Symbol(code Code) string {
	if code == NGN {
		return "₦"
	}
	return "$"
}

var printer = message.NewPrinter(language.English)

// Format renders a canonical value in code, e.g. "$1,234.56" or "-₦6,000.00".
func Format(v float64, code Code) string {
	d := ToDisplay(v, code)
	sign := ""
	if d < 0 {
		sign = "-"
		d = math.Abs(d)
	}
	return sign + Symbol(code) + printer.Sprintf("%.2f", d)
}

// FormatSigned is Format with an explicit "+" for positive values.
func FormatSigned(v float64, code Code) string {
	if v > 0 {
		return "+" + Format(v, code)
	}
	return Format(v, code)
}
