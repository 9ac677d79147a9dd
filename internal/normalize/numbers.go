package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// currencyReplacer strips currency markers and thousands separators
var currencyReplacer = strings.NewReplacer(
	"$", "", "¥", "", "￥", "", "€", "", "£", "", "₹", "", "฿", "", "元", "",
	",", "", "，", "", "%", "", " ", "", "\u00a0", "",
)

var multipliers = []struct {
	suffix string
	factor float64
}{
	{"万", 1e4},
	{"w", 1e4},
	{"k", 1e3},
	{"m", 1e6},
}

var currencyCode = regexp.MustCompile(`(?i)usd|rmb|cny|us`)

var leadingNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// decimalNumber is the only syntax handed to strconv, which would otherwise
// also accept hex floats, underscores, "Inf" and "NaN"
var decimalNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

// ParseNumber parses a loosely formatted numeric cell such as "$1,299.00",
// "12%", "1.2k" or "3.5万". The second result is false when no finite
// number could be read.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isNullish(s) {
		return 0, false
	}

	s = currencyReplacer.Replace(s)
	s = currencyCode.ReplaceAllString(s, "")

	factor := 1.0
	lower := strings.ToLower(s)
	for _, m := range multipliers {
		if strings.HasSuffix(lower, m.suffix) {
			factor = m.factor
			s = s[:len(s)-len(m.suffix)]
			break
		}
	}

	if !decimalNumber.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	v *= factor
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NumberOrZero parses s and returns 0 on failure
func NumberOrZero(s string) float64 {
	v, _ := ParseNumber(s)
	return v
}

// NonNegative parses s and clamps the result to be at least 0
func NonNegative(s string) float64 {
	v, _ := ParseNumber(s)
	if v < 0 {
		return 0
	}
	return v
}

// ExtractNumber returns the first decimal number embedded in s, e.g. the 1.5
// in "1.5 pounds"
func ExtractNumber(s string) float64 {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

func isNullish(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "null", "n/a", "na", "-", "--":
		return true
	}
	return false
}
