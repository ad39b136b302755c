// Package normalize converts raw, loosely-typed source values into the
// canonical record fields. All functions are pure.
package normalize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PlatformSeller is the default seller name. The upstream APIs omit the
// seller object entirely when the platform sells the item itself, so a
// missing seller means "Newegg", not "unknown".
const PlatformSeller = "Newegg"

// Newegg's APIs encode "price unavailable" as a number in this narrow
// range (observed 100004-100012) instead of omitting the field. The
// whole range is rejected as a known source artifact.
var (
	sentinelLow  = decimal.NewFromInt(100000)
	sentinelHigh = decimal.NewFromInt(100020)
)

var (
	nonDigitDotRegex   = regexp.MustCompile(`[^\d.]`)
	nonDigitCommaRegex = regexp.MustCompile(`[^\d,]`)
)

// Price normalizes a raw price value into a decimal string with exactly
// two fraction digits, or "" when the value is absent, unparseable,
// non-positive, or a sentinel. Accepts the numeric and string shapes
// produced by JSON decoding.
func Price(raw interface{}) string {
	var value decimal.Decimal

	switch v := raw.(type) {
	case nil:
		return ""
	case float64:
		value = decimal.NewFromFloat(v)
	case float32:
		value = decimal.NewFromFloat32(v)
	case int:
		value = decimal.NewFromInt(int64(v))
	case int64:
		value = decimal.NewFromInt(v)
	case decimal.Decimal:
		value = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return ""
		}
		// European-style "1234,50": comma is the decimal separator
		// only when no dot is present.
		if strings.Contains(s, ",") && !strings.Contains(s, ".") {
			s = strings.ReplaceAll(nonDigitCommaRegex.ReplaceAllString(s, ""), ",", ".")
		} else {
			s = nonDigitDotRegex.ReplaceAllString(s, "")
		}
		if s == "" {
			return ""
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return ""
		}
		value = parsed
	default:
		return ""
	}

	if !value.IsPositive() {
		return ""
	}
	if value.GreaterThanOrEqual(sentinelLow) && value.LessThanOrEqual(sentinelHigh) {
		return ""
	}
	// Sub-cent values would format as "0.00"; a price must stay
	// positive after rounding to two fraction digits.
	value = value.Round(2)
	if !value.IsPositive() {
		return ""
	}
	return value.StringFixed(2)
}

// TidyText collapses multi-line text into a single " | "-delimited line,
// trimming each line and dropping empty ones.
func TidyText(raw string) string {
	if raw == "" {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " | ")
}

// Seller returns the explicit seller name when present, falling back to
// the platform's own name.
func Seller(name string) string {
	if name != "" {
		return name
	}
	return PlatformSeller
}

// Stringify renders a loosely-typed JSON scalar as a trimmed string.
// Ratings arrive as either strings or numbers depending on the source.
func Stringify(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
