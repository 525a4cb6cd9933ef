package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// serialDateEpoch is the day-zero anchor for spreadsheet serial dates.
var serialDateEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// normalizeDecimalSeparator rewrites comma-decimal values ("10,00",
// "1.234,56") into period-decimal form. A comma is only a decimal point when
// it is the last separator and appears exactly once: two or more commas with
// no dot after them ("1,000,000") can only be thousands grouping, as is a
// lone comma followed by exactly three digits ("1,000").
func normalizeDecimalSeparator(raw string) string {
	lastComma := strings.LastIndex(raw, ",")
	lastDot := strings.LastIndex(raw, ".")
	if lastComma > lastDot {
		if strings.Count(raw, ",") > 1 {
			return strings.ReplaceAll(raw, ",", "")
		}
		tail := raw[lastComma+1:]
		if lastDot < 0 && len(digitsOnly(tail)) == 3 {
			return strings.ReplaceAll(raw, ",", "")
		}
		head := strings.NewReplacer(",", "", ".", "").Replace(raw[:lastComma])
		return head + "." + tail
	}
	return strings.ReplaceAll(raw, ",", "")
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripNonNumeric keeps digits, the decimal point and the minus sign so
// currency symbols, spaces and percent signs don't break parsing.
func stripNonNumeric(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount parses a localized numeric string ("$ 1,500.00", "10,00",
// "-3") into a decimal. Unparseable or empty input yields zero.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := stripNonNumeric(normalizeDecimalSeparator(strings.TrimSpace(raw)))
	if cleaned == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// ParseTaxRate parses a tax rate as a percentage. Values strictly between
// 0 and 1 are read as fractions, so "0.14" and "14" both mean 14%.
func ParseTaxRate(raw string) decimal.Decimal {
	rate := ParseAmount(raw)
	if rate.GreaterThan(decimal.Zero) && rate.LessThan(decimal.NewFromInt(1)) {
		return rate.Mul(decimal.NewFromInt(100))
	}
	return rate
}

// ParseOrderDate parses an order date. ISO-style strings are accepted
// directly; plain numbers above 1000 are read as spreadsheet serial dates
// anchored at 1899-12-30. Serial dates resolving outside 2000-2100 are
// rejected rather than silently committed.
func ParseOrderDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 1000 {
		return time.Time{}, fmt.Errorf("unrecognized date value %q", raw)
	}

	t := serialDateEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	if t.Year() < 2000 || t.Year() > 2100 {
		return time.Time{}, fmt.Errorf("serial date %s resolves to %s, outside the accepted range", raw, t.Format("2006-01-02"))
	}
	return t, nil
}
