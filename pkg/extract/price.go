package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Convention is a number formatting convention for prices.
type Convention int

// Price formatting conventions.
const (
	// ConventionUnknown infers the decimal separator from the string shape.
	ConventionUnknown Convention = iota
	// ConventionUS uses "," for thousands and "." for decimals: 1,234.56.
	ConventionUS
	// ConventionEU uses "." for thousands and "," for decimals: 1.234,56.
	ConventionEU
)

func (c Convention) String() string {
	switch c {
	case ConventionUS:
		return "us"
	case ConventionEU:
		return "eu"
	default:
		return "unknown"
	}
}

var (
	nonPriceChars   = regexp.MustCompile(`[^0-9.,\s-]`)
	spacedThousands = regexp.MustCompile(`^\d{1,3}(?:\s\d{3})+\b(?:[.,]\d+)*`)
	duplicatedPrice = regexp.MustCompile(`^(\d+)[.,](\d{2})(\d+)$`)
	decimalSuffix   = regexp.MustCompile(`[.,]\d{2}$`)
	euDecimalSuffix = regexp.MustCompile(`,\d{2}$`)
)

// NormalizePrice converts a raw, locale-ambiguous price string into a
// decimal value, inferring the decimal separator from the string shape.
//
// A trailing separator followed by exactly two digits is the decimal point;
// otherwise commas are thousands separators. Strings shaped like
// "329,00329", produced when adjacent DOM text nodes repeat the price, are
// collapsed to "329.00".
func NormalizePrice(raw string) (float64, bool) {
	s := cleanPrice(raw)
	if s == "" {
		return 0, false
	}

	if m := duplicatedPrice.FindStringSubmatch(s); m != nil {
		lead, frac, tail := m[1], m[2], m[3]
		if strings.HasPrefix(lead, tail) || strings.HasSuffix(lead, tail) {
			return parseDecimal(lead + "." + frac)
		}
	}

	return parseDecimal(inferDecimal(s))
}

// NormalizeRetailerPrice is NormalizePrice with an explicit convention taken
// from the currency symbol in raw or, failing that, from the storefront
// domain of hostname.
func NormalizeRetailerPrice(raw, hostname string) (float64, bool) {
	switch PriceConvention(raw, hostname) {
	case ConventionUS:
		return parseDecimal(strings.ReplaceAll(cleanPrice(raw), ",", ""))
	case ConventionEU:
		s := cleanPrice(raw)
		if euDecimalSuffix.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
			return parseDecimal(strings.Replace(s, ",", ".", 1))
		}
		return NormalizePrice(raw)
	default:
		return NormalizePrice(raw)
	}
}

// PriceConvention decides the formatting convention for a price string.
func PriceConvention(raw, hostname string) Convention {
	switch {
	case strings.Contains(raw, "R$"):
		return ConventionEU
	case strings.Contains(raw, "€"):
		return ConventionEU
	case strings.ContainsAny(raw, "$£¥￥"):
		return ConventionUS
	}
	if sf, ok := storefrontFor(hostname); ok {
		return sf.convention
	}
	return ConventionUnknown
}

// cleanPrice reduces raw to the first number in it: digits and separators,
// with a leading minus kept. Whitespace only joins 3-digit thousands groups
// ("1 234,56"); any other gap or interior dash ends the number, so ranges
// and old/new price pairs yield their first price.
func cleanPrice(raw string) string {
	s := strings.TrimSpace(nonPriceChars.ReplaceAllString(raw, " "))
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = strings.TrimSpace(s[1:])
	}

	if m := spacedThousands.FindString(s); m != "" {
		s = strings.Join(strings.Fields(m), "")
	} else if i := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	}); i >= 0 {
		s = s[:i]
	}

	if negative && s != "" {
		return "-" + s
	}
	return s
}

// inferDecimal rewrites s into a form strconv can parse.
func inferDecimal(s string) string {
	if loc := decimalSuffix.FindStringIndex(s); loc != nil {
		whole := strings.NewReplacer(".", "", ",", "").Replace(s[:loc[0]])
		return whole + "." + s[loc[0]+1:]
	}
	return strings.ReplaceAll(s, ",", "")
}

// parseDecimal parses s and rounds to cents. Negative and non-finite values
// are rejected.
func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return validPrice(v)
}

func validPrice(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return roundCents(v), true
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
