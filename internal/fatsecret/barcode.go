package fatsecret

import (
	"strings"
)

// ToGTIN13 reduces a raw scanned string to a 13-digit GTIN: non-digits are
// stripped, longer codes keep their last 13 digits, shorter ones are
// left-padded with zeros.
func ToGTIN13(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 13 {
		return digits[len(digits)-13:]
	}
	return strings.Repeat("0", 13-len(digits)) + digits
}

// ValidGTIN13 reports whether code is 13 digits with a correct mod-10
// weighted check digit (weights alternate 1/3 from the left on the first
// twelve digits).
func ValidGTIN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	sum := 0
	for i, r := range code {
		if r < '0' || r > '9' {
			return false
		}
		n := int(r - '0')
		if i == 12 {
			check := (10 - sum%10) % 10
			return check == n
		}
		if i%2 == 0 {
			sum += n
		} else {
			sum += n * 3
		}
	}
	return false
}
