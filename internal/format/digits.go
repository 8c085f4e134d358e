package format

import "strings"

// DigitGroup is the number of fractional digits per group in GroupDigits.
const DigitGroup = 10

// GroupDigits inserts a space after every DigitGroup fractional digits of a
// rendered decimal such as "3.14159...". Strings without sep are returned
// unchanged.
func GroupDigits(s string, sep byte) string {
	i := strings.IndexByte(s, sep)
	if i < 0 {
		return s
	}
	frac := s[i+1:]
	if len(frac) <= DigitGroup {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(frac)/DigitGroup)
	b.WriteString(s[:i+1])
	for j := 0; j < len(frac); j += DigitGroup {
		if j > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(frac[j:min(j+DigitGroup, len(frac))])
	}
	return b.String()
}

// Truncate shortens a long rendering to its first and last edge characters.
// Strings no longer than limit are returned unchanged.
func Truncate(s string, limit, edge int) string {
	if len(s) <= limit || 2*edge >= len(s) {
		return s
	}
	return s[:edge] + "..." + s[len(s)-edge:]
}
