package analyzer

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// rttPattern matches a bracketed timestamp followed later in the line by RTT=<n>ms.
// Digits are any Unicode decimal digit (Nd), not only ASCII.
var rttPattern = regexp.MustCompile(`\[(\p{Nd}+:\p{Nd}+:\p{Nd}+)\].*RTT=(\p{Nd}+)ms`)

// categoryOrder is the classification priority; the first substring found wins.
var categoryOrder = []Category{CategoryError, CategoryWarning, CategoryPacket}

// Extract returns the measurement carried by a line, if any.
// The timestamp is not validated; "99:99:99" is returned verbatim.
func Extract(line string) (Measurement, bool) {
	matches := rttPattern.FindStringSubmatch(line)
	if len(matches) < 3 {
		return Measurement{}, false
	}

	return Measurement{Timestamp: matches[1], RTTMs: parseDigits(matches[2])}, true
}

// parseDigits converts a run of Nd digits to an int. Values beyond
// math.MaxInt are clamped so the sample is still kept as a spike.
func parseDigits(s string) int {
	n := 0
	for _, r := range s {
		d := digitValue(r)
		if n > (math.MaxInt-d)/10 {
			return math.MaxInt
		}
		n = n*10 + d
	}
	return n
}

// digitValue returns the value of a decimal digit rune. Nd digits are
// encoded in contiguous blocks of ten starting at zero, so the value is the
// offset from the start of the surrounding run of digits, modulo ten.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}

// Classify assigns a category by case-sensitive substring match.
func Classify(line string) Category {
	for _, c := range categoryOrder {
		if strings.Contains(line, string(c)) {
			return c
		}
	}
	return CategoryInfo
}
