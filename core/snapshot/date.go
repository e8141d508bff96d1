package snapshot

import (
	"regexp"
	"strconv"
	"strings"
)

// NoDate is the sort key used for files whose name carries no valid date.
const NoDate = "00000000"

const (
	minYear = 2020
	maxYear = 2100
)

var eightDigits = regexp.MustCompile(`\d{8}`)

// ExtractDate returns the 8-digit date embedded in a file name.
// The second return value is false when no acceptable date is present.
func ExtractDate(filename string) (string, bool) {
	if m := eightDigits.FindString(filename); m != "" && ValidDate(m) {
		return m, true
	}

	// Legacy names: the date sits between the last '_' and the last '.'.
	under := strings.LastIndex(filename, "_")
	dot := strings.LastIndex(filename, ".")
	if under < 0 || dot < 0 || dot <= under {
		return "", false
	}
	part := filename[under+1 : dot]
	if len(part) == 8 && allDigits(part) && ValidDate(part) {
		return part, true
	}
	return "", false
}

// ValidDate reports whether an 8-digit YYYYMMDD string is in the accepted range.
func ValidDate(s string) bool {
	if len(s) != 8 || !allDigits(s) {
		return false
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[4:6])
	day, _ := strconv.Atoi(s[6:8])
	return year >= minYear && year <= maxYear &&
		month >= 1 && month <= 12 &&
		day >= 1 && day <= 31
}

// NormalizeDate formats YYYYMMDD as YYYY-MM-DD. Other input is returned unchanged.
func NormalizeDate(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[0:4] + "-" + s[4:6] + "-" + s[6:8]
}

// sortKey is the extracted date, or NoDate when the name has none.
func sortKey(filename string) string {
	if d, ok := ExtractDate(filename); ok {
		return d
	}
	return NoDate
}

// allDigits only accepts ASCII digits, unlike unicode.IsDigit.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
