// Package parse holds the primitive cell parsers shared by every document
// extractor. All parsers accept raw, possibly empty or malformed cell values
// and return a typed value with a documented fallback; none of them panic.
package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Fraction parses a "made/attempted" cell such as "3/8". A cell without a
// slash is treated as an attempt-less count: ("12", "") -> (12, 0) / (0, 0).
// Any malformed input yields (0, 0).
func Fraction(s string) (made, attempted int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		m, err1 := strconv.Atoi(strings.TrimSpace(s[:i]))
		a, err2 := strconv.Atoi(strings.TrimSpace(s[i+1:]))
		if err1 != nil || err2 != nil {
			return 0, 0
		}
		return m, a
	}
	// Whole-number cells sometimes render as "12.0" in spreadsheet exports.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, 0
	}
	return int(f), 0
}

// ClockSeconds converts an "MM:SS" clock to whole seconds; malformed -> 0.
func ClockSeconds(s string) int {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0
	}
	m, err1 := strconv.Atoi(parts[0])
	sec, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	return m*60 + sec
}

// didNotPlay is the sentinel the federation software prints for players who
// stayed on the bench the whole game ("N'a Pas Joué").
const didNotPlay = "NPJ"

// Minutes normalizes the minutes-played cell. Three encodings occur: a bare
// integer, an "MM:SS" clock (seconds are discarded), and the did-not-play
// sentinel. Anything else -> 0.
func Minutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, didNotPlay) {
		return 0
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		m, err := strconv.Atoi(s[:i])
		if err != nil {
			return 0
		}
		return m
	}
	m, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return m
}

// Int parses an integer cell, tolerating surrounding space and a trailing
// ".0" from spreadsheet exports; malformed -> 0.
func Int(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// Decimal parses a locale-formatted decimal ("2,4" or "2.4"). Non-finite
// results and parse failures yield def.
func Decimal(s string, def float64) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// frenchMonths maps lowercase month names and their common abbreviations
// (with trailing periods already stripped) to month numbers. Both accented
// and plain spellings are listed.
var frenchMonths = map[string]int{
	"janvier": 1, "janv": 1, "jan": 1,
	"février": 2, "fevrier": 2, "févr": 2, "fevr": 2, "fév": 2, "fev": 2,
	"mars": 3, "mar": 3,
	"avril": 4, "avr": 4,
	"mai": 5,
	"juin": 6,
	"juillet": 7, "juil": 7,
	"août": 8, "aout": 8,
	"septembre": 9, "sept": 9, "sep": 9,
	"octobre": 10, "oct": 10,
	"novembre": 11, "nov": 11,
	"décembre": 12, "decembre": 12, "déc": 12, "dec": 12,
}

var frenchDateRe = regexp.MustCompile(`^(\d{1,2})\s+(\S+?)\.?\s+(\d{4})$`)

// FrenchDate converts "DD <month> YYYY" (French month names or their
// abbreviations, with or without a trailing period) to ISO "YYYY-MM-DD".
// Unrecognized input is returned unchanged so no data is dropped.
func FrenchDate(s string) string {
	m := frenchDateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	month, ok := frenchMonths[strings.ToLower(m[2])]
	if !ok || day < 1 || day > 31 {
		return s
	}
	return strconv.Itoa(year) + "-" + pad2(month) + "-" + pad2(day)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
