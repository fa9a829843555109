// Package utils provides several helper functions used throughout the library. Primarily it provides the lenient
// number parsing used by the typed setting accessors. Setting values come from files written by other tools, so the
// parsers accept a numeric prefix and ignore whatever follows it, the same way C's atoi and atof behave.
package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Atoi parses the leading integer of s. Leading whitespace and a single sign are accepted, parsing stops at the first
// non-digit. If there is no leading integer it returns 0. Values outside the int64 range are clamped.
func Atoi(s string) int {
	s = trimLeadingSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digits := scanDigits(s[end:])
	if digits == 0 {
		return 0
	}
	end += digits

	// On a range error ParseInt returns the clamped value
	v, _ := strconv.ParseInt(s[:end], 10, 64)

	return int(clampInt64(v))
}

// Atof parses the leading floating point number of s. If there is no leading number it returns 0. Values that
// overflow are returned as +Inf or -Inf.
func Atof(s string) float64 {
	v, _ := parseFloatPrefix(s)
	return v
}

// Stod parses the leading floating point number of s and reports whether a number was found. Unlike Atof, an
// overflowing value is reported as a failure.
func Stod(s string) (float64, bool) {
	v, err := parseFloatPrefix(s)
	if err != nil {
		return 0, false
	}

	return v, true
}

type parseError string

func (e parseError) Error() string {
	return string(e)
}

const (
	errNoNumber parseError = "no number found"
	errRange    parseError = "number out of range"
)

func parseFloatPrefix(s string) (float64, error) {
	prefix := FloatPrefix(s)
	if prefix == "" {
		return 0, errNoNumber
	}

	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, errRange
		}
		return 0, errNoNumber
	}

	return v, nil
}

// FloatPrefix returns the longest prefix of s (after leading whitespace) that forms a decimal floating point
// literal, including the special values inf, infinity and nan. It returns an empty string when there is none.
func FloatPrefix(s string) string {
	s = trimLeadingSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	rest := strings.ToLower(s[end:])
	for _, special := range []string{"infinity", "inf", "nan"} {
		if strings.HasPrefix(rest, special) {
			return s[:end+len(special)]
		}
	}

	intDigits := scanDigits(s[end:])
	end += intDigits

	fracDigits := 0
	if end < len(s) && s[end] == '.' {
		fracDigits = scanDigits(s[end+1:])
		if intDigits > 0 || fracDigits > 0 {
			end += 1 + fracDigits
		}
	}

	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		if n := scanDigits(s[exp:]); n > 0 {
			end = exp + n
		}
	}

	return s[:end]
}

func scanDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func trimLeadingSpace(s string) string {
	return strings.TrimLeft(s, " \t\n\v\f\r")
}

func clampInt64(v int64) int64 {
	if strconv.IntSize == 32 {
		if v > math.MaxInt32 {
			return math.MaxInt32
		}
		if v < math.MinInt32 {
			return math.MinInt32
		}
	}
	return v
}
