package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	U "chartable/util"
)

// FormatCount Rounds a value to the given number of fractional digits.
// Whole numbers pass through untouched, NaN propagates.
func FormatCount(value float64, precision int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	if value == math.Trunc(value) {
		return value
	}
	return U.FloatRoundOffWithPrecision(value, precision)
}

// CalcChangePercent Computes the percentage change from b to a, rounded
// to one fractional digit. A zero base yields an infinity with the sign
// of a; 0 over 0 yields NaN. Callers must render infinities with
// ChangeValueString before doing arithmetic on the result.
func CalcChangePercent(a, b float64) float64 {
	if b == 0 {
		if a > 0 {
			return math.Inf(1)
		}
		if a < 0 {
			return math.Inf(-1)
		}
		return math.NaN()
	}
	return FormatCount(((a-b)/b)*100, 1)
}

// ChangeValueString Renders a change percentage for the serialization
// boundary: the literal strings "Infinity" / "-Infinity" for divisions
// by zero, "NA" for NaN, the plain number otherwise.
func ChangeValueString(value float64) string {
	if math.IsInf(value, 1) {
		return "Infinity"
	}
	if math.IsInf(value, -1) {
		return "-Infinity"
	}
	if math.IsNaN(value) {
		return CellValueNA
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// CalculatePercentage Returns num over den as a percentage rounded to the
// given precision; 0 when the denominator is 0.
func CalculatePercentage(numerator, denominator float64, precision int) float64 {
	if denominator == 0 {
		return 0
	}
	return FormatCount((numerator/denominator)*100, precision)
}

// FormatDuration Renders seconds in the report duration notation:
// "45s", "3m 20s", "2h 5m", "1d 4h".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) {
		return CellValueNA
	}
	s := int64(seconds)
	if s < 60 {
		return fmt.Sprintf("%ds", s)
	}
	if s < 3600 {
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	}
	if s < 86400 {
		return fmt.Sprintf("%dh %dm", s/3600, (s%3600)/60)
	}
	return fmt.Sprintf("%dd %dh", s/86400, (s%86400)/3600)
}

// DurationInSeconds Parses the report duration notation back to seconds,
// the inverse of FormatDuration. Unknown notation parses to 0.
func DurationInSeconds(duration string) float64 {
	if !strings.Contains(duration, " ") {
		return U.GetNumberFromAnyString(strings.Split(duration, "s")[0])
	}
	parts := strings.SplitN(duration, " ", 2)
	first, second := parts[0], parts[1]
	if strings.Contains(first, "d") {
		days := U.GetNumberFromAnyString(first)
		hours := U.GetNumberFromAnyString(second)
		return days*86400 + hours*3600
	}
	if strings.Contains(first, "h") {
		hours := U.GetNumberFromAnyString(first)
		minutes := U.GetNumberFromAnyString(second)
		return hours*3600 + minutes*60
	}
	if strings.Contains(first, "m") {
		minutes := U.GetNumberFromAnyString(first)
		seconds := U.GetNumberFromAnyString(second)
		return minutes*60 + seconds
	}
	return 0
}
