package model

import (
	"strings"

	U "chartable/util"
)

// GroupByProperty describes one breakdown dimension applied to a result.
// Granularity is set only for datetime typed properties and selects the
// bucket label format.
type GroupByProperty struct {
	Property     string `json:"pr"`
	PropCategory string `json:"en"`
	PropType     string `json:"pty,omitempty"`
	Granularity  string `json:"grn,omitempty"`
}

const (
	PropCategoryEvent = "event"
	PropCategoryUser  = "user"

	PropTypeCategorical = "categorical"
	PropTypeNumerical   = "numerical"
	PropTypeDateTime    = "datetime"
	PropTypeDuration    = "duration"
)

// BreakdownGranularities Aligns a slice of breakdown column names with
// their group-by properties and returns the granularity per column.
// Each property is consumed at most once so repeated property names map
// to distinct columns in first-match order. The input slice is copied,
// never mutated.
func BreakdownGranularities(headerSlice []string, breakdowns []GroupByProperty) []string {
	grns := make([]string, 0, len(headerSlice))
	working := make([]GroupByProperty, len(breakdowns))
	copy(working, breakdowns)

	for _, header := range headerSlice {
		matched := -1
		for i := range working {
			if working[i].Property == header {
				matched = i
				break
			}
		}
		if matched == -1 {
			grns = append(grns, "")
			continue
		}
		grns = append(grns, working[matched].Granularity)
		working = append(working[:matched], working[matched+1:]...)
	}
	return grns
}

// ParseDateTimeLabel Formats a breakdown cell for display. Datetime typed
// cells are bucket-labeled by granularity, everything else is verbatim.
func ParseDateTimeLabel(grn string, value interface{}) string {
	if !U.IsDateTimeGranularity(grn) {
		return CellString([]interface{}{value}, 0)
	}
	t, ok := U.ParseCellTime(value)
	if !ok {
		return CellString([]interface{}{value}, 0)
	}
	return U.DateLabelByGranularity(t, grn)
}

// RowLabel Rebuilds the grouping key for a row from its leading breakdown
// columns. The label doubles as the comparison-period join key, so the
// same breakdowns must be passed on both sides.
func RowLabel(row []interface{}, offset int, breakdowns []GroupByProperty, grns []string) string {
	segments := make([]string, 0, len(breakdowns))
	for i := range breakdowns {
		grn := ""
		if i < len(grns) {
			grn = grns[i]
		}
		index := offset + i
		if index >= len(row) {
			segments = append(segments, CellValueNA)
			continue
		}
		segments = append(segments, ParseDateTimeLabel(grn, row[index]))
	}
	return strings.Join(segments, ",")
}
