package model

import (
	"fmt"

	U "chartable/util"
)

// Event breakdown results carry the event name, the breakdown columns and
// an aggregate column named either "count" or "aggregate" depending on
// the query class.
const (
	HeaderEventName = "event_name"
	HeaderCount     = "count"
	HeaderAggregate = "aggregate"
	HeaderDateTime  = "datetime"

	FieldLabel = "label"
	FieldCount = "count"
	FieldValue = "value"
)

// BreakdownFieldKey Record key for the i-th breakdown column. The
// positional suffix disambiguates repeated property names.
func BreakdownFieldKey(property string, position int) string {
	return fmt.Sprintf("%s - %d", property, position)
}

// breakdownHeaders Returns the breakdown column names sitting between the
// event name and the aggregate column. Column order carries no guarantee,
// so a reversed range means no breakdown columns rather than a fault.
func breakdownHeaders(headers []string, offset, countIndex int) []string {
	if countIndex <= offset {
		return []string{}
	}
	return headers[offset:countIndex]
}

func countHeaderIndex(headers []string) int {
	if index, found := FindHeaderIndex(headers, HeaderCount); found {
		return index
	}
	return HeaderIndex(headers, HeaderAggregate)
}

// FormatEventBreakdownData Projects an event breakdown result into one
// record per row: the reconstructed grouping label, the aggregate under
// both the count and value fields, and each breakdown value under its
// positional field key. Breakdown columns sit between the event name and
// the aggregate column.
func FormatEventBreakdownData(result *QueryResult, breakdowns []GroupByProperty) []TableRecord {
	if result.IsEmpty() {
		return []TableRecord{}
	}
	eventNameIndex := HeaderIndex(result.Headers, HeaderEventName)
	countIndex := countHeaderIndex(result.Headers)
	if countIndex == -1 {
		return []TableRecord{}
	}

	breakdownOffset := eventNameIndex + 1
	grns := BreakdownGranularities(breakdownHeaders(result.Headers, breakdownOffset, countIndex), breakdowns)

	records := make([]TableRecord, 0, len(result.Rows))
	for position, row := range result.Rows {
		record := TableRecord{FieldIndex: position}
		for i, breakdown := range breakdowns {
			grn := ""
			if i < len(grns) {
				grn = grns[i]
			}
			key := BreakdownFieldKey(breakdown.Property, i)
			if breakdownOffset+i < len(row) {
				record[key] = ParseDateTimeLabel(grn, row[breakdownOffset+i])
			} else {
				record[key] = CellValueNA
			}
		}
		record[FieldLabel] = RowLabel(row, breakdownOffset, breakdowns, grns)
		count := CellFloat(row, countIndex)
		record[FieldCount] = count
		record[FieldValue] = count
		records = append(records, record)
	}
	return records
}

// DateSeries is one chart line of a date bucketed breakdown: the grouping
// label and one value per category.
type DateSeries struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// FormatDateSeriesData Folds a date bucketed breakdown result into one
// series per grouping label. Categories are the distinct datetime bucket
// labels in first-seen row order; rows whose label is not among the
// aggregate records are dropped.
func FormatDateSeriesData(result *QueryResult, aggregate []TableRecord,
	breakdowns []GroupByProperty, grn string) ([]string, []DateSeries) {

	if result.IsEmpty() || len(aggregate) == 0 {
		return []string{}, []DateSeries{}
	}
	dateIndex := HeaderIndex(result.Headers, HeaderDateTime)
	eventNameIndex := HeaderIndex(result.Headers, HeaderEventName)
	countIndex := countHeaderIndex(result.Headers)
	if dateIndex == -1 || countIndex == -1 {
		return []string{}, []DateSeries{}
	}

	breakdownOffset := eventNameIndex + 1
	grns := BreakdownGranularities(breakdownHeaders(result.Headers, breakdownOffset, countIndex), breakdowns)

	categories := make([]string, 0)
	categoryIndex := make(map[string]int)
	for _, row := range result.Rows {
		label := dateBucketLabel(row, dateIndex, grn)
		if _, seen := categoryIndex[label]; !seen {
			categoryIndex[label] = len(categories)
			categories = append(categories, label)
		}
	}

	seriesByLabel := make(map[string]int, len(aggregate))
	series := make([]DateSeries, 0, len(aggregate))
	for _, record := range aggregate {
		label, _ := U.GetValueAsString(record[FieldLabel])
		seriesByLabel[label] = len(series)
		series = append(series, DateSeries{Name: label, Data: make([]float64, len(categories))})
	}

	for _, row := range result.Rows {
		label := RowLabel(row, breakdownOffset, breakdowns, grns)
		seriesPosition, exists := seriesByLabel[label]
		if !exists {
			continue
		}
		bucket := categoryIndex[dateBucketLabel(row, dateIndex, grn)]
		series[seriesPosition].Data[bucket] = CellFloat(row, countIndex)
	}
	return categories, series
}

func dateBucketLabel(row []interface{}, dateIndex int, grn string) string {
	if dateIndex < 0 || dateIndex >= len(row) {
		return CellValueNA
	}
	t, ok := U.ParseCellTime(row[dateIndex])
	if !ok {
		return CellString(row, dateIndex)
	}
	return U.DateLabelByGranularity(t, grn)
}
