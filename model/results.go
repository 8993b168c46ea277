package model

import (
	"math"

	U "chartable/util"
)

// QueryResult is the universal tabular shape returned by the analytics
// query endpoints. Every row has the same length as Headers; column order
// carries no meaning beyond indexing.
type QueryResult struct {
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
	Meta    interface{}     `json:"meta,omitempty"`
}

type ResultGroup struct {
	Results []QueryResult `json:"result_group"`
	Query   interface{}   `json:"query,omitempty"`
}

type HeaderRows struct {
	Title   string          `json:"title"`
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
}

// IsEmpty reports whether the result carries no usable data. Empty input
// is valid everywhere and projects to an empty output.
func (result *QueryResult) IsEmpty() bool {
	return result == nil || len(result.Headers) == 0 || len(result.Rows) == 0
}

// FindHeaderIndex Resolves a semantic column name to its positional index
// by exact string match. The found flag forces callers to handle absent
// columns instead of silently indexing with -1.
func FindHeaderIndex(headers []string, name string) (int, bool) {
	for index, header := range headers {
		if header == name {
			return index, true
		}
	}
	return -1, false
}

// HeaderIndex is the -1 convention variant of FindHeaderIndex, kept for
// call sites that carry the index into cell accessors below.
func HeaderIndex(headers []string, name string) int {
	index, _ := FindHeaderIndex(headers, name)
	return index
}

// CellValueNA is rendered for string cells of absent columns.
const CellValueNA = "NA"

// CellFloat Reads a numeric cell. Absent columns and short rows yield NaN
// so downstream formatting and sorting treat them uniformly.
func CellFloat(row []interface{}, index int) float64 {
	if index < 0 || index >= len(row) {
		return math.NaN()
	}
	return U.SafeConvertToFloat64(row[index])
}

// CellString Reads a string cell, NA for absent columns.
func CellString(row []interface{}, index int) string {
	if index < 0 || index >= len(row) {
		return CellValueNA
	}
	value, err := U.GetValueAsString(row[index])
	if err != nil {
		return CellValueNA
	}
	return value
}
