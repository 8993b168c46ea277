package model

import (
	"sort"

	U "chartable/util"
)

// ChartSeriesPoint is one category of a single metric chart.
type ChartSeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Index int     `json:"index"`
}

// GroupedChartPoint is one category of a multi metric chart; Values is
// keyed by the metric record key.
type GroupedChartPoint struct {
	Name   string             `json:"name"`
	Values map[string]float64 `json:"values"`
}

func visibleIndexSet(visibleIndices []int) map[int]bool {
	visible := make(map[int]bool, len(visibleIndices))
	for _, index := range visibleIndices {
		visible[index] = true
	}
	return visible
}

// FormatChartData Folds projected records into chart series points,
// keeping exactly the records whose source row position is in
// visibleIndices, in original row order.
func FormatChartData(records []TableRecord, labelKey, valueKey string, visibleIndices []int) []ChartSeriesPoint {
	visible := visibleIndexSet(visibleIndices)
	points := make([]ChartSeriesPoint, 0, len(visibleIndices))
	for _, record := range records {
		if !visible[record.Index()] {
			continue
		}
		label, _ := U.GetValueAsString(record[labelKey])
		points = append(points, ChartSeriesPoint{
			Label: label,
			Value: sortWeight(record, valueKey),
			Index: record.Index(),
		})
	}
	// chart categories follow source row order, not the table sort
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Index < points[j].Index
	})
	return points
}

// FormatGroupedChartData Folds records into multi metric chart points and
// returns the flat list of every plotted value, which the chart layer
// uses for axis scaling. All metric values land on the flat list, one
// entry per metric per visible record.
func FormatGroupedChartData(records []TableRecord, labelKey string, valueKeys []string,
	visibleIndices []int) ([]GroupedChartPoint, []float64) {

	visible := visibleIndexSet(visibleIndices)
	visibleRecords := make([]TableRecord, 0, len(visibleIndices))
	for _, record := range records {
		if visible[record.Index()] {
			visibleRecords = append(visibleRecords, record)
		}
	}
	sort.SliceStable(visibleRecords, func(i, j int) bool {
		return visibleRecords[i].Index() < visibleRecords[j].Index()
	})

	points := make([]GroupedChartPoint, 0, len(visibleRecords))
	allValues := make([]float64, 0, len(visibleRecords)*len(valueKeys))
	for _, record := range visibleRecords {
		name, _ := U.GetValueAsString(record[labelKey])
		point := GroupedChartPoint{Name: name, Values: make(map[string]float64, len(valueKeys))}
		for _, key := range valueKeys {
			value := sortWeight(record, key)
			point.Values[key] = value
			allValues = append(allValues, value)
		}
		points = append(points, point)
	}
	return points, allValues
}

// VisibleRecords Sorts the records and keeps the top maxVisible. The rest
// are dropped, not folded into an "other" bucket.
func VisibleRecords(records []TableRecord, sorter *Sorter, maxVisible int) []TableRecord {
	sorted := SortResults(records, sorter)
	if maxVisible < 0 || len(sorted) <= maxVisible {
		return sorted
	}
	return sorted[:maxVisible]
}

// VisibleIndices Returns the source row positions of the given records,
// for carrying a visibility selection across recomputations.
func VisibleIndices(records []TableRecord) []int {
	indices := make([]int, 0, len(records))
	for _, record := range records {
		indices = append(indices, record.Index())
	}
	return indices
}
