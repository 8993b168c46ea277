package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numericRecords() []TableRecord {
	return []TableRecord{
		{FieldIndex: 0, "label": "a", "value": float64(10)},
		{FieldIndex: 1, "label": "b", "value": float64(30)},
		{FieldIndex: 2, "label": "c", "value": float64(20)},
		{FieldIndex: 3, "label": "d", "value": float64(30)},
	}
}

func labels(records []TableRecord) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record["label"].(string))
	}
	return out
}

func TestSortDataDescend(t *testing.T) {
	sorted := SortData(numericRecords(), "value", SortOrderDescend)
	assert.Equal(t, []string{"b", "d", "c", "a"}, labels(sorted))
}

func TestSortDataStableTies(t *testing.T) {
	// equal keys keep their input order
	records := []TableRecord{
		{FieldIndex: 0, "label": "first", "value": float64(5)},
		{FieldIndex: 1, "label": "second", "value": float64(5)},
		{FieldIndex: 2, "label": "third", "value": float64(5)},
	}
	sorted := SortData(records, "value", SortOrderDescend)
	assert.Equal(t, []string{"first", "second", "third"}, labels(sorted))
}

func TestSortDataIdempotent(t *testing.T) {
	once := SortData(numericRecords(), "value", SortOrderAscend)
	twice := SortData(once, "value", SortOrderAscend)
	assert.Equal(t, once, twice)
}

func TestSortDataNaNWeighsZero(t *testing.T) {
	records := []TableRecord{
		{FieldIndex: 0, "label": "neg", "value": float64(-1)},
		{FieldIndex: 1, "label": "nan", "value": math.NaN()},
		{FieldIndex: 2, "label": "pos", "value": float64(1)},
	}
	sorted := SortData(records, "value", SortOrderAscend)
	assert.Equal(t, []string{"neg", "nan", "pos"}, labels(sorted))
}

func TestSortDataComparisonCell(t *testing.T) {
	records := []TableRecord{
		{FieldIndex: 0, "label": "low", "value": NewComparisonCell(10, 5)},
		{FieldIndex: 1, "label": "high", "value": NewComparisonCell(90, 100)},
	}
	sorted := SortData(records, "value", SortOrderDescend)
	assert.Equal(t, []string{"high", "low"}, labels(sorted))
}

func TestSortDataDoesNotMutateInput(t *testing.T) {
	records := numericRecords()
	SortData(records, "value", SortOrderDescend)
	assert.Equal(t, []string{"a", "b", "c", "d"}, labels(records))
}

func TestSortDataByAlphabets(t *testing.T) {
	records := []TableRecord{
		{FieldIndex: 0, "label": "Safari"},
		{FieldIndex: 1, "label": "Chrome"},
		{FieldIndex: 2, "label": "Firefox"},
	}
	sorted := SortDataByAlphabets(records, "label", SortOrderAscend)
	assert.Equal(t, []string{"Chrome", "Firefox", "Safari"}, labels(sorted))
}

func TestSortWeekFormattedData(t *testing.T) {
	records := []TableRecord{
		{FieldIndex: 0, "label": "Oct 15 to Oct 21"},
		{FieldIndex: 1, "label": "Oct 1 to Oct 7"},
		{FieldIndex: 2, "label": "Oct 8 to Oct 14"},
	}
	sorted := SortWeekFormattedData(records, "label", SortOrderAscend)
	assert.Equal(t, []string{"Oct 1 to Oct 7", "Oct 8 to Oct 14", "Oct 15 to Oct 21"}, labels(sorted))
}

func TestSortDataByDuration(t *testing.T) {
	records := []TableRecord{
		{FieldIndex: 0, "label": "2h 5m"},
		{FieldIndex: 1, "label": "45s"},
		{FieldIndex: 2, "label": "3m 20s"},
	}
	sorted := SortDataByDuration(records, "label", SortOrderAscend)
	assert.Equal(t, []string{"45s", "3m 20s", "2h 5m"}, labels(sorted))
}

func TestSortResultsNoKeyPreservesOrder(t *testing.T) {
	records := numericRecords()
	assert.Equal(t, labels(records), labels(SortResults(records, nil)))
	assert.Equal(t, labels(records), labels(SortResults(records, &Sorter{})))
}

func TestSortResultsDispatch(t *testing.T) {
	records := []TableRecord{
		{FieldIndex: 0, "label": "b", "value": float64(1)},
		{FieldIndex: 1, "label": "a", "value": float64(2)},
	}
	sorted := SortResults(records, &Sorter{Key: "label", Order: SortOrderAscend, Type: PropTypeCategorical})
	assert.Equal(t, []string{"a", "b"}, labels(sorted))

	sorted = SortResults(records, &Sorter{Key: "value", Order: SortOrderDescend, Type: PropTypeNumerical})
	assert.Equal(t, []string{"a", "b"}, labels(sorted))

	durations := []TableRecord{
		{FieldIndex: 0, "label": "2h 5m"},
		{FieldIndex: 1, "label": "45s"},
	}
	sorted = SortResults(durations, &Sorter{Key: "label", Order: SortOrderAscend, Type: PropTypeDuration})
	assert.Equal(t, []string{"45s", "2h 5m"}, labels(sorted))
}
