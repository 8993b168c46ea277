package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func browserBreakdown() []GroupByProperty {
	return []GroupByProperty{{Property: "Browser", PropCategory: PropCategoryUser}}
}

func TestFormatEventBreakdownData(t *testing.T) {
	result := &QueryResult{
		Headers: []string{"event_name", "Browser", "count"},
		Rows: [][]interface{}{
			{"Signup", "Chrome", 120},
			{"Signup", "Safari", 80},
		},
	}
	records := FormatEventBreakdownData(result, browserBreakdown())
	assert.Len(t, records, 2)

	assert.Equal(t, 0, records[0].Index())
	assert.Equal(t, "Chrome", records[0][FieldLabel])
	assert.Equal(t, "Chrome", records[0][BreakdownFieldKey("Browser", 0)])
	assert.Equal(t, float64(120), records[0][FieldCount])
	assert.Equal(t, float64(120), records[0][FieldValue])

	assert.Equal(t, "Safari", records[1][FieldLabel])
}

func TestFormatEventBreakdownDataAggregateHeader(t *testing.T) {
	result := &QueryResult{
		Headers: []string{"event_name", "Browser", "aggregate"},
		Rows:    [][]interface{}{{"Signup", "Chrome", 42}},
	}
	records := FormatEventBreakdownData(result, browserBreakdown())
	assert.Len(t, records, 1)
	assert.Equal(t, float64(42), records[0][FieldCount])
}

func TestFormatEventBreakdownDataDateTyped(t *testing.T) {
	result := &QueryResult{
		Headers: []string{"event_name", "day", "Browser", "count"},
		Rows: [][]interface{}{
			// epoch for 2023-10-01 UTC
			{"Signup", 1696118400, "Chrome", 12},
		},
	}
	breakdowns := []GroupByProperty{
		{Property: "day", Granularity: "week"},
		{Property: "Browser"},
	}
	records := FormatEventBreakdownData(result, breakdowns)
	assert.Len(t, records, 1)
	assert.Equal(t, "Oct 1,Chrome", records[0][FieldLabel])
}

func TestFormatEventBreakdownDataCountBeforeEventName(t *testing.T) {
	// column order carries no guarantee; a count column ahead of the
	// event name leaves no breakdown column range to slice
	result := &QueryResult{
		Headers: []string{"count", "event_name", "Browser"},
		Rows:    [][]interface{}{{120, "Signup", "Chrome"}},
	}
	records := FormatEventBreakdownData(result, browserBreakdown())
	assert.Len(t, records, 1)
	assert.Equal(t, float64(120), records[0][FieldCount])
}

func TestFormatDateSeriesDataCountBeforeEventName(t *testing.T) {
	seriesResult := &QueryResult{
		Headers: []string{"count", "datetime", "event_name", "Browser"},
		Rows:    [][]interface{}{{10, 1696118400, "Signup", "Chrome"}},
	}
	aggregate := []TableRecord{{FieldIndex: 0, FieldLabel: "Chrome"}}
	categories, series := FormatDateSeriesData(seriesResult, aggregate, browserBreakdown(), "date")
	assert.Equal(t, []string{"Oct 1"}, categories)
	assert.Len(t, series, 1)
}

func TestFormatEventBreakdownDataEmpty(t *testing.T) {
	assert.Empty(t, FormatEventBreakdownData(&QueryResult{}, browserBreakdown()))
	assert.Empty(t, FormatEventBreakdownData(nil, browserBreakdown()))
}

func TestFormatDateSeriesData(t *testing.T) {
	seriesResult := &QueryResult{
		Headers: []string{"datetime", "event_name", "Browser", "count"},
		Rows: [][]interface{}{
			// 2023-10-01 and 2023-10-02 UTC
			{1696118400, "Signup", "Chrome", 10},
			{1696204800, "Signup", "Chrome", 20},
			{1696118400, "Signup", "Safari", 5},
		},
	}
	aggregate := []TableRecord{
		{FieldIndex: 0, FieldLabel: "Chrome"},
		{FieldIndex: 1, FieldLabel: "Safari"},
	}
	categories, series := FormatDateSeriesData(seriesResult, aggregate, browserBreakdown(), "date")

	assert.Equal(t, []string{"Oct 1", "Oct 2"}, categories)
	assert.Len(t, series, 2)
	assert.Equal(t, "Chrome", series[0].Name)
	assert.Equal(t, []float64{10, 20}, series[0].Data)
	assert.Equal(t, "Safari", series[1].Name)
	assert.Equal(t, []float64{5, 0}, series[1].Data)
}

func TestFormatDateSeriesDataUnknownLabelDropped(t *testing.T) {
	seriesResult := &QueryResult{
		Headers: []string{"datetime", "event_name", "Browser", "count"},
		Rows:    [][]interface{}{{1696118400, "Signup", "Edge", 3}},
	}
	aggregate := []TableRecord{{FieldIndex: 0, FieldLabel: "Chrome"}}
	_, series := FormatDateSeriesData(seriesResult, aggregate, browserBreakdown(), "date")
	assert.Equal(t, []float64{0}, series[0].Data)
}
