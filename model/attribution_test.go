package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signupResult() *QueryResult {
	return &QueryResult{
		Headers: []string{"Channel", "Cost Per Conversion", "Signup - Users"},
		Rows: [][]interface{}{
			{"Facebook", 10, 100},
			{"Google", 0, 0},
		},
	}
}

func TestGetTableData(t *testing.T) {
	records := GetTableData(signupResult(), TableQuery{Event: "Signup", Touchpoint: "Channel"})
	assert.Len(t, records, 2)

	// default order is by conversion, descending
	assert.Equal(t, 0, records[0].Index())
	assert.Equal(t, "Facebook", records[0]["Channel"])
	assert.Equal(t, float64(100), records[0][FieldConversion])
	assert.Equal(t, float64(10), records[0][FieldCost])

	assert.Equal(t, 1, records[1].Index())
	assert.Equal(t, "Google", records[1]["Channel"])
	assert.Equal(t, float64(0), records[1][FieldConversion])
	assert.Equal(t, float64(0), records[1][FieldCost])
}

func TestGetTableDataSearchFilter(t *testing.T) {
	records := GetTableData(signupResult(), TableQuery{
		Event: "Signup", Touchpoint: "Channel", SearchText: "goo"})
	assert.Len(t, records, 1)
	assert.Equal(t, "Google", records[0]["Channel"])
}

func TestGetTableDataMissingColumns(t *testing.T) {
	result := &QueryResult{
		Headers: []string{"Channel", "Signup - Users"},
		Rows:    [][]interface{}{{"Facebook", 100}},
	}
	records := GetTableData(result, TableQuery{Event: "Signup", Touchpoint: "Channel"})
	assert.Len(t, records, 1)

	// missing cost column lands as NaN, not a panic or absent key
	cost, ok := records[0][FieldCost].(float64)
	assert.True(t, ok)
	assert.True(t, math.IsNaN(cost))
}

func TestGetTableDataEmptyResult(t *testing.T) {
	assert.Empty(t, GetTableData(&QueryResult{}, TableQuery{Event: "Signup", Touchpoint: "Channel"}))
	assert.Empty(t, GetTableData(nil, TableQuery{Event: "Signup", Touchpoint: "Channel"}))
}

func TestGetTableDataProjectsRawCells(t *testing.T) {
	result := signupResult()
	records := GetTableData(result, TableQuery{Event: "Signup", Touchpoint: "Channel"})

	// re-deriving cells by the record index reproduces source values
	for _, record := range records {
		row := result.Rows[record.Index()]
		assert.Equal(t, row[0], record["Channel"])
		assert.Equal(t, float64(row[2].(int)), record[FieldConversion])
	}
}

func TestGetTableDataKeywordHierarchy(t *testing.T) {
	result := &QueryResult{
		Headers: []string{"Campaign", "AdGroup", "MatchType", "Keyword",
			"Cost Per Conversion", "Signup - Users"},
		Rows: [][]interface{}{
			{"Brand", "US", "exact", "buy shoes", 2.5, 40},
		},
	}
	records := GetTableData(result, TableQuery{Event: "Signup", Touchpoint: AttributionKeyKeyword})
	assert.Len(t, records, 1)
	assert.Equal(t, "buy shoes", records[0][AttributionKeyKeyword])
	assert.Equal(t, "Brand", records[0][AttributionKeyCampaign])
	assert.Equal(t, "US", records[0][AttributionKeyAdgroup])
	assert.Equal(t, "exact", records[0][AttributionKeyMatchType])
}

func TestGetTableDataLinkedEventsAndMetrics(t *testing.T) {
	result := &QueryResult{
		Headers: []string{"Channel", "Impressions", "Cost Per Conversion",
			"Signup - Users", "Purchase - Users", "Purchase - CPC"},
		Rows: [][]interface{}{
			{"Facebook", 5000, 10, 100, 20, 50},
		},
	}
	records := GetTableData(result, TableQuery{
		Event:        "Signup",
		Touchpoint:   "Channel",
		LinkedEvents: []LinkedEvent{{Label: "Purchase"}},
		Metrics:      []OptionalMetric{{Header: "Impressions", Title: "impressions"}},
	})
	assert.Len(t, records, 1)
	assert.Equal(t, float64(5000), records[0]["impressions"])
	assert.Equal(t, float64(20), records[0][MetricKey("Purchase", MetricUsers)])
	assert.Equal(t, float64(50), records[0][MetricKey("Purchase", MetricCPC)])
}

func TestGetTableDataExplicitSorter(t *testing.T) {
	records := GetTableData(signupResult(), TableQuery{
		Event: "Signup", Touchpoint: "Channel",
		Sorter: &Sorter{Key: FieldConversion, Order: SortOrderAscend, Type: PropTypeNumerical},
	})
	assert.Equal(t, "Google", records[0]["Channel"])
	assert.Equal(t, "Facebook", records[1]["Channel"])
}
