package model

import (
	"fmt"
	"math"

	U "chartable/util"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Touchpoint levels of the marketing hierarchy. Campaign, AdGroup and
// Keyword form a fixed three level chain; the deeper levels always carry
// their ancestor dimensions on the report.
const (
	AttributionKeyChannel     = "Channel"
	AttributionKeySource      = "Source"
	AttributionKeyCampaign    = "Campaign"
	AttributionKeyAdgroup     = "AdGroup"
	AttributionKeyKeyword     = "Keyword"
	AttributionKeyMatchType   = "MatchType"
	AttributionKeyLandingPage = "LandingPage"

	HeaderCostPerConversion        = "Cost Per Conversion"
	HeaderCompareUsers             = "Compare - Users"
	HeaderCompareCostPerConversion = "Compare Cost Per Conversion"

	MetricUsers = "Users"
	MetricCPC   = "CPC"
)

var AddedKeysForAdgroup = []string{AttributionKeyCampaign}
var AddedKeysForKeyword = []string{AttributionKeyCampaign, AttributionKeyAdgroup, AttributionKeyMatchType}

// AddedKeysForTouchpoint Returns the ancestor dimension columns injected
// ahead of the given touchpoint on the report.
func AddedKeysForTouchpoint(touchpoint string) []string {
	switch touchpoint {
	case AttributionKeyAdgroup:
		return AddedKeysForAdgroup
	case AttributionKeyKeyword:
		return AddedKeysForKeyword
	}
	return nil
}

// MetricKey Builds the record key for a per-event metric. The string
// convention ("<label> - <metric>") doubles as the wire column name, so
// every call site goes through here.
func MetricKey(label, metric string) string {
	return fmt.Sprintf("%s - %s", label, metric)
}

// ConversionUsersHeader Column name carrying converted users for an event.
func ConversionUsersHeader(event string) string {
	return MetricKey(event, MetricUsers)
}

// LinkedEvent is a secondary conversion tracked alongside the goal event.
type LinkedEvent struct {
	Label string `json:"label"`
}

// OptionalMetric maps a result column to the record field it lands on
// when the metric is enabled on the view.
type OptionalMetric struct {
	Header string `json:"header"`
	Title  string `json:"title"`
}

// TableQuery carries the projection parameters of the attribution table
// views.
type TableQuery struct {
	Event        string           `json:"event"`
	Touchpoint   string           `json:"touchpoint"`
	LinkedEvents []LinkedEvent    `json:"linked_events,omitempty"`
	Metrics      []OptionalMetric `json:"metrics,omitempty"`
	SearchText   string           `json:"search_text,omitempty"`
	Sorter       *Sorter          `json:"sorter,omitempty"`
}

func (query *TableQuery) sorterOrDefault() *Sorter {
	if query.Sorter != nil && query.Sorter.Key != "" {
		return query.Sorter
	}
	return &Sorter{Key: FieldConversion, Order: SortOrderDescend, Type: PropTypeNumerical}
}

// tableIndices resolves every column the projection reads, once per call.
type tableIndices struct {
	touchpoint  int
	cost        int
	conversion  int
	addedKeys   []int
	metrics     []int
	linkedUsers []int
	linkedCPC   []int
}

func resolveTableIndices(headers []string, query *TableQuery) tableIndices {
	indices := tableIndices{
		touchpoint: HeaderIndex(headers, query.Touchpoint),
		cost:       HeaderIndex(headers, HeaderCostPerConversion),
		conversion: HeaderIndex(headers, ConversionUsersHeader(query.Event)),
	}
	for _, key := range AddedKeysForTouchpoint(query.Touchpoint) {
		indices.addedKeys = append(indices.addedKeys, HeaderIndex(headers, key))
	}
	for _, metric := range query.Metrics {
		indices.metrics = append(indices.metrics, HeaderIndex(headers, metric.Header))
	}
	for _, linked := range query.LinkedEvents {
		indices.linkedUsers = append(indices.linkedUsers,
			HeaderIndex(headers, MetricKey(linked.Label, MetricUsers)))
		indices.linkedCPC = append(indices.linkedCPC,
			HeaderIndex(headers, MetricKey(linked.Label, MetricCPC)))
	}
	if indices.touchpoint == -1 {
		log.WithFields(log.Fields{"touchpoint": query.Touchpoint,
			"headers": headers}).Warn("Touchpoint column not found on result")
	}
	return indices
}

// GetTableData Projects a single period result into one record per row,
// keyed by semantic field names. Rows whose touchpoint value does not
// contain the search text are dropped before sorting. Without an explicit
// sorter the records are ordered by conversion, descending.
func GetTableData(result *QueryResult, query TableQuery) []TableRecord {
	if result.IsEmpty() {
		return []TableRecord{}
	}
	indices := resolveTableIndices(result.Headers, &query)
	addedKeys := AddedKeysForTouchpoint(query.Touchpoint)

	records := make([]TableRecord, 0, len(result.Rows))
	for position, row := range result.Rows {
		touchpointValue := CellString(row, indices.touchpoint)
		if query.SearchText != "" && !U.CaseInsensitiveContains(touchpointValue, query.SearchText) {
			continue
		}
		record := TableRecord{
			FieldIndex:       position,
			query.Touchpoint: touchpointValue,
			FieldConversion:  CellFloat(row, indices.conversion),
			FieldCost:        CellFloat(row, indices.cost),
		}
		for i, key := range addedKeys {
			record[key] = CellString(row, indices.addedKeys[i])
		}
		for i, metric := range query.Metrics {
			record[metric.Title] = CellFloat(row, indices.metrics[i])
		}
		for i, linked := range query.LinkedEvents {
			record[MetricKey(linked.Label, MetricUsers)] = CellFloat(row, indices.linkedUsers[i])
			record[MetricKey(linked.Label, MetricCPC)] = CellFloat(row, indices.linkedCPC[i])
		}
		records = append(records, record)
	}
	return SortResults(records, query.sorterOrDefault())
}

// buildCompareRowIndex maps the comparison period's touchpoint values to
// their row positions. Duplicate keys would silently shadow each other on
// the join, so they are rejected outright.
func buildCompareRowIndex(compare *QueryResult, touchpointIndex int) (map[string]int, error) {
	rowByKey := make(map[string]int, len(compare.Rows))
	for position, row := range compare.Rows {
		key := CellString(row, touchpointIndex)
		if existing, exists := rowByKey[key]; exists {
			return nil, errors.Errorf(
				"duplicate grouping key %q on comparison period rows %d and %d",
				key, existing, position)
		}
		rowByKey[key] = position
	}
	return rowByKey, nil
}

// GetCompareTableData Projects two time aligned result sets into records
// of comparison cells, joined on the touchpoint value. Primary rows
// without a match carry NaN for the comparison side. Default order is by
// the primary period conversion, descending.
func GetCompareTableData(result, compare *QueryResult, query TableQuery) ([]TableRecord, error) {
	if result.IsEmpty() {
		return []TableRecord{}, nil
	}
	indices := resolveTableIndices(result.Headers, &query)
	addedKeys := AddedKeysForTouchpoint(query.Touchpoint)

	compareIndices := tableIndices{touchpoint: -1}
	compareRowByKey := map[string]int{}
	if !compare.IsEmpty() {
		compareIndices = resolveTableIndices(compare.Headers, &query)
		var err error
		compareRowByKey, err = buildCompareRowIndex(compare, compareIndices.touchpoint)
		if err != nil {
			return nil, err
		}
	}

	missing := []interface{}{}
	records := make([]TableRecord, 0, len(result.Rows))
	for position, row := range result.Rows {
		touchpointValue := CellString(row, indices.touchpoint)
		if query.SearchText != "" && !U.CaseInsensitiveContains(touchpointValue, query.SearchText) {
			continue
		}

		compareRow := missing
		if comparePosition, exists := compareRowByKey[touchpointValue]; exists {
			compareRow = compare.Rows[comparePosition]
		}

		record := TableRecord{
			FieldIndex:       position,
			query.Touchpoint: touchpointValue,
			FieldConversion: NewComparisonCell(
				CellFloat(row, indices.conversion),
				CellFloat(compareRow, compareIndices.conversion)),
			FieldCost: NewComparisonCell(
				CellFloat(row, indices.cost),
				CellFloat(compareRow, compareIndices.cost)),
		}
		for i, key := range addedKeys {
			record[key] = CellString(row, indices.addedKeys[i])
		}
		for i, metric := range query.Metrics {
			compareMetricIndex := -1
			if len(compareIndices.metrics) > i {
				compareMetricIndex = compareIndices.metrics[i]
			}
			record[metric.Title] = NewComparisonCell(
				CellFloat(row, indices.metrics[i]),
				CellFloat(compareRow, compareMetricIndex))
		}
		for i, linked := range query.LinkedEvents {
			compareUsersIndex, compareCPCIndex := -1, -1
			if len(compareIndices.linkedUsers) > i {
				compareUsersIndex = compareIndices.linkedUsers[i]
				compareCPCIndex = compareIndices.linkedCPC[i]
			}
			record[MetricKey(linked.Label, MetricUsers)] = NewComparisonCell(
				CellFloat(row, indices.linkedUsers[i]),
				CellFloat(compareRow, compareUsersIndex))
			record[MetricKey(linked.Label, MetricCPC)] = NewComparisonCell(
				CellFloat(row, indices.linkedCPC[i]),
				CellFloat(compareRow, compareCPCIndex))
		}
		records = append(records, record)
	}
	return SortResults(records, query.sorterOrDefault()), nil
}

// ConversionRate Converted users over clicks, as a percentage.
func ConversionRate(conversions, clicks float64) float64 {
	if math.IsNaN(conversions) || math.IsNaN(clicks) {
		return math.NaN()
	}
	return CalculatePercentage(conversions, clicks, 2)
}
