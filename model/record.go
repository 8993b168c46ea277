package model

import (
	"encoding/json"
	"math"
)

// FieldIndex holds the originating row position on every projected
// record. It translates a UI row selection back to the source row and is
// never reused for anything else.
const (
	FieldIndex      = "index"
	FieldConversion = "conversion"
	FieldCost       = "cost"
)

// TableRecord is one projected row keyed by semantic field names. Every
// record of a projection carries the same key set; metrics missing from
// the source land as NaN, never as absent keys.
type TableRecord map[string]interface{}

// Index Returns the originating row position, -1 when the record carries
// none.
func (record TableRecord) Index() int {
	index, ok := record[FieldIndex].(int)
	if !ok {
		return -1
	}
	return index
}

func jsonSafeValue(value interface{}) interface{} {
	if f, ok := value.(float64); ok {
		if math.IsNaN(f) {
			return CellValueNA
		}
		if math.IsInf(f, 0) {
			return ChangeValueString(f)
		}
	}
	return value
}

// MarshalJSON renders NaN and infinities with the string sentinels the
// result consumers branch on, since bare floats would fail to encode.
func (record TableRecord) MarshalJSON() ([]byte, error) {
	safe := make(map[string]interface{}, len(record))
	for key, value := range record {
		safe[key] = jsonSafeValue(value)
	}
	return json.Marshal(safe)
}

// ComparisonCell joins one metric across the primary and comparison
// periods. Change is computed only when both values are finite; a zero
// comparison base carries an infinity whose sign follows the primary
// value.
type ComparisonCell struct {
	First  float64
	Second float64
	Change float64
}

// NewComparisonCell derives the change percentage for the given pair. A
// missing comparison value (NaN) yields a NaN change.
func NewComparisonCell(first, second float64) ComparisonCell {
	cell := ComparisonCell{First: first, Second: second, Change: math.NaN()}
	if !math.IsNaN(first) && !math.IsNaN(second) {
		cell.Change = CalcChangePercent(first, second)
	}
	return cell
}

func (cell ComparisonCell) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"first":  jsonSafeValue(cell.First),
		"second": jsonSafeValue(cell.Second),
		"change": jsonSafeValue(cell.Change),
	})
}
