package model

import (
	"math"
	"sort"
	"strings"
	"time"

	U "chartable/util"
)

const (
	SortOrderAscend  = "ascend"
	SortOrderDescend = "descend"
)

// Sorter selects the key, direction and comparison class for sorting
// projected records. The explicit Type avoids guessing numeric-ness from
// the runtime value.
type Sorter struct {
	Key     string `json:"key"`
	Order   string `json:"order"`
	Type    string `json:"type,omitempty"`
	Subtype string `json:"subtype,omitempty"`
}

func sortValue(record TableRecord, key string) interface{} {
	value, exists := record[key]
	if !exists {
		return nil
	}
	// comparison cells sort on their primary period value
	if cell, ok := value.(ComparisonCell); ok {
		return cell.First
	}
	return value
}

func sortWeight(record TableRecord, key string) float64 {
	weight := U.GetSortWeightFromAnyType(sortValue(record, key))
	if math.IsNaN(weight) {
		return 0
	}
	return weight
}

// SortData Sorts records numerically on the given key. NaN weighs as 0.
// The sort is stable; ties keep their input order.
func SortData(records []TableRecord, key, order string) []TableRecord {
	result := make([]TableRecord, len(records))
	copy(result, records)
	sort.SliceStable(result, func(i, j int) bool {
		v1 := sortWeight(result[i], key)
		v2 := sortWeight(result[j], key)
		if order == SortOrderAscend {
			return v1 < v2
		}
		if order == SortOrderDescend {
			return v1 > v2
		}
		return false
	})
	return result
}

// SortDataByAlphabets Lexicographic sort on the given key.
func SortDataByAlphabets(records []TableRecord, key, order string) []TableRecord {
	result := make([]TableRecord, len(records))
	copy(result, records)
	sort.SliceStable(result, func(i, j int) bool {
		v1, _ := U.GetValueAsString(sortValue(result[i], key))
		v2, _ := U.GetValueAsString(sortValue(result[j], key))
		if order == SortOrderAscend {
			return v1 < v2
		}
		if order == SortOrderDescend {
			return v1 > v2
		}
		return false
	})
	return result
}

func cellTimeWeight(value interface{}) int64 {
	t, ok := U.ParseCellTime(value)
	if !ok {
		return 0
	}
	return t.Unix()
}

// SortDataByDate Sorts on a datetime typed key. Values may be epoch or
// any of the accepted cell layouts.
func SortDataByDate(records []TableRecord, key, order string) []TableRecord {
	result := make([]TableRecord, len(records))
	copy(result, records)
	sort.SliceStable(result, func(i, j int) bool {
		v1 := cellTimeWeight(sortValue(result[i], key))
		v2 := cellTimeWeight(sortValue(result[j], key))
		if order == SortOrderAscend {
			return v1 < v2
		}
		if order == SortOrderDescend {
			return v1 > v2
		}
		return false
	})
	return result
}

// SortWeekFormattedData Sorts on weekly bucket labels of the form
// "Jan 2 to Jan 8"; only the range start is compared.
func SortWeekFormattedData(records []TableRecord, key, order string) []TableRecord {
	weekStart := func(record TableRecord) int64 {
		label, _ := U.GetValueAsString(sortValue(record, key))
		start := strings.SplitN(label, " to ", 2)[0]
		t, err := time.Parse(U.DATETIME_FORMAT_DAY_LABEL, start)
		if err != nil {
			return 0
		}
		return t.Unix()
	}
	result := make([]TableRecord, len(records))
	copy(result, records)
	sort.SliceStable(result, func(i, j int) bool {
		v1 := weekStart(result[i])
		v2 := weekStart(result[j])
		if order == SortOrderAscend {
			return v1 < v2
		}
		if order == SortOrderDescend {
			return v1 > v2
		}
		return false
	})
	return result
}

// SortDataByDuration Sorts on keys holding the report duration notation
// ("3m 20s").
func SortDataByDuration(records []TableRecord, key, order string) []TableRecord {
	result := make([]TableRecord, len(records))
	copy(result, records)
	sort.SliceStable(result, func(i, j int) bool {
		l1, _ := U.GetValueAsString(sortValue(result[i], key))
		l2, _ := U.GetValueAsString(sortValue(result[j], key))
		v1 := DurationInSeconds(l1)
		v2 := DurationInSeconds(l2)
		if order == SortOrderAscend {
			return v1 < v2
		}
		if order == SortOrderDescend {
			return v1 > v2
		}
		return false
	})
	return result
}

// SortResults Dispatches to the right sorter for the sorter's type. A nil
// sorter or empty key preserves input order.
func SortResults(records []TableRecord, sorter *Sorter) []TableRecord {
	if sorter == nil || sorter.Key == "" {
		return records
	}
	switch sorter.Type {
	case PropTypeDateTime:
		if sorter.Subtype == U.GranularityWeek {
			return SortWeekFormattedData(records, sorter.Key, sorter.Order)
		}
		return SortDataByDate(records, sorter.Key, sorter.Order)
	case PropTypeCategorical:
		return SortDataByAlphabets(records, sorter.Key, sorter.Order)
	case PropTypeDuration:
		return SortDataByDuration(records, sorter.Key, sorter.Order)
	default:
		return SortData(records, sorter.Key, sorter.Order)
	}
}
