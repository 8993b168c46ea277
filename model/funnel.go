package model

import (
	"fmt"

	U "chartable/util"
)

// Funnel results use positional step headers: step_0, step_1, ... with
// step_<i>_<j>_time columns carrying the median transition seconds.
func FunnelStepHeader(step int) string {
	return fmt.Sprintf("step_%d", step)
}

func FunnelStepTimeHeader(from, to int) string {
	return fmt.Sprintf("step_%d_%d_time", from, to)
}

func funnelConversionKey(from, to int) string {
	return fmt.Sprintf("conversion_step_%d_step_%d", from, to)
}

const FieldConversionOverall = "conversion_overall"

// FunnelQuery carries the projection parameters for funnel table views.
// StepCount is the number of step_i columns expected on the result;
// Breakdowns describe leading grouping columns, empty for the overall
// (single row) funnel.
type FunnelQuery struct {
	StepCount  int               `json:"step_count"`
	Breakdowns []GroupByProperty `json:"breakdowns,omitempty"`
	SearchText string            `json:"search_text,omitempty"`
	Sorter     *Sorter           `json:"sorter,omitempty"`
}

// GetFunnelTableData Projects a funnel result into records carrying the
// step counts, step to step conversion percentages, formatted transition
// times and the overall conversion. Grouped funnels lead with the
// reconstructed breakdown label; the label field doubles as the grouping
// key.
func GetFunnelTableData(result *QueryResult, query FunnelQuery) []TableRecord {
	if result.IsEmpty() || query.StepCount <= 0 {
		return []TableRecord{}
	}

	stepIndices := make([]int, query.StepCount)
	for step := 0; step < query.StepCount; step++ {
		stepIndices[step] = HeaderIndex(result.Headers, FunnelStepHeader(step))
	}
	timeIndices := make([]int, query.StepCount-1)
	for step := 0; step < query.StepCount-1; step++ {
		timeIndices[step] = HeaderIndex(result.Headers, FunnelStepTimeHeader(step, step+1))
	}

	breakdownLen := len(query.Breakdowns)
	var grns []string
	if breakdownLen > 0 {
		headerSlice := result.Headers[:U.MinInt(breakdownLen, len(result.Headers))]
		grns = BreakdownGranularities(headerSlice, query.Breakdowns)
	}

	records := make([]TableRecord, 0, len(result.Rows))
	for position, row := range result.Rows {
		record := TableRecord{FieldIndex: position}

		if breakdownLen > 0 {
			label := RowLabel(row, 0, query.Breakdowns, grns)
			if query.SearchText != "" && !U.CaseInsensitiveContains(label, query.SearchText) {
				continue
			}
			record[FieldLabel] = label
		}

		for step := 0; step < query.StepCount; step++ {
			record[FunnelStepHeader(step)] = CellFloat(row, stepIndices[step])
		}
		for step := 0; step < query.StepCount-1; step++ {
			record[funnelConversionKey(step, step+1)] = CalculatePercentage(
				CellFloat(row, stepIndices[step+1]), CellFloat(row, stepIndices[step]), 1)
			record[FunnelStepTimeHeader(step, step+1)] = FormatDuration(
				CellFloat(row, timeIndices[step]))
		}
		record[FieldConversionOverall] = CalculatePercentage(
			CellFloat(row, stepIndices[query.StepCount-1]), CellFloat(row, stepIndices[0]), 1)

		records = append(records, record)
	}

	sorter := query.Sorter
	if sorter == nil || sorter.Key == "" {
		sorter = &Sorter{Key: FunnelStepHeader(0), Order: SortOrderDescend, Type: PropTypeNumerical}
	}
	return SortResults(records, sorter)
}
