package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"chartable/model"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/pkg/errors"
)

// Download flattening for projected records. Comparison cells unnest into
// three columns per metric so the output stays strictly two dimensional.

func comparisonHeaders(column, rangeA, rangeB string) []string {
	return []string{
		fmt.Sprintf("%s (%s)", column, rangeA),
		fmt.Sprintf("%s (%s)", column, rangeB),
		fmt.Sprintf("%s change", column),
	}
}

func cellString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return model.CellValueNA
	case float64:
		return model.ChangeValueString(v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FlattenTableRecords Renders records into header and row string slices
// ready for CSV or sheet writing. Columns lists the record keys in output
// order; rangeA and rangeB label the two periods when comparison cells
// are present.
func FlattenTableRecords(records []model.TableRecord, columns []string,
	rangeA, rangeB string) ([]string, [][]string) {

	comparison := make(map[string]bool, len(columns))
	headers := make([]string, 0, len(columns))
	if len(records) > 0 {
		for _, column := range columns {
			if _, ok := records[0][column].(model.ComparisonCell); ok {
				comparison[column] = true
				headers = append(headers, comparisonHeaders(column, rangeA, rangeB)...)
				continue
			}
			headers = append(headers, column)
		}
	} else {
		headers = append(headers, columns...)
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, 0, len(headers))
		for _, column := range columns {
			if comparison[column] {
				cell, _ := record[column].(model.ComparisonCell)
				row = append(row,
					cellString(cell.First),
					cellString(cell.Second),
					model.ChangeValueString(cell.Change))
				continue
			}
			row = append(row, cellString(record[column]))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// WriteCSV Writes the flattened table as CSV.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return errors.Wrap(err, "failed to write csv headers")
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "failed to write csv row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush csv")
}

const xlsxSheet = "Sheet1"

// WriteXLSX Writes the flattened table as a single sheet workbook.
func WriteXLSX(w io.Writer, headers []string, rows [][]string) error {
	file := excelize.NewFile()

	writeRow := func(rowNumber int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNumber)
		if err != nil {
			return err
		}
		rowValues := make([]interface{}, len(values))
		for i, value := range values {
			rowValues[i] = value
		}
		return file.SetSheetRow(xlsxSheet, cell, &rowValues)
	}

	if err := writeRow(1, headers); err != nil {
		return errors.Wrap(err, "failed to write sheet headers")
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return errors.Wrap(err, "failed to write sheet row")
		}
	}
	if err := file.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}
