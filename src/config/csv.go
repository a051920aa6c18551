package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/eriklarko/truth-table/src/boolexpr"
	"github.com/eriklarko/truth-table/src/truthtable"
	"github.com/samber/lo"
)

// WriteTableToCSV writes every row of table to the file at path. The header
// holds the column names followed by the text of each formula.
func WriteTableToCSV(path string, table *truthtable.Table) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		// this isn't an error enough to stop execution. It's just to make it
		// easier for the user to find the file. Best effort.
		absPath = path
	}

	file, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", absPath, err)
	}
	defer file.Close()

	return WriteCSV(file, table)
}

// WriteCSV writes every row of table to w as CSV.
func WriteCSV(w io.Writer, table *truthtable.Table) error {
	writer := csv.NewWriter(w)

	header := append(table.ColumnNames(), lo.Map(table.Formulas(), func(f *boolexpr.Formula, _ int) string {
		return f.Text()
	})...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header %v: %w", header, err)
	}

	for row := range table.Rows() {
		record := lo.Map(append(row.Assignment, row.Results...), func(v boolexpr.Value, _ int) string {
			return strconv.FormatUint(v, 10)
		})
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %v: %w", record, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV reads a table written by WriteCSV back into its header and records.
func ReadCSV(r io.Reader) ([]string, [][]boolexpr.Value, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("missing header")
	}

	rows := make([][]boolexpr.Value, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]boolexpr.Value, len(record))
		for i, field := range record {
			v, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to parse value %s: %w", field, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return records[0], rows, nil
}
