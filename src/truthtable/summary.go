package truthtable

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
)

// Summary describes the result column of one formula.
type Summary struct {
	Formula string
	// Minterms are the indices of the rows where the formula is non-zero.
	Minterms []int
	// TrueRows is len(Minterms).
	TrueRows int
	// Density is the fraction of rows where the formula is non-zero.
	Density float64
}

// Summarize enumerates table and summarises each formula's result column.
func Summarize(table *Table) ([]Summary, error) {
	rows := table.Collect()

	summaries := make([]Summary, 0, len(table.formulas))
	for i, f := range table.formulas {
		minterms := lo.FilterMap(rows, func(row Row, _ int) (int, bool) {
			return row.Index, row.Results[i] != 0
		})
		truth := lo.Map(rows, func(row Row, _ int) float64 {
			if row.Results[i] != 0 {
				return 1
			}
			return 0
		})

		density, err := stats.Mean(truth)
		if err != nil {
			return nil, fmt.Errorf("failed to compute density of formula '%s': %w", f.Text(), err)
		}
		summaries = append(summaries, Summary{
			Formula:  f.Text(),
			Minterms: minterms,
			TrueRows: len(minterms),
			Density:  density,
		})
	}
	return summaries, nil
}
