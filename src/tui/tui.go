package tui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eriklarko/truth-table/src/boolexpr"
	"github.com/eriklarko/truth-table/src/truthtable"
	"github.com/samber/lo"
)

type TUI struct {
	output io.Writer
}

func New() *TUI {
	return &TUI{
		output: os.Stdout,
	}
}

func (t *TUI) SetOutput(output io.Writer) {
	t.output = output
}

// TableWidth returns the number of characters in each line PrintTable writes
// for table.
func TableWidth(table *truthtable.Table) int {
	widths := columnWidths(table)
	return lo.Sum(widths) + 3*len(widths) + 1
}

// PrintTable writes table with one column per variable followed by one per
// formula:
//
//	| a | b | a+b |
//	|---|---|-----|
//	| 0 | 0 | 0   |
func (t *TUI) PrintTable(table *truthtable.Table) error {
	widths := columnWidths(table)

	if err := t.printLine(widths, headers(table)); err != nil {
		return err
	}
	if err := t.printLine(widths, lo.Map(widths, func(w int, _ int) string {
		return strings.Repeat("-", w)
	})); err != nil {
		return err
	}

	for row := range table.Rows() {
		cells := lo.Map(append(row.Assignment, row.Results...), func(v boolexpr.Value, _ int) string {
			return strconv.FormatUint(v, 10)
		})
		if err := t.printLine(widths, cells); err != nil {
			return err
		}
	}
	return nil
}

func (t *TUI) printLine(widths []int, cells []string) error {
	var sb strings.Builder
	for i, cell := range cells {
		sb.WriteString("| ")
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		sb.WriteByte(' ')
	}
	sb.WriteString("|\n")

	_, err := io.WriteString(t.output, sb.String())
	return err
}

// PrintSummary writes one line per summary.
func (t *TUI) PrintSummary(summaries []truthtable.Summary) error {
	for _, s := range summaries {
		minterms := strings.Join(lo.Map(s.Minterms, func(m int, _ int) string {
			return strconv.Itoa(m)
		}), ",")
		_, err := fmt.Fprintf(t.output, "%s: %d true rows (%.1f%%), minterms [%s]\n", s.Formula, s.TrueRows, 100*s.Density, minterms)
		if err != nil {
			return err
		}
	}
	return nil
}

func headers(table *truthtable.Table) []string {
	return append(table.ColumnNames(), lo.Map(table.Formulas(), func(f *boolexpr.Formula, _ int) string {
		return f.Text()
	})...)
}

// columnWidths sizes every column to fit its header and the largest value
// any formula of the table can produce.
func columnWidths(table *truthtable.Table) []int {
	valueWidth := len(strconv.FormatUint(maxValue(table), 10))
	return lo.Map(headers(table), func(h string, _ int) int {
		return max(len(h), valueWidth)
	})
}

func maxValue(table *truthtable.Table) boolexpr.Value {
	width := table.Width()
	if width >= boolexpr.MaxWidth {
		return ^boolexpr.Value(0)
	}
	return boolexpr.Value(1)<<width - 1
}
