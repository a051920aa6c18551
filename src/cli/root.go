package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/eriklarko/truth-table/src/boolexpr"
	"github.com/eriklarko/truth-table/src/config"
	"github.com/eriklarko/truth-table/src/environment"
	"github.com/eriklarko/truth-table/src/truthtable"
	"github.com/eriklarko/truth-table/src/tui"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var errNoFormulas = errors.New("no formulas given, pass them as arguments or list them in a config file")

// ErrTableMismatch is returned when --check finds a table different from the
// saved one.
var ErrTableMismatch = errors.New("truth table differs from the saved table")

// NewRootCommand builds the truthtable command and its subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "truthtable [flags] formula...",
		Short: "Print the truth table of Boolean formulas.",
		Long: `Print the truth table of one or more Boolean formulas.

Variables are a letter followed by optional digits (a, x1). Operators, from
tightest to loosest binding, are ' (complement, after its operand), . (and,
also implied by juxtaposition), ^ (xor) and + (or). Several formulas share
their variables and are tabulated side by side. Complements stack, so a''
is a again.`,
		Example: `  truthtable "a.b + c'"
  truthtable --format csv "a+b" "a^b"
  truthtable --config formulas.yaml --summary`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if GetFlag(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: runTable,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().StringP("config", "c", "", "read formulas and settings from a YAML file")
	rootCmd.Flags().StringP("format", "f", "", "output format, text or csv (default text on a terminal, csv otherwise)")
	rootCmd.Flags().IntP("width", "w", 1, "number of bits in each variable")
	rootCmd.Flags().Int("max-variables", truthtable.DefaultMaxVariables, "refuse tables with more variables than this")
	rootCmd.Flags().BoolP("summary", "s", false, "print the minterms and density of each formula")
	rootCmd.Flags().StringP("output", "o", "", "write the table as CSV to this file")
	rootCmd.Flags().String("check", "", "compare the table against a CSV file written by --output")

	rootCmd.AddCommand(newEquivCommand(), newCountCommand())
	return rootCmd
}

// Execute runs the root command, exiting with status 1 on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	formulas := args
	if len(formulas) == 0 {
		formulas = cfg.Formulas
	}
	if len(formulas) == 0 {
		return errNoFormulas
	}

	registry := boolexpr.NewRegistry(boolexpr.WithWidth(cfg.Width))
	parsed := make([]*boolexpr.Formula, 0, len(formulas))
	for _, text := range formulas {
		f, err := boolexpr.NewWithRegistry(text, registry)
		if err != nil {
			return err
		}
		log.WithField("formula", text).WithField("tree", f.Structure()).Debug("parsed formula")
		parsed = append(parsed, f)
	}

	var opts []truthtable.Option
	if cfg.MaxVariables > 0 {
		opts = append(opts, truthtable.WithMaxVariables(cfg.MaxVariables))
	}
	table, err := truthtable.New(parsed, opts...)
	if err != nil {
		return err
	}
	log.WithField("columns", table.ColumnNames()).WithField("rows", table.Len()).Debug("enumerating table")

	if path := GetString(cmd, "check"); path != "" {
		if err := checkTable(path, table); err != nil {
			return err
		}
		log.WithField("file", path).Info("truth table matches")
	}

	ui := tui.New()
	ui.SetOutput(cmd.OutOrStdout())

	if cfg.OutputFile != "" {
		if err := config.WriteTableToCSV(cfg.OutputFile, table); err != nil {
			return err
		}
		log.WithField("file", cfg.OutputFile).Info("wrote truth table")
	} else if err := printTable(cmd, ui, table, cfg.Format); err != nil {
		return err
	}

	if cfg.Summary {
		summaries, err := truthtable.Summarize(table)
		if err != nil {
			return err
		}
		return ui.PrintSummary(summaries)
	}
	return nil
}

func printTable(cmd *cobra.Command, ui *tui.TUI, table *truthtable.Table, format string) error {
	if format == "" {
		format = config.FormatCSV
		if environment.IsInteractive() {
			format = config.FormatText
		}
	}

	switch format {
	case config.FormatText:
		if width, available := tui.TableWidth(table), environment.TerminalWidth(); width > available {
			log.WithField("width", width).WithField("terminal", available).Warn("table is wider than the terminal, consider --format csv")
		}
		return ui.PrintTable(table)
	case config.FormatCSV:
		return config.WriteCSV(cmd.OutOrStdout(), table)
	}
	return fmt.Errorf("unknown format '%s'", format)
}

// checkTable compares table with the CSV file at path, header first and then
// every row in order.
func checkTable(path string, table *truthtable.Table) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	header, rows, err := config.ReadCSV(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	expectedHeader := append(table.ColumnNames(), lo.Map(table.Formulas(), func(f *boolexpr.Formula, _ int) string {
		return f.Text()
	})...)
	if !slices.Equal(header, expectedHeader) {
		return fmt.Errorf("%w: header %v, expected %v", ErrTableMismatch, header, expectedHeader)
	}
	if len(rows) != table.Len() {
		return fmt.Errorf("%w: %d rows, expected %d", ErrTableMismatch, len(rows), table.Len())
	}

	for row := range table.Rows() {
		expected := append(row.Assignment, row.Results...)
		if !slices.Equal(rows[row.Index], expected) {
			return fmt.Errorf("%w: row %d is %v, expected %v", ErrTableMismatch, row.Index, rows[row.Index], expected)
		}
	}
	return nil
}

// loadConfig reads the config file named by --config, if any, and applies
// the flags the user set on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := GetString(cmd, "config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		log.WithField("file", path).Debug("loaded config")
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = GetString(cmd, "format")
	}
	if flags.Changed("width") {
		cfg.Width = GetInt(cmd, "width")
	}
	if flags.Changed("max-variables") {
		cfg.MaxVariables = GetInt(cmd, "max-variables")
	}
	if flags.Changed("summary") {
		cfg.Summary = GetFlag(cmd, "summary")
	}
	if flags.Changed("output") {
		cfg.OutputFile = GetString(cmd, "output")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
