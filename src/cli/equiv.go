package cli

import (
	"fmt"

	"github.com/eriklarko/truth-table/src/boolexpr"
	"github.com/eriklarko/truth-table/src/equivalence"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newEquivCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "equiv formula1 formula2",
		Short: "Check whether two formulas have the same truth table.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := boolexpr.New(args[0])
			if err != nil {
				return err
			}
			b, err := boolexpr.New(args[1])
			if err != nil {
				return err
			}

			equal, err := equivalence.Equivalent(a, b)
			if err != nil {
				return err
			}
			log.WithField("left", a.String()).WithField("right", b.String()).Debug("compared formulas")

			if equal {
				fmt.Fprintln(cmd.OutOrStdout(), "equivalent")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "not equivalent")
			}
			return nil
		},
	}
}

func newCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count formula",
		Short: "Print the number of assignments that satisfy a formula.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := boolexpr.New(args[0])
			if err != nil {
				return err
			}

			count, err := equivalence.SatCount(f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count.String())
			return nil
		},
	}
}
