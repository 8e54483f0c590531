package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/veracity-pipeline/scoring"
)

func (a *app) describeCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "describe SCORE",
		Short: "Print the band description of a body-language or audio score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, ok := scoring.TableFor(kind)
			if !ok {
				return fmt.Errorf("unknown kind %q, want body or audio", kind)
			}
			score, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("score %q: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), scoring.Describe(score, table))
			return err
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "body", "band table [body, audio]")
	return cmd
}
