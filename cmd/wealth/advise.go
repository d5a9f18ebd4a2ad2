package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
	"github.com/MrJamesThe3rd/wealthwise/internal/wisdom"
)

func adviseCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "advise",
		Short: "Ask the advisor about your finances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			snap := e.store.Snapshot()
			advice := e.advisor.Advise(cmd.Context(), stats.Global(snap.Transactions), snap.Goals)

			if advice.Fallback {
				fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render(advice.Text))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), advice.Text)

			return nil
		},
	}
}

func quoteCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print a financial quote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			quotes := []wisdom.Quote{wisdom.Random(nil)}
			if all {
				quotes = wisdom.All()
			}

			for _, q := range quotes {
				fmt.Fprintf(cmd.OutOrStdout(), "%q\n  - %s\n", q.Text, q.Author)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "print every quote")

	return cmd
}
