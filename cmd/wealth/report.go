package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " Dh"
}

func statsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show all-time totals",
		Long:  `Display total income, expenses, balance and their breakdowns across every transaction.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			summary := stats.Global(e.store.Transactions())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "Total income\t%s\n", money(summary.TotalIncome))
			fmt.Fprintf(w, "Total expenses\t%s\n", money(summary.TotalExpenses))
			fmt.Fprintf(w, "Balance\t%s\n", money(summary.Balance))
			fmt.Fprintln(w)

			for _, s := range stats.IncomeBreakdown(summary) {
				fmt.Fprintf(w, "  %s income\t%s\n", s.Name, money(s.Value))
			}

			for _, s := range stats.ExpenseBreakdown(summary) {
				fmt.Fprintf(w, "  %s expenses\t%s\n", s.Name, money(s.Value))
			}

			return nil
		},
	}
}

func budgetsCmd(open opener) *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Show budget consumption for a month",
		Long:  `Display each budget's spend, rollover and effective limit for one month (current month by default).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			period := calendar.CurrentPeriod()
			if cmd.Flags().Changed("month") {
				period.Month = time.Month(month)
			}

			if cmd.Flags().Changed("year") {
				period.Year = year
			}

			if !period.Valid() {
				return fmt.Errorf("month must be between 1 and 12")
			}

			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			periodStats := stats.PeriodStats(e.store.Budgets(), e.store.Transactions(), period)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render(period.String()))

			if len(periodStats) == 0 {
				fmt.Fprintln(out, faintStyle.Render("No budgets defined."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("Category"),
				headerStyle.Render("Spent"),
				headerStyle.Render("Limit"),
				headerStyle.Render("Rollover"),
				headerStyle.Render("Used"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 10), strings.Repeat("-", 5))

			for _, s := range periodStats {
				used := fmt.Sprintf("%d%%", s.Percentage)
				switch {
				case s.Exceeded():
					used = errStyle.Render(used)
				case s.Warning():
					used = warnStyle.Render(used)
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					s.Budget.Category, money(s.Spent), money(s.TotalLimit), money(s.Rollover), used)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "month number (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "four-digit year")

	return cmd
}

func goalsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Show savings goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			goals := e.store.Goals()
			summary := stats.Goals(goals)
			today := calendar.Today()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("Goal"),
				headerStyle.Render("Saved"),
				headerStyle.Render("Target"),
				headerStyle.Render("Progress"),
				headerStyle.Render("Deadline"))

			for _, g := range goals {
				deadline := fmt.Sprintf("%s (%d days)", g.Deadline, g.DaysLeft(today))
				if g.Completed() {
					deadline = "completed"
				}

				fmt.Fprintf(w, "%s %s\t%s\t%s\t%d%%\t%s\n",
					g.Icon, g.Name, money(g.Current), money(g.Target), stats.GoalProgress(g), deadline)
			}

			fmt.Fprintf(w, "\nTotal\t%s\t%s\t%d%%\t%d active, %d completed\n",
				money(summary.TotalSaved), money(summary.TotalTarget), summary.Progress, summary.Active, summary.Completed)

			return nil
		},
	}
}
