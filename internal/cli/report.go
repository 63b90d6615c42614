package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mmynk/budgetbook/internal/models"
	"github.com/mmynk/budgetbook/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries of income, spending and budgets",
	}
	cmd.AddCommand(
		newDashboardCmd(a),
		newMonthReportCmd(a),
		newYearReportCmd(a),
	)
	return cmd
}

func writeSummary(out io.Writer, s models.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Period\t%s\n", s.Period)
	fmt.Fprintf(w, "Income\t%s\n", money(s.Income))
	fmt.Fprintf(w, "Expenses\t%s\n", money(s.Expense))
	fmt.Fprintf(w, "Net\t%s\n", money(s.Net))
	if s.Budget != nil {
		view := report.PerformanceFromSummary(s)
		fmt.Fprintf(w, "Budget\t%s\n", money(*s.Budget))
		fmt.Fprintf(w, "Remaining\t%s (%s)\n", money(view.Difference), view.Status)
	} else {
		fmt.Fprintf(w, "Budget\tnot set\n")
	}
	return w.Flush()
}

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize the current month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := report.Dashboard(cmd.Context(), store, now())
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), summary)
		},
	}
}

func newMonthReportCmd(a *app) *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Summarize one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := resolvePeriod(month, year)
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := report.Summarize(cmd.Context(), store, period)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), summary)
		},
	}
	addPeriodFlags(cmd, &month, &year)
	return cmd
}

func newYearReportCmd(a *app) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "year",
		Short: "Month-by-month overview of a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = now().Year()
			}
			if err := checkYear(year); err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			view, err := report.Year(cmd.Context(), store, year)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tNET\tBUDGET\t")
			for _, s := range view.Months {
				budget := "-"
				if s.Budget != nil {
					budget = money(*s.Budget)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
					s.Period.Start().Month().String()[:3], money(s.Income), money(s.Expense), money(s.Net), budget)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\t\n", view.Year, money(view.Income), money(view.Expense), money(view.Net))
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year (default current year)")
	return cmd
}
