package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/mmynk/budgetbook/internal/report"
	"github.com/spf13/cobra"
)

func newBudgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and review monthly budgets",
	}
	cmd.AddCommand(
		newBudgetSetCmd(a),
		newBudgetListCmd(a),
		newBudgetShowCmd(a),
		newBudgetPerformanceCmd(a),
	)
	return cmd
}

func newBudgetSetCmd(a *app) *cobra.Command {
	var (
		month, year int
		amount      float64
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the spending budget of a month",
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

			if err := store.UpsertBudget(cmd.Context(), period.Month, period.Year, amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Budget for %s set to %s\n", period, money(amount))
			return nil
		},
	}
	addPeriodFlags(cmd, &month, &year)
	cmd.Flags().Float64Var(&amount, "amount", 0, "budget amount")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newBudgetListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all budgets, latest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			budgets, err := store.GetBudgets(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(budgets) == 0 {
				fmt.Fprintln(out, "No budgets set")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PERIOD\tAMOUNT")
			for _, b := range budgets {
				fmt.Fprintf(w, "%s\t%s\n", b.Period(), money(b.Amount))
			}
			return w.Flush()
		},
	}
}

func newBudgetShowCmd(a *app) *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the budget of a month",
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

			amount, err := store.GetBudgetForMonth(cmd.Context(), period.Month, period.Year)
			if err != nil {
				return err
			}
			if amount == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No budget set for %s\n", period)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Budget for %s: %s\n", period, money(*amount))
			return nil
		},
	}
	addPeriodFlags(cmd, &month, &year)
	return cmd
}

func newBudgetPerformanceCmd(a *app) *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:     "performance",
		Aliases: []string{"perf"},
		Short:   "Compare a month's spending with its budget",
		Args:    cobra.NoArgs,
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

			view, err := report.Performance(cmd.Context(), store, period)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Period\t%s\n", view.Period)
			fmt.Fprintf(w, "Budgeted\t%s\n", money(view.Budgeted))
			fmt.Fprintf(w, "Spent\t%s\n", money(view.Spent))
			fmt.Fprintf(w, "Difference\t%s\n", money(view.Difference))
			fmt.Fprintf(w, "Status\t%s\n", view.Status)
			return w.Flush()
		},
	}
	addPeriodFlags(cmd, &month, &year)
	return cmd
}
