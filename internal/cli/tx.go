package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/mmynk/budgetbook/internal/models"
	"github.com/spf13/cobra"
)

// txFlags are the editable fields of a transaction.
type txFlags struct {
	date     string
	amount   float64
	kind     string
	category string
	desc     string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().Float64Var(&f.amount, "amount", 0, "positive amount")
	cmd.Flags().StringVar(&f.kind, "kind", "", "Income or Expense")
	cmd.Flags().StringVar(&f.category, "category", "", "category label")
	cmd.Flags().StringVar(&f.desc, "desc", "", "optional description")
}

// apply overwrites the fields of tx whose flags were set on cmd.
func (f *txFlags) apply(cmd *cobra.Command, tx *models.NewTransaction) error {
	flags := cmd.Flags()
	if flags.Changed("date") {
		date, err := models.ParseDate(f.date)
		if err != nil {
			return err
		}
		if err := checkYear(date.Year()); err != nil {
			return err
		}
		tx.Date = date
	}
	if flags.Changed("amount") {
		tx.Amount = f.amount
	}
	if flags.Changed("kind") {
		kind, err := models.ParseKind(f.kind)
		if err != nil {
			return err
		}
		tx.Kind = kind
	}
	if flags.Changed("category") {
		tx.Category = f.category
	}
	if flags.Changed("desc") {
		tx.Description = f.desc
	}
	return nil
}

func newTxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record and review transactions",
	}
	cmd.AddCommand(
		newTxAddCmd(a),
		newTxListCmd(a),
		newTxUpdateCmd(a),
		newTxDeleteCmd(a),
	)
	return cmd
}

func newTxAddCmd(a *app) *cobra.Command {
	var f txFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Example: `  budgetbook tx add --amount 12.50 --kind Expense --category Food
  budgetbook tx add --date 2026-10-01 --amount 2500 --kind Income --category Salary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.NewTransaction{Date: models.Day(now())}
			if err := f.apply(cmd, &in); err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			tx, err := store.AddTransaction(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %d\n", tx.ID)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newTxListCmd(a *app) *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the transactions of a month",
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

			txs, err := store.GetTransactions(cmd.Context(), period.Month, period.Year)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(txs) == 0 {
				fmt.Fprintf(out, "No transactions in %s\n", period)
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tKIND\tAMOUNT\tCATEGORY\tDESCRIPTION")
			for _, tx := range txs {
				desc := ""
				if tx.Description != nil {
					desc = *tx.Description
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					tx.ID, tx.Date.Format(models.DateLayout), tx.Kind, money(tx.Amount), tx.Category, desc)
			}
			return w.Flush()
		},
	}
	addPeriodFlags(cmd, &month, &year)
	return cmd
}

func newTxUpdateCmd(a *app) *cobra.Command {
	var f txFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a transaction",
		Long:  "Replaces the fields given as flags and keeps the others.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			current, err := store.GetTransaction(cmd.Context(), id)
			if err != nil {
				return err
			}
			in := models.NewTransaction{
				Date:     current.Date,
				Amount:   current.Amount,
				Kind:     current.Kind,
				Category: current.Category,
			}
			if current.Description != nil {
				in.Description = *current.Description
			}
			if err := f.apply(cmd, &in); err != nil {
				return err
			}

			if err := store.UpdateTransaction(cmd.Context(), id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated transaction %d\n", id)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTxDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %d\n", id)
			return nil
		},
	}
}
