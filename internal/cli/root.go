// Package cli implements the budgetbook command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mmynk/budgetbook/internal/config"
	"github.com/mmynk/budgetbook/internal/storage/sqlite"
	"github.com/mmynk/budgetbook/pkg/logging"
	"github.com/spf13/cobra"
)

// now is replaced in tests.
var now = time.Now

// app carries state shared by all subcommands of one invocation.
type app struct {
	cfg    *config.Config
	dbPath string
}

// openStore opens and initializes the dataset. Callers must Close it.
func (a *app) openStore(ctx context.Context) (*sqlite.SQLiteStore, error) {
	store, err := sqlite.Open(ctx, sqlite.Config{Path: a.cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", a.cfg.DBPath, err)
	}
	return store, nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "budgetbook",
		Short: "Personal income, expense and budget tracker",
		Long: `budgetbook records income and expense transactions, keeps a monthly
spending budget and reports how each month performed against it.

The dataset is a single SQLite file, by default budget.db next to the executable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			if a.dbPath != "" {
				a.cfg.DBPath = a.dbPath
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			logging.Setup(a.cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "path of the dataset file (overrides BUDGETBOOK_DB_PATH)")

	root.AddCommand(
		newInitCmd(a),
		newLoginCmd(a),
		newUserCmd(a),
		newTxCmd(a),
		newBudgetCmd(a),
		newReportCmd(a),
		newServeCmd(a),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the dataset and the default account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Dataset ready at %s\n", a.cfg.DBPath)
			return nil
		},
	}
}
