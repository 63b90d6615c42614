package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mmynk/budgetbook/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Year bounds accepted from the command line.
const (
	minYear = 2000
	maxYear = 2100
)

// promptPassword prints prompt to w and reads a password without echo.
func promptPassword(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// addPeriodFlags registers --month and --year on cmd.
func addPeriodFlags(cmd *cobra.Command, month, year *int) {
	cmd.Flags().IntVar(month, "month", 0, "month 1-12 (default current month)")
	cmd.Flags().IntVar(year, "year", 0, "year (default current year)")
}

// resolvePeriod fills unset flags from the current date and checks the range.
func resolvePeriod(month, year int) (models.Period, error) {
	current := models.PeriodOf(now())
	if month == 0 {
		month = current.Month
	}
	if year == 0 {
		year = current.Year
	}
	if month < 1 || month > 12 {
		return models.Period{}, fmt.Errorf("invalid month %d: must be 1-12", month)
	}
	if err := checkYear(year); err != nil {
		return models.Period{}, err
	}
	return models.Period{Month: month, Year: year}, nil
}

func checkYear(year int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf("invalid year %d: must be between %d and %d", year, minYear, maxYear)
	}
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

// money renders an amount with two decimals.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
