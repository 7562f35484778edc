package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/khata-labs/ledger-server/internal/config"
	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/service"
	"github.com/khata-labs/ledger-server/internal/storage"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

type reportFlags struct {
	user         string
	kind         string
	counterparty string
	search       string
	from         string
	to           string
	minTotal     string
	maxTotal     string
	payment      string
	out          string
}

func newReportCommand() *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a filtered transaction report as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.user, "user", "", "user id to report on (required)")
	cmd.Flags().StringVar(&flags.kind, "kind", "", "purchase or sale, empty for both")
	cmd.Flags().StringVar(&flags.counterparty, "counterparty", "", "counterparty name fragment")
	cmd.Flags().StringVar(&flags.search, "search", "", "fragment matched against counterparty and item names")
	cmd.Flags().StringVar(&flags.from, "from", "", "first calendar day included, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.to, "to", "", "last calendar day included, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.minTotal, "min-total", "", "decimal lower bound on the row total")
	cmd.Flags().StringVar(&flags.maxTotal, "max-total", "", "decimal upper bound on the row total")
	cmd.Flags().StringVar(&flags.payment, "payment", "all", "payment split: all, cash or account")
	cmd.Flags().StringVar(&flags.out, "out", "", "output file, defaults to stdout")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runReport(cmd *cobra.Command, flags *reportFlags) error {
	kind, filter, err := buildReportFilter(flags)
	if err != nil {
		return err
	}

	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return err
	}
	store, err := storage.NewStorage(env)
	if err != nil {
		return err
	}
	defer store.DB.Close()

	rows, stats, err := service.NewReportService(store).Generate(cmd.Context(), flags.user, kind, filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.out != "" {
		f, createErr := os.Create(flags.out)
		if createErr != nil {
			return createErr
		}
		defer f.Close()
		out = f
	}

	if err := writeReportCSV(out, rows, stats); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d rows\n", stats.Count)
	return nil
}

func buildReportFilter(flags *reportFlags) (*transaction.Kind, ledger.ReportFilter, error) {
	var kind *transaction.Kind
	if flags.kind != "" {
		parsed, err := service.ParseTransactionKind(flags.kind)
		if err != nil {
			return nil, ledger.ReportFilter{}, err
		}
		kind = &parsed
	}

	filter := ledger.ReportFilter{
		Counterparty: flags.counterparty,
		Search:       flags.search,
		Payment:      ledger.PaymentAll,
	}

	switch flags.payment {
	case "", "all":
	case "cash":
		filter.Payment = ledger.PaymentCash
	case "account":
		filter.Payment = ledger.PaymentOnAccount
	default:
		return nil, filter, fmt.Errorf("unknown payment type %q", flags.payment)
	}

	if flags.from != "" {
		from, err := time.Parse("2006-01-02", flags.from)
		if err != nil {
			return nil, filter, fmt.Errorf("invalid from date: %w", err)
		}
		filter.From = &from
	}
	if flags.to != "" {
		to, err := time.Parse("2006-01-02", flags.to)
		if err != nil {
			return nil, filter, fmt.Errorf("invalid to date: %w", err)
		}
		filter.To = &to
	}

	if flags.minTotal != "" {
		minTotal, err := decimal.NewFromString(flags.minTotal)
		if err != nil {
			return nil, filter, fmt.Errorf("invalid min-total: %w", err)
		}
		filter.MinTotal = &minTotal
	}
	if flags.maxTotal != "" {
		maxTotal, err := decimal.NewFromString(flags.maxTotal)
		if err != nil {
			return nil, filter, fmt.Errorf("invalid max-total: %w", err)
		}
		filter.MaxTotal = &maxTotal
	}

	return kind, filter, nil
}

// writeReportCSV renders the rows followed by a blank line and a stats block.
func writeReportCSV(out io.Writer, rows []ledger.ReportRow, stats ledger.ReportStats) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"id", "counterparty", "items", "total", "cashPaid", "onAccount", "date"}); err != nil {
		return err
	}

	for _, row := range rows {
		date := ""
		if !row.Date.IsZero() {
			date = row.Date.Format("2006-01-02")
		}
		record := []string{
			row.ID,
			row.CounterpartyName,
			strings.Join(row.ItemNames, "; "),
			row.Total.String(),
			row.CashPaid.String(),
			row.OnAccount.String(),
			date,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return err
	}
	if err := w.Write([]string{"count", fmt.Sprintf("%d", stats.Count)}); err != nil {
		return err
	}
	if err := w.Write([]string{"totalSum", stats.TotalSum.String()}); err != nil {
		return err
	}
	if err := w.Write([]string{"cashSum", stats.CashSum.String()}); err != nil {
		return err
	}
	if err := w.Write([]string{"onAccountSum", stats.OnAccountSum.String()}); err != nil {
		return err
	}
	if err := w.Write([]string{"averageTotal", stats.AverageTotal.String()}); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
