package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"time",
		"cash",
		"holdings",
		"equity",
		"decisions",
		"fills",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.Time),
			fmtDecimal(r.Cash),
			fmtDecimal(r.Holdings),
			fmtDecimal(r.Equity),
			strconv.Itoa(r.Decisions),
			strconv.Itoa(r.Fills),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func WriteFillsCSV(path string, fills []Fill) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time", "symbol", "side", "quantity", "price", "value"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range fills {
		row := []string{
			fmtTime(r.Time),
			r.Symbol,
			string(r.Side),
			fmtDecimal(r.Quantity),
			fmtDecimal(r.Price),
			fmtDecimal(r.Value),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtDecimal(d decimal.Decimal) string {
	return d.Round(6).String()
}
