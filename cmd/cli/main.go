package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"equity-backtest/internal/analysis"
	"equity-backtest/internal/backtest"
	"equity-backtest/internal/config"
	"equity-backtest/internal/data"
	"equity-backtest/internal/logger"
	"equity-backtest/internal/strategy"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backtest":
		cmdBacktest(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --config examples/config.yaml --out results/ledger.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - without --config, runs the buy-and-hold reference strategy on synthetic data")
	fmt.Println("  - --as-of pins the host clock (RFC3339) for reproducible windows")
}

func cmdBacktest(args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	fillsPath := fs.String("fills", "", "Optional fills CSV path")
	asOf := fs.String("as-of", "", "Pin the host clock to this RFC3339 time")
	_ = fs.Parse(args)

	var cfg *config.Config
	var err error
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		fatal(err)
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File}); err != nil {
		fatal(err)
	}

	source, err := buildSource(cfg.Data)
	if err != nil {
		fatal(err)
	}
	strat, err := strategy.New(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		fatal(err)
	}

	var opts []backtest.Option
	if *asOf != "" {
		t, err := time.Parse(time.RFC3339, *asOf)
		if err != nil {
			fatal(fmt.Errorf("--as-of must be RFC3339: %w", err))
		}
		opts = append(opts, backtest.WithClock(func() time.Time { return t }))
	}

	res, err := backtest.New(opts...).Run(strat, source)
	if err != nil {
		fatal(err)
	}

	outSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "out" {
			outSet = true
		}
	})
	out := resolveOutPath(*outPath, outSet, cfg.Output)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		fatal(err)
	}
	if err := backtest.WriteLedgerCSV(out, res.Ledger); err != nil {
		fatal(err)
	}
	if *fillsPath != "" {
		if err := backtest.WriteFillsCSV(*fillsPath, res.Fills); err != nil {
			fatal(err)
		}
	}

	summary := analysis.Summarize(res)
	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), out)
	fmt.Printf("Strategy=%s Window=[%s, %s)\n", res.Strategy,
		res.Window.Start.Format(time.RFC3339), res.Window.End.Format(time.RFC3339))
	fmt.Printf("Final equity=$%s Return=%.2f%% MaxDD=%.2f%% Sharpe=%.2f Fills=%d\n",
		summary.FinalEquity.Round(2), summary.TotalReturnPct, summary.MaxDrawdownPct,
		summary.Sharpe, summary.Fills)
}

// resolveOutPath prefers an explicit --out flag over the config's output
// path; the flag default only applies when neither was given.
func resolveOutPath(flagValue string, flagSet bool, cfgOutput string) string {
	if !flagSet && cfgOutput != "" {
		return cfgOutput
	}
	return flagValue
}

func buildSource(cfg config.DataConfig) (data.Source, error) {
	switch cfg.Type {
	case config.DataTypeFile:
		return data.NewFileSource(cfg.Dir), nil
	case config.DataTypeSynthetic:
		src := data.NewSyntheticSource(cfg.Seed)
		src.StartPrice = cfg.StartPrice
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported data.type: %q", cfg.Type)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
