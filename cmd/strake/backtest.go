package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quantarc/strake/backtest"
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/indicator"
	"github.com/quantarc/strake/internal/config"
	"github.com/quantarc/strake/loader"
	"github.com/quantarc/strake/metrics"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/strategy"
	"github.com/quantarc/strake/trading"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backtestData     string
	backtestFormat   string
	backtestStrategy string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run the configured strategy over a data file",
	Long:  "Load bar data from a file, run the configured strategy against it and print the scored report.",
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestData, "data", "", "Bar data file, .csv .json or .parquet (required unless backtest.data is configured)")
	backtestCmd.Flags().StringVar(&backtestFormat, "format", "", "Data format override: csv, json or parquet")
	backtestCmd.Flags().StringVar(&backtestStrategy, "strategy", "", "Strategy override: sma-cross, rsi or sar")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	bt := cfg.Backtest
	if backtestData != "" {
		bt.Data = backtestData
	}
	if backtestFormat != "" {
		bt.Format = backtestFormat
	}
	if backtestStrategy != "" {
		bt.Strategy = backtestStrategy
	}
	if bt.Data == "" {
		return fmt.Errorf("no data file: set --data or backtest.data")
	}

	log.Debug("reading data file", zap.String("file", bt.Data))
	series, err := loadSeries(bt, cfg.Series, log)
	if err != nil {
		return err
	}

	strat, err := buildStrategy(series, bt)
	if err != nil {
		return err
	}

	runner := backtest.NewRunner(series, backtest.Config{
		TradeType:   sideToTradeType(bt.Side),
		Amount:      num.New(bt.Amount),
		Transaction: trading.NewLinearTransactionCostModel(cfg.Costs.TransactionFee),
		Holding:     trading.NewLinearBorrowingCostModel(cfg.Costs.BorrowingFee),
	}, log)

	started := time.Now()
	record, err := runner.Run(strat)
	if err != nil {
		return fmt.Errorf("running backtest: %w", err)
	}
	elapsed := time.Since(started)

	report := backtest.NewReport(series, record, strat.Name(), backtest.ReportConfig{
		Confidence:    bt.Confidence,
		InitialAmount: bt.InitialAmount,
		FeeRatio:      cfg.Costs.TransactionFee,
		FeeFixed:      cfg.Costs.FixedFee,
	})
	report.Render(os.Stdout)

	if cfg.Metrics.Enabled {
		return serveMetrics(cfg.Metrics, series, record, elapsed, log)
	}
	return nil
}

type barLoader interface {
	Load(r io.Reader, opts loader.Options) (*bars.Series, error)
}

func loadSeries(bt config.BacktestConfig, sc config.SeriesConfig, log *zap.Logger) (*bars.Series, error) {
	ldr, err := loaderFor(bt.Data, bt.Format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(bt.Data)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	return ldr.Load(f, loader.Options{
		Name:        sc.Name,
		Period:      sc.Period,
		MaxBarCount: sc.MaxBarCount,
		Logger:      log,
	})
}

func loaderFor(path, format string) (barLoader, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			format = "csv"
		case ".json":
			format = "json"
		case ".parquet":
			format = "parquet"
		}
	}

	switch format {
	case "csv":
		return loader.CSV{}, nil
	case "json":
		return loader.JSON{}, nil
	case "parquet":
		return loader.Parquet{}, nil
	default:
		return nil, fmt.Errorf("cannot tell data format of %q, set --format", path)
	}
}

// buildStrategy assembles the strategy named in the backtest config over
// the series.
func buildStrategy(s *bars.Series, bt config.BacktestConfig) (*strategy.Strategy, error) {
	closePrice := indicator.NewClosePrice(s)

	var strat *strategy.Strategy
	switch bt.Strategy {
	case "sma-cross":
		short := indicator.NewSMA(closePrice, bt.ShortWindow)
		long := indicator.NewSMA(closePrice, bt.LongWindow)
		strat = strategy.New("sma-cross",
			strategy.CrossedUp(short, long),
			strategy.CrossedDown(short, long),
		)
		strat.SetUnstableBars(bt.LongWindow)
	case "rsi":
		rsi := indicator.NewRSI(closePrice, bt.RSIWindow)
		strat = strategy.New("rsi",
			strategy.CrossedDownValue(rsi, bt.RSILower),
			strategy.CrossedUpValue(rsi, bt.RSIUpper),
		)
		strat.SetUnstableBars(bt.RSIWindow)
	case "sar":
		sar := indicator.NewParabolicSAR(s)
		strat = strategy.New("sar",
			strategy.CrossedUp(closePrice, sar),
			strategy.CrossedDown(closePrice, sar),
		)
	default:
		return nil, fmt.Errorf("unknown strategy: %s", bt.Strategy)
	}

	if bt.UnstableBars > 0 {
		strat.SetUnstableBars(bt.UnstableBars)
	}
	return strat, nil
}

func sideToTradeType(side string) trading.TradeType {
	if side == "sell" {
		return trading.Sell
	}
	return trading.Buy
}

// serveMetrics exposes the run on a Prometheus endpoint until interrupted.
func serveMetrics(cfg config.MetricsConfig, s *bars.Series, rec *trading.Record, elapsed time.Duration, log *zap.Logger) error {
	reg := metrics.NewRegistry()

	runs := metrics.NewRunnerMetrics(reg)
	runs.RecordRun(elapsed, len(rec.Trades()))
	reg.MustRegister(
		metrics.NewSeriesCollector(s),
		metrics.NewRecordCollector(rec),
	)

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", cfg.Addr), zap.String("path", cfg.Path))

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
