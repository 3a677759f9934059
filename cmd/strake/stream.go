package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quantarc/strake/analysis"
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Evaluate the configured strategy over prices read from stdin",
	Long: `Read close prices (one per line) or time,open,high,low,close,volume
CSV lines from stdin, maintain a bounded bar series and log the entry and
exit signals of the configured strategy. Stops at EOF.`,
	RunE: runStream,
}

func init() {
	rootCmd.AddCommand(streamCmd)
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	series := bars.NewSeries(cfg.Series.Name)
	if cfg.Series.MaxBarCount > 0 {
		series.SetMaxBarCount(cfg.Series.MaxBarCount)
	}

	strat, err := buildStrategy(series, cfg.Backtest)
	if err != nil {
		return err
	}

	record := trading.NewRecordWithCost(
		sideToTradeType(cfg.Backtest.Side),
		trading.NewLinearTransactionCostModel(cfg.Costs.TransactionFee),
		trading.NewLinearBorrowingCostModel(cfg.Costs.BorrowingFee),
	)
	record.SetName(strat.Name())
	amount := num.New(cfg.Backtest.Amount)

	log.Info("streaming",
		zap.String("strategy", strat.Name()),
		zap.Duration("period", cfg.Series.Period),
		zap.Int("max_bars", cfg.Series.MaxBarCount),
	)

	scanner := bufio.NewScanner(os.Stdin)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		bar, err := parseStreamBar(line, series, cfg.Series.Period)
		if err != nil {
			log.Warn("skipping line", zap.Int("line", lineNo), zap.Error(err))
			continue
		}
		if err := series.AddBar(bar); err != nil {
			log.Warn("skipping bar", zap.Int("line", lineNo), zap.Error(err))
			continue
		}

		index := series.EndIndex()
		closePrice := series.LastBar().Close
		log.Debug("bar appended",
			zap.Int("index", index),
			zap.Int("resident", series.BarCount()),
			zap.Int("removed", series.RemovedBarsCount()),
			zap.String("close", closePrice.String()),
		)

		switch {
		case record.CurrentPosition().IsNew() && strat.ShouldEnter(index, record):
			if err := record.Operate(index, closePrice, amount); err != nil {
				return fmt.Errorf("entering at %d: %w", index, err)
			}
			log.Info("entry signal", zap.Int("index", index), zap.String("price", closePrice.String()))
		case record.CurrentPosition().IsOpened() && strat.ShouldExit(index, record):
			if err := record.Operate(index, closePrice, amount); err != nil {
				return fmt.Errorf("exiting at %d: %w", index, err)
			}
			log.Info("exit signal", zap.Int("index", index), zap.String("price", closePrice.String()))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	if series.IsEmpty() {
		log.Info("stream finished", zap.Int("bars", 0))
		return nil
	}

	profit := analysis.NetProfit{}.Calculate(series, record)
	log.Info("stream finished",
		zap.Int("bars", series.BarCount()),
		zap.Int("removed", series.RemovedBarsCount()),
		zap.Int("positions", record.PositionCount()),
		zap.Bool("open", !record.IsClosed()),
		zap.String("net_profit", profit.String()),
	)
	return nil
}

// parseStreamBar turns one input line into a bar. Bare prices become
// single price bars stamped one period after the previous bar.
func parseStreamBar(line string, s *bars.Series, period time.Duration) (*bars.Bar, error) {
	if !strings.Contains(line, ",") {
		price, err := num.FromString(line)
		if err != nil {
			return nil, fmt.Errorf("parsing price %q: %w", line, err)
		}
		end := time.Now().UTC().Truncate(period).Add(period)
		if !s.IsEmpty() {
			end = s.LastBar().EndTime.Add(period)
		}
		return bars.NewBarFrom(period, end, price, price, price, price, num.Zero()), nil
	}

	fields := strings.Split(line, ",")
	if len(fields) < 6 {
		return nil, fmt.Errorf("expected time,open,high,low,close,volume, got %d fields", len(fields))
	}
	end, err := parseStreamTime(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, err
	}

	vals := make([]num.Num, 5)
	for i, f := range fields[1:6] {
		v, err := num.FromString(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("parsing field %q: %w", f, err)
		}
		vals[i] = v
	}
	return bars.NewBarFrom(period, end, vals[0], vals[1], vals[2], vals[3], vals[4]), nil
}

func parseStreamTime(field string) (time.Time, error) {
	if secs, err := strconv.ParseInt(field, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, field)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", field, err)
	}
	return ts.UTC(), nil
}
