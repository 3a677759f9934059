// Package backtest replays a strategy over a bar series and reports how
// it would have traded.
package backtest

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/strategy"
	"github.com/quantarc/strake/trading"
)

// Config carries the trading parameters of a run.
type Config struct {
	// TradeType is the side that opens every position.
	TradeType trading.TradeType

	// Amount is the quantity traded per operation.
	Amount num.Num

	// Transaction and Holding price the costs of each position.
	Transaction trading.CostModel
	Holding     trading.CostModel
}

// DefaultConfig trades one unit long with no costs.
func DefaultConfig() Config {
	return Config{
		TradeType:   trading.Buy,
		Amount:      num.One(),
		Transaction: trading.ZeroCostModel{},
		Holding:     trading.ZeroCostModel{},
	}
}

// Runner walks a series bar by bar, consulting a strategy against the
// live record and operating at the close of every satisfied index.
type Runner struct {
	series *bars.Series
	cfg    Config
	logger *zap.Logger
}

// NewRunner creates a runner over the series. Zero config fields fall
// back to DefaultConfig values.
func NewRunner(series *bars.Series, cfg Config, logger ...*zap.Logger) *Runner {
	def := DefaultConfig()
	if cfg.TradeType == "" {
		cfg.TradeType = def.TradeType
	}
	if cfg.Amount.IsZero() || cfg.Amount.IsUndefined() {
		cfg.Amount = def.Amount
	}
	if cfg.Transaction == nil {
		cfg.Transaction = def.Transaction
	}
	if cfg.Holding == nil {
		cfg.Holding = def.Holding
	}

	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Runner{series: series, cfg: cfg, logger: l}
}

// Run replays the strategy over the whole series. The returned record
// may end with an open position.
func (r *Runner) Run(strat *strategy.Strategy) (*trading.Record, error) {
	rec := trading.NewRecordWithCost(r.cfg.TradeType, r.cfg.Transaction, r.cfg.Holding)
	return r.run(strat, rec)
}

// RunWindow replays the strategy over [start, end], clamped to the
// series bounds.
func (r *Runner) RunWindow(strat *strategy.Strategy, start, end int) (*trading.Record, error) {
	rec := trading.NewWindowedRecord(r.cfg.TradeType, r.cfg.Transaction, r.cfg.Holding, start, end)
	return r.run(strat, rec)
}

func (r *Runner) run(strat *strategy.Strategy, rec *trading.Record) (*trading.Record, error) {
	if r.series.IsEmpty() {
		return nil, trading.ErrNoBarsToOperate
	}
	rec.SetName(strat.Name())

	began := time.Now()
	operations := 0
	for i := rec.StartIndex(r.series); i <= rec.EndIndex(r.series); i++ {
		if !r.shouldOperate(strat, i, rec) {
			continue
		}
		price := r.series.Bar(i).Close
		if err := rec.Operate(i, price, r.cfg.Amount); err != nil {
			return nil, fmt.Errorf("running %s: %w", strat.Name(), err)
		}
		operations++
		r.logger.Debug("operated",
			zap.String("strategy", strat.Name()),
			zap.Int("index", i),
			zap.String("side", string(rec.LastTrade().Type())),
			zap.String("price", price.String()))
	}

	r.logger.Info("backtest finished",
		zap.String("strategy", strat.Name()),
		zap.Int("operations", operations),
		zap.Int("positions", rec.PositionCount()),
		zap.Bool("open", !rec.IsClosed()),
		zap.Duration("elapsed", time.Since(began)))
	return rec, nil
}

// shouldOperate asks the strategy to enter when flat and to exit when a
// position is open.
func (r *Runner) shouldOperate(strat *strategy.Strategy, index int, rec *trading.Record) bool {
	p := rec.CurrentPosition()
	switch {
	case p.IsNew():
		return strat.ShouldEnter(index, rec)
	case p.IsOpened():
		return strat.ShouldExit(index, rec)
	default:
		return false
	}
}
