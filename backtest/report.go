package backtest

import (
	"io"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/quantarc/strake/analysis"
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

// ReportConfig parameterizes the criteria behind a report.
type ReportConfig struct {
	// Confidence is the expected shortfall confidence level.
	Confidence float64

	// InitialAmount, FeeRatio and FeeFixed feed the linear transaction
	// cost model: each trade costs FeeRatio*amount + FeeFixed.
	InitialAmount float64
	FeeRatio      float64
	FeeFixed      float64
}

// DefaultReportConfig scores shortfall at 95% confidence and prices
// trades at 0.5% plus 0.2 on a 1000 account.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Confidence:    0.95,
		InitialAmount: 1000,
		FeeRatio:      0.005,
		FeeFixed:      0.2,
	}
}

// Report scores a finished run against the standard criteria set.
type Report struct {
	id       string
	strategy string
	rows     []reportRow
}

type reportRow struct {
	name  string
	value num.Num
}

// NewReport evaluates the record and freezes the results under a fresh
// run ID.
func NewReport(s *bars.Series, rec *trading.Record, strategyName string, cfg ReportConfig) *Report {
	open := 0
	if !rec.IsClosed() {
		open = 1
	}
	r := &Report{
		id:       uuid.NewString(),
		strategy: strategyName,
		rows: []reportRow{
			{"positions", num.FromInt(int64(rec.PositionCount()))},
			{"open positions", num.FromInt(int64(open))},
			{"win rate", analysis.WinningPositionsRatio{}.Calculate(s, rec)},
			{"net profit", analysis.NetProfit{}.Calculate(s, rec)},
			{"gross profit", analysis.GrossProfit{}.Calculate(s, rec)},
			{"gross return", analysis.GrossReturn{}.Calculate(s, rec)},
			{"max drawdown", analysis.MaximumDrawdown{}.Calculate(s, rec)},
			{"expected shortfall", analysis.NewExpectedShortfall(cfg.Confidence).Calculate(s, rec)},
			{"transaction cost", analysis.NewLinearTransactionCost(cfg.InitialAmount, cfg.FeeRatio, cfg.FeeFixed).Calculate(s, rec)},
		},
	}
	return r
}

// ID returns the run identifier.
func (r *Report) ID() string { return r.id }

// Strategy returns the reported strategy name.
func (r *Report) Strategy() string { return r.strategy }

// Value returns a criterion row by name, or Undefined for an unknown
// name.
func (r *Report) Value(name string) num.Num {
	for _, row := range r.rows {
		if row.name == name {
			return row.value
		}
	}
	return num.Undefined()
}

// Render writes the report as a table.
func (r *Report) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("backtest %s", r.strategy)
	t.AppendHeader(table.Row{"criterion", "value"})
	for _, row := range r.rows {
		t.AppendRow(table.Row{row.name, row.value.String()})
	}
	t.AppendFooter(table.Row{"run", r.id})
	t.Render()
}
