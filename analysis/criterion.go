// Package analysis evaluates trading records against a bar series: cash
// flow and return streams over the positions of a record, and criteria
// that reduce a record to a single comparable figure.
package analysis

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

// Criterion reduces a trading record, or a single position, to one
// number. BetterThan orders two criterion values so that callers can
// rank strategies without knowing whether higher or lower wins.
type Criterion interface {
	Calculate(s *bars.Series, record *trading.Record) num.Num
	CalculatePosition(s *bars.Series, p *trading.Position) num.Num
	BetterThan(a, b num.Num) bool
}

// NetProfit sums the profit of every closed position, costs deducted.
type NetProfit struct{}

func (NetProfit) Calculate(s *bars.Series, record *trading.Record) num.Num {
	total := num.Zero()
	for _, p := range record.Positions() {
		total = total.Add(p.Profit())
	}
	return total
}

func (NetProfit) CalculatePosition(s *bars.Series, p *trading.Position) num.Num {
	return p.Profit()
}

func (NetProfit) BetterThan(a, b num.Num) bool { return a.Gt(b) }

// GrossProfit sums the profit of every closed position before costs.
type GrossProfit struct{}

func (GrossProfit) Calculate(s *bars.Series, record *trading.Record) num.Num {
	total := num.Zero()
	for _, p := range record.Positions() {
		total = total.Add(p.GrossProfit())
	}
	return total
}

func (GrossProfit) CalculatePosition(s *bars.Series, p *trading.Position) num.Num {
	return p.GrossProfit()
}

func (GrossProfit) BetterThan(a, b num.Num) bool { return a.Gt(b) }

// GrossReturn multiplies the gross return ratios of every closed
// position. An empty record returns 1.
type GrossReturn struct{}

func (GrossReturn) Calculate(s *bars.Series, record *trading.Record) num.Num {
	total := num.One()
	for _, p := range record.Positions() {
		total = total.Mul(p.GrossReturn())
	}
	return total
}

func (GrossReturn) CalculatePosition(s *bars.Series, p *trading.Position) num.Num {
	return p.GrossReturn()
}

func (GrossReturn) BetterThan(a, b num.Num) bool { return a.Gt(b) }

// PositionCount counts closed positions. Fewer positions rank better, as
// a tie-break against overtrading.
type PositionCount struct{}

func (PositionCount) Calculate(s *bars.Series, record *trading.Record) num.Num {
	return num.FromInt(int64(record.PositionCount()))
}

func (PositionCount) CalculatePosition(s *bars.Series, p *trading.Position) num.Num {
	return num.One()
}

func (PositionCount) BetterThan(a, b num.Num) bool { return a.Lt(b) }

// WinningPositionsRatio is the share of closed positions with a positive
// profit. An empty record returns 0.
type WinningPositionsRatio struct{}

func (WinningPositionsRatio) Calculate(s *bars.Series, record *trading.Record) num.Num {
	if record.PositionCount() == 0 {
		return num.Zero()
	}
	winning := int64(0)
	for _, p := range record.Positions() {
		if p.HasProfit() {
			winning++
		}
	}
	return num.FromInt(winning).Div(num.FromInt(int64(record.PositionCount())))
}

func (WinningPositionsRatio) CalculatePosition(s *bars.Series, p *trading.Position) num.Num {
	if p.HasProfit() {
		return num.One()
	}
	return num.Zero()
}

func (WinningPositionsRatio) BetterThan(a, b num.Num) bool { return a.Gt(b) }
