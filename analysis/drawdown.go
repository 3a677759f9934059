package analysis

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

// MaximumDrawdown is the largest peak-to-trough loss of the equity
// curve, as a fraction of the peak. Lower ranks better.
type MaximumDrawdown struct{}

func (MaximumDrawdown) Calculate(s *bars.Series, record *trading.Record) num.Num {
	return maximumDrawdown(s, NewCashFlow(s, record))
}

func (MaximumDrawdown) CalculatePosition(s *bars.Series, p *trading.Position) num.Num {
	if p == nil || !p.IsClosed() {
		return num.Zero()
	}
	return maximumDrawdown(s, NewPositionCashFlow(s, p, s.EndIndex()))
}

func (MaximumDrawdown) BetterThan(a, b num.Num) bool { return a.Lt(b) }

func maximumDrawdown(s *bars.Series, flow *CashFlow) num.Num {
	deepest := num.Zero()
	peak := num.Zero()
	if s.IsEmpty() {
		return deepest
	}
	for i := s.BeginIndex(); i <= s.EndIndex(); i++ {
		value := flow.Value(i)
		if value.Gt(peak) {
			peak = value
		}
		drawdown := peak.Sub(value).Div(peak)
		if drawdown.Gt(deepest) {
			deepest = drawdown
		}
	}
	return deepest
}
