package strategy

import (
	"github.com/quantarc/strake/indicator"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

// Over satisfies while first is strictly above second. Undefined values
// satisfy nothing.
func Over(first, second indicator.Indicator) Rule { return overRule{first, second} }

// OverValue satisfies while the indicator is strictly above a fixed
// threshold.
func OverValue(first indicator.Indicator, threshold float64) Rule {
	return overRule{first, indicator.NewConstant(first.Series(), num.New(threshold))}
}

type overRule struct{ first, second indicator.Indicator }

func (r overRule) Satisfied(index int, _ *trading.Record) bool {
	return r.first.Value(index).Gt(r.second.Value(index))
}

// Under satisfies while first is strictly below second.
func Under(first, second indicator.Indicator) Rule { return underRule{first, second} }

// UnderValue satisfies while the indicator is strictly below a fixed
// threshold.
func UnderValue(first indicator.Indicator, threshold float64) Rule {
	return underRule{first, indicator.NewConstant(first.Series(), num.New(threshold))}
}

type underRule struct{ first, second indicator.Indicator }

func (r underRule) Satisfied(index int, _ *trading.Record) bool {
	return r.first.Value(index).Lt(r.second.Value(index))
}

// CrossedUp satisfies on the bar where first moves from below to
// strictly above second. A flat stretch where both are equal counts as
// part of the crossing.
func CrossedUp(first, second indicator.Indicator) Rule { return crossedUpRule{first, second} }

// CrossedUpValue satisfies on the bar where the indicator crosses above
// a fixed threshold.
func CrossedUpValue(first indicator.Indicator, threshold float64) Rule {
	return crossedUpRule{first, indicator.NewConstant(first.Series(), num.New(threshold))}
}

type crossedUpRule struct{ first, second indicator.Indicator }

func (r crossedUpRule) Satisfied(index int, _ *trading.Record) bool {
	if index == 0 || !r.first.Value(index).Gt(r.second.Value(index)) {
		return false
	}
	i := index - 1
	if r.first.Value(i).Lt(r.second.Value(i)) {
		return true
	}
	for i > 0 && r.first.Value(i).Eq(r.second.Value(i)) {
		i--
	}
	return i != 0 && r.first.Value(i).Lt(r.second.Value(i))
}

// CrossedDown satisfies on the bar where first moves from above to
// strictly below second.
func CrossedDown(first, second indicator.Indicator) Rule { return crossedDownRule{first, second} }

// CrossedDownValue satisfies on the bar where the indicator crosses
// below a fixed threshold.
func CrossedDownValue(first indicator.Indicator, threshold float64) Rule {
	return crossedDownRule{first, indicator.NewConstant(first.Series(), num.New(threshold))}
}

type crossedDownRule struct{ first, second indicator.Indicator }

func (r crossedDownRule) Satisfied(index int, _ *trading.Record) bool {
	if index == 0 || !r.first.Value(index).Lt(r.second.Value(index)) {
		return false
	}
	i := index - 1
	if r.first.Value(i).Gt(r.second.Value(i)) {
		return true
	}
	for i > 0 && r.first.Value(i).Eq(r.second.Value(i)) {
		i--
	}
	return i != 0 && r.first.Value(i).Gt(r.second.Value(i))
}

// Rising satisfies when the indicator rose on every one of the last
// barCount bars.
func Rising(ref indicator.Indicator, barCount int) Rule { return risingRule{ref, barCount} }

type risingRule struct {
	ref      indicator.Indicator
	barCount int
}

func (r risingRule) Satisfied(index int, _ *trading.Record) bool {
	count := 0
	for i := max(0, index-r.barCount+1); i <= index; i++ {
		if r.ref.Value(i).Gt(r.ref.Value(max(0, i-1))) {
			count++
		}
	}
	return count == r.barCount
}

// Falling satisfies when the indicator fell on every one of the last
// barCount bars.
func Falling(ref indicator.Indicator, barCount int) Rule { return fallingRule{ref, barCount} }

type fallingRule struct {
	ref      indicator.Indicator
	barCount int
}

func (r fallingRule) Satisfied(index int, _ *trading.Record) bool {
	count := 0
	for i := max(0, index-r.barCount+1); i <= index; i++ {
		if r.ref.Value(i).Lt(r.ref.Value(max(0, i-1))) {
			count++
		}
	}
	return count == r.barCount
}

// StopLoss satisfies while the open position loses more than lossPct
// percent against its net entry price. Without an open position the
// rule is never satisfied.
func StopLoss(price indicator.Indicator, lossPct float64) Rule {
	return stopLossRule{price, num.New(lossPct)}
}

type stopLossRule struct {
	price indicator.Indicator
	loss  num.Num
}

func (r stopLossRule) Satisfied(index int, record *trading.Record) bool {
	if record == nil {
		return false
	}
	p := record.CurrentPosition()
	if p == nil || !p.IsOpened() {
		return false
	}
	entry := p.Entry().NetPrice()
	current := r.price.Value(index)
	if p.Entry().IsBuy() {
		return current.LtEq(entry.Mul(num.Hundred().Sub(r.loss)).Div(num.Hundred()))
	}
	return current.GtEq(entry.Mul(num.Hundred().Add(r.loss)).Div(num.Hundred()))
}

// StopGain satisfies while the open position gains more than gainPct
// percent against its net entry price.
func StopGain(price indicator.Indicator, gainPct float64) Rule {
	return stopGainRule{price, num.New(gainPct)}
}

type stopGainRule struct {
	price indicator.Indicator
	gain  num.Num
}

func (r stopGainRule) Satisfied(index int, record *trading.Record) bool {
	if record == nil {
		return false
	}
	p := record.CurrentPosition()
	if p == nil || !p.IsOpened() {
		return false
	}
	entry := p.Entry().NetPrice()
	current := r.price.Value(index)
	if p.Entry().IsBuy() {
		return current.GtEq(entry.Mul(num.Hundred().Add(r.gain)).Div(num.Hundred()))
	}
	return current.LtEq(entry.Mul(num.Hundred().Sub(r.gain)).Div(num.Hundred()))
}

// WaitFor satisfies once at least barCount bars have passed since the
// last trade of the given type.
func WaitFor(tradeType trading.TradeType, barCount int) Rule {
	return waitForRule{tradeType, barCount}
}

type waitForRule struct {
	tradeType trading.TradeType
	barCount  int
}

func (r waitForRule) Satisfied(index int, record *trading.Record) bool {
	if record == nil {
		return false
	}
	last := record.LastTradeOfType(r.tradeType)
	return last != nil && index-last.Index() >= r.barCount
}
