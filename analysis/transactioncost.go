package analysis

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

// LinearTransactionCost totals broker fees of a*amount + b per trade
// over a record. The traded amount starts at initialAmount and follows
// the account through the record: each entry and exit deducts its own
// fee and each closed position compounds the remainder by its gross
// return. Lower ranks better.
type LinearTransactionCost struct {
	initialAmount float64
	a, b          float64
}

// NewLinearTransactionCost prices trades at a*tradedAmount + b starting
// from an account of initialAmount.
func NewLinearTransactionCost(initialAmount, a, b float64) LinearTransactionCost {
	return LinearTransactionCost{initialAmount: initialAmount, a: a, b: b}
}

func (c LinearTransactionCost) Calculate(s *bars.Series, record *trading.Record) num.Num {
	total := num.Zero()
	traded := num.New(c.initialAmount)
	for _, p := range record.Positions() {
		total = total.Add(c.positionCost(p, traded))
		traded = traded.Sub(c.tradeCost(traded))
		traded = traded.Mul(p.GrossReturn())
		traded = traded.Sub(c.tradeCost(traded))
	}
	if cur := record.CurrentPosition(); cur != nil && cur.IsOpened() {
		total = total.Add(c.tradeCost(traded))
	}
	return total
}

func (c LinearTransactionCost) CalculatePosition(s *bars.Series, p *trading.Position) num.Num {
	return c.positionCost(p, num.New(c.initialAmount))
}

func (c LinearTransactionCost) BetterThan(a, b num.Num) bool { return a.Lt(b) }

// tradeCost prices a single trade of the given notional amount.
func (c LinearTransactionCost) tradeCost(amount num.Num) num.Num {
	return num.New(c.a).Mul(amount).Add(num.New(c.b))
}

// positionCost prices the entry trade and, once the position is closed,
// the exit trade against the amount left after the entry fee compounded
// by the position's gross return.
func (c LinearTransactionCost) positionCost(p *trading.Position, amount num.Num) num.Num {
	if p == nil || p.Entry() == nil {
		return num.Zero()
	}
	cost := c.tradeCost(amount)
	if p.IsClosed() {
		after := amount.Sub(cost).Mul(p.GrossReturn())
		cost = cost.Add(c.tradeCost(after))
	}
	return cost
}
