package analysis

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

// CashFlow is the equity curve of a record: the ratio of the account
// value to its starting value at every bar index. It begins at 1, moves
// with close prices while a position is open (net entry price as base,
// holding costs spread over the position's periods) and holds steady
// between positions. Values compound across positions.
type CashFlow struct {
	series *bars.Series
	values []num.Num
}

// NewCashFlow builds the equity curve of every closed position in the
// record, filled to the record's end index.
func NewCashFlow(s *bars.Series, record *trading.Record) *CashFlow {
	c := &CashFlow{series: s, values: []num.Num{num.One()}}
	end := record.EndIndex(s)
	for _, p := range record.Positions() {
		c.accrue(p, end)
	}
	c.fillToTheEnd()
	return c
}

// NewPositionCashFlow builds the equity curve of a single position,
// marked to market until finalIndex while the position is open.
func NewPositionCashFlow(s *bars.Series, p *trading.Position, finalIndex int) *CashFlow {
	c := &CashFlow{series: s, values: []num.Num{num.One()}}
	c.accrue(p, finalIndex)
	c.fillToTheEnd()
	return c
}

// Value returns the equity ratio at bar index i.
func (c *CashFlow) Value(i int) num.Num { return c.values[i] }

// Series returns the backing bar series.
func (c *CashFlow) Series() *bars.Series { return c.series }

// Size returns the number of indices covered.
func (c *CashFlow) Size() int { return len(c.values) }

func (c *CashFlow) accrue(p *trading.Position, finalIndex int) {
	entry := p.Entry()
	if entry == nil {
		return
	}
	long := entry.IsBuy()
	entryIndex := entry.Index()
	endIndex := determineEndIndex(p, finalIndex, c.series.EndIndex())

	// Hold the pre-entry equity flat up to the entry index.
	begin := entryIndex + 1
	for len(c.values) < begin {
		c.values = append(c.values, c.values[len(c.values)-1])
	}

	avgCost := averageHoldingCost(p, entryIndex, endIndex)
	base := c.values[entryIndex]
	netEntry := entry.NetPrice()

	start := begin
	if start < 1 {
		start = 1
	}
	for i := start; i < endIndex; i++ {
		price := addCost(c.series.Bar(i).Close, avgCost, long)
		c.values = append(c.values, base.Mul(intermediateRatio(long, netEntry, price)))
	}

	exitPrice := c.series.Bar(endIndex).Close
	if exit := p.Exit(); exit != nil {
		exitPrice = exit.NetPrice()
	}
	price := addCost(exitPrice, avgCost, long)
	c.values = append(c.values, base.Mul(intermediateRatio(long, netEntry, price)))
}

func (c *CashFlow) fillToTheEnd() {
	for len(c.values) <= c.series.EndIndex() {
		c.values = append(c.values, c.values[len(c.values)-1])
	}
}

// intermediateRatio values a long position by exit/entry and a short one
// by 2 - exit/entry.
func intermediateRatio(long bool, entryPrice, exitPrice num.Num) num.Num {
	ratio := exitPrice.Div(entryPrice)
	if long {
		return ratio
	}
	return num.Two().Sub(ratio)
}

// addCost folds a per-period holding cost into a price: costs shrink the
// proceeds of a long and inflate the cover price of a short.
func addCost(price, avgCost num.Num, long bool) num.Num {
	if long {
		return price.Sub(avgCost)
	}
	return price.Add(avgCost)
}

// averageHoldingCost spreads the position's holding cost evenly over its
// periods. A position opened on its final index has no periods and no
// cost.
func averageHoldingCost(p *trading.Position, entryIndex, endIndex int) num.Num {
	periods := endIndex - entryIndex
	if periods <= 0 {
		return num.Zero()
	}
	return p.HoldingCost(endIndex).Div(num.FromInt(int64(periods)))
}

// determineEndIndex caps accrual at the position exit and the last bar.
func determineEndIndex(p *trading.Position, finalIndex, maxIndex int) int {
	idx := finalIndex
	if exit := p.Exit(); exit != nil && exit.Index() < idx {
		idx = exit.Index()
	}
	if idx > maxIndex {
		idx = maxIndex
	}
	return idx
}
