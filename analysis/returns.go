package analysis

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

// ReturnKind selects how a single-period return is measured.
type ReturnKind string

const (
	// Arithmetic measures the simple return current/previous - 1.
	Arithmetic ReturnKind = "ARITHMETIC"

	// Log measures the continuously compounded return ln(current/previous).
	Log ReturnKind = "LOG"
)

// Calculate returns the single-period return from previous to current.
func (k ReturnKind) Calculate(current, previous num.Num) num.Num {
	ratio := current.Div(previous)
	if k == Log {
		return ratio.Log()
	}
	return ratio.Sub(num.One())
}

// Returns is the per-bar return stream of a record. Index 0 is undefined
// because no prior bar exists, bars outside any position contribute zero
// and bars inside a position carry the strategy return for that period:
// the asset return measured against the previous price, negated for
// short positions, with holding costs spread over the position and
// transaction costs folded into the entry and exit prices.
type Returns struct {
	series *bars.Series
	kind   ReturnKind
	values []num.Num
}

// NewReturns builds the return stream of every closed position in the
// record, filled with zeros to the end of the series.
func NewReturns(s *bars.Series, record *trading.Record, kind ReturnKind) *Returns {
	r := &Returns{series: s, kind: kind, values: []num.Num{num.Undefined()}}
	for _, p := range record.Positions() {
		r.accrue(p, s.EndIndex())
	}
	r.fillToTheEnd()
	return r
}

// NewPositionReturns builds the return stream of a single position,
// marked to market until the end of the series while it is open.
func NewPositionReturns(s *bars.Series, p *trading.Position, kind ReturnKind) *Returns {
	r := &Returns{series: s, kind: kind, values: []num.Num{num.Undefined()}}
	r.accrue(p, s.EndIndex())
	r.fillToTheEnd()
	return r
}

// Value returns the strategy return at bar index i.
func (r *Returns) Value(i int) num.Num { return r.values[i] }

// Series returns the backing bar series.
func (r *Returns) Series() *bars.Series { return r.series }

// Kind returns the return measure in use.
func (r *Returns) Kind() ReturnKind { return r.kind }

// Size returns the number of indices covered.
func (r *Returns) Size() int { return len(r.values) }

func (r *Returns) accrue(p *trading.Position, finalIndex int) {
	entry := p.Entry()
	if entry == nil {
		return
	}
	long := entry.IsBuy()
	entryIndex := entry.Index()
	endIndex := determineEndIndex(p, finalIndex, r.series.EndIndex())

	// Bars up to and including the entry bar earn nothing.
	begin := entryIndex + 1
	for len(r.values) < begin {
		r.values = append(r.values, num.Zero())
	}

	avgCost := averageHoldingCost(p, entryIndex, endIndex)
	lastPrice := entry.NetPrice()

	start := begin
	if start < 1 {
		start = 1
	}
	for i := start; i < endIndex; i++ {
		price := addCost(r.series.Bar(i).Close, avgCost, long)
		r.values = append(r.values, r.strategyReturn(price, lastPrice, long))
		lastPrice = r.series.Bar(i).Close
	}

	exitPrice := r.series.Bar(endIndex).Close
	if exit := p.Exit(); exit != nil {
		exitPrice = exit.NetPrice()
	}
	price := addCost(exitPrice, avgCost, long)
	r.values = append(r.values, r.strategyReturn(price, lastPrice, long))
}

// strategyReturn flips the sign of the asset return for short positions.
func (r *Returns) strategyReturn(price, lastPrice num.Num, long bool) num.Num {
	ret := r.kind.Calculate(price, lastPrice)
	if long {
		return ret
	}
	return ret.Neg()
}

func (r *Returns) fillToTheEnd() {
	for len(r.values) <= r.series.EndIndex() {
		r.values = append(r.values, num.Zero())
	}
}
