package indicator

import (
	"github.com/quantarc/strake/num"
)

// Gain is the upward change of the source value, 0 when flat or falling
// and 0 at the first index.
type Gain struct {
	*Cache
	ind Indicator
}

// NewGain builds a gain indicator over ind.
func NewGain(ind Indicator) *Gain {
	g := &Gain{ind: ind}
	g.Cache = NewCache(ind.Series(), g.calculate)
	return g
}

func (g *Gain) calculate(i int) num.Num {
	if i == 0 {
		return num.Zero()
	}
	cur, prev := g.ind.Value(i), g.ind.Value(i-1)
	if cur.Gt(prev) {
		return cur.Sub(prev)
	}
	return num.Zero()
}

// Loss is the downward change of the source value, 0 when flat or rising
// and 0 at the first index.
type Loss struct {
	*Cache
	ind Indicator
}

// NewLoss builds a loss indicator over ind.
func NewLoss(ind Indicator) *Loss {
	l := &Loss{ind: ind}
	l.Cache = NewCache(ind.Series(), l.calculate)
	return l
}

func (l *Loss) calculate(i int) num.Num {
	if i == 0 {
		return num.Zero()
	}
	cur, prev := l.ind.Value(i), l.ind.Value(i-1)
	if cur.Lt(prev) {
		return prev.Sub(cur)
	}
	return num.Zero()
}

// RSI is the relative strength index: 100 - 100 / (1 + avgGain/avgLoss),
// with gains and losses smoothed by a modified moving average.
type RSI struct {
	*Cache
	avgGain *MMA
	avgLoss *MMA
}

// NewRSI builds a relative strength index of ind, conventionally with a
// bar count of 14.
func NewRSI(ind Indicator, barCount int) *RSI {
	checkBarCount(barCount)
	r := &RSI{
		avgGain: NewMMA(NewGain(ind), barCount),
		avgLoss: NewMMA(NewLoss(ind), barCount),
	}
	r.Cache = NewCache(ind.Series(), r.calculate)
	return r
}

func (r *RSI) calculate(i int) num.Num {
	avgLoss := r.avgLoss.Value(i)
	if avgLoss.IsZero() {
		if r.avgGain.Value(i).IsZero() {
			return num.Zero()
		}
		return num.Hundred()
	}
	relativeStrength := r.avgGain.Value(i).Div(avgLoss)
	return num.Hundred().Sub(num.Hundred().Div(num.One().Add(relativeStrength)))
}
