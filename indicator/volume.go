package indicator

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// CloseLocationValue measures where the close sits inside the bar's
// range: ((close-low) - (high-close)) / (high-low), 0 for zero-range
// bars. Values run from -1 (close at low) to +1 (close at high).
type CloseLocationValue struct {
	*Cache
	series *bars.Series
}

// NewCloseLocationValue builds a close location value indicator over s.
func NewCloseLocationValue(s *bars.Series) *CloseLocationValue {
	c := &CloseLocationValue{series: s}
	c.Cache = NewCache(s, c.calculate)
	return c
}

func (c *CloseLocationValue) calculate(i int) num.Num {
	b := c.series.Bar(i)
	span := b.High.Sub(b.Low)
	if span.IsZero() {
		return num.Zero()
	}
	return b.Close.Sub(b.Low).Sub(b.High.Sub(b.Close)).Div(span)
}

// AccumulationDistribution is the cumulative money flow volume:
// CLV * volume summed from the start of the series (0 at index 0). After
// eviction a cold start re-seeds at the earliest resident bar with that
// bar's own flow.
type AccumulationDistribution struct {
	*Recursive
	clv    *CloseLocationValue
	series *bars.Series
}

// NewAccumulationDistribution builds an accumulation/distribution line
// over s.
func NewAccumulationDistribution(s *bars.Series) *AccumulationDistribution {
	a := &AccumulationDistribution{clv: NewCloseLocationValue(s), series: s}
	a.Recursive = NewRecursive(s, a.calculate)
	return a
}

func (a *AccumulationDistribution) calculate(i int) num.Num {
	first := a.series.RemovedBarsCount()
	if i <= first {
		if i == 0 {
			return num.Zero()
		}
		return a.moneyFlowVolume(i)
	}
	return a.moneyFlowVolume(i).Add(a.Value(i - 1))
}

func (a *AccumulationDistribution) moneyFlowVolume(i int) num.Num {
	return a.clv.Value(i).Mul(a.series.Bar(i).Volume)
}

// ChaikinMoneyFlow is the sum of money flow volume over the trailing
// barCount bars divided by the volume sum over the same window.
type ChaikinMoneyFlow struct {
	*Cache
	clv      *CloseLocationValue
	series   *bars.Series
	barCount int
}

// NewChaikinMoneyFlow builds a Chaikin money flow over s, conventionally
// with a bar count of 20.
func NewChaikinMoneyFlow(s *bars.Series, barCount int) *ChaikinMoneyFlow {
	checkBarCount(barCount)
	c := &ChaikinMoneyFlow{clv: NewCloseLocationValue(s), series: s, barCount: barCount}
	c.Cache = NewCache(s, c.calculate)
	return c
}

func (c *ChaikinMoneyFlow) calculate(i int) num.Num {
	lo := i - c.barCount + 1
	if lo < 0 {
		lo = 0
	}
	flow := num.Zero()
	volume := num.Zero()
	for j := lo; j <= i; j++ {
		b := c.series.Bar(j)
		flow = flow.Add(c.clv.Value(j).Mul(b.Volume))
		volume = volume.Add(b.Volume)
	}
	return flow.Div(volume)
}

// ChaikinOscillator is the difference between a short and a long EMA of
// the accumulation/distribution line.
type ChaikinOscillator struct {
	*Cache
	emaShort *EMA
	emaLong  *EMA
}

// NewChaikinOscillator builds a Chaikin oscillator over s, conventionally
// with bar counts 3 and 10.
func NewChaikinOscillator(s *bars.Series, shortCount, longCount int) *ChaikinOscillator {
	c := &ChaikinOscillator{
		emaShort: NewEMA(NewAccumulationDistribution(s), shortCount),
		emaLong:  NewEMA(NewAccumulationDistribution(s), longCount),
	}
	c.Cache = NewCache(s, c.calculate)
	return c
}

func (c *ChaikinOscillator) calculate(i int) num.Num {
	return c.emaShort.Value(i).Sub(c.emaLong.Value(i))
}
