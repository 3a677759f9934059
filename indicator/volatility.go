package indicator

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// TR is the true range: the greatest of high-low, |high - previous
// close| and |previous close - low|. At the first index only the bar's
// own range counts.
type TR struct {
	*Cache
	series *bars.Series
}

// NewTR builds a true range indicator over s.
func NewTR(s *bars.Series) *TR {
	t := &TR{series: s}
	t.Cache = NewCache(s, t.calculate)
	return t
}

func (t *TR) calculate(i int) num.Num {
	b := t.series.Bar(i)
	hl := b.High.Sub(b.Low).Abs()
	if i == 0 {
		return hl
	}
	prevClose := t.series.Bar(i - 1).Close
	hc := b.High.Sub(prevClose).Abs()
	cl := prevClose.Sub(b.Low).Abs()
	return hl.Max(hc).Max(cl)
}

// ATR is the average true range, a modified moving average of TR.
type ATR struct {
	*Cache
	avg *MMA
}

// NewATR builds an average true range over s, conventionally with a bar
// count of 14.
func NewATR(s *bars.Series, barCount int) *ATR {
	checkBarCount(barCount)
	a := &ATR{avg: NewMMA(NewTR(s), barCount)}
	a.Cache = NewCache(s, a.calculate)
	return a
}

func (a *ATR) calculate(i int) num.Num {
	return a.avg.Value(i)
}

// Variance is the population variance of the source over the trailing
// barCount values.
type Variance struct {
	*Cache
	ind      Indicator
	sma      *SMA
	barCount int
}

// NewVariance builds a variance indicator of ind.
func NewVariance(ind Indicator, barCount int) *Variance {
	checkBarCount(barCount)
	v := &Variance{ind: ind, sma: NewSMA(ind, barCount), barCount: barCount}
	v.Cache = NewCache(ind.Series(), v.calculate)
	return v
}

func (v *Variance) calculate(i int) num.Num {
	lo := i - v.barCount + 1
	if lo < 0 {
		lo = 0
	}
	n := i - lo + 1
	mean := v.sma.Value(i)
	sum := num.Zero()
	for j := lo; j <= i; j++ {
		d := v.ind.Value(j).Sub(mean)
		sum = sum.Add(d.Mul(d))
	}
	return sum.Div(num.FromInt(int64(n)))
}

// StdDev is the population standard deviation of the source over the
// trailing barCount values.
type StdDev struct {
	*Cache
	variance *Variance
}

// NewStdDev builds a standard deviation indicator of ind.
func NewStdDev(ind Indicator, barCount int) *StdDev {
	s := &StdDev{variance: NewVariance(ind, barCount)}
	s.Cache = NewCache(ind.Series(), s.calculate)
	return s
}

func (s *StdDev) calculate(i int) num.Num {
	return s.variance.Value(i).Sqrt()
}

// MeanDeviation is the mean absolute deviation from the window mean over
// the trailing barCount values.
type MeanDeviation struct {
	*Cache
	ind      Indicator
	sma      *SMA
	barCount int
}

// NewMeanDeviation builds a mean absolute deviation indicator of ind.
func NewMeanDeviation(ind Indicator, barCount int) *MeanDeviation {
	checkBarCount(barCount)
	m := &MeanDeviation{ind: ind, sma: NewSMA(ind, barCount), barCount: barCount}
	m.Cache = NewCache(ind.Series(), m.calculate)
	return m
}

func (m *MeanDeviation) calculate(i int) num.Num {
	lo := i - m.barCount + 1
	if lo < 0 {
		lo = 0
	}
	n := i - lo + 1
	mean := m.sma.Value(i)
	sum := num.Zero()
	for j := lo; j <= i; j++ {
		sum = sum.Add(m.ind.Value(j).Sub(mean).Abs())
	}
	return sum.Div(num.FromInt(int64(n)))
}
