package indicator

import (
	"github.com/quantarc/strake/num"
)

// Covariance is the population covariance of two sources over the
// trailing barCount values.
type Covariance struct {
	*Cache
	ind1, ind2 Indicator
	sma1, sma2 *SMA
	barCount   int
}

// NewCovariance builds a covariance indicator of ind1 and ind2, which
// must be bound to the same series.
func NewCovariance(ind1, ind2 Indicator, barCount int) *Covariance {
	checkBarCount(barCount)
	c := &Covariance{
		ind1: ind1, ind2: ind2,
		sma1: NewSMA(ind1, barCount), sma2: NewSMA(ind2, barCount),
		barCount: barCount,
	}
	c.Cache = NewCache(ind1.Series(), c.calculate)
	return c
}

func (c *Covariance) calculate(i int) num.Num {
	lo := i - c.barCount + 1
	if lo < 0 {
		lo = 0
	}
	n := i - lo + 1
	mean1, mean2 := c.sma1.Value(i), c.sma2.Value(i)
	sum := num.Zero()
	for j := lo; j <= i; j++ {
		sum = sum.Add(c.ind1.Value(j).Sub(mean1).Mul(c.ind2.Value(j).Sub(mean2)))
	}
	return sum.Div(num.FromInt(int64(n)))
}

// Correlation is the Pearson correlation coefficient of two sources over
// the trailing barCount values: cov / sqrt(var1 * var2). Windows where
// either source has zero variance are undefined.
type Correlation struct {
	*Cache
	covariance *Covariance
	var1, var2 *Variance
}

// NewCorrelation builds a correlation coefficient indicator of ind1 and
// ind2, which must be bound to the same series.
func NewCorrelation(ind1, ind2 Indicator, barCount int) *Correlation {
	c := &Correlation{
		covariance: NewCovariance(ind1, ind2, barCount),
		var1:       NewVariance(ind1, barCount),
		var2:       NewVariance(ind2, barCount),
	}
	c.Cache = NewCache(ind1.Series(), c.calculate)
	return c
}

func (c *Correlation) calculate(i int) num.Num {
	return c.covariance.Value(i).Div(c.var1.Value(i).Mul(c.var2.Value(i)).Sqrt())
}
