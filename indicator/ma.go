package indicator

import (
	"fmt"

	"github.com/quantarc/strake/num"
)

func checkBarCount(n int) {
	if n < 1 {
		panic(fmt.Sprintf("indicator: bar count must be >= 1, got %d", n))
	}
}

// SMA is the simple moving average over the trailing barCount values.
type SMA struct {
	*Cache
	ind      Indicator
	barCount int
}

// NewSMA builds a simple moving average of ind.
func NewSMA(ind Indicator, barCount int) *SMA {
	checkBarCount(barCount)
	s := &SMA{ind: ind, barCount: barCount}
	s.Cache = NewCache(ind.Series(), s.calculate)
	return s
}

func (s *SMA) calculate(i int) num.Num {
	sum := num.Zero()
	lo := i - s.barCount + 1
	if lo < 0 {
		lo = 0
	}
	for j := lo; j <= i; j++ {
		sum = sum.Add(s.ind.Value(j))
	}
	return sum.Div(num.FromInt(int64(i - lo + 1)))
}

// EMA is the exponential moving average with multiplier 2/(barCount+1).
// The first index seeds with the source value.
type EMA struct {
	*Recursive
	ind        Indicator
	multiplier num.Num
}

// NewEMA builds an exponential moving average of ind.
func NewEMA(ind Indicator, barCount int) *EMA {
	checkBarCount(barCount)
	e := &EMA{ind: ind, multiplier: num.Two().Div(num.FromInt(int64(barCount + 1)))}
	e.Recursive = NewRecursive(ind.Series(), e.calculate)
	return e
}

func (e *EMA) calculate(i int) num.Num {
	first := e.Series().RemovedBarsCount()
	if i <= first {
		return e.ind.Value(i)
	}
	prev := e.Value(i - 1)
	return e.ind.Value(i).Sub(prev).Mul(e.multiplier).Add(prev)
}

// MMA is the modified (Wilder) moving average, an EMA with multiplier
// 1/barCount. It smooths RSI, ATR and the ADX family.
type MMA struct {
	*Recursive
	ind        Indicator
	multiplier num.Num
}

// NewMMA builds a modified moving average of ind.
func NewMMA(ind Indicator, barCount int) *MMA {
	checkBarCount(barCount)
	m := &MMA{ind: ind, multiplier: num.One().Div(num.FromInt(int64(barCount)))}
	m.Recursive = NewRecursive(ind.Series(), m.calculate)
	return m
}

func (m *MMA) calculate(i int) num.Num {
	first := m.Series().RemovedBarsCount()
	if i <= first {
		return m.ind.Value(i)
	}
	prev := m.Value(i - 1)
	return m.ind.Value(i).Sub(prev).Mul(m.multiplier).Add(prev)
}

// MACD is the difference between a short and a long EMA of the source.
type MACD struct {
	*Cache
	short *EMA
	long  *EMA
}

// NewMACD builds a moving average convergence divergence indicator,
// conventionally with bar counts 12 and 26. It panics unless
// shortCount < longCount.
func NewMACD(ind Indicator, shortCount, longCount int) *MACD {
	if shortCount >= longCount {
		panic(fmt.Sprintf("indicator: macd short bar count %d must be < long bar count %d", shortCount, longCount))
	}
	m := &MACD{short: NewEMA(ind, shortCount), long: NewEMA(ind, longCount)}
	m.Cache = NewCache(ind.Series(), m.calculate)
	return m
}

func (m *MACD) calculate(i int) num.Num {
	return m.short.Value(i).Sub(m.long.Value(i))
}
