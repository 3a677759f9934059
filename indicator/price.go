package indicator

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// ClosePrice returns each bar's close.
type ClosePrice struct{ *Cache }

// NewClosePrice builds a close price source over s.
func NewClosePrice(s *bars.Series) *ClosePrice {
	return &ClosePrice{NewCache(s, func(i int) num.Num { return s.Bar(i).Close })}
}

// OpenPrice returns each bar's open.
type OpenPrice struct{ *Cache }

// NewOpenPrice builds an open price source over s.
func NewOpenPrice(s *bars.Series) *OpenPrice {
	return &OpenPrice{NewCache(s, func(i int) num.Num { return s.Bar(i).Open })}
}

// HighPrice returns each bar's high.
type HighPrice struct{ *Cache }

// NewHighPrice builds a high price source over s.
func NewHighPrice(s *bars.Series) *HighPrice {
	return &HighPrice{NewCache(s, func(i int) num.Num { return s.Bar(i).High })}
}

// LowPrice returns each bar's low.
type LowPrice struct{ *Cache }

// NewLowPrice builds a low price source over s.
func NewLowPrice(s *bars.Series) *LowPrice {
	return &LowPrice{NewCache(s, func(i int) num.Num { return s.Bar(i).Low })}
}

// Volume returns each bar's traded volume.
type Volume struct{ *Cache }

// NewVolume builds a volume source over s.
func NewVolume(s *bars.Series) *Volume {
	return &Volume{NewCache(s, func(i int) num.Num { return s.Bar(i).Volume })}
}

// TypicalPrice returns (high + low + close) / 3.
type TypicalPrice struct{ *Cache }

// NewTypicalPrice builds a typical price source over s.
func NewTypicalPrice(s *bars.Series) *TypicalPrice {
	three := num.New(3)
	return &TypicalPrice{NewCache(s, func(i int) num.Num {
		b := s.Bar(i)
		return b.High.Add(b.Low).Add(b.Close).Div(three)
	})}
}

// MedianPrice returns (high + low) / 2.
type MedianPrice struct{ *Cache }

// NewMedianPrice builds a median price source over s.
func NewMedianPrice(s *bars.Series) *MedianPrice {
	return &MedianPrice{NewCache(s, func(i int) num.Num {
		b := s.Bar(i)
		return b.High.Add(b.Low).Div(num.Two())
	})}
}

// Constant yields the same value at every index.
type Constant struct {
	series *bars.Series
	v      num.Num
}

// NewConstant builds a constant indicator bound to s.
func NewConstant(s *bars.Series, v num.Num) *Constant {
	return &Constant{series: s, v: v}
}

// Value implements Indicator; the index is ignored.
func (c *Constant) Value(int) num.Num { return c.v }

// Series implements Indicator.
func (c *Constant) Series() *bars.Series { return c.series }

// PreviousValue returns the wrapped indicator's value n indices back,
// clamping at index 0.
type PreviousValue struct {
	*Cache
	ind Indicator
	n   int
}

// NewPreviousValue builds a previous-value view of ind. It panics when
// n < 1.
func NewPreviousValue(ind Indicator, n int) *PreviousValue {
	if n < 1 {
		panic("indicator: previous-value distance must be >= 1")
	}
	p := &PreviousValue{ind: ind, n: n}
	p.Cache = NewCache(ind.Series(), p.calculate)
	return p
}

func (p *PreviousValue) calculate(i int) num.Num {
	prev := i - p.n
	if prev < 0 {
		prev = 0
	}
	return p.ind.Value(prev)
}
