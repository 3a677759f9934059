package indicator

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// IchimokuLine is the midpoint of the trailing barCount price range:
// (highest high + lowest low) / 2. It is the shape shared by the
// Tenkan-sen and Kijun-sen lines.
type IchimokuLine struct {
	*Cache
	periodHigh *HighestValue
	periodLow  *LowestValue
}

// NewIchimokuLine builds a range midpoint line over s.
func NewIchimokuLine(s *bars.Series, barCount int) *IchimokuLine {
	l := &IchimokuLine{
		periodHigh: NewHighestValue(NewHighPrice(s), barCount),
		periodLow:  NewLowestValue(NewLowPrice(s), barCount),
	}
	l.Cache = NewCache(s, l.calculate)
	return l
}

func (l *IchimokuLine) calculate(i int) num.Num {
	return l.periodHigh.Value(i).Add(l.periodLow.Value(i)).Div(num.Two())
}

// NewIchimokuTenkanSen builds the conversion line, conventionally over 9
// bars.
func NewIchimokuTenkanSen(s *bars.Series, barCount int) *IchimokuLine {
	return NewIchimokuLine(s, barCount)
}

// NewIchimokuKijunSen builds the base line, conventionally over 26 bars.
func NewIchimokuKijunSen(s *bars.Series, barCount int) *IchimokuLine {
	return NewIchimokuLine(s, barCount)
}

// IchimokuSenkouSpanA is the leading span A: the midpoint of the
// conversion and base lines, projected forward by the cloud offset.
// Indices whose source sits before the series begin are undefined.
type IchimokuSenkouSpanA struct {
	*Cache
	conversionLine *IchimokuLine
	baseLine       *IchimokuLine
	offset         int
}

// NewIchimokuSenkouSpanA builds a leading span A from existing conversion
// and base lines, conventionally with offset 26.
func NewIchimokuSenkouSpanA(s *bars.Series, conversionLine, baseLine *IchimokuLine, offset int) *IchimokuSenkouSpanA {
	a := &IchimokuSenkouSpanA{conversionLine: conversionLine, baseLine: baseLine, offset: offset}
	a.Cache = NewCache(s, a.calculate)
	return a
}

func (a *IchimokuSenkouSpanA) calculate(i int) num.Num {
	spanIndex := i - a.offset + 1
	if spanIndex < a.Series().BeginIndex() {
		return num.Undefined()
	}
	return a.conversionLine.Value(spanIndex).Add(a.baseLine.Value(spanIndex)).Div(num.Two())
}

// IchimokuSenkouSpanB is the leading span B: the barCount range midpoint
// projected forward by the cloud offset. Indices whose source sits
// before the series begin are undefined.
type IchimokuSenkouSpanB struct {
	*Cache
	line   *IchimokuLine
	offset int
}

// NewIchimokuSenkouSpanB builds a leading span B over s, conventionally
// with a bar count of 52 and offset 26.
func NewIchimokuSenkouSpanB(s *bars.Series, barCount, offset int) *IchimokuSenkouSpanB {
	b := &IchimokuSenkouSpanB{line: NewIchimokuLine(s, barCount), offset: offset}
	b.Cache = NewCache(s, b.calculate)
	return b
}

func (b *IchimokuSenkouSpanB) calculate(i int) num.Num {
	spanIndex := i - b.offset + 1
	if spanIndex < b.Series().BeginIndex() {
		return num.Undefined()
	}
	return b.line.Value(spanIndex)
}

// IchimokuChikouSpan is the lagging span: the close price shifted back by
// the time delay, undefined for indices whose source would lie past the
// series end.
type IchimokuChikouSpan struct {
	*Cache
	close     *ClosePrice
	timeDelay int
}

// NewIchimokuChikouSpan builds a lagging span over s, conventionally with
// a delay of 26.
func NewIchimokuChikouSpan(s *bars.Series, timeDelay int) *IchimokuChikouSpan {
	c := &IchimokuChikouSpan{close: NewClosePrice(s), timeDelay: timeDelay}
	c.Cache = NewCache(s, c.calculate)
	return c
}

func (c *IchimokuChikouSpan) calculate(i int) num.Num {
	spanIndex := i + c.timeDelay
	if spanIndex > c.Series().EndIndex() {
		return num.Undefined()
	}
	return c.close.Value(spanIndex)
}
