package indicator

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// TimeLevel selects how pivot indicators group bars into periods.
type TimeLevel int

const (
	// TimeLevelBar treats every bar as its own period.
	TimeLevelBar TimeLevel = iota
	// TimeLevelDay groups bars by calendar day of the bar end time.
	TimeLevelDay
	// TimeLevelWeek groups bars by ISO week.
	TimeLevelWeek
	// TimeLevelMonth groups bars by calendar month.
	TimeLevelMonth
	// TimeLevelYear groups bars by calendar year.
	TimeLevelYear
)

// periodKey maps a bar to its period bucket for the time level.
func (l TimeLevel) periodKey(b *bars.Bar) int64 {
	t := b.EndTime
	switch l {
	case TimeLevelDay:
		return int64(t.Year())*1000 + int64(t.YearDay())
	case TimeLevelWeek:
		y, w := t.ISOWeek()
		return int64(y)*100 + int64(w)
	case TimeLevelMonth:
		return int64(t.Year())*100 + int64(t.Month())
	case TimeLevelYear:
		return int64(t.Year())
	default:
		return 0
	}
}

// barsOfPreviousPeriod returns the logical indices of the period before
// the one containing index, most recent first. The previous period is
// whatever period the last bar before the current period's start belongs
// to, so calendar gaps (weekends, holidays) collapse naturally. Bar-based
// grouping returns just the previous index (clamped at 0); an empty
// result means no previous period exists.
func barsOfPreviousPeriod(s *bars.Series, level TimeLevel, index int) []int {
	if level == TimeLevelBar {
		prev := index - 1
		if prev < 0 {
			prev = 0
		}
		return []int{prev}
	}
	if index == 0 {
		return nil
	}
	begin := s.BeginIndex()
	currentKey := level.periodKey(s.Bar(index))
	// Walk to the first bar of the current period.
	for index-1 > begin && level.periodKey(s.Bar(index-1)) == currentKey {
		index--
	}
	if index-1 < begin {
		return nil
	}
	prevKey := level.periodKey(s.Bar(index - 1))
	if prevKey == currentKey {
		return nil
	}
	var prev []int
	for index-1 >= begin && level.periodKey(s.Bar(index-1)) == prevKey {
		index--
		prev = append(prev, index)
	}
	return prev
}

// periodRange folds high/low extremes over the given bar indices.
func periodRange(s *bars.Series, indices []int) (high, low num.Num) {
	first := s.Bar(indices[0])
	high, low = first.High, first.Low
	for _, i := range indices {
		b := s.Bar(i)
		high = high.Max(b.High)
		low = low.Min(b.Low)
	}
	return high, low
}

// PivotPoint is the classic pivot level (high + low + close) / 3 of the
// previous period. Indices with no previous period are undefined.
type PivotPoint struct {
	*Cache
	series *bars.Series
	level  TimeLevel
}

// NewPivotPoint builds a pivot point indicator over s grouped by level.
func NewPivotPoint(s *bars.Series, level TimeLevel) *PivotPoint {
	p := &PivotPoint{series: s, level: level}
	p.Cache = NewCache(s, p.calculate)
	return p
}

// BarsOfPreviousPeriod exposes the period grouping for the reversal
// indicators built on top of this pivot.
func (p *PivotPoint) BarsOfPreviousPeriod(index int) []int {
	return barsOfPreviousPeriod(p.series, p.level, index)
}

func (p *PivotPoint) calculate(i int) num.Num {
	prev := p.BarsOfPreviousPeriod(i)
	if len(prev) == 0 {
		return num.Undefined()
	}
	high, low := periodRange(p.series, prev)
	close := p.series.Bar(prev[0]).Close
	return high.Add(low).Add(close).Div(num.New(3))
}

// PivotLevel selects a standard reversal level derived from a pivot.
type PivotLevel int

const (
	PivotR3 PivotLevel = iota
	PivotR2
	PivotR1
	PivotS1
	PivotS2
	PivotS3
)

// StandardReversal is a classic support/resistance level derived from the
// pivot point and the previous period's range:
//
//	R1 = 2*P - low     S1 = 2*P - high
//	R2 = P + (high-low) S2 = P - (high-low)
//	R3 = high + 2*(P-low) S3 = low - 2*(high-P)
type StandardReversal struct {
	*Cache
	pivot *PivotPoint
	level PivotLevel
}

// NewStandardReversal builds a reversal level on top of pivot.
func NewStandardReversal(pivot *PivotPoint, level PivotLevel) *StandardReversal {
	r := &StandardReversal{pivot: pivot, level: level}
	r.Cache = NewCache(pivot.Series(), r.calculate)
	return r
}

func (r *StandardReversal) calculate(i int) num.Num {
	prev := r.pivot.BarsOfPreviousPeriod(i)
	if len(prev) == 0 {
		return num.Undefined()
	}
	high, low := periodRange(r.pivot.series, prev)
	p := r.pivot.Value(i)
	switch r.level {
	case PivotR3:
		return high.Add(num.Two().Mul(p.Sub(low)))
	case PivotR2:
		return p.Add(high.Sub(low))
	case PivotR1:
		return num.Two().Mul(p).Sub(low)
	case PivotS1:
		return num.Two().Mul(p).Sub(high)
	case PivotS2:
		return p.Sub(high.Sub(low))
	case PivotS3:
		return low.Sub(num.Two().Mul(high.Sub(p)))
	default:
		return num.Undefined()
	}
}

// DeMarkPivotPoint is the DeMark pivot: x/4 where x weights the previous
// period's high, low and close by the open/close relationship.
type DeMarkPivotPoint struct {
	*Cache
	series *bars.Series
	level  TimeLevel
}

// NewDeMarkPivotPoint builds a DeMark pivot point over s grouped by
// level.
func NewDeMarkPivotPoint(s *bars.Series, level TimeLevel) *DeMarkPivotPoint {
	p := &DeMarkPivotPoint{series: s, level: level}
	p.Cache = NewCache(s, p.calculate)
	return p
}

// BarsOfPreviousPeriod exposes the period grouping for the reversal
// indicators built on top of this pivot.
func (p *DeMarkPivotPoint) BarsOfPreviousPeriod(index int) []int {
	return barsOfPreviousPeriod(p.series, p.level, index)
}

func (p *DeMarkPivotPoint) calculate(i int) num.Num {
	prev := p.BarsOfPreviousPeriod(i)
	if len(prev) == 0 {
		return num.Undefined()
	}
	high, low := periodRange(p.series, prev)
	open := p.series.Bar(prev[len(prev)-1]).Open
	close := p.series.Bar(prev[0]).Close
	var x num.Num
	switch {
	case close.Lt(open):
		x = high.Add(num.Two().Mul(low)).Add(close)
	case close.Gt(open):
		x = num.Two().Mul(high).Add(low).Add(close)
	default:
		x = high.Add(low).Add(num.Two().Mul(close))
	}
	return x.Div(num.New(4))
}

// DeMarkLevel selects the DeMark reversal side.
type DeMarkLevel int

const (
	DeMarkResistance DeMarkLevel = iota
	DeMarkSupport
)

// DeMarkReversal is the DeMark support or resistance level: 2*pivot minus
// the previous period's low (resistance) or high (support).
type DeMarkReversal struct {
	*Cache
	pivot *DeMarkPivotPoint
	level DeMarkLevel
}

// NewDeMarkReversal builds a DeMark reversal level on top of pivot.
func NewDeMarkReversal(pivot *DeMarkPivotPoint, level DeMarkLevel) *DeMarkReversal {
	r := &DeMarkReversal{pivot: pivot, level: level}
	r.Cache = NewCache(pivot.Series(), r.calculate)
	return r
}

func (r *DeMarkReversal) calculate(i int) num.Num {
	prev := r.pivot.BarsOfPreviousPeriod(i)
	if len(prev) == 0 {
		return num.Undefined()
	}
	high, low := periodRange(r.pivot.series, prev)
	x := r.pivot.Value(i).Mul(num.New(4))
	if r.level == DeMarkSupport {
		return x.Div(num.Two()).Sub(high)
	}
	return x.Div(num.Two()).Sub(low)
}
