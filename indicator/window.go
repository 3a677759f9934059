package indicator

import (
	"github.com/quantarc/strake/num"
)

// HighestValue is the maximum of the source over the trailing barCount
// values, skipping undefined ones. All-undefined windows are undefined.
type HighestValue struct {
	*Cache
	ind      Indicator
	barCount int
}

// NewHighestValue builds a trailing maximum of ind.
func NewHighestValue(ind Indicator, barCount int) *HighestValue {
	checkBarCount(barCount)
	h := &HighestValue{ind: ind, barCount: barCount}
	h.Cache = NewCache(ind.Series(), h.calculate)
	return h
}

func (h *HighestValue) calculate(i int) num.Num {
	return extremum(h.ind, i, h.barCount, num.Num.Gt)
}

// LowestValue is the minimum of the source over the trailing barCount
// values, skipping undefined ones. All-undefined windows are undefined.
type LowestValue struct {
	*Cache
	ind      Indicator
	barCount int
}

// NewLowestValue builds a trailing minimum of ind.
func NewLowestValue(ind Indicator, barCount int) *LowestValue {
	checkBarCount(barCount)
	l := &LowestValue{ind: ind, barCount: barCount}
	l.Cache = NewCache(ind.Series(), l.calculate)
	return l
}

func (l *LowestValue) calculate(i int) num.Num {
	return extremum(l.ind, i, l.barCount, num.Num.Lt)
}

func extremum(ind Indicator, i, barCount int, better func(num.Num, num.Num) bool) num.Num {
	lo := i - barCount + 1
	if lo < 0 {
		lo = 0
	}
	best := num.Undefined()
	for j := lo; j <= i; j++ {
		v := ind.Value(j)
		if v.IsUndefined() {
			continue
		}
		if best.IsUndefined() || better(v, best) {
			best = v
		}
	}
	return best
}
