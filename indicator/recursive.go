package indicator

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// Recursive is the engine for indicators whose calculate function refers
// to their own value at the previous index (EMA, cumulative sums, SAR).
//
// A naive memoized lookup of index N on a cold cache would recurse N
// frames deep before unwinding. Recursive instead fills the cache
// iteratively from the last computed index up to the requested one, so
// that by the time calculate(i) runs, its reference to Value(i-1) is a
// cache hit and call depth stays constant regardless of the gap.
type Recursive struct {
	*Cache
	lastComputed int
}

// NewRecursive binds a self-referential calculate function to series.
func NewRecursive(series *bars.Series, calc func(i int) num.Num) *Recursive {
	return &Recursive{Cache: NewCache(series, calc), lastComputed: -1}
}

// Value returns the value at logical index i, filling all uncomputed
// indices below it first.
func (r *Recursive) Value(i int) num.Num {
	s := r.Series()
	if !s.IsEmpty() && i <= s.EndIndex() {
		from := s.RemovedBarsCount()
		if r.lastComputed+1 > from {
			from = r.lastComputed + 1
		}
		// lastComputed advances with the fill so that the nested
		// Value(j-1) inside each calculate(j) sees an empty gap.
		for j := from; j < i; j++ {
			r.Cache.Value(j)
			if j > r.lastComputed {
				r.lastComputed = j
			}
		}
		v := r.Cache.Value(i)
		if i < s.EndIndex() && i > r.lastComputed {
			r.lastComputed = i
		}
		return v
	}
	return r.Cache.Value(i)
}
