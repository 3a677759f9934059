package indicator

import (
	"fmt"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// Cache memoizes per-index values of a calculate function against a bar
// series. Concrete indicators embed a *Cache and hand it their calculate
// method:
//
//	type SMA struct {
//		*Cache
//		ind      Indicator
//		barCount int
//	}
//
//	func NewSMA(ind Indicator, barCount int) *SMA {
//		s := &SMA{ind: ind, barCount: barCount}
//		s.Cache = NewCache(ind.Series(), s.calculate)
//		return s
//	}
//
// The cache window never exceeds the series retention bound: entries are
// trimmed lazily as the series evicts bars, and lookups below the evicted
// range clamp to the earliest resident index, mirroring bars.Series. The
// value at the series end index is never cached because its bar may still
// mutate; every closed resident index is calculated at most once.
type Cache struct {
	series *bars.Series
	calc   func(i int) num.Num

	// window[k] holds the result for logical index first+k.
	first  int
	window []cacheEntry
}

type cacheEntry struct {
	val num.Num
	ok  bool
}

// NewCache binds a calculate function to series.
func NewCache(series *bars.Series, calc func(i int) num.Num) *Cache {
	if series == nil {
		panic("indicator: nil series")
	}
	if calc == nil {
		panic("indicator: nil calculate func")
	}
	return &Cache{series: series, calc: calc}
}

// Series returns the bound bar series.
func (c *Cache) Series() *bars.Series { return c.series }

// Value returns the memoized value at logical index i, calculating it on
// first access. See Cache for the index policy at the series edges.
func (c *Cache) Value(i int) num.Num {
	s := c.series
	if s.IsEmpty() || i < s.BeginIndex() {
		return num.Undefined()
	}
	end := s.EndIndex()
	if i > end {
		panic(fmt.Sprintf("indicator: index %d past series end %d", i, end))
	}
	removed := s.RemovedBarsCount()
	if i < removed {
		i = removed
	}
	// The bar at the end index may still receive trades or be replaced,
	// so its value is computed fresh on every call.
	if i == end {
		return c.calc(i)
	}

	c.trim(removed)
	k := i - c.first
	if k >= len(c.window) {
		c.grow(k + 1)
	}
	if !c.window[k].ok {
		c.window[k] = cacheEntry{val: c.calc(i), ok: true}
	}
	return c.window[k].val
}

// trim drops cached entries for indices the series has evicted.
func (c *Cache) trim(removed int) {
	if len(c.window) == 0 {
		c.first = removed
		return
	}
	drop := removed - c.first
	if drop <= 0 {
		return
	}
	if drop >= len(c.window) {
		c.window = c.window[:0]
		c.first = removed
		return
	}
	copy(c.window, c.window[drop:])
	c.window = c.window[:len(c.window)-drop]
	c.first = removed
}

func (c *Cache) grow(n int) {
	if cap(c.window) >= n {
		// Entries beyond the old length may be stale leftovers from an
		// earlier trim; reset them before exposing.
		old := len(c.window)
		c.window = c.window[:n]
		clear(c.window[old:])
		return
	}
	newCap := 2 * cap(c.window)
	if newCap < n {
		newCap = n
	}
	grown := make([]cacheEntry, n, newCap)
	copy(grown, c.window)
	c.window = grown
}
