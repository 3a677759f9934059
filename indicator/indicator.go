// Package indicator implements a memoizing indicator engine over bar
// series and a catalog of technical indicators built on it.
//
// Indicators are addressed by the same logical indices as their series.
// Values at indices that were evicted from a bounded series clamp to the
// earliest resident value, the value at the series end index is treated
// as provisional while its bar is still open, and indices before the
// series begin yield num.Undefined rather than an error.
package indicator

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// Indicator computes a value for each logical bar index of a series.
type Indicator interface {
	// Value returns the indicator value at logical index i. It panics
	// when i is past the series end (look-ahead) and returns
	// num.Undefined for indices before the series begin.
	Value(i int) num.Num

	// Series returns the bar series the indicator is bound to.
	Series() *bars.Series
}
