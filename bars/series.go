// Package bars implements time-ordered OHLCV bar storage with a bounded,
// index-stable eviction model.
package bars

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/quantarc/strake/num"
)

var (
	// ErrOutOfSequence is returned when an appended bar does not advance
	// the series in time.
	ErrOutOfSequence = errors.New("bars: bar does not advance series time")

	// ErrInvalidRange is returned for malformed sub-series or aggregation
	// bounds.
	ErrInvalidRange = errors.New("bars: invalid index range")
)

// Series is an append-only sequence of bars addressed by logical index.
//
// A series may be bounded by a maximum bar count. When the bound is
// exceeded the oldest bars are evicted from the front, but logical indices
// are never renumbered: the first bar ever appended keeps index 0 and
// eviction only advances RemovedBarsCount. Bar lookups between the begin
// index and RemovedBarsCount clamp to the earliest resident bar; lookups
// past EndIndex are a caller bug and panic.
//
// A Series is not safe for concurrent use.
type Series struct {
	name             string
	bars             []*Bar
	beginIndex       int
	endIndex         int
	maxBarCount      int
	removedBarsCount int
}

// NewSeries returns an empty, unbounded series.
func NewSeries(name string) *Series {
	return &Series{
		name:        name,
		beginIndex:  -1,
		endIndex:    -1,
		maxBarCount: math.MaxInt,
	}
}

// NewBoundedSeries returns an empty series that retains at most
// maxBarCount bars. It panics when maxBarCount is not positive.
func NewBoundedSeries(name string, maxBarCount int) *Series {
	s := NewSeries(name)
	s.SetMaxBarCount(maxBarCount)
	return s
}

// Name returns the series name.
func (s *Series) Name() string { return s.name }

// IsEmpty reports whether the series holds no bars.
func (s *Series) IsEmpty() bool { return len(s.bars) == 0 }

// BarCount returns the number of resident bars.
func (s *Series) BarCount() int { return len(s.bars) }

// BeginIndex returns the first logical index ever appended (0 once the
// series is non-empty) or -1 for an empty series. Eviction does not move
// it; see RemovedBarsCount for the first resident index.
func (s *Series) BeginIndex() int { return s.beginIndex }

// EndIndex returns the logical index of the last bar, or -1 when empty.
func (s *Series) EndIndex() int { return s.endIndex }

// RemovedBarsCount returns how many bars have been evicted from the
// front; it is also the lowest logical index still resident.
func (s *Series) RemovedBarsCount() int { return s.removedBarsCount }

// MaxBarCount returns the retention bound, math.MaxInt when unbounded.
func (s *Series) MaxBarCount() int { return s.maxBarCount }

// SetMaxBarCount changes the retention bound, evicting retroactively when
// the series already exceeds it. It panics when n is not positive.
func (s *Series) SetMaxBarCount(n int) {
	if n <= 0 {
		panic(fmt.Sprintf("bars: max bar count must be positive, got %d", n))
	}
	s.maxBarCount = n
	s.evictExcess()
}

// AddBar appends b to the series. It returns ErrOutOfSequence unless the
// bar's end time is strictly after the last bar's end time. Appending to
// a bounded series at capacity evicts the oldest bar.
func (s *Series) AddBar(b *Bar) error {
	if b == nil {
		panic("bars: nil bar")
	}
	if !s.IsEmpty() {
		last := s.bars[len(s.bars)-1]
		if !b.EndTime.After(last.EndTime) {
			return fmt.Errorf("%w: bar ends %s, last bar ends %s",
				ErrOutOfSequence, b.EndTime.Format(time.RFC3339), last.EndTime.Format(time.RFC3339))
		}
	}
	s.bars = append(s.bars, b)
	if s.beginIndex == -1 {
		s.beginIndex = 0
	}
	s.endIndex++
	s.evictExcess()
	return nil
}

// ReplaceLastBar swaps the final (still open) bar for b, keeping its
// logical index. On an empty series it appends. It returns
// ErrOutOfSequence when b does not end after the bar before last.
func (s *Series) ReplaceLastBar(b *Bar) error {
	if b == nil {
		panic("bars: nil bar")
	}
	if s.IsEmpty() {
		return s.AddBar(b)
	}
	if len(s.bars) >= 2 {
		prev := s.bars[len(s.bars)-2]
		if !b.EndTime.After(prev.EndTime) {
			return fmt.Errorf("%w: replacement ends %s, previous bar ends %s",
				ErrOutOfSequence, b.EndTime.Format(time.RFC3339), prev.EndTime.Format(time.RFC3339))
		}
	}
	s.bars[len(s.bars)-1] = b
	return nil
}

// AddTrade folds a tick into the last bar. It panics on an empty series.
func (s *Series) AddTrade(volume, price num.Num) {
	s.LastBar().AddTrade(volume, price)
}

// AddPrice folds a price into the last bar. It panics on an empty series.
func (s *Series) AddPrice(price num.Num) {
	s.LastBar().AddPrice(price)
}

// Bar returns the bar at logical index i.
//
// Negative indices and indices past EndIndex panic. Indices that fell off
// the front (below RemovedBarsCount) clamp to the earliest resident bar;
// callers that need to distinguish evicted history must compare i against
// RemovedBarsCount themselves.
func (s *Series) Bar(i int) *Bar {
	inner := i - s.removedBarsCount
	if inner < 0 {
		if i < 0 {
			panic(fmt.Sprintf("bars: index %d out of range", i))
		}
		if s.IsEmpty() {
			panic(fmt.Sprintf("bars: index %d on empty series", i))
		}
		return s.bars[0]
	}
	if inner >= len(s.bars) {
		panic(fmt.Sprintf("bars: index %d out of range [%d, %d]", i, s.removedBarsCount, s.endIndex))
	}
	return s.bars[inner]
}

// FirstBar returns the earliest resident bar. It panics on an empty
// series.
func (s *Series) FirstBar() *Bar {
	if s.IsEmpty() {
		panic("bars: first bar of empty series")
	}
	return s.bars[0]
}

// LastBar returns the most recent bar. It panics on an empty series.
func (s *Series) LastBar() *Bar {
	if s.IsEmpty() {
		panic("bars: last bar of empty series")
	}
	return s.bars[len(s.bars)-1]
}

// BarData returns the resident bars in order. The slice is shared with
// the series and must not be mutated.
func (s *Series) BarData() []*Bar { return s.bars }

// SubSeries copies the bars in [start, end) into a fresh unbounded series
// reindexed from 0. The bounds are logical indices; the portion outside
// the resident window is dropped, so the result may hold fewer than
// end-start bars (or none). It returns ErrInvalidRange when start is
// negative or end <= start.
func (s *Series) SubSeries(start, end int) (*Series, error) {
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: sub-series [%d, %d)", ErrInvalidRange, start, end)
	}
	sub := NewSeries(s.name)
	if s.IsEmpty() {
		return sub, nil
	}
	lo := start
	if lo < s.removedBarsCount {
		lo = s.removedBarsCount
	}
	hi := end
	if hi > s.endIndex+1 {
		hi = s.endIndex + 1
	}
	for i := lo; i < hi; i++ {
		b := *s.bars[i-s.removedBarsCount]
		if err := sub.AddBar(&b); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// NumOf converts f using the series numeric layer.
func (s *Series) NumOf(f float64) num.Num { return num.New(f) }

// Zero returns the series' 0.
func (s *Series) Zero() num.Num { return num.Zero() }

// One returns the series' 1.
func (s *Series) One() num.Num { return num.One() }

// Hundred returns the series' 100.
func (s *Series) Hundred() num.Num { return num.Hundred() }

func (s *Series) evictExcess() {
	excess := len(s.bars) - s.maxBarCount
	if excess <= 0 {
		return
	}
	copy(s.bars, s.bars[excess:])
	for i := len(s.bars) - excess; i < len(s.bars); i++ {
		s.bars[i] = nil
	}
	s.bars = s.bars[:len(s.bars)-excess]
	s.removedBarsCount += excess
}
