package bars

import (
	"errors"
	"testing"

	"github.com/quantarc/strake/num"
)

func testSeries(t *testing.T, closes ...float64) *Series {
	t.Helper()
	s := NewSeries("test")
	for i, c := range closes {
		if err := s.AddBar(minuteBar(i, c)); err != nil {
			t.Fatalf("AddBar(%d): %v", i, err)
		}
	}
	return s
}

func TestEmptySeries(t *testing.T) {
	s := NewSeries("empty")
	if !s.IsEmpty() || s.BarCount() != 0 {
		t.Error("new series is not empty")
	}
	if s.BeginIndex() != -1 || s.EndIndex() != -1 {
		t.Errorf("empty series indices = [%d, %d], want [-1, -1]", s.BeginIndex(), s.EndIndex())
	}
}

func TestAddBarSequencing(t *testing.T) {
	s := testSeries(t, 1, 2, 3)
	tests := []struct {
		name string
		bar  *Bar
	}{
		{"same end time", minuteBar(2, 4)},
		{"earlier end time", minuteBar(0, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.AddBar(tt.bar); !errors.Is(err, ErrOutOfSequence) {
				t.Errorf("AddBar = %v, want ErrOutOfSequence", err)
			}
		})
	}
	if s.BarCount() != 3 {
		t.Errorf("rejected bars changed count to %d", s.BarCount())
	}
}

func TestEvictionKeepsIndicesStable(t *testing.T) {
	s := NewBoundedSeries("bounded", 3)
	for i, c := range []float64{10, 20, 30, 40, 50} {
		if err := s.AddBar(minuteBar(i, c)); err != nil {
			t.Fatalf("AddBar(%d): %v", i, err)
		}
	}

	if got := s.BarCount(); got != 3 {
		t.Errorf("BarCount() = %d, want 3", got)
	}
	if got := s.RemovedBarsCount(); got != 2 {
		t.Errorf("RemovedBarsCount() = %d, want 2", got)
	}
	if got := s.EndIndex(); got != 4 {
		t.Errorf("EndIndex() = %d, want 4", got)
	}
	if got := s.BeginIndex(); got != 0 {
		t.Errorf("BeginIndex() = %d, want 0", got)
	}
	if s.RemovedBarsCount()+s.BarCount()-1 != s.EndIndex() {
		t.Error("removed + resident - 1 != end index")
	}

	// Logical indices survive eviction.
	if got := s.Bar(4).Close; !got.Eq(num.New(50)) {
		t.Errorf("Bar(4).Close = %v, want 50", got)
	}
	if got := s.Bar(2).Close; !got.Eq(num.New(30)) {
		t.Errorf("Bar(2).Close = %v, want 30", got)
	}
	// Evicted indices clamp to the earliest resident bar.
	for _, i := range []int{0, 1} {
		if got := s.Bar(i).Close; !got.Eq(num.New(30)) {
			t.Errorf("Bar(%d).Close = %v, want clamp to 30", i, got)
		}
	}
}

func TestBarPanicsOutOfRange(t *testing.T) {
	s := testSeries(t, 1, 2, 3)
	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past end", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Bar(%d) did not panic", tt.index)
				}
			}()
			s.Bar(tt.index)
		})
	}
}

func TestSetMaxBarCountRetroactive(t *testing.T) {
	s := testSeries(t, 1, 2, 3, 4, 5)
	s.SetMaxBarCount(2)
	if s.BarCount() != 2 || s.RemovedBarsCount() != 3 {
		t.Errorf("after SetMaxBarCount(2): count=%d removed=%d, want 2/3",
			s.BarCount(), s.RemovedBarsCount())
	}
	if got := s.Bar(4).Close; !got.Eq(num.New(5)) {
		t.Errorf("Bar(4).Close = %v, want 5", got)
	}
}

func TestReplaceLastBar(t *testing.T) {
	s := testSeries(t, 1, 2, 3)
	end := s.EndIndex()

	if err := s.ReplaceLastBar(minuteBar(2, 9)); err != nil {
		t.Fatalf("ReplaceLastBar: %v", err)
	}
	if s.BarCount() != 3 || s.EndIndex() != end {
		t.Errorf("replace changed shape: count=%d end=%d", s.BarCount(), s.EndIndex())
	}
	if got := s.Bar(end).Close; !got.Eq(num.New(9)) {
		t.Errorf("Bar(end).Close = %v, want 9", got)
	}

	// Replacement must still come after the bar before last.
	if err := s.ReplaceLastBar(minuteBar(0, 9)); !errors.Is(err, ErrOutOfSequence) {
		t.Errorf("ReplaceLastBar(regressing) = %v, want ErrOutOfSequence", err)
	}

	empty := NewSeries("empty")
	if err := empty.ReplaceLastBar(minuteBar(0, 1)); err != nil {
		t.Fatalf("ReplaceLastBar on empty: %v", err)
	}
	if empty.BarCount() != 1 {
		t.Error("ReplaceLastBar on empty did not append")
	}
}

func TestAddTradeReachesLastBar(t *testing.T) {
	s := testSeries(t, 10)
	s.AddTrade(num.New(2), num.New(42))
	last := s.LastBar()
	if !last.Close.Eq(num.New(42)) || !last.High.Eq(num.New(42)) {
		t.Errorf("AddTrade did not fold into last bar: %v", last)
	}
}

func TestSubSeries(t *testing.T) {
	s := testSeries(t, 10, 20, 30, 40, 50)

	sub, err := s.SubSeries(1, 4)
	if err != nil {
		t.Fatalf("SubSeries(1, 4): %v", err)
	}
	if sub.BarCount() != 3 {
		t.Fatalf("sub.BarCount() = %d, want 3", sub.BarCount())
	}
	if sub.BeginIndex() != 0 || sub.EndIndex() != 2 {
		t.Errorf("sub indices = [%d, %d], want [0, 2]", sub.BeginIndex(), sub.EndIndex())
	}
	if got := sub.Bar(0).Close; !got.Eq(num.New(20)) {
		t.Errorf("sub.Bar(0).Close = %v, want 20", got)
	}

	// End bound past the series clamps.
	tail, err := s.SubSeries(3, 100)
	if err != nil {
		t.Fatalf("SubSeries(3, 100): %v", err)
	}
	if tail.BarCount() != 2 {
		t.Errorf("tail.BarCount() = %d, want 2", tail.BarCount())
	}

	// Copies are independent of later parent mutation.
	s.AddTrade(num.New(1), num.New(999))
	if got := tail.Bar(1).Close; !got.Eq(num.New(50)) {
		t.Errorf("sub-series bar mutated with parent: %v", got)
	}
}

func TestSubSeriesInvalidRange(t *testing.T) {
	s := testSeries(t, 1, 2, 3)
	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 2},
		{"end equals start", 2, 2},
		{"end before start", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.SubSeries(tt.start, tt.end); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("SubSeries(%d, %d) = %v, want ErrInvalidRange", tt.start, tt.end, err)
			}
		})
	}
}

func TestSubSeriesBelowResidentWindow(t *testing.T) {
	s := NewBoundedSeries("bounded", 2)
	for i, c := range []float64{1, 2, 3, 4} {
		if err := s.AddBar(minuteBar(i, c)); err != nil {
			t.Fatalf("AddBar(%d): %v", i, err)
		}
	}
	// Indices 0 and 1 are evicted; only the resident overlap is copied.
	sub, err := s.SubSeries(0, 4)
	if err != nil {
		t.Fatalf("SubSeries: %v", err)
	}
	if sub.BarCount() != 2 {
		t.Errorf("sub.BarCount() = %d, want 2", sub.BarCount())
	}
	if got := sub.Bar(0).Close; !got.Eq(num.New(3)) {
		t.Errorf("sub.Bar(0).Close = %v, want 3", got)
	}
}

func TestBoundedSeriesRejectsBadBound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBoundedSeries(0) did not panic")
		}
	}()
	NewBoundedSeries("bad", 0)
}

func TestNumHelpers(t *testing.T) {
	s := NewSeries("n")
	if !s.Zero().IsZero() || !s.One().Eq(num.One()) || !s.Hundred().Eq(num.New(100)) {
		t.Error("series numeric helpers mismatch")
	}
	if !s.NumOf(1.5).Eq(num.New(1.5)) {
		t.Error("NumOf mismatch")
	}
}
