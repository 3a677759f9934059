package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantarc/strake/trading"
)

func TestExpectedShortfallTailMean(t *testing.T) {
	s := closeSeries(t, 100, 110, 99, 103.95, 93.555)
	rec := tradesAt(t, trading.NewRecord(trading.Buy), s, 0, 4)

	// Log returns are ln1.1, ln0.9, ln1.05, ln0.9. At 95% confidence
	// the tail holds the single worst return.
	got := NewExpectedShortfall(0.95).Calculate(s, rec)
	assert.InDelta(t, math.Log(0.9), got.Float64(), 1e-6)

	// At 50% confidence the tail averages the two worst.
	got = NewExpectedShortfall(0.5).Calculate(s, rec)
	assert.InDelta(t, math.Log(0.9), got.Float64(), 1e-6)
}

func TestExpectedShortfallNeverPositive(t *testing.T) {
	s := closeSeries(t, 100, 110, 121)
	rec := tradesAt(t, trading.NewRecord(trading.Buy), s, 0, 2)

	got := NewExpectedShortfall(0.5).Calculate(s, rec)
	assert.True(t, got.IsZero(), "all-gain records clamp to 0, got %v", got)
}

func TestExpectedShortfallEdgeCases(t *testing.T) {
	s := closeSeries(t, 100, 90, 80)

	empty := trading.NewRecord(trading.Buy)
	assert.True(t, NewExpectedShortfall(0.95).Calculate(s, empty).IsZero())

	rec := tradesAt(t, trading.NewRecord(trading.Buy), s, 0, 2)
	assert.True(t, NewExpectedShortfall(1).Calculate(s, rec).IsZero(), "an empty tail scores 0")

	open := tradesAt(t, trading.NewRecord(trading.Buy), s, 0)
	assert.True(t, NewExpectedShortfall(0.95).CalculatePosition(s, open.CurrentPosition()).IsZero(),
		"open positions are not scored")
}

func TestExpectedShortfallPerPosition(t *testing.T) {
	s := closeSeries(t, 100, 90, 99)
	rec := tradesAt(t, trading.NewRecord(trading.Buy), s, 0, 2)

	// Log returns are ln0.9 and ln1.1; the 50% tail is the worst one.
	got := NewExpectedShortfall(0.5).CalculatePosition(s, rec.LastPosition())
	assert.InDelta(t, math.Log(0.9), got.Float64(), 1e-6)
}
