package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

func TestProfitCriteria(t *testing.T) {
	s := closeSeries(t, 100, 105, 110, 100, 95, 105)

	// One winner (100 -> 110) and one loser (100 -> 95).
	rec := tradesAt(t, trading.NewRecord(trading.Buy), s, 0, 2, 3, 4)

	assert.InDelta(t, 5, NetProfit{}.Calculate(s, rec).Float64(), 1e-9)
	assert.InDelta(t, 5, GrossProfit{}.Calculate(s, rec).Float64(), 1e-9)
	assert.InDelta(t, 1.1*0.95, GrossReturn{}.Calculate(s, rec).Float64(), 1e-9)
	assert.InDelta(t, 2, PositionCount{}.Calculate(s, rec).Float64(), 1e-9)
	assert.InDelta(t, 0.5, WinningPositionsRatio{}.Calculate(s, rec).Float64(), 1e-9)
}

func TestCriteriaOnEmptyRecord(t *testing.T) {
	s := closeSeries(t, 100, 110)
	rec := trading.NewRecord(trading.Buy)

	assert.True(t, NetProfit{}.Calculate(s, rec).IsZero())
	assert.True(t, GrossProfit{}.Calculate(s, rec).IsZero())
	assert.True(t, GrossReturn{}.Calculate(s, rec).Eq(num.One()), "empty product is 1")
	assert.True(t, PositionCount{}.Calculate(s, rec).IsZero())
	assert.True(t, WinningPositionsRatio{}.Calculate(s, rec).IsZero())
}

func TestCriteriaPerPosition(t *testing.T) {
	s := closeSeries(t, 100, 110)
	rec := tradesAt(t, trading.NewRecord(trading.Buy), s, 0, 1)
	p := rec.LastPosition()

	assert.InDelta(t, 10, NetProfit{}.CalculatePosition(s, p).Float64(), 1e-9)
	assert.InDelta(t, 10, GrossProfit{}.CalculatePosition(s, p).Float64(), 1e-9)
	assert.InDelta(t, 1.1, GrossReturn{}.CalculatePosition(s, p).Float64(), 1e-9)
	assert.True(t, PositionCount{}.CalculatePosition(s, p).Eq(num.One()))
	assert.True(t, WinningPositionsRatio{}.CalculatePosition(s, p).Eq(num.One()))
}

func TestCriteriaOrdering(t *testing.T) {
	tests := []struct {
		name      string
		criterion Criterion
		a, b      float64
		better    bool
	}{
		{"more net profit wins", NetProfit{}, 10, 5, true},
		{"more gross return wins", GrossReturn{}, 1.2, 1.1, true},
		{"fewer positions win", PositionCount{}, 2, 5, true},
		{"higher win rate wins", WinningPositionsRatio{}, 0.6, 0.5, true},
		{"shallower drawdown wins", MaximumDrawdown{}, 0.1, 0.2, true},
		{"cheaper trading wins", NewLinearTransactionCost(1000, 0.005, 0.2), 5, 10, true},
		{"milder shortfall wins", NewExpectedShortfall(0.95), -0.01, -0.05, true},
		{"deeper drawdown loses", MaximumDrawdown{}, 0.3, 0.2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.criterion.BetterThan(num.New(tt.a), num.New(tt.b))
			assert.Equal(t, tt.better, got)
		})
	}
}
