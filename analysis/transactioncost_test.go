package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantarc/strake/trading"
)

func TestLinearTransactionCostRoundTrip(t *testing.T) {
	s := closeSeries(t, 100, 110)
	rec := tradesAt(t, trading.NewRecord(trading.Buy), s, 0, 1)

	// Entry fee on 1000 is 11; the remaining 989 compounds by the 10%
	// gross return to 1087.9, whose exit fee is 11.879.
	crit := NewLinearTransactionCost(1000, 0.01, 1)
	got := crit.Calculate(s, rec)
	assert.InDelta(t, 22.879, got.Float64(), 1e-9)
}

func TestLinearTransactionCostOpenPosition(t *testing.T) {
	s := closeSeries(t, 100, 110, 110)
	crit := NewLinearTransactionCost(1000, 0.01, 1)

	open := tradesAt(t, trading.NewRecord(trading.Buy), s, 0)
	assert.InDelta(t, 11, crit.Calculate(s, open).Float64(), 1e-9,
		"an open entry is charged against the running amount")

	// After one closed round trip the account holds 1076.021, so the
	// dangling entry costs 11.76021.
	reentered := tradesAt(t, trading.NewRecord(trading.Buy), s, 0, 1, 2)
	assert.InDelta(t, 22.879+11.76021, crit.Calculate(s, reentered).Float64(), 1e-9)
}

func TestLinearTransactionCostPerPosition(t *testing.T) {
	s := closeSeries(t, 100, 110)
	rec := tradesAt(t, trading.NewRecord(trading.Buy), s, 0, 1)
	crit := NewLinearTransactionCost(1000, 0.01, 1)

	assert.InDelta(t, 22.879, crit.CalculatePosition(s, rec.LastPosition()).Float64(), 1e-9)
	assert.True(t, crit.CalculatePosition(s, trading.NewPosition(trading.Buy)).IsZero())
}
