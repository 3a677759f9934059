package backtest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

func TestReportScoresRecord(t *testing.T) {
	s := closeSeries(t, 100, 110, 121)
	rec := trading.NewRecord(trading.Buy)
	require.NoError(t, rec.Operate(0, num.New(100), num.One()))
	require.NoError(t, rec.Operate(2, num.New(121), num.One()))

	rep := NewReport(s, rec, "breakout", DefaultReportConfig())

	assert.Equal(t, "breakout", rep.Strategy())
	assert.NotEmpty(t, rep.ID())
	assert.InDelta(t, 1, rep.Value("positions").Float64(), 1e-9)
	assert.InDelta(t, 0, rep.Value("open positions").Float64(), 1e-9)
	assert.InDelta(t, 1, rep.Value("win rate").Float64(), 1e-9)
	assert.InDelta(t, 21, rep.Value("net profit").Float64(), 1e-9)
	assert.InDelta(t, 1.21, rep.Value("gross return").Float64(), 1e-9)
	assert.True(t, rep.Value("max drawdown").IsZero())
	assert.True(t, rep.Value("nonsense").IsUndefined())
}

func TestReportCountsOpenPosition(t *testing.T) {
	s := closeSeries(t, 100, 110)
	rec := trading.NewRecord(trading.Buy)
	require.NoError(t, rec.Operate(0, num.New(100), num.One()))

	rep := NewReport(s, rec, "dangling", DefaultReportConfig())
	assert.InDelta(t, 1, rep.Value("open positions").Float64(), 1e-9)
	assert.InDelta(t, 0, rep.Value("positions").Float64(), 1e-9)
}

func TestReportRender(t *testing.T) {
	s := closeSeries(t, 100, 110, 121)
	rec := trading.NewRecord(trading.Buy)
	rep := NewReport(s, rec, "idle", DefaultReportConfig())

	var buf bytes.Buffer
	rep.Render(&buf)

	out := buf.String()
	assert.Contains(t, out, "backtest idle")
	assert.Contains(t, out, "net profit")
	assert.Contains(t, out, "expected shortfall")
}

func TestReportIDsAreUnique(t *testing.T) {
	s := closeSeries(t, 100)
	rec := trading.NewRecord(trading.Buy)

	a := NewReport(s, rec, "a", DefaultReportConfig())
	b := NewReport(s, rec, "a", DefaultReportConfig())
	assert.NotEqual(t, a.ID(), b.ID())
}
