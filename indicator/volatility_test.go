package indicator

import (
	"testing"

	"github.com/quantarc/strake/bars"
)

func trSeries(t *testing.T) *bars.Series {
	t.Helper()
	s := bars.NewSeries("tr")
	rows := []struct{ high, low, close float64 }{
		{15, 10, 12},
		{18, 14, 16},
		{17, 11, 13},
	}
	for i, r := range rows {
		if err := s.AddBar(hlcvBar(i, r.high, r.low, r.close, 1)); err != nil {
			t.Fatalf("AddBar(%d): %v", i, err)
		}
	}
	return s
}

func TestTR(t *testing.T) {
	s := trSeries(t)
	tr := NewTR(s)

	// First index: plain range. Later ones include the previous close.
	approx(t, "TR[0]", tr.Value(0), 5)
	approx(t, "TR[1]", tr.Value(1), 6)
	approx(t, "TR[2]", tr.Value(2), 6)
}

func TestATR(t *testing.T) {
	s := trSeries(t)
	atr := NewATR(s, 2)

	approx(t, "ATR[0]", atr.Value(0), 5)
	approx(t, "ATR[1]", atr.Value(1), 5.5)
	approx(t, "ATR[2]", atr.Value(2), 5.75)
}

func TestVariance(t *testing.T) {
	s := closeSeries(t, 1, 2, 3, 4)
	v := NewVariance(NewClosePrice(s), 4)

	approx(t, "Variance[0]", v.Value(0), 0)
	approx(t, "Variance[1]", v.Value(1), 0.25)
	approx(t, "Variance[2]", v.Value(2), 2.0/3)
	approx(t, "Variance[3]", v.Value(3), 1.25)
}

func TestStdDev(t *testing.T) {
	s := closeSeries(t, 1, 2, 3, 4)
	sd := NewStdDev(NewClosePrice(s), 4)

	approx(t, "StdDev[1]", sd.Value(1), 0.5)
	approx(t, "StdDev[3]", sd.Value(3), 1.1180339887)
}

func TestMeanDeviation(t *testing.T) {
	s := closeSeries(t, 1, 2, 7)
	md := NewMeanDeviation(NewClosePrice(s), 3)

	approx(t, "MeanDeviation[0]", md.Value(0), 0)
	approx(t, "MeanDeviation[1]", md.Value(1), 0.5)
	approx(t, "MeanDeviation[2]", md.Value(2), 22.0/9)
}
