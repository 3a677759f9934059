package indicator

import (
	"testing"

	"github.com/quantarc/strake/bars"
)

func flowSeries(t *testing.T) *bars.Series {
	t.Helper()
	s := bars.NewSeries("flow")
	rows := []struct{ high, low, close, volume float64 }{
		{12, 8, 11, 10},
		{10, 6, 7, 20},
		{11, 9, 10, 10},
	}
	for i, r := range rows {
		if err := s.AddBar(hlcvBar(i, r.high, r.low, r.close, r.volume)); err != nil {
			t.Fatalf("AddBar(%d): %v", i, err)
		}
	}
	return s
}

func TestCloseLocationValue(t *testing.T) {
	s := flowSeries(t)
	clv := NewCloseLocationValue(s)

	approx(t, "CLV[0]", clv.Value(0), 0.5)
	approx(t, "CLV[1]", clv.Value(1), -0.5)
	approx(t, "CLV[2]", clv.Value(2), 0)
}

func TestCloseLocationValueZeroRange(t *testing.T) {
	s := closeSeries(t, 10)
	approx(t, "CLV on flat bar", NewCloseLocationValue(s).Value(0), 0)
}

func TestAccumulationDistribution(t *testing.T) {
	s := flowSeries(t)
	ad := NewAccumulationDistribution(s)

	approx(t, "AD[0]", ad.Value(0), 0)
	approx(t, "AD[1]", ad.Value(1), -10)
	approx(t, "AD[2]", ad.Value(2), -10)
}

func TestChaikinMoneyFlow(t *testing.T) {
	s := flowSeries(t)
	cmf := NewChaikinMoneyFlow(s, 2)

	approx(t, "CMF[0]", cmf.Value(0), 0.5)
	approx(t, "CMF[1]", cmf.Value(1), -1.0/6)
	approx(t, "CMF[2]", cmf.Value(2), -1.0/3)
}

func TestChaikinOscillator(t *testing.T) {
	s := flowSeries(t)
	osc := NewChaikinOscillator(s, 1, 2)

	approx(t, "ChaikinOscillator[0]", osc.Value(0), 0)
	approx(t, "ChaikinOscillator[1]", osc.Value(1), -10.0/3)
	approx(t, "ChaikinOscillator[2]", osc.Value(2), -10.0/9)
}
