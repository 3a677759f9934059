package indicator

import (
	"testing"
	"time"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

func ohlcBar(endTime time.Time, open, high, low, close float64) *bars.Bar {
	return bars.NewBarFrom(time.Hour, endTime,
		num.New(open), num.New(high), num.New(low), num.New(close), num.One())
}

func TestPivotPointBarLevel(t *testing.T) {
	s := bars.NewSeries("pivot")
	if err := s.AddBar(ohlcBar(testOrigin.Add(time.Hour), 9, 12, 8, 10)); err != nil {
		t.Fatalf("AddBar: %v", err)
	}
	if err := s.AddBar(ohlcBar(testOrigin.Add(2*time.Hour), 10, 11, 9, 10.5)); err != nil {
		t.Fatalf("AddBar: %v", err)
	}

	pivot := NewPivotPoint(s, TimeLevelBar)
	// The first index has no previous bar and falls back on itself.
	approx(t, "pivot[0]", pivot.Value(0), 10)
	approx(t, "pivot[1]", pivot.Value(1), 10)

	tests := []struct {
		level PivotLevel
		want  float64
	}{
		{PivotR3, 16},
		{PivotR2, 14},
		{PivotR1, 12},
		{PivotS1, 8},
		{PivotS2, 6},
		{PivotS3, 4},
	}
	for _, tt := range tests {
		approx(t, "reversal", NewStandardReversal(pivot, tt.level).Value(1), tt.want)
	}
}

func TestDeMarkPivotPoint(t *testing.T) {
	tests := []struct {
		name           string
		open, close    float64
		wantPivot      float64
		wantResistance float64
		wantSupport    float64
	}{
		{"close above open", 9, 10, 10.5, 13, 9},
		{"close below open", 11, 10, 9.5, 11, 7},
		{"close equals open", 10, 10, 10, 12, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := bars.NewSeries("demark")
			if err := s.AddBar(ohlcBar(testOrigin.Add(time.Hour), tt.open, 12, 8, tt.close)); err != nil {
				t.Fatalf("AddBar: %v", err)
			}
			if err := s.AddBar(ohlcBar(testOrigin.Add(2*time.Hour), 10, 11, 9, 10)); err != nil {
				t.Fatalf("AddBar: %v", err)
			}

			pivot := NewDeMarkPivotPoint(s, TimeLevelBar)
			approx(t, "demark pivot", pivot.Value(1), tt.wantPivot)
			approx(t, "demark resistance", NewDeMarkReversal(pivot, DeMarkResistance).Value(1), tt.wantResistance)
			approx(t, "demark support", NewDeMarkReversal(pivot, DeMarkSupport).Value(1), tt.wantSupport)
		})
	}
}

func TestPivotPointDayLevel(t *testing.T) {
	s := bars.NewSeries("daily")
	day := func(d int, hour int) time.Time {
		return testOrigin.Add(time.Duration(d)*24*time.Hour + time.Duration(hour)*time.Hour)
	}
	barsIn := []struct {
		end        time.Time
		o, h, l, c float64
	}{
		{day(0, 1), 9, 12, 8, 10},
		{day(0, 2), 10, 14, 9, 11},
		{day(1, 1), 11, 13, 10, 12},
		{day(1, 2), 12, 15, 11, 14},
	}
	for _, b := range barsIn {
		if err := s.AddBar(ohlcBar(b.end, b.o, b.h, b.l, b.c)); err != nil {
			t.Fatalf("AddBar: %v", err)
		}
	}

	pivot := NewPivotPoint(s, TimeLevelDay)
	for _, i := range []int{0, 1} {
		if got := pivot.Value(i); !got.IsUndefined() {
			t.Errorf("pivot.Value(%d) on the first day = %v, want undefined", i, got)
		}
	}
	// Previous day: high 14, low 8, close 11.
	approx(t, "pivot[2]", pivot.Value(2), 11)
	approx(t, "pivot[3]", pivot.Value(3), 11)

	if got := pivot.BarsOfPreviousPeriod(3); len(got) != 2 || got[0] != 1 || got[1] != 0 {
		t.Errorf("BarsOfPreviousPeriod(3) = %v, want [1 0]", got)
	}

	// DeMark uses the previous day's open and close: open 9, close 11,
	// so close > open weights the high.
	demark := NewDeMarkPivotPoint(s, TimeLevelDay)
	approx(t, "demark day pivot", demark.Value(2), (2*14+8+11)/4.0)
}

func TestPivotPointSkipsCalendarGaps(t *testing.T) {
	s := bars.NewSeries("gapped")
	end := func(d int) time.Time {
		return testOrigin.Add(time.Duration(d)*24*time.Hour + time.Hour)
	}
	// A Friday bar followed by the next Monday.
	if err := s.AddBar(ohlcBar(end(4), 17, 20, 16, 18)); err != nil {
		t.Fatalf("AddBar: %v", err)
	}
	if err := s.AddBar(ohlcBar(end(7), 18, 21, 17, 19)); err != nil {
		t.Fatalf("AddBar: %v", err)
	}

	pivot := NewPivotPoint(s, TimeLevelDay)
	approx(t, "pivot across gap", pivot.Value(1), (20+16+18)/3.0)
}
