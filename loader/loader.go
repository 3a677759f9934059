// Package loader reads and writes bar series as CSV, JSON or parquet.
// Loading appends through Series.AddBar, so a bounded target series
// evicts from the front exactly as it would live.
package loader

import (
	"errors"
	"fmt"
	"time"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"go.uber.org/zap"
)

// ErrBadRecord indicates a malformed input row.
var ErrBadRecord = errors.New("loader: malformed record")

// Options shape the series a loader fills.
type Options struct {
	// Name of the series; "series" when empty.
	Name string

	// Period of each bar; a minute when zero.
	Period time.Duration

	// MaxBarCount bounds the series when positive.
	MaxBarCount int

	// Logger receives a load summary; nil disables logging.
	Logger *zap.Logger
}

func (o Options) newSeries() *bars.Series {
	name := o.Name
	if name == "" {
		name = "series"
	}
	s := bars.NewSeries(name)
	if o.MaxBarCount > 0 {
		s.SetMaxBarCount(o.MaxBarCount)
	}
	return s
}

func (o Options) period() time.Duration {
	if o.Period <= 0 {
		return time.Minute
	}
	return o.Period
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func logLoaded(o Options, format string, s *bars.Series) {
	o.logger().Info("loaded series",
		zap.String("format", format),
		zap.String("series", s.Name()),
		zap.Int("bars", s.BarCount()),
		zap.Int("removed", s.RemovedBarsCount()),
	)
}

// row is the flat on-disk shape shared by the JSON and parquet codecs.
// Time is the bar end in unix seconds.
type row struct {
	Time   int64   `json:"time" parquet:"time"`
	Open   float64 `json:"open" parquet:"open"`
	High   float64 `json:"high" parquet:"high"`
	Low    float64 `json:"low" parquet:"low"`
	Close  float64 `json:"close" parquet:"close"`
	Volume float64 `json:"volume" parquet:"volume"`
}

func (r row) toBar(period time.Duration) (*bars.Bar, error) {
	if r.Time <= 0 {
		return nil, fmt.Errorf("%w: time %d", ErrBadRecord, r.Time)
	}
	if r.High < r.Low {
		return nil, fmt.Errorf("%w: high %v below low %v", ErrBadRecord, r.High, r.Low)
	}
	end := time.Unix(r.Time, 0).UTC()
	return bars.NewBarFrom(period, end,
		num.New(r.Open), num.New(r.High), num.New(r.Low), num.New(r.Close), num.New(r.Volume)), nil
}

func fromBar(b *bars.Bar) row {
	return row{
		Time:   b.EndTime.UTC().Unix(),
		Open:   b.Open.Float64(),
		High:   b.High.Float64(),
		Low:    b.Low.Float64(),
		Close:  b.Close.Float64(),
		Volume: b.Volume.Float64(),
	}
}
