package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

var csvHeader = []string{"time", "open", "high", "low", "close", "volume"}

// CSV loads and saves series as comma-separated rows under a
// time,open,high,low,close,volume header. Timestamps are RFC3339 or
// unix seconds.
type CSV struct{}

// Load reads every row into a fresh series.
func (CSV) Load(r io.Reader, opts Options) (*bars.Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("loader: reading csv header: %w", err)
	}
	if len(header) < len(csvHeader) || !strings.EqualFold(header[0], "time") {
		return nil, fmt.Errorf("%w: header %v", ErrBadRecord, header)
	}

	s := opts.newSeries()
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			logLoaded(opts, "csv", s)
			return s, nil
		}
		if err != nil {
			return nil, fmt.Errorf("loader: csv line %d: %w", line, err)
		}
		b, err := parseCSVRow(fields, opts.period())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := s.AddBar(b); err != nil {
			return nil, fmt.Errorf("loader: csv line %d: %w", line, err)
		}
	}
}

// Save writes the resident bars under the standard header, timestamps
// in RFC3339.
func (CSV) Save(w io.Writer, s *bars.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("loader: writing csv header: %w", err)
	}
	for i := s.RemovedBarsCount(); i <= s.EndIndex(); i++ {
		b := s.Bar(i)
		fields := []string{
			b.EndTime.UTC().Format(time.RFC3339),
			b.Open.String(), b.High.String(), b.Low.String(), b.Close.String(),
			b.Volume.String(),
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("loader: writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseCSVRow(fields []string, period time.Duration) (*bars.Bar, error) {
	if len(fields) < len(csvHeader) {
		return nil, fmt.Errorf("%w: %d fields", ErrBadRecord, len(fields))
	}
	end, err := parseCSVTime(fields[0])
	if err != nil {
		return nil, err
	}
	prices := make([]num.Num, 5)
	for i, f := range fields[1:6] {
		v, err := num.FromString(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: field %q", ErrBadRecord, f)
		}
		prices[i] = v
	}
	if prices[1].Lt(prices[2]) {
		return nil, fmt.Errorf("%w: high %v below low %v", ErrBadRecord, prices[1], prices[2])
	}
	return bars.NewBarFrom(period, end, prices[0], prices[1], prices[2], prices[3], prices[4]), nil
}

// parseCSVTime accepts unix seconds or RFC3339.
func parseCSVTime(field string) (time.Time, error) {
	field = strings.TrimSpace(field)
	if secs, err := strconv.ParseInt(field, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, field)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", ErrBadRecord, field)
	}
	return ts, nil
}
