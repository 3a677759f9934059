package loader

import (
	"bytes"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/quantarc/strake/bars"
)

// Parquet loads and saves series as parquet files with one flat row
// group of time/open/high/low/close/volume columns.
type Parquet struct{}

// Load reads the whole file into a fresh series. Parquet needs random
// access, so the reader is buffered in memory first.
func (Parquet) Load(r io.Reader, opts Options) (*bars.Series, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: reading parquet: %w", err)
	}
	rows, err := parquet.Read[row](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("loader: decoding parquet: %w", err)
	}
	s := opts.newSeries()
	for i, rw := range rows {
		b, err := rw.toBar(opts.period())
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := s.AddBar(b); err != nil {
			return nil, fmt.Errorf("loader: parquet row %d: %w", i, err)
		}
	}
	logLoaded(opts, "parquet", s)
	return s, nil
}

// Save writes the resident bars as a single row group.
func (Parquet) Save(w io.Writer, s *bars.Series) error {
	rows := make([]row, 0, s.BarCount())
	for i := s.RemovedBarsCount(); i <= s.EndIndex(); i++ {
		rows = append(rows, fromBar(s.Bar(i)))
	}
	if err := parquet.Write(w, rows); err != nil {
		return fmt.Errorf("loader: writing parquet: %w", err)
	}
	return nil
}
