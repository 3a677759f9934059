package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/quantarc/strake/bars"
)

// JSON loads series from an array of bar objects with time (unix
// seconds), open, high, low, close and volume fields.
type JSON struct{}

// Load decodes the whole array into a fresh series.
func (JSON) Load(r io.Reader, opts Options) (*bars.Series, error) {
	var rows []row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("loader: decoding json: %w", err)
	}
	s := opts.newSeries()
	for i, rw := range rows {
		b, err := rw.toBar(opts.period())
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if err := s.AddBar(b); err != nil {
			return nil, fmt.Errorf("loader: json object %d: %w", i, err)
		}
	}
	logLoaded(opts, "json", s)
	return s, nil
}

// Save writes the resident bars as a JSON array.
func (JSON) Save(w io.Writer, s *bars.Series) error {
	rows := make([]row, 0, s.BarCount())
	for i := s.RemovedBarsCount(); i <= s.EndIndex(); i++ {
		rows = append(rows, fromBar(s.Bar(i)))
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("loader: encoding json: %w", err)
	}
	return nil
}
