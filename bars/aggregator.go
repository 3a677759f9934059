package bars

import (
	"fmt"
	"time"
)

// AggregateDuration groups the resident bars of s into bars of the target
// period, which must be a positive multiple of the source bar period.
// Open is the first bucket bar's open, high/low widen across the bucket,
// close is the last bucket bar's close, and volume, amount and trade
// counts are summed. Source bars are assumed contiguous.
//
// With onlyFinalBars set, a trailing bucket that is not backed by a full
// period's worth of source bars is dropped instead of emitted.
func AggregateDuration(s *Series, target time.Duration, onlyFinalBars bool) (*Series, error) {
	out := NewSeries(s.name)
	if s.IsEmpty() {
		return out, nil
	}
	actual := s.FirstBar().Period
	if actual <= 0 || target <= 0 || target%actual != 0 {
		return nil, fmt.Errorf("%w: target period %s is not a multiple of bar period %s",
			ErrInvalidRange, target, actual)
	}

	data := s.BarData()
	i := 0
	for i < len(data) {
		first := data[i]
		agg := &Bar{
			Period:  target,
			EndTime: first.BeginTime().Add(target),
			Open:    first.Open,
			High:    first.High,
			Low:     first.Low,
		}
		var consumed time.Duration
		for consumed < target {
			if i < len(data) {
				b := data[i]
				agg.High = agg.High.Max(b.High)
				agg.Low = agg.Low.Min(b.Low)
				agg.Close = b.Close
				agg.Volume = agg.Volume.Add(b.Volume)
				agg.Amount = agg.Amount.Add(b.Amount)
				agg.Trades += b.Trades
			}
			consumed += actual
			i++
		}
		// i overshoots len(data) only when the bucket ran out of source
		// bars before covering a full target period.
		if !onlyFinalBars || i <= len(data) {
			if err := out.AddBar(agg); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
