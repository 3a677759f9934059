package bars

import (
	"fmt"
	"time"

	"github.com/quantarc/strake/num"
)

// Bar aggregates the trading activity of one time period: OHLC prices,
// traded volume, traded amount (volume x price) and the tick count.
// EndTime marks the close of the period; BeginTime is derived from Period.
//
// A bar built with NewBar starts with undefined prices until the first
// trade or price is folded in.
type Bar struct {
	Period  time.Duration
	EndTime time.Time

	Open   num.Num
	High   num.Num
	Low    num.Num
	Close  num.Num
	Volume num.Num
	Amount num.Num
	Trades int64
}

// NewBar returns an empty bar covering the period that ends at endTime.
func NewBar(period time.Duration, endTime time.Time) *Bar {
	return &Bar{
		Period:  period,
		EndTime: endTime,
		Open:    num.Undefined(),
		High:    num.Undefined(),
		Low:     num.Undefined(),
		Close:   num.Undefined(),
	}
}

// NewBarFrom returns a fully populated bar.
func NewBarFrom(period time.Duration, endTime time.Time, open, high, low, close, volume num.Num) *Bar {
	return &Bar{
		Period:  period,
		EndTime: endTime,
		Open:    open,
		High:    high,
		Low:     low,
		Close:   close,
		Volume:  volume,
		Amount:  close.Mul(volume),
	}
}

// BeginTime returns the open time of the period.
func (b *Bar) BeginTime() time.Time {
	return b.EndTime.Add(-b.Period)
}

// InPeriod reports whether t falls inside [BeginTime, EndTime).
func (b *Bar) InPeriod(t time.Time) bool {
	return !t.Before(b.BeginTime()) && t.Before(b.EndTime)
}

// AddTrade folds a tick into the bar: the first tick sets the open, the
// high/low widen, the close tracks the last price, and volume, amount and
// the trade count accumulate.
func (b *Bar) AddTrade(volume, price num.Num) {
	b.AddPrice(price)
	b.Volume = b.Volume.Add(volume)
	b.Amount = b.Amount.Add(volume.Mul(price))
	b.Trades++
}

// AddPrice folds a price-only observation into the bar, leaving volume,
// amount and the trade count untouched.
func (b *Bar) AddPrice(price num.Num) {
	if b.Open.IsUndefined() {
		b.Open = price
	}
	if b.High.IsUndefined() {
		b.High = price
	} else {
		b.High = b.High.Max(price)
	}
	if b.Low.IsUndefined() {
		b.Low = price
	} else {
		b.Low = b.Low.Min(price)
	}
	b.Close = price
}

// IsBullish reports whether the bar closed above its open.
func (b *Bar) IsBullish() bool {
	return b.Close.Gt(b.Open)
}

// IsBearish reports whether the bar closed below its open.
func (b *Bar) IsBearish() bool {
	return b.Close.Lt(b.Open)
}

// String implements fmt.Stringer.
func (b *Bar) String() string {
	return fmt.Sprintf("end=%s O=%s H=%s L=%s C=%s V=%s",
		b.EndTime.Format(time.RFC3339), b.Open, b.High, b.Low, b.Close, b.Volume)
}
