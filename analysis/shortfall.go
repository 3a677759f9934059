package analysis

import (
	"sort"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
	"github.com/quantarc/strake/trading"
)

// ExpectedShortfall is the mean of the worst log returns of a record:
// the tail holds the lowest size*(1-confidence) per-bar returns. The
// result is never positive and an empty record scores 0. Higher, that
// is closer to zero, ranks better.
type ExpectedShortfall struct {
	confidence float64
}

// NewExpectedShortfall measures tail risk at the given confidence
// level, 0.95 being the common choice.
func NewExpectedShortfall(confidence float64) ExpectedShortfall {
	return ExpectedShortfall{confidence: confidence}
}

func (c ExpectedShortfall) Calculate(s *bars.Series, record *trading.Record) num.Num {
	return c.shortfall(NewReturns(s, record, Log))
}

func (c ExpectedShortfall) CalculatePosition(s *bars.Series, p *trading.Position) num.Num {
	if p == nil || !p.IsClosed() {
		return num.Zero()
	}
	return c.shortfall(NewPositionReturns(s, p, Log))
}

func (c ExpectedShortfall) BetterThan(a, b num.Num) bool { return a.Gt(b) }

func (c ExpectedShortfall) shortfall(r *Returns) num.Num {
	rates := make([]num.Num, 0, r.Size())
	for i := 1; i < r.Size(); i++ {
		if v := r.Value(i); !v.IsUndefined() {
			rates = append(rates, v)
		}
	}
	if len(rates) == 0 {
		return num.Zero()
	}

	inBody := int(float64(len(rates)) * c.confidence)
	inTail := len(rates) - inBody
	if inTail == 0 {
		return num.Zero()
	}

	sort.Slice(rates, func(i, j int) bool { return rates[i].Lt(rates[j]) })
	sum := num.Zero()
	for _, v := range rates[:inTail] {
		sum = sum.Add(v)
	}
	es := sum.Div(num.FromInt(int64(inTail)))
	if es.IsPositive() {
		return num.Zero()
	}
	return es
}
