package indicator

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// ParabolicSAR is the parabolic stop-and-reverse indicator.
//
// Each step depends not only on the previous SAR value but on auxiliary
// trend state (direction, extreme point, acceleration factor). That state
// is kept per index alongside the value cache and pruned to the last two
// steps; when a fresh evaluation finds the previous step's state missing
// (cold start on a series that already evicted bars, or state dropped by
// eviction) the state is cleared and replayed forward from the earliest
// resident bar.
type ParabolicSAR struct {
	*Recursive
	series *bars.Series

	accelStart     num.Num
	accelIncrement num.Num
	maxAccel       num.Num

	aux map[int]sarAux
}

type sarAux struct {
	upTrend bool
	extreme num.Num
	af      num.Num
	sar     num.Num
}

// NewParabolicSAR builds a parabolic SAR over s with the conventional
// factors: acceleration 0.02, increment 0.02, maximum 0.2.
func NewParabolicSAR(s *bars.Series) *ParabolicSAR {
	return NewParabolicSARWith(s, num.New(0.02), num.New(0.2), num.New(0.02))
}

// NewParabolicSARWith builds a parabolic SAR over s with explicit
// acceleration start, maximum and increment.
func NewParabolicSARWith(s *bars.Series, accelStart, maxAccel, accelIncrement num.Num) *ParabolicSAR {
	p := &ParabolicSAR{
		series:         s,
		accelStart:     accelStart,
		accelIncrement: accelIncrement,
		maxAccel:       maxAccel,
		aux:            make(map[int]sarAux),
	}
	p.Recursive = NewRecursive(s, p.calculate)
	return p
}

func (p *ParabolicSAR) calculate(i int) num.Num {
	start := p.series.RemovedBarsCount()
	if i > start+1 {
		if _, ok := p.aux[i-1]; !ok {
			clear(p.aux)
			for j := start; j < i; j++ {
				p.step(j, start)
			}
		}
	}
	return p.step(i, start)
}

// step computes index i from the state at i-1, records the state for i
// and prunes state older than the previous step.
func (p *ParabolicSAR) step(i, start int) num.Num {
	switch {
	case i <= start:
		// No trend detectable on a single bar.
		p.aux[i] = sarAux{
			upTrend: false,
			extreme: p.series.Bar(i).Close,
			af:      num.Zero(),
			sar:     num.Undefined(),
		}
	case i == start+1:
		up := p.series.Bar(i - 1).Close.Lt(p.series.Bar(i).Close)
		var sar, extreme num.Num
		if up {
			sar = p.lowestLowTwo(i - 1)
			extreme = p.highestHighTwo(i - 1)
		} else {
			sar = p.highestHighTwo(i - 1)
			extreme = p.lowestLowTwo(i - 1)
		}
		p.aux[i] = sarAux{upTrend: up, extreme: extreme, af: p.accelStart, sar: sar}
	default:
		prev := p.aux[i-1]
		bar := p.series.Bar(i)
		up := prev.upTrend
		extreme := prev.extreme
		af := prev.af
		sar := prev.sar.Add(af.Mul(extreme.Sub(prev.sar)))

		if up {
			if bar.Low.Lt(sar) {
				// Price touched the SAR: reverse to a downtrend.
				sar = extreme
				af = p.accelStart
				extreme = bar.Low
				up = false
			} else {
				if bar.High.Gt(extreme) {
					extreme = bar.High
					af = p.incrementAcceleration(af)
				}
			}
		} else {
			if bar.High.GtEq(sar) {
				sar = extreme
				af = p.accelStart
				extreme = bar.High
				up = true
			} else {
				if bar.Low.Lt(extreme) {
					extreme = bar.Low
					af = p.incrementAcceleration(af)
				}
			}
		}

		// The SAR may never enter the range of the two previous bars.
		if up {
			if limit := p.lowestLowTwo(i - 1); sar.Gt(limit) {
				sar = limit
			}
		} else {
			if limit := p.highestHighTwo(i - 1); sar.Lt(limit) {
				sar = limit
			}
		}
		p.aux[i] = sarAux{upTrend: up, extreme: extreme, af: af, sar: sar}
	}
	delete(p.aux, i-2)
	return p.aux[i].sar
}

func (p *ParabolicSAR) incrementAcceleration(af num.Num) num.Num {
	incremented := af.Add(p.accelIncrement)
	if incremented.Gt(p.maxAccel) {
		return p.maxAccel
	}
	return incremented
}

// lowestLowTwo returns the lowest low of bars j-1 and j, clamped to the
// resident window.
func (p *ParabolicSAR) lowestLowTwo(j int) num.Num {
	lo := j - 1
	if first := p.series.RemovedBarsCount(); lo < first {
		lo = first
	}
	return p.series.Bar(lo).Low.Min(p.series.Bar(j).Low)
}

// highestHighTwo returns the highest high of bars j-1 and j, clamped to
// the resident window.
func (p *ParabolicSAR) highestHighTwo(j int) num.Num {
	lo := j - 1
	if first := p.series.RemovedBarsCount(); lo < first {
		lo = first
	}
	return p.series.Bar(lo).High.Max(p.series.Bar(j).High)
}
