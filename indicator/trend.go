package indicator

import (
	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// PlusDM is the positive directional movement: the up-move
// high(i)-high(i-1) when it exceeds both the down-move and zero.
type PlusDM struct {
	*Cache
	series *bars.Series
}

// NewPlusDM builds a +DM indicator over s.
func NewPlusDM(s *bars.Series) *PlusDM {
	p := &PlusDM{series: s}
	p.Cache = NewCache(s, p.calculate)
	return p
}

func (p *PlusDM) calculate(i int) num.Num {
	if i == 0 {
		return num.Zero()
	}
	prev, cur := p.series.Bar(i-1), p.series.Bar(i)
	upMove := cur.High.Sub(prev.High)
	downMove := prev.Low.Sub(cur.Low)
	if upMove.Gt(downMove) && upMove.IsPositive() {
		return upMove
	}
	return num.Zero()
}

// MinusDM is the negative directional movement: the down-move
// low(i-1)-low(i) when it exceeds both the up-move and zero.
type MinusDM struct {
	*Cache
	series *bars.Series
}

// NewMinusDM builds a -DM indicator over s.
func NewMinusDM(s *bars.Series) *MinusDM {
	m := &MinusDM{series: s}
	m.Cache = NewCache(s, m.calculate)
	return m
}

func (m *MinusDM) calculate(i int) num.Num {
	if i == 0 {
		return num.Zero()
	}
	prev, cur := m.series.Bar(i-1), m.series.Bar(i)
	upMove := cur.High.Sub(prev.High)
	downMove := prev.Low.Sub(cur.Low)
	if downMove.Gt(upMove) && downMove.IsPositive() {
		return downMove
	}
	return num.Zero()
}

// PlusDI is the positive directional index: 100 * MMA(+DM) / ATR.
type PlusDI struct {
	*Cache
	avgPlusDM *MMA
	atr       *ATR
}

// NewPlusDI builds a +DI indicator over s.
func NewPlusDI(s *bars.Series, barCount int) *PlusDI {
	p := &PlusDI{avgPlusDM: NewMMA(NewPlusDM(s), barCount), atr: NewATR(s, barCount)}
	p.Cache = NewCache(s, p.calculate)
	return p
}

func (p *PlusDI) calculate(i int) num.Num {
	return p.avgPlusDM.Value(i).Div(p.atr.Value(i)).Mul(num.Hundred())
}

// MinusDI is the negative directional index: 100 * MMA(-DM) / ATR.
type MinusDI struct {
	*Cache
	avgMinusDM *MMA
	atr        *ATR
}

// NewMinusDI builds a -DI indicator over s.
func NewMinusDI(s *bars.Series, barCount int) *MinusDI {
	m := &MinusDI{avgMinusDM: NewMMA(NewMinusDM(s), barCount), atr: NewATR(s, barCount)}
	m.Cache = NewCache(s, m.calculate)
	return m
}

func (m *MinusDI) calculate(i int) num.Num {
	return m.avgMinusDM.Value(i).Div(m.atr.Value(i)).Mul(num.Hundred())
}

// DX is the directional index: 100 * |+DI - -DI| / (+DI + -DI), 0 when
// both directional indices are zero.
type DX struct {
	*Cache
	plusDI  *PlusDI
	minusDI *MinusDI
}

// NewDX builds a DX indicator over s.
func NewDX(s *bars.Series, barCount int) *DX {
	d := &DX{plusDI: NewPlusDI(s, barCount), minusDI: NewMinusDI(s, barCount)}
	d.Cache = NewCache(s, d.calculate)
	return d
}

func (d *DX) calculate(i int) num.Num {
	pdi := d.plusDI.Value(i)
	mdi := d.minusDI.Value(i)
	sum := pdi.Add(mdi)
	if sum.IsZero() {
		return num.Zero()
	}
	return pdi.Sub(mdi).Abs().Div(sum).Mul(num.Hundred())
}

// ADX is the average directional index: a modified moving average of DX.
type ADX struct {
	*Cache
	avgDX *MMA
}

// NewADX builds an ADX indicator over s, conventionally with both bar
// counts at 14.
func NewADX(s *bars.Series, diBarCount, adxBarCount int) *ADX {
	a := &ADX{avgDX: NewMMA(NewDX(s, diBarCount), adxBarCount)}
	a.Cache = NewCache(s, a.calculate)
	return a
}

func (a *ADX) calculate(i int) num.Num {
	return a.avgDX.Value(i)
}
