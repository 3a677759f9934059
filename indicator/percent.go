package indicator

import (
	"github.com/quantarc/strake/num"
)

// DifferencePercentage reports the percentage change of the source
// against the last notified value, re-anchoring whenever the absolute
// change reaches the threshold. The first evaluated index anchors and is
// undefined. A zero threshold re-anchors on every change.
//
// The anchor is evaluation-order state: values are meaningful when
// indices are visited in ascending order, as a backtest runner does.
type DifferencePercentage struct {
	*Cache
	ind       Indicator
	threshold num.Num

	lastNotification num.Num
	anchored         bool
}

// NewDifferencePercentage builds a threshold change indicator over ind.
func NewDifferencePercentage(ind Indicator, threshold num.Num) *DifferencePercentage {
	d := &DifferencePercentage{ind: ind, threshold: threshold}
	d.Cache = NewCache(ind.Series(), d.calculate)
	return d
}

func (d *DifferencePercentage) calculate(i int) num.Num {
	value := d.ind.Value(i)
	if !d.anchored {
		d.lastNotification = value
		d.anchored = true
		return num.Undefined()
	}
	changePercentage := value.Div(d.lastNotification).Mul(num.Hundred()).Sub(num.Hundred())
	if changePercentage.Abs().GtEq(d.threshold) {
		d.lastNotification = value
	}
	return changePercentage
}
