package trading

import "github.com/quantarc/strake/num"

// CostModel prices the friction of trading: per-trade transaction fees
// or per-period holding fees. Implementations must be comparable through
// Equal so that positions can verify their trades were costed
// consistently.
type CostModel interface {
	// Calculate returns the cost of a single trade of amount at price.
	Calculate(price, amount num.Num) num.Num
	// CalculatePosition returns the accumulated cost of a position up to
	// finalIndex. For closed positions finalIndex is ignored in favor of
	// the exit index.
	CalculatePosition(p *Position, finalIndex int) num.Num
	// Equal reports whether other prices trades identically.
	Equal(other CostModel) bool
}

// ZeroCostModel is the free-trading model.
type ZeroCostModel struct{}

func (ZeroCostModel) Calculate(price, amount num.Num) num.Num { return num.Zero() }

func (ZeroCostModel) CalculatePosition(p *Position, finalIndex int) num.Num { return num.Zero() }

func (ZeroCostModel) Equal(other CostModel) bool {
	_, ok := other.(ZeroCostModel)
	return ok
}

// LinearTransactionCostModel charges a fee proportional to the traded
// value: fee * price * amount per trade.
type LinearTransactionCostModel struct {
	fee num.Num
}

// NewLinearTransactionCostModel builds a transaction cost model with the
// given fee ratio, e.g. 0.005 for 0.5% per trade.
func NewLinearTransactionCostModel(feeRatio float64) LinearTransactionCostModel {
	return LinearTransactionCostModel{fee: num.New(feeRatio)}
}

func (m LinearTransactionCostModel) Calculate(price, amount num.Num) num.Num {
	return m.fee.Mul(price).Mul(amount)
}

func (m LinearTransactionCostModel) CalculatePosition(p *Position, finalIndex int) num.Num {
	cost := num.Zero()
	if entry := p.Entry(); entry != nil {
		cost = entry.Cost()
		if exit := p.Exit(); exit != nil {
			cost = cost.Add(exit.Cost())
		}
	}
	return cost
}

func (m LinearTransactionCostModel) Equal(other CostModel) bool {
	o, ok := other.(LinearTransactionCostModel)
	return ok && o.fee.Eq(m.fee)
}

// LinearBorrowingCostModel charges a fee per holding period on short
// positions: entry value * periods * fee. Long positions and individual
// trades are free.
type LinearBorrowingCostModel struct {
	feePerPeriod num.Num
}

// NewLinearBorrowingCostModel builds a borrowing cost model with the
// given fee ratio per bar held.
func NewLinearBorrowingCostModel(feePerPeriod float64) LinearBorrowingCostModel {
	return LinearBorrowingCostModel{feePerPeriod: num.New(feePerPeriod)}
}

func (m LinearBorrowingCostModel) Calculate(price, amount num.Num) num.Num {
	return num.Zero()
}

func (m LinearBorrowingCostModel) CalculatePosition(p *Position, finalIndex int) num.Num {
	entry := p.Entry()
	if entry == nil || entry.Type() != Sell {
		return num.Zero()
	}
	periods := 0
	if exit := p.Exit(); exit != nil {
		periods = exit.Index() - entry.Index()
	} else {
		periods = finalIndex - entry.Index()
	}
	return entry.Value().Mul(num.FromInt(int64(periods))).Mul(m.feePerPeriod)
}

func (m LinearBorrowingCostModel) Equal(other CostModel) bool {
	o, ok := other.(LinearBorrowingCostModel)
	return ok && o.feePerPeriod.Eq(m.feePerPeriod)
}
