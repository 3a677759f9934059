package trading

import (
	"errors"
	"fmt"

	"github.com/quantarc/strake/num"
)

// Lifecycle errors.
var (
	// ErrNoBarsToOperate indicates an operation against an empty series.
	ErrNoBarsToOperate = errors.New("trading: no bars to operate on")
	// ErrExitBeforeEntry indicates an exit index before the entry index.
	ErrExitBeforeEntry = errors.New("trading: exit index precedes entry index")
	// ErrPositionClosed indicates an operation on an already closed position.
	ErrPositionClosed = errors.New("trading: position already closed")
	// ErrInconsistentCostModels indicates a position assembled from trades
	// carrying different transaction cost models.
	ErrInconsistentCostModels = errors.New("trading: trades and position carry different cost models")
)

// Position is a pair of trades: an entry and, once closed, an exit of
// the opposite type. A position starts NEW (no trades), becomes OPENED on
// the entry trade and CLOSED on the exit trade.
type Position struct {
	entry        *Trade
	exit         *Trade
	startingType TradeType
	transaction  CostModel
	holding      CostModel
}

// NewPosition builds an empty cost-free position entered by trades of
// startingType.
func NewPosition(startingType TradeType) *Position {
	return NewPositionWithCost(startingType, ZeroCostModel{}, ZeroCostModel{})
}

// NewPositionWithCost builds an empty position whose trades are costed by
// transaction and whose holding periods are costed by holding.
func NewPositionWithCost(startingType TradeType, transaction, holding CostModel) *Position {
	return &Position{
		startingType: startingType,
		transaction:  transaction,
		holding:      holding,
	}
}

// NewClosedPosition assembles a closed position from an existing entry
// and exit pair, adopting the entry's cost model and free holding.
func NewClosedPosition(entry, exit *Trade) (*Position, error) {
	return NewClosedPositionWithCost(entry, exit, entry.CostModel(), ZeroCostModel{})
}

// NewClosedPositionWithCost assembles a closed position from an existing
// entry and exit pair. Both trades must have been costed with the given
// transaction model.
func NewClosedPositionWithCost(entry, exit *Trade, transaction, holding CostModel) (*Position, error) {
	if entry.Type() == exit.Type() {
		return nil, fmt.Errorf("trading: entry and exit are both %s trades", entry.Type())
	}
	if exit.Index() < entry.Index() {
		return nil, ErrExitBeforeEntry
	}
	if !entry.CostModel().Equal(transaction) || !exit.CostModel().Equal(transaction) {
		return nil, ErrInconsistentCostModels
	}
	return &Position{
		entry:        entry,
		exit:         exit,
		startingType: entry.Type(),
		transaction:  transaction,
		holding:      holding,
	}, nil
}

// Entry returns the entry trade, nil while NEW.
func (p *Position) Entry() *Trade { return p.entry }

// Exit returns the exit trade, nil until CLOSED.
func (p *Position) Exit() *Trade { return p.exit }

// StartingType returns the trade type that opens this position.
func (p *Position) StartingType() TradeType { return p.startingType }

// TransactionCostModel returns the model applied to each trade.
func (p *Position) TransactionCostModel() CostModel { return p.transaction }

// HoldingCostModel returns the model applied to the holding period.
func (p *Position) HoldingCostModel() CostModel { return p.holding }

// IsNew reports whether no trade has been made yet.
func (p *Position) IsNew() bool { return p.entry == nil && p.exit == nil }

// IsOpened reports whether the position has been entered but not exited.
func (p *Position) IsOpened() bool { return p.entry != nil && p.exit == nil }

// IsClosed reports whether the position has been entered and exited.
func (p *Position) IsClosed() bool { return p.entry != nil && p.exit != nil }

// Operate advances the lifecycle: a NEW position enters with a trade of
// the starting type, an OPENED position exits with the complement type.
// Exiting at an index before the entry returns ErrExitBeforeEntry and
// operating on a CLOSED position returns ErrPositionClosed.
func (p *Position) Operate(index int, price, amount num.Num) (*Trade, error) {
	switch {
	case p.IsNew():
		p.entry = NewTradeWithCost(index, p.startingType, price, amount, p.transaction)
		return p.entry, nil
	case p.IsOpened():
		if index < p.entry.Index() {
			return nil, ErrExitBeforeEntry
		}
		p.exit = NewTradeWithCost(index, p.startingType.Complement(), price, amount, p.transaction)
		return p.exit, nil
	default:
		return nil, ErrPositionClosed
	}
}

// Profit returns the net profit of a CLOSED position: gross profit minus
// the position cost. NEW and OPENED positions report zero; use ProfitAt
// to mark an open position to market.
func (p *Position) Profit() num.Num {
	if !p.IsClosed() {
		return num.Zero()
	}
	return p.GrossProfitAt(p.exit.Price()).Sub(p.PositionCost(p.exit.Index()))
}

// ProfitAt returns the net profit against a hypothetical final price,
// charging costs up to finalIndex. For a CLOSED position the exit price
// and index take precedence over the arguments.
func (p *Position) ProfitAt(finalIndex int, price num.Num) num.Num {
	return p.GrossProfitAt(price).Sub(p.PositionCost(finalIndex))
}

// GrossProfit returns the profit before costs of a CLOSED position, zero
// otherwise.
func (p *Position) GrossProfit() num.Num {
	if !p.IsClosed() {
		return num.Zero()
	}
	return p.GrossProfitAt(p.exit.Price())
}

// GrossProfitAt returns the profit before costs against a hypothetical
// final price. Profits of a long position are losses of a short one.
func (p *Position) GrossProfitAt(price num.Num) num.Num {
	if p.IsNew() {
		return num.Zero()
	}
	var gross num.Num
	if p.IsClosed() {
		gross = p.exit.Value().Sub(p.entry.Value())
	} else {
		gross = p.entry.Amount().Mul(price).Sub(p.entry.Value())
	}
	if p.entry.IsSell() {
		gross = gross.Neg()
	}
	return gross
}

// GrossReturn returns the return ratio before costs of a CLOSED position,
// zero otherwise.
func (p *Position) GrossReturn() num.Num {
	if !p.IsClosed() {
		return num.Zero()
	}
	return p.GrossReturnAt(p.exit.Price())
}

// GrossReturnAt returns the return ratio before costs against a
// hypothetical final price: exit/entry for longs and 2 - exit/entry for
// shorts, so that a profitable position is always above 1.
func (p *Position) GrossReturnAt(price num.Num) num.Num {
	if p.IsNew() {
		return num.Zero()
	}
	ratio := price.Div(p.entry.Price())
	if p.entry.IsBuy() {
		return ratio
	}
	return ratio.Sub(num.One()).Neg().Add(num.One())
}

// PositionCost returns transaction plus holding costs accrued up to
// finalIndex.
func (p *Position) PositionCost(finalIndex int) num.Num {
	return p.transaction.CalculatePosition(p, finalIndex).Add(p.holding.CalculatePosition(p, finalIndex))
}

// TransactionCost returns the cost of the trades made so far.
func (p *Position) TransactionCost() num.Num {
	last := 0
	if p.IsClosed() {
		last = p.exit.Index()
	} else if p.IsOpened() {
		last = p.entry.Index()
	}
	return p.transaction.CalculatePosition(p, last)
}

// HoldingCost returns the holding cost accrued up to finalIndex.
func (p *Position) HoldingCost(finalIndex int) num.Num {
	return p.holding.CalculatePosition(p, finalIndex)
}

// HasProfit reports whether the closed position ended in profit.
func (p *Position) HasProfit() bool { return p.Profit().IsPositive() }

// HasLoss reports whether the closed position ended in loss.
func (p *Position) HasLoss() bool { return p.Profit().IsNegative() }

func (p *Position) String() string {
	return fmt.Sprintf("Position{entry=%v exit=%v}", p.entry, p.exit)
}
