package trading

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// Record accumulates the positions of a strategy run. It always holds one
// current position: operating on the record advances that position
// through its lifecycle and, when it closes, archives it and starts a
// fresh one, so entries and exits strictly alternate.
type Record struct {
	id           string
	name         string
	startingType TradeType
	transaction  CostModel
	holding      CostModel

	positions []*Position
	current   *Position

	trades  []*Trade
	entries []*Trade
	exits   []*Trade

	startIndex int
	endIndex   int
	bounded    bool
}

// NewRecord builds an empty cost-free record entered by trades of
// startingType.
func NewRecord(startingType TradeType) *Record {
	return NewRecordWithCost(startingType, ZeroCostModel{}, ZeroCostModel{})
}

// NewRecordWithCost builds an empty record whose positions are costed by
// the given models.
func NewRecordWithCost(startingType TradeType, transaction, holding CostModel) *Record {
	return &Record{
		id:           uuid.NewString(),
		startingType: startingType,
		transaction:  transaction,
		holding:      holding,
		current:      NewPositionWithCost(startingType, transaction, holding),
	}
}

// NewWindowedRecord builds a record that covers only the [start, end]
// slice of its series, for runs over a sub-range.
func NewWindowedRecord(startingType TradeType, transaction, holding CostModel, start, end int) *Record {
	r := NewRecordWithCost(startingType, transaction, holding)
	r.startIndex = start
	r.endIndex = end
	r.bounded = true
	return r
}

// ID returns the unique identifier assigned at construction.
func (r *Record) ID() string { return r.id }

// Name returns the record name, usually the strategy that produced it.
func (r *Record) Name() string { return r.name }

// SetName names the record.
func (r *Record) SetName(name string) { r.name = name }

// StartingType returns the trade type that opens positions.
func (r *Record) StartingType() TradeType { return r.startingType }

// Operate places a trade at index, entering the current position or
// exiting it. Closing trades archive the position and start a fresh one.
func (r *Record) Operate(index int, price, amount num.Num) error {
	trade, err := r.current.Operate(index, price, amount)
	if err != nil {
		return fmt.Errorf("operating at index %d: %w", index, err)
	}
	r.trades = append(r.trades, trade)
	if trade.Type() == r.startingType {
		r.entries = append(r.entries, trade)
	} else {
		r.exits = append(r.exits, trade)
	}
	if r.current.IsClosed() {
		r.positions = append(r.positions, r.current)
		r.current = NewPositionWithCost(r.startingType, r.transaction, r.holding)
	}
	return nil
}

// Enter operates only when the current position is NEW and reports
// whether it did.
func (r *Record) Enter(index int, price, amount num.Num) (bool, error) {
	if !r.current.IsNew() {
		return false, nil
	}
	if err := r.Operate(index, price, amount); err != nil {
		return false, err
	}
	return true, nil
}

// Exit operates only when the current position is OPENED and reports
// whether it did.
func (r *Record) Exit(index int, price, amount num.Num) (bool, error) {
	if !r.current.IsOpened() {
		return false, nil
	}
	if err := r.Operate(index, price, amount); err != nil {
		return false, err
	}
	return true, nil
}

// IsClosed reports whether no position is currently open.
func (r *Record) IsClosed() bool { return !r.current.IsOpened() }

// CurrentPosition returns the position being built, never nil.
func (r *Record) CurrentPosition() *Position { return r.current }

// Positions returns the closed positions in entry order.
func (r *Record) Positions() []*Position { return r.positions }

// PositionCount returns the number of closed positions.
func (r *Record) PositionCount() int { return len(r.positions) }

// LastPosition returns the most recently closed position, nil if none.
func (r *Record) LastPosition() *Position {
	if len(r.positions) == 0 {
		return nil
	}
	return r.positions[len(r.positions)-1]
}

// Trades returns every trade placed, in order.
func (r *Record) Trades() []*Trade { return r.trades }

// LastTrade returns the most recent trade, nil if none.
func (r *Record) LastTrade() *Trade {
	if len(r.trades) == 0 {
		return nil
	}
	return r.trades[len(r.trades)-1]
}

// LastTradeOfType returns the most recent trade of the given type, nil if
// none.
func (r *Record) LastTradeOfType(tradeType TradeType) *Trade {
	for i := len(r.trades) - 1; i >= 0; i-- {
		if r.trades[i].Type() == tradeType {
			return r.trades[i]
		}
	}
	return nil
}

// LastEntry returns the most recent entry trade, nil if none.
func (r *Record) LastEntry() *Trade {
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

// LastExit returns the most recent exit trade, nil if none.
func (r *Record) LastExit() *Trade {
	if len(r.exits) == 0 {
		return nil
	}
	return r.exits[len(r.exits)-1]
}

// StartIndex returns the first series index this record covers.
func (r *Record) StartIndex(s *bars.Series) int {
	if !r.bounded {
		return s.BeginIndex()
	}
	if begin := s.BeginIndex(); r.startIndex < begin {
		return begin
	}
	return r.startIndex
}

// EndIndex returns the last series index this record covers.
func (r *Record) EndIndex(s *bars.Series) int {
	if !r.bounded {
		return s.EndIndex()
	}
	if end := s.EndIndex(); r.endIndex > end {
		return end
	}
	return r.endIndex
}
