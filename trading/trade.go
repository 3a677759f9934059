// Package trading models the trade and position lifecycle of a strategy
// run: single trades, entry/exit position pairs and the record that
// accumulates them, together with the cost models applied to each.
package trading

import (
	"fmt"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

// TradeType represents the direction of a trade.
type TradeType string

const (
	// Buy represents a buy trade.
	Buy TradeType = "BUY"
	// Sell represents a sell trade.
	Sell TradeType = "SELL"
)

// Complement returns the opposite trade type.
func (t TradeType) Complement() TradeType {
	if t == Buy {
		return Sell
	}
	return Buy
}

// Trade is a single buy or sell operation at a bar index. The net price
// folds the transaction cost into the raw price: costs raise the
// effective price of a buy and lower the effective price of a sell.
type Trade struct {
	tradeType TradeType
	index     int
	price     num.Num
	netPrice  num.Num
	amount    num.Num
	cost      num.Num
	costModel CostModel
}

// NewTrade builds a cost-free trade of the given type at index.
func NewTrade(index int, tradeType TradeType, price, amount num.Num) *Trade {
	return NewTradeWithCost(index, tradeType, price, amount, ZeroCostModel{})
}

// NewTradeWithCost builds a trade whose transaction cost is computed at
// construction by model.
func NewTradeWithCost(index int, tradeType TradeType, price, amount num.Num, model CostModel) *Trade {
	t := &Trade{
		tradeType: tradeType,
		index:     index,
		price:     price,
		amount:    amount,
		costModel: model,
	}
	t.cost = model.Calculate(price, amount)
	costPerAsset := t.cost.Div(amount)
	if tradeType == Buy {
		t.netPrice = price.Add(costPerAsset)
	} else {
		t.netPrice = price.Sub(costPerAsset)
	}
	return t
}

// BuyAt builds a cost-free single-unit buy at the close price of bar
// index.
func BuyAt(index int, s *bars.Series) *Trade {
	return NewTrade(index, Buy, s.Bar(index).Close, s.One())
}

// SellAt builds a cost-free single-unit sell at the close price of bar
// index.
func SellAt(index int, s *bars.Series) *Trade {
	return NewTrade(index, Sell, s.Bar(index).Close, s.One())
}

// Type returns the trade direction.
func (t *Trade) Type() TradeType { return t.tradeType }

// Index returns the bar index the trade was executed at.
func (t *Trade) Index() int { return t.index }

// Price returns the raw price per asset, before costs.
func (t *Trade) Price() num.Num { return t.price }

// NetPrice returns the effective price per asset with the transaction
// cost folded in.
func (t *Trade) NetPrice() num.Num { return t.netPrice }

// Amount returns the traded amount.
func (t *Trade) Amount() num.Num { return t.amount }

// Cost returns the transaction cost charged for this trade.
func (t *Trade) Cost() num.Num { return t.cost }

// CostModel returns the model the trade cost was computed with.
func (t *Trade) CostModel() CostModel { return t.costModel }

// Value returns price times amount, before costs.
func (t *Trade) Value() num.Num { return t.price.Mul(t.amount) }

// IsBuy reports whether this is a buy trade.
func (t *Trade) IsBuy() bool { return t.tradeType == Buy }

// IsSell reports whether this is a sell trade.
func (t *Trade) IsSell() bool { return t.tradeType == Sell }

func (t *Trade) String() string {
	return fmt.Sprintf("Trade{%s index=%d price=%s amount=%s}", t.tradeType, t.index, t.price, t.amount)
}
