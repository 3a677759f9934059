package trading

import (
	"testing"
	"time"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

var testOrigin = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testSeries(t *testing.T, closes ...float64) *bars.Series {
	t.Helper()
	s := bars.NewSeries("test")
	for i, c := range closes {
		v := num.New(c)
		b := bars.NewBarFrom(time.Minute, testOrigin.Add(time.Duration(i+1)*time.Minute), v, v, v, v, num.One())
		if err := s.AddBar(b); err != nil {
			t.Fatalf("AddBar(%d): %v", i, err)
		}
	}
	return s
}

func TestTradeTypeComplement(t *testing.T) {
	if got := Buy.Complement(); got != Sell {
		t.Errorf("Buy.Complement() = %v, want %v", got, Sell)
	}
	if got := Sell.Complement(); got != Buy {
		t.Errorf("Sell.Complement() = %v, want %v", got, Buy)
	}
}

func TestTradeNetPrice(t *testing.T) {
	model := NewLinearTransactionCostModel(0.01)

	tests := []struct {
		name     string
		typ      TradeType
		wantNet  float64
		wantCost float64
	}{
		{"buy pays the fee on top", Buy, 101, 2},
		{"sell pays the fee out of proceeds", Sell, 99, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTradeWithCost(0, tt.typ, num.New(100), num.Two(), model)
			if got := tr.Cost(); !got.Eq(num.New(tt.wantCost)) {
				t.Errorf("Cost() = %v, want %v", got, tt.wantCost)
			}
			if got := tr.NetPrice(); !got.Eq(num.New(tt.wantNet)) {
				t.Errorf("NetPrice() = %v, want %v", got, tt.wantNet)
			}
			if got := tr.Price(); !got.Eq(num.New(100)) {
				t.Errorf("Price() = %v, want 100", got)
			}
		})
	}
}

func TestTradeValue(t *testing.T) {
	tr := NewTrade(3, Buy, num.New(50), num.New(4))
	if got := tr.Value(); !got.Eq(num.New(200)) {
		t.Errorf("Value() = %v, want 200", got)
	}
	if tr.Index() != 3 || !tr.IsBuy() || tr.IsSell() {
		t.Errorf("unexpected trade identity: %v", tr)
	}
}

func TestBuyAtSellAt(t *testing.T) {
	s := testSeries(t, 10, 20, 30)

	buy := BuyAt(1, s)
	if !buy.IsBuy() || !buy.Price().Eq(num.New(20)) || !buy.Amount().Eq(num.One()) {
		t.Errorf("BuyAt(1) = %v, want unit buy at 20", buy)
	}
	sell := SellAt(2, s)
	if !sell.IsSell() || !sell.Price().Eq(num.New(30)) {
		t.Errorf("SellAt(2) = %v, want unit sell at 30", sell)
	}
}

func TestCostModelEquality(t *testing.T) {
	tests := []struct {
		name string
		a, b CostModel
		want bool
	}{
		{"zero vs zero", ZeroCostModel{}, ZeroCostModel{}, true},
		{"zero vs linear", ZeroCostModel{}, NewLinearTransactionCostModel(0), false},
		{"same fee", NewLinearTransactionCostModel(0.01), NewLinearTransactionCostModel(0.01), true},
		{"different fee", NewLinearTransactionCostModel(0.01), NewLinearTransactionCostModel(0.02), false},
		{"borrowing same", NewLinearBorrowingCostModel(0.005), NewLinearBorrowingCostModel(0.005), true},
		{"borrowing vs transaction", NewLinearBorrowingCostModel(0.01), NewLinearTransactionCostModel(0.01), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
