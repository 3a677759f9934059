package num

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Num
		want string
	}{
		{"add", New(1.5).Add(New(2.5)), "4"},
		{"sub", New(1).Sub(New(2.5)), "-1.5"},
		{"mul", New(1.1).Mul(New(3)), "3.3"},
		{"div", New(10).Div(New(4)), "2.5"},
		{"div repeating", New(1).Div(New(3)), "0.3333333333333333"},
		{"pow", New(1.1).Pow(2), "1.21"},
		{"abs negative", New(-3.2).Abs(), "3.2"},
		{"neg", New(3.2).Neg(), "-3.2"},
		{"min", New(2).Min(New(3)), "2"},
		{"max", New(2).Max(New(3)), "3"},
		{"floor", New(2.9).Floor(), "2"},
		{"sqrt", New(16).Sqrt(), "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.String(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUndefinedPropagation(t *testing.T) {
	nan := Undefined()
	tests := []struct {
		name string
		got  Num
	}{
		{"add", nan.Add(One())},
		{"add rhs", One().Add(nan)},
		{"sub", nan.Sub(One())},
		{"mul", One().Mul(nan)},
		{"div", nan.Div(One())},
		{"div by zero", One().Div(Zero())},
		{"sqrt negative", New(-1).Sqrt()},
		{"log zero", Zero().Log()},
		{"log negative", New(-2).Log()},
		{"new from nan", New(math.NaN())},
		{"new from inf", New(math.Inf(1))},
		{"neg", nan.Neg()},
		{"min", nan.Min(One())},
		{"max", One().Max(nan)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.IsUndefined() {
				t.Errorf("got %v, want undefined", tt.got)
			}
		})
	}
}

func TestPredicatesOnUndefined(t *testing.T) {
	nan := Undefined()
	if nan.Eq(nan) {
		t.Error("Eq on two undefined values = true, want false")
	}
	if nan.Gt(Zero()) || nan.Lt(Zero()) || nan.GtEq(Zero()) || nan.LtEq(Zero()) {
		t.Error("ordering predicate on undefined = true, want false")
	}
	if nan.IsZero() || nan.IsPositive() || nan.IsNegative() {
		t.Error("sign predicate on undefined = true, want false")
	}
}

func TestComparisons(t *testing.T) {
	a, b := New(1.5), New(2)
	if !a.Lt(b) || !b.Gt(a) || !a.LtEq(a) || !a.GtEq(a) || !a.Eq(New(1.5)) {
		t.Errorf("comparison mismatch for %v and %v", a, b)
	}
	if got := a.Cmp(b); got != -1 {
		t.Errorf("Cmp(%v, %v) = %d, want -1", a, b, got)
	}
}

func TestCmpPanicsOnUndefined(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Cmp on undefined did not panic")
		}
	}()
	Undefined().Cmp(One())
}

func TestConversions(t *testing.T) {
	n, err := FromString("123.45")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if got := n.Float64(); got != 123.45 {
		t.Errorf("Float64() = %v, want 123.45", got)
	}
	if _, err := FromString("not a number"); err == nil {
		t.Error("FromString(garbage) returned nil error")
	}
	if !math.IsNaN(Undefined().Float64()) {
		t.Error("Undefined().Float64() is not NaN")
	}
	if got := Undefined().String(); got != "NaN" {
		t.Errorf("Undefined().String() = %q, want %q", got, "NaN")
	}
	if got := FromInt(42).String(); got != "42" {
		t.Errorf("FromInt(42).String() = %q, want %q", got, "42")
	}
}

func TestLog(t *testing.T) {
	got := New(math.E).Log().Float64()
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("Log(e) = %v, want 1", got)
	}
}

func TestZeroValueIsDefinedZero(t *testing.T) {
	var n Num
	if n.IsUndefined() || !n.IsZero() {
		t.Errorf("zero value = %v, want defined 0", n)
	}
}
