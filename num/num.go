// Package num provides the numeric value type shared by bar series,
// indicators and trading calculations.
package num

import (
	"math"

	"github.com/shopspring/decimal"
)

// Num is an immutable numeric value backed by a fixed-point decimal.
// The zero value is a defined 0.
//
// A Num can be undefined, the analogue of IEEE NaN: undefined values are
// produced by Undefined, by division by zero and by operations whose result
// has no numeric meaning (Sqrt of a negative, Log of a non-positive value).
// Undefined is absorbing: any arithmetic with an undefined operand yields
// an undefined result, and every ordering predicate on an undefined value
// reports false.
type Num struct {
	dec       decimal.Decimal
	undefined bool
}

// New returns the Num for f. NaN and infinite inputs map to Undefined.
func New(f float64) Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Undefined()
	}
	return Num{dec: decimal.NewFromFloat(f)}
}

// FromInt returns the Num for i.
func FromInt(i int64) Num {
	return Num{dec: decimal.NewFromInt(i)}
}

// FromString parses a decimal string such as "123.45".
func FromString(s string) (Num, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Undefined(), err
	}
	return Num{dec: d}, nil
}

// FromDecimal wraps an existing decimal value.
func FromDecimal(d decimal.Decimal) Num {
	return Num{dec: d}
}

// Undefined returns the undefined (NaN-like) value.
func Undefined() Num {
	return Num{undefined: true}
}

// Zero returns 0.
func Zero() Num { return Num{} }

// One returns 1.
func One() Num { return Num{dec: decimal.NewFromInt(1)} }

// Two returns 2.
func Two() Num { return Num{dec: decimal.NewFromInt(2)} }

// Hundred returns 100.
func Hundred() Num { return Num{dec: decimal.NewFromInt(100)} }

// IsUndefined reports whether n carries no numeric value.
func (n Num) IsUndefined() bool { return n.undefined }

// IsZero reports whether n is a defined 0.
func (n Num) IsZero() bool { return !n.undefined && n.dec.IsZero() }

// IsPositive reports whether n is defined and > 0.
func (n Num) IsPositive() bool { return !n.undefined && n.dec.IsPositive() }

// IsNegative reports whether n is defined and < 0.
func (n Num) IsNegative() bool { return !n.undefined && n.dec.IsNegative() }

// Add returns n + o.
func (n Num) Add(o Num) Num {
	if n.undefined || o.undefined {
		return Undefined()
	}
	return Num{dec: n.dec.Add(o.dec)}
}

// Sub returns n - o.
func (n Num) Sub(o Num) Num {
	if n.undefined || o.undefined {
		return Undefined()
	}
	return Num{dec: n.dec.Sub(o.dec)}
}

// Mul returns n * o.
func (n Num) Mul(o Num) Num {
	if n.undefined || o.undefined {
		return Undefined()
	}
	return Num{dec: n.dec.Mul(o.dec)}
}

// Div returns n / o. Division by zero yields Undefined.
func (n Num) Div(o Num) Num {
	if n.undefined || o.undefined || o.dec.IsZero() {
		return Undefined()
	}
	return Num{dec: n.dec.Div(o.dec)}
}

// Pow returns n raised to the integer power p.
func (n Num) Pow(p int) Num {
	if n.undefined {
		return Undefined()
	}
	return Num{dec: n.dec.Pow(decimal.NewFromInt(int64(p)))}
}

// Sqrt returns the square root of n. Negative input yields Undefined.
func (n Num) Sqrt() Num {
	if n.undefined || n.dec.IsNegative() {
		return Undefined()
	}
	f, _ := n.dec.Float64()
	return New(math.Sqrt(f))
}

// Log returns the natural logarithm of n. Non-positive input yields
// Undefined.
func (n Num) Log() Num {
	if n.undefined || !n.dec.IsPositive() {
		return Undefined()
	}
	f, _ := n.dec.Float64()
	return New(math.Log(f))
}

// Abs returns the absolute value of n.
func (n Num) Abs() Num {
	if n.undefined {
		return Undefined()
	}
	return Num{dec: n.dec.Abs()}
}

// Neg returns -n.
func (n Num) Neg() Num {
	if n.undefined {
		return Undefined()
	}
	return Num{dec: n.dec.Neg()}
}

// Min returns the smaller of n and o.
func (n Num) Min(o Num) Num {
	if n.undefined || o.undefined {
		return Undefined()
	}
	if n.dec.LessThanOrEqual(o.dec) {
		return n
	}
	return o
}

// Max returns the larger of n and o.
func (n Num) Max(o Num) Num {
	if n.undefined || o.undefined {
		return Undefined()
	}
	if n.dec.GreaterThanOrEqual(o.dec) {
		return n
	}
	return o
}

// Floor returns n rounded down to the nearest integer.
func (n Num) Floor() Num {
	if n.undefined {
		return Undefined()
	}
	return Num{dec: n.dec.Floor()}
}

// Eq reports whether n and o are equal. False when either is undefined.
func (n Num) Eq(o Num) bool {
	if n.undefined || o.undefined {
		return false
	}
	return n.dec.Equal(o.dec)
}

// Gt reports n > o. False when either is undefined.
func (n Num) Gt(o Num) bool {
	if n.undefined || o.undefined {
		return false
	}
	return n.dec.GreaterThan(o.dec)
}

// GtEq reports n >= o. False when either is undefined.
func (n Num) GtEq(o Num) bool {
	if n.undefined || o.undefined {
		return false
	}
	return n.dec.GreaterThanOrEqual(o.dec)
}

// Lt reports n < o. False when either is undefined.
func (n Num) Lt(o Num) bool {
	if n.undefined || o.undefined {
		return false
	}
	return n.dec.LessThan(o.dec)
}

// LtEq reports n <= o. False when either is undefined.
func (n Num) LtEq(o Num) bool {
	if n.undefined || o.undefined {
		return false
	}
	return n.dec.LessThanOrEqual(o.dec)
}

// Cmp compares n and o, returning -1, 0 or 1. It panics when either
// operand is undefined; callers ordering mixed values must filter first.
func (n Num) Cmp(o Num) int {
	if n.undefined || o.undefined {
		panic("num: Cmp on undefined value")
	}
	return n.dec.Cmp(o.dec)
}

// Float64 returns the nearest float64. Undefined maps to NaN.
func (n Num) Float64() float64 {
	if n.undefined {
		return math.NaN()
	}
	f, _ := n.dec.Float64()
	return f
}

// Decimal returns the backing decimal value. Undefined maps to decimal 0;
// check IsUndefined first when it matters.
func (n Num) Decimal() decimal.Decimal { return n.dec }

// String implements fmt.Stringer. Undefined renders as "NaN".
func (n Num) String() string {
	if n.undefined {
		return "NaN"
	}
	return n.dec.String()
}
