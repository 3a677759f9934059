package strategy

import (
	"github.com/quantarc/strake/trading"
)

// Rule answers whether a trading condition holds at a bar index. The
// record carries the open position and trade history for rules that
// depend on them; stateless rules ignore it. A rule must not look past
// the given index.
type Rule interface {
	Satisfied(index int, record *trading.Record) bool
}

// BoolRule is a constant rule, mostly useful as a neutral element when
// composing.
type BoolRule bool

func (r BoolRule) Satisfied(int, *trading.Record) bool { return bool(r) }

// And satisfies when both rules do.
func And(a, b Rule) Rule { return andRule{a, b} }

type andRule struct{ a, b Rule }

func (r andRule) Satisfied(index int, record *trading.Record) bool {
	return r.a.Satisfied(index, record) && r.b.Satisfied(index, record)
}

// Or satisfies when either rule does.
func Or(a, b Rule) Rule { return orRule{a, b} }

type orRule struct{ a, b Rule }

func (r orRule) Satisfied(index int, record *trading.Record) bool {
	return r.a.Satisfied(index, record) || r.b.Satisfied(index, record)
}

// Xor satisfies when exactly one rule does.
func Xor(a, b Rule) Rule { return xorRule{a, b} }

type xorRule struct{ a, b Rule }

func (r xorRule) Satisfied(index int, record *trading.Record) bool {
	return r.a.Satisfied(index, record) != r.b.Satisfied(index, record)
}

// Not inverts a rule.
func Not(r Rule) Rule { return notRule{r} }

type notRule struct{ r Rule }

func (r notRule) Satisfied(index int, record *trading.Record) bool {
	return !r.r.Satisfied(index, record)
}
