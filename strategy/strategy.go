// Package strategy composes indicator conditions into entry and exit
// rules and pairs them as named strategies.
package strategy

import (
	"fmt"

	"github.com/quantarc/strake/trading"
)

// Strategy pairs an entry rule with an exit rule. Indices below
// UnstableBars satisfy neither, which keeps warm-up artifacts of
// indicators like EMA or SAR from triggering trades.
type Strategy struct {
	name         string
	entry        Rule
	exit         Rule
	unstableBars int
}

// New builds a strategy with no unstable period.
func New(name string, entry, exit Rule) *Strategy {
	return &Strategy{name: name, entry: entry, exit: exit}
}

// Name returns the strategy name.
func (s *Strategy) Name() string { return s.name }

// Entry returns the entry rule.
func (s *Strategy) Entry() Rule { return s.entry }

// Exit returns the exit rule.
func (s *Strategy) Exit() Rule { return s.exit }

// UnstableBars returns the number of leading bars that trigger nothing.
func (s *Strategy) UnstableBars() int { return s.unstableBars }

// SetUnstableBars sets the number of leading bars that trigger nothing.
func (s *Strategy) SetUnstableBars(n int) { s.unstableBars = n }

// IsUnstableAt reports whether the index is inside the warm-up period.
func (s *Strategy) IsUnstableAt(index int) bool { return index < s.unstableBars }

// ShouldEnter reports whether the entry rule fires at the index.
func (s *Strategy) ShouldEnter(index int, record *trading.Record) bool {
	return !s.IsUnstableAt(index) && s.entry.Satisfied(index, record)
}

// ShouldExit reports whether the exit rule fires at the index.
func (s *Strategy) ShouldExit(index int, record *trading.Record) bool {
	return !s.IsUnstableAt(index) && s.exit.Satisfied(index, record)
}

// And combines two strategies, entering and exiting only when both
// agree. The longer warm-up period wins.
func (s *Strategy) And(other *Strategy) *Strategy {
	combined := New(fmt.Sprintf("and(%s,%s)", s.name, other.name), And(s.entry, other.entry), And(s.exit, other.exit))
	combined.unstableBars = max(s.unstableBars, other.unstableBars)
	return combined
}

// Or combines two strategies, acting when either would.
func (s *Strategy) Or(other *Strategy) *Strategy {
	combined := New(fmt.Sprintf("or(%s,%s)", s.name, other.name), Or(s.entry, other.entry), Or(s.exit, other.exit))
	combined.unstableBars = max(s.unstableBars, other.unstableBars)
	return combined
}

// Opposite swaps the entry and exit rules.
func (s *Strategy) Opposite() *Strategy {
	combined := New(fmt.Sprintf("opposite(%s)", s.name), s.exit, s.entry)
	combined.unstableBars = s.unstableBars
	return combined
}
