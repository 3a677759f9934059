package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantarc/strake/bars"
	"github.com/quantarc/strake/num"
)

var testOrigin = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func closeSeries(t *testing.T, closes ...float64) *bars.Series {
	t.Helper()
	s := bars.NewSeries("test")
	for i, c := range closes {
		v := num.New(c)
		b := bars.NewBarFrom(time.Minute, testOrigin.Add(time.Duration(i+1)*time.Minute), v, v, v, v, num.One())
		require.NoError(t, s.AddBar(b), "AddBar(%d)", i)
	}
	return s
}

func TestBoolRule(t *testing.T) {
	assert.True(t, BoolRule(true).Satisfied(0, nil))
	assert.False(t, BoolRule(false).Satisfied(0, nil))
}

func TestCombinators(t *testing.T) {
	yes, no := BoolRule(true), BoolRule(false)

	tests := []struct {
		name string
		rule Rule
		want bool
	}{
		{"and both", And(yes, yes), true},
		{"and one", And(yes, no), false},
		{"or one", Or(no, yes), true},
		{"or none", Or(no, no), false},
		{"xor one", Xor(yes, no), true},
		{"xor both", Xor(yes, yes), false},
		{"not", Not(no), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Satisfied(0, nil))
		})
	}
}
