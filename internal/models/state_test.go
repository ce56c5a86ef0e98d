package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStateLegacySpellings(t *testing.T) {
	cases := map[string]State{
		"pending":   StatePending,
		"pendiente": StatePending,
		"paid":      StatePaid,
		"pagado":    StatePaid,
		"overdue":   StateOverdue,
		"atraso":    StateOverdue,
		"atrasado":  StateOverdue,
		"rejected":  StateRejected,
		"rechazado": StateRejected,
	}

	for in, want := range cases {
		got, err := ParseState(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseStateUnknown(t *testing.T) {
	_, err := ParseState("cancelled")
	assert.Error(t, err)

	_, err = ParseState("")
	assert.Error(t, err)
}

func TestStateValid(t *testing.T) {
	for _, s := range States {
		assert.True(t, s.Valid())
	}
	assert.False(t, State("atraso").Valid(), "legacy spellings are wire-only")
}
