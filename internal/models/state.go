package models

import "fmt"

// State is the closed set of payment states. Legacy spellings from the old
// console ("pendiente", "atrasado", ...) are absorbed once, in ParseState;
// business logic only ever sees these four values.
type State string

const (
	StatePending  State = "pending"
	StatePaid     State = "paid"
	StateOverdue  State = "overdue"
	StateRejected State = "rejected"
)

// States lists all states in a stable order, used by aggregation and the
// report writer.
var States = []State{StatePending, StatePaid, StateOverdue, StateRejected}

// ParseState canonicalizes a wire state string, accepting the legacy
// Spanish spellings still emitted by older clients.
func ParseState(s string) (State, error) {
	switch s {
	case "pending", "pendiente":
		return StatePending, nil
	case "paid", "pagado":
		return StatePaid, nil
	case "overdue", "atraso", "atrasado":
		return StateOverdue, nil
	case "rejected", "rechazado":
		return StateRejected, nil
	default:
		return "", fmt.Errorf("unknown payment state %q", s)
	}
}

func (s State) Valid() bool {
	switch s {
	case StatePending, StatePaid, StateOverdue, StateRejected:
		return true
	}
	return false
}

func (s State) String() string { return string(s) }
