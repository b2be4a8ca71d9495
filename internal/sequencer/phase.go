// Package sequencer drives an interval workout through its phases.
package sequencer

import "fmt"

// Kind identifies a workout phase.
type Kind int

const (
	Warmup Kind = iota
	Active
	Rest
	Finished
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Warmup:
		return "warmup"
	case Active:
		return "active"
	case Rest:
		return "rest"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Phase is a point in the workout. Round is 1-based for Active and Rest
// and zero otherwise. Rest(r) is the rest after round r.
type Phase struct {
	Kind  Kind
	Round int
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	if p.Kind == Active || p.Kind == Rest {
		return fmt.Sprintf("%s(%d)", p.Kind, p.Round)
	}
	return p.Kind.String()
}

// EventType identifies an observable sequencer event.
type EventType int

const (
	// PhaseChanged fires on every transition, including zero-length phases.
	PhaseChanged EventType = iota
	// Completed fires once per session, when Finished is entered.
	Completed
)

// Event describes a transition.
type Event struct {
	Type    EventType
	From    Phase
	To      Phase
	Seconds int
	Skipped bool
}
