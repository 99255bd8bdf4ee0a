package chapter

import (
	"errors"
	"fmt"
)

// Phase is where a player is within a chapter.
type Phase string

const (
	PhaseIntro    Phase = "intro"
	PhaseTutorial Phase = "tutorial"
	PhasePuzzle   Phase = "puzzle"
	PhaseSolved   Phase = "solved"
)

// Event moves a chapter from one phase to another.
type Event string

const (
	EventBegin        Event = "begin"
	EventSkipTutorial Event = "skip_tutorial"
	EventStartPuzzle  Event = "start_puzzle"
	EventSolve        Event = "solve"
	EventReplay       Event = "replay"
)

// ErrInvalidTransition is returned for an event the current phase does not accept.
var ErrInvalidTransition = errors.New("invalid phase transition")

var transitions = map[Phase]map[Event]Phase{
	PhaseIntro: {
		EventBegin:        PhaseTutorial,
		EventSkipTutorial: PhasePuzzle,
	},
	PhaseTutorial: {
		EventStartPuzzle: PhasePuzzle,
	},
	PhasePuzzle: {
		EventSolve: PhaseSolved,
	},
	PhaseSolved: {
		EventReplay: PhasePuzzle,
	},
}

// Transition returns the phase reached from `from` on ev.
func Transition(from Phase, ev Event) (Phase, error) {
	next, ok := transitions[from][ev]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, from, ev)
	}
	return next, nil
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	_, ok := transitions[p]
	return ok
}
