package states

import "fmt"

// Phase is the turn controller's selection phase
type Phase int

const (
	// PhaseNoSelection - waiting for the current player to pick a unit
	PhaseNoSelection Phase = iota

	// PhaseUnitSelected - a unit is picked and its move tree is fresh
	PhaseUnitSelected

	// PhaseMoveSelected - a move node is picked, continuations are revealed
	PhaseMoveSelected

	// PhaseCommandSelected - an ability command is picked, awaiting a target
	PhaseCommandSelected

	// PhaseAnimating - a committed action's effects are being presented
	PhaseAnimating

	// PhaseGameOver - the match has a result
	PhaseGameOver
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case PhaseNoSelection:
		return "NoSelection"
	case PhaseUnitSelected:
		return "UnitSelected"
	case PhaseMoveSelected:
		return "MoveSelected"
	case PhaseCommandSelected:
		return "CommandSelected"
	case PhaseAnimating:
		return "Animating"
	case PhaseGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p Phase) IsTerminal() bool {
	return p == PhaseGameOver
}

// AcceptsInput returns true if selection input is processed in this phase
func (p Phase) AcceptsInput() bool {
	return p != PhaseAnimating && p != PhaseGameOver
}

// Cancellable returns true if a selection can still be rolled back
func (p Phase) Cancellable() bool {
	return p == PhaseUnitSelected || p == PhaseMoveSelected || p == PhaseCommandSelected
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p Phase) AllowedTransitions() []Phase {
	switch p {
	case PhaseNoSelection:
		return []Phase{PhaseUnitSelected, PhaseGameOver}
	case PhaseUnitSelected:
		return []Phase{PhaseNoSelection, PhaseUnitSelected, PhaseMoveSelected, PhaseCommandSelected}
	case PhaseMoveSelected:
		return []Phase{PhaseNoSelection, PhaseUnitSelected, PhaseMoveSelected, PhaseAnimating}
	case PhaseCommandSelected:
		return []Phase{PhaseNoSelection, PhaseUnitSelected, PhaseAnimating}
	case PhaseAnimating:
		return []Phase{PhaseNoSelection, PhaseUnitSelected, PhaseGameOver}
	default:
		return []Phase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
