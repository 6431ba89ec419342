package core

import "fmt"

// ActionType is the kind of input a player sends to the turn controller
type ActionType int

const (
	ActionSelectUnit ActionType = iota
	ActionSelectMove
	ActionSelectCommand
	ActionExecuteMove
	ActionExecuteCommand
	ActionCancel
	ActionEndTurn
)

func (t ActionType) String() string {
	switch t {
	case ActionSelectUnit:
		return "select unit"
	case ActionSelectMove:
		return "select move"
	case ActionSelectCommand:
		return "select command"
	case ActionExecuteMove:
		return "execute move"
	case ActionExecuteCommand:
		return "execute command"
	case ActionCancel:
		return "cancel"
	case ActionEndTurn:
		return "end turn"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}

// Action records one controller input for logging and error context
type Action struct {
	PlayerID int
	Type     ActionType
	Unit     UnitID
	Target   Hex
	HasHex   bool
	Slot     int
	Choice   int
}

// Describe returns a short human readable form, e.g. "select move to (1,-2)"
func (a *Action) Describe() string {
	switch a.Type {
	case ActionSelectUnit:
		return fmt.Sprintf("%s %d", a.Type, a.Unit)
	case ActionSelectMove:
		if a.Choice > 0 {
			return fmt.Sprintf("%s to %s (choice %d)", a.Type, a.Target, a.Choice)
		}
		return fmt.Sprintf("%s to %s", a.Type, a.Target)
	case ActionSelectCommand:
		return fmt.Sprintf("%s slot %d", a.Type, a.Slot)
	case ActionExecuteCommand:
		if a.HasHex {
			return fmt.Sprintf("%s at %s", a.Type, a.Target)
		}
		return a.Type.String()
	default:
		return a.Type.String()
	}
}
