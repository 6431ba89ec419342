package rules

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mitchelldurbincs/HexTactics/internal/game/ability"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/status"
)

// BehaviorKind is how the controller offers an ability
type BehaviorKind int

const (
	Passive BehaviorKind = iota
	SpecialMove
	Command
	ToggleCommand
)

func (k BehaviorKind) String() string {
	switch k {
	case Passive:
		return "Passive"
	case SpecialMove:
		return "Special"
	case Command:
		return "Command"
	case ToggleCommand:
		return "ToggleCommand"
	default:
		return fmt.Sprintf("BehaviorKind(%d)", int(k))
	}
}

// IsCommand reports whether the ability is used through SelectCommand
func (k BehaviorKind) IsCommand() bool {
	return k == Command || k == ToggleCommand
}

// Context is what a behavior sees of the match
type Context struct {
	Unit  *Unit
	Slot  int
	State *ability.State
	Board *core.Board
	Units UnitLookup
	From  core.Hex

	// HasActed reports whether a unit already acted this turn
	HasActed func(core.UnitID) bool
}

// Acted is HasActed with a nil check
func (c *Context) Acted(id core.UnitID) bool {
	return c.HasActed != nil && c.HasActed(id)
}

// UnitAt returns the unit standing on h
func (c *Context) UnitAt(h core.Hex) (*Unit, bool) {
	id, ok := c.Board.Occupant(h)
	if !ok {
		return nil, false
	}
	return c.Units.Unit(id)
}

// CanStrike reports whether the context unit may attack the unit on h
func (c *Context) CanStrike(h core.Hex) bool {
	target, ok := c.UnitAt(h)
	if !ok {
		return false
	}
	return CanAttack(c.Unit, target)
}

// Candidate is a move a behavior proposes. The generator applies the same
// board checks as for plain moves before accepting it.
type Candidate struct {
	Dest          core.Hex
	Kind          MoveKind
	Direction     core.Direction
	AttackTargets []core.Hex
}

// Applier performs board mutations on behalf of command behaviors
type Applier interface {
	// Push moves a unit one hex in dir, pushing whatever stands there first.
	// Units pushed off the board are knocked out.
	Push(id core.UnitID, dir core.Direction) error
	ApplyStatus(target core.UnitID, kind status.Kind, duration int, source core.UnitID)
	RemoveStatus(target core.UnitID, kind status.Kind, source core.UnitID) bool
	// Queue grants id an extra action this turn
	Queue(id core.UnitID) bool
	KnockOut(id core.UnitID)
}

// Behavior implements one ability
type Behavior interface {
	Name() string
	Kind() BehaviorKind
	// Targeted commands need ExecuteCommand to name a hex from Targets
	Targeted() bool
	Available(ctx *Context) bool
	ContributeMoves(ctx *Context) []Candidate
	Targets(ctx *Context) []core.Hex
	Activate(ctx *Context, target core.Hex, fx Applier) error
}

// BehaviorFuncs adapts optional hook functions into a Behavior.
// Nil hooks give neutral answers.
type BehaviorFuncs struct {
	ID       string
	Type     BehaviorKind
	Aimed    bool
	Usable   func(*Context) bool
	Moves    func(*Context) []Candidate
	TargetFn func(*Context) []core.Hex
	Run      func(*Context, core.Hex, Applier) error
}

func (b BehaviorFuncs) Name() string { return b.ID }
func (b BehaviorFuncs) Kind() BehaviorKind { return b.Type }
func (b BehaviorFuncs) Targeted() bool { return b.Aimed }

// Available checks the ability state and the unit's status before the hook
func (b BehaviorFuncs) Available(ctx *Context) bool {
	if ctx == nil || ctx.State == nil || b.Type == Passive {
		return false
	}
	if b.Type == ToggleCommand && ctx.State.Toggled {
		return true
	}
	if !ctx.State.IsReady() || !ctx.Unit.Status.CanUseAbility() {
		return false
	}
	if b.Aimed && len(b.Targets(ctx)) == 0 {
		return false
	}
	if b.Usable == nil {
		return true
	}
	return b.Usable(ctx)
}

func (b BehaviorFuncs) ContributeMoves(ctx *Context) []Candidate {
	if b.Moves == nil {
		return nil
	}
	return b.Moves(ctx)
}

func (b BehaviorFuncs) Targets(ctx *Context) []core.Hex {
	if b.TargetFn == nil {
		return nil
	}
	return b.TargetFn(ctx)
}

func (b BehaviorFuncs) Activate(ctx *Context, target core.Hex, fx Applier) error {
	if b.Run == nil {
		return nil
	}
	return b.Run(ctx, target, fx)
}

// BehaviorFactory constructs a Behavior
type BehaviorFactory func() Behavior

var (
	registryMu sync.RWMutex
	registry   = make(map[string]BehaviorFactory)

	// ErrDuplicateBehavior indicates a name already has a factory
	ErrDuplicateBehavior = errors.New("behaviors: already registered")
	// ErrUnknownBehavior indicates no factory was registered for the name
	ErrUnknownBehavior = errors.New("behaviors: not registered")
	// ErrNilBehaviorFactory indicates a registration with a nil constructor
	ErrNilBehaviorFactory = errors.New("behaviors: nil factory")
)

// RegisterBehavior associates name with a factory. Safe for concurrent use.
func RegisterBehavior(name string, ctor BehaviorFactory) error {
	if ctor == nil {
		return ErrNilBehaviorFactory
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBehavior, name)
	}
	registry[name] = ctor
	return nil
}

// NewBehavior instantiates the behavior registered under name
func NewBehavior(name string) (Behavior, error) {
	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBehavior, name)
	}
	return ctor(), nil
}

// RegisteredBehaviors lists every registered name, sorted
func RegisteredBehaviors() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CanAttack composes attacker and target capabilities
func CanAttack(attacker, target *Unit) bool {
	return attacker != nil && target != nil &&
		attacker.Team != target.Team &&
		attacker.Status.CanAttack() &&
		target.Status.CanBeAttacked()
}

// CanAssist composes mover and ally capabilities
func CanAssist(mover, ally *Unit) bool {
	return mover != nil && ally != nil &&
		mover.ID != ally.ID &&
		mover.Team == ally.Team &&
		mover.Status.CanAssist()
}

// CanAffect reports whether an ability of source may target target
func CanAffect(source, target *Unit) bool {
	return source != nil && target != nil && target.Status.CanBeAffectedByAbility()
}
