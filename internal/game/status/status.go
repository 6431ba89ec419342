// Package status implements the per-unit stack of status effects and the
// capability flags derived from it.
package status

import (
	"fmt"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Capability is one thing a unit may or may not currently do
type Capability int

const (
	CanMove Capability = iota
	CanBeMoved
	CanAttack
	CanBeAttacked
	CanUseAbility
	CanBeAffectedByAbility
	CanAssist

	numCapabilities
)

// Capabilities lists every capability in declaration order
var Capabilities = [numCapabilities]Capability{
	CanMove, CanBeMoved, CanAttack, CanBeAttacked, CanUseAbility, CanBeAffectedByAbility, CanAssist,
}

func (c Capability) String() string {
	switch c {
	case CanMove:
		return "can-move"
	case CanBeMoved:
		return "can-be-moved"
	case CanAttack:
		return "can-attack"
	case CanBeAttacked:
		return "can-be-attacked"
	case CanUseAbility:
		return "can-use-ability"
	case CanBeAffectedByAbility:
		return "can-be-affected-by-ability"
	case CanAssist:
		return "can-assist"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// Kind is a named status effect
type Kind int

const (
	Stunned Kind = iota + 1
	Rooted
	Disarmed
	Shielded
	Anchored
	Silenced
	Warded
	Pacified
	Hastened
)

type modifier struct {
	capability Capability
	delta      int // +1 disables, -1 grants
}

// kindModifiers maps a kind to the capability counters it touches
var kindModifiers = map[Kind][]modifier{
	Stunned:  {{CanMove, 1}, {CanAttack, 1}, {CanUseAbility, 1}},
	Rooted:   {{CanMove, 1}},
	Disarmed: {{CanAttack, 1}},
	Shielded: {{CanBeAttacked, 1}},
	Anchored: {{CanBeMoved, 1}},
	Silenced: {{CanUseAbility, 1}},
	Warded:   {{CanBeAffectedByAbility, 1}},
	Pacified: {{CanAssist, 1}},
	Hastened: {{CanMove, -1}},
}

var kindNames = map[Kind]string{
	Stunned:  "stunned",
	Rooted:   "rooted",
	Disarmed: "disarmed",
	Shielded: "shielded",
	Anchored: "anchored",
	Silenced: "silenced",
	Warded:   "warded",
	Pacified: "pacified",
	Hastened: "hastened",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a config name such as "stunned" to a Kind
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Affects returns the capabilities k modifies
func (k Kind) Affects() []Capability {
	mods := kindModifiers[k]
	out := make([]Capability, len(mods))
	for i, m := range mods {
		out[i] = m.capability
	}
	return out
}

// Effect is one applied instance. Remaining == 0 means it lasts until removed.
type Effect struct {
	Kind      Kind
	Remaining int
	Source    core.UnitID
}

// Stack is the multiset of effects on one unit. Capability counters are
// derived from it and never read negative.
type Stack struct {
	// Stacking controls whether a second live instance of a kind adds
	// another counter increment (true) or only extends how long the kind
	// lasts (false). Every Add is recorded either way so each source can
	// retract its own instance.
	Stacking bool

	effects  []Effect
	raw      [numCapabilities]int
	counters [numCapabilities]int
}

// NewStack creates an empty stack
func NewStack(stacking bool) *Stack {
	return &Stack{Stacking: stacking}
}

// Add applies an effect of kind for duration turns (0 = until removed)
// attributed to source.
func (s *Stack) Add(kind Kind, duration int, source core.UnitID) {
	if duration < 0 {
		duration = 0
	}
	counted := s.Stacking || !s.HasKind(kind)
	s.effects = append(s.effects, Effect{Kind: kind, Remaining: duration, Source: source})
	if counted {
		s.apply(kind, 1)
	}
}

// Remove retracts the newest instance of kind applied by source, whatever
// its remaining duration. It reports whether an instance was found.
func (s *Stack) Remove(kind Kind, source core.UnitID) bool {
	for i := len(s.effects) - 1; i >= 0; i-- {
		if e := s.effects[i]; e.Kind == kind && e.Source == source {
			s.removeAt(i)
			return true
		}
	}
	return false
}

// RemoveSource retracts every instance applied by source and returns them
func (s *Stack) RemoveSource(source core.UnitID) []Effect {
	var removed []Effect
	for i := len(s.effects) - 1; i >= 0; i-- {
		if s.effects[i].Source == source {
			removed = append(removed, s.effects[i])
			s.removeAt(i)
		}
	}
	return removed
}

// Has reports whether source has an instance of kind on this stack
func (s *Stack) Has(kind Kind, source core.UnitID) bool {
	for _, e := range s.effects {
		if e.Kind == kind && e.Source == source {
			return true
		}
	}
	return false
}

// HasKind reports whether any source has applied kind
func (s *Stack) HasKind(kind Kind) bool {
	for _, e := range s.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Tick advances timed effects by one turn and returns the ones that expired
func (s *Stack) Tick() []Effect {
	var expired []Effect
	for i := len(s.effects) - 1; i >= 0; i-- {
		e := &s.effects[i]
		if e.Remaining == 0 {
			continue
		}
		e.Remaining--
		if e.Remaining == 0 {
			expired = append(expired, *e)
			s.removeAt(i)
		}
	}
	// removal walked backwards; report in application order
	for i, j := 0, len(expired)-1; i < j; i, j = i+1, j-1 {
		expired[i], expired[j] = expired[j], expired[i]
	}
	return expired
}

// Effects returns a copy of the applied effects in application order
func (s *Stack) Effects() []Effect {
	out := make([]Effect, len(s.effects))
	copy(out, s.effects)
	return out
}

// Counter returns the clamped disable counter of c
func (s *Stack) Counter(c Capability) int {
	if c < 0 || c >= numCapabilities {
		return 0
	}
	return s.counters[c]
}

// Can reports whether capability c is currently available
func (s *Stack) Can(c Capability) bool {
	return s.Counter(c) <= 0
}

func (s *Stack) CanMove() bool { return s.Can(CanMove) }
func (s *Stack) CanBeMoved() bool { return s.Can(CanBeMoved) }
func (s *Stack) CanAttack() bool { return s.Can(CanAttack) }
func (s *Stack) CanBeAttacked() bool { return s.Can(CanBeAttacked) }
func (s *Stack) CanUseAbility() bool { return s.Can(CanUseAbility) }
func (s *Stack) CanBeAffectedByAbility() bool { return s.Can(CanBeAffectedByAbility) }
func (s *Stack) CanAssist() bool { return s.Can(CanAssist) }

// Snapshot returns every capability flag at once
func (s *Stack) Snapshot() [numCapabilities]bool {
	var out [numCapabilities]bool
	for _, c := range Capabilities {
		out[c] = s.Can(c)
	}
	return out
}

// Clone returns an independent copy for lookahead
func (s *Stack) Clone() *Stack {
	c := *s
	c.effects = make([]Effect, len(s.effects))
	copy(c.effects, s.effects)
	return &c
}

func (s *Stack) removeAt(i int) {
	kind := s.effects[i].Kind
	s.effects = append(s.effects[:i], s.effects[i+1:]...)
	if s.Stacking || !s.HasKind(kind) {
		s.apply(kind, -1)
	}
}

func (s *Stack) apply(kind Kind, sign int) {
	for _, m := range kindModifiers[kind] {
		s.raw[m.capability] += sign * m.delta
		s.counters[m.capability] = max(0, s.raw[m.capability])
	}
}
