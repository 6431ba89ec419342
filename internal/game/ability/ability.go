// Package ability tracks the enabled/duration/cooldown bookkeeping of a
// single unit ability.
package ability

import (
	"fmt"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Phase is the derived state of an ability
type Phase int

const (
	Disabled Phase = iota
	Dormant
	Ready
	Active
)

func (p Phase) String() string {
	switch p {
	case Disabled:
		return "Disabled"
	case Dormant:
		return "Dormant"
	case Ready:
		return "Ready"
	case Active:
		return "Active"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Well known perk names
const (
	PerkRange    = "range"
	PerkSlotCost = "slot_cost"
)

// Override replaces catalog values for one ability at match start.
// Nil fields keep the catalog value.
type Override struct {
	Enabled  *bool
	Duration *int
	Cooldown *int
}

// State is the per-unit runtime state of one ability
type State struct {
	Name     string
	Enabled  bool
	Duration int // turns the ongoing effect still lasts, 0 = inactive
	Cooldown int // turns before reuse

	// BaseDuration and BaseCooldown are what Use commits
	BaseDuration int
	BaseCooldown int

	// IsActive is set while the effects of the ability play back
	IsActive bool
	// Toggled is the on/off flag of toggle commands
	Toggled bool

	Perks map[string]int

	// OnDurationComplete fires once each time Duration ticks down to zero
	OnDurationComplete func()
}

// NewState creates an enabled, ready ability
func NewState(name string, duration, cooldown int, perks map[string]int) *State {
	p := make(map[string]int, len(perks))
	for k, v := range perks {
		p[k] = v
	}
	return &State{
		Name:         name,
		Enabled:      true,
		BaseDuration: duration,
		BaseCooldown: cooldown,
		Perks:        p,
	}
}

// Phase derives the current phase. Active wins over Dormant while an
// effect is still running.
func (s *State) Phase() Phase {
	switch {
	case !s.Enabled:
		return Disabled
	case s.Duration > 0:
		return Active
	case s.Cooldown > 0:
		return Dormant
	default:
		return Ready
	}
}

// IsReady reports whether the ability can be used now
func (s *State) IsReady() bool {
	return s.Phase() == Ready
}

// StartCooldown commits one use of the ability
func (s *State) StartCooldown(duration, cooldown int) error {
	switch s.Phase() {
	case Disabled:
		return fmt.Errorf("%s: %w", s.Name, core.ErrAbilityDisabled)
	case Ready:
	default:
		return fmt.Errorf("%s is %s: %w", s.Name, s.Phase(), core.ErrAbilityNotReady)
	}
	s.Duration = max(0, duration)
	s.Cooldown = max(0, cooldown)
	return nil
}

// Use commits one use with the configured base duration and cooldown
func (s *State) Use() error {
	return s.StartCooldown(s.BaseDuration, s.BaseCooldown)
}

// Tick advances one owning-player turn. Duration is decremented before
// cooldown, so the completion callback sees this tick's cooldown unchanged.
// It reports whether the duration completed on this tick.
func (s *State) Tick() bool {
	completed := false
	if s.Duration > 0 {
		s.Duration--
		if s.Duration == 0 {
			completed = true
			if s.OnDurationComplete != nil {
				s.OnDurationComplete()
			}
		}
	}
	if s.Cooldown > 0 {
		s.Cooldown--
	}
	return completed
}

// SetActive sets the mid-animation flag
func (s *State) SetActive(active bool) {
	s.IsActive = active
}

// Toggle flips a toggle command. Switching off commits the cooldown.
func (s *State) Toggle() (on bool, err error) {
	if !s.Toggled {
		if !s.IsReady() {
			if !s.Enabled {
				return false, fmt.Errorf("%s: %w", s.Name, core.ErrAbilityDisabled)
			}
			return false, fmt.Errorf("%s is %s: %w", s.Name, s.Phase(), core.ErrAbilityNotReady)
		}
		s.Toggled = true
		return true, nil
	}
	s.Toggled = false
	s.Duration = 0
	s.Cooldown = max(0, s.BaseCooldown)
	return false, nil
}

// Perk returns the named perk or def when the ability does not define it
func (s *State) Perk(name string, def int) int {
	if v, ok := s.Perks[name]; ok {
		return v
	}
	return def
}

// Apply overwrites catalog values with match configuration
func (s *State) Apply(o Override) {
	if o.Enabled != nil {
		s.Enabled = *o.Enabled
	}
	if o.Duration != nil {
		s.BaseDuration = max(0, *o.Duration)
	}
	if o.Cooldown != nil {
		s.BaseCooldown = max(0, *o.Cooldown)
	}
}

// Clone copies the state without the completion callback
func (s *State) Clone() *State {
	c := *s
	c.OnDurationComplete = nil
	c.Perks = make(map[string]int, len(s.Perks))
	for k, v := range s.Perks {
		c.Perks[k] = v
	}
	return &c
}
