// Package effects holds the ordered list of resolved effects handed to the
// presentation layer after each action.
package effects

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/status"
)

// Kind of a resolved effect
type Kind int

const (
	Step Kind = iota // plain one-hex move
	Hop              // jump over a cell
	Teleport
	Strike
	Assist
	Push
	KnockOut
	StatusApplied
	StatusRemoved
	AbilityUsed
	ExtraAction
	Victory
)

var kindNames = [...]string{
	Step:          "step",
	Hop:           "hop",
	Teleport:      "teleport",
	Strike:        "strike",
	Assist:        "assist",
	Push:          "push",
	KnockOut:      "knockout",
	StatusApplied: "status+",
	StatusRemoved: "status-",
	AbilityUsed:   "ability",
	ExtraAction:   "extra-action",
	Victory:       "victory",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Effect is one presentable change. Unused fields are zero.
type Effect struct {
	Kind    Kind
	Unit    core.UnitID
	From    core.Hex
	To      core.Hex
	Target  core.UnitID
	Status  status.Kind
	Ability string
}

func (e Effect) String() string {
	switch e.Kind {
	case Step, Hop, Teleport, Push:
		return fmt.Sprintf("%s u%d %s->%s", e.Kind, e.Unit, e.From, e.To)
	case Strike, Assist:
		return fmt.Sprintf("%s u%d->u%d at %s", e.Kind, e.Unit, e.Target, e.To)
	case StatusApplied, StatusRemoved:
		return fmt.Sprintf("%s %s u%d", e.Kind, e.Status, e.Target)
	case AbilityUsed:
		return fmt.Sprintf("%s u%d %s", e.Kind, e.Unit, e.Ability)
	default:
		return fmt.Sprintf("%s u%d", e.Kind, e.Unit)
	}
}

// Batch is a set of effects played concurrently
type Batch []Effect

// Timeline is a sequence of batches played strictly in order
type Timeline struct {
	steps []Batch
}

// NewTimeline creates an empty timeline
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Append starts a new step holding e
func (t *Timeline) Append(e Effect) {
	t.steps = append(t.steps, Batch{e})
}

// Join adds e to the latest step, or starts one if the timeline is empty
func (t *Timeline) Join(e Effect) {
	if len(t.steps) == 0 {
		t.Append(e)
		return
	}
	last := len(t.steps) - 1
	t.steps[last] = append(t.steps[last], e)
}

// Extend appends every step of other after the steps of t
func (t *Timeline) Extend(other *Timeline) {
	if other == nil {
		return
	}
	for _, b := range other.steps {
		t.steps = append(t.steps, append(Batch(nil), b...))
	}
}

// Steps returns the batches in play order
func (t *Timeline) Steps() []Batch {
	out := make([]Batch, len(t.steps))
	for i, b := range t.steps {
		out[i] = append(Batch(nil), b...)
	}
	return out
}

// Len returns the number of steps
func (t *Timeline) Len() int {
	return len(t.steps)
}

// Empty reports whether nothing was recorded
func (t *Timeline) Empty() bool {
	return len(t.steps) == 0
}

// Effects flattens the timeline in play order
func (t *Timeline) Effects() []Effect {
	var out []Effect
	for _, b := range t.steps {
		out = append(out, b...)
	}
	return out
}

// Count returns how many effects of kind k were recorded
func (t *Timeline) Count(k Kind) int {
	n := 0
	for _, b := range t.steps {
		for _, e := range b {
			if e.Kind == k {
				n++
			}
		}
	}
	return n
}

// String renders one step per line, joined effects separated by " | "
func (t *Timeline) String() string {
	var sb strings.Builder
	for i, b := range t.steps {
		parts := make([]string, len(b))
		for j, e := range b {
			parts[j] = e.String()
		}
		fmt.Fprintf(&sb, "%d: %s\n", i, strings.Join(parts, " | "))
	}
	return sb.String()
}

// Player consumes a timeline. The engine waits for acknowledgement before
// accepting more input.
type Player interface {
	Play(steps []Batch)
}

// PlayerFunc adapts a function into a Player
type PlayerFunc func(steps []Batch)

func (f PlayerFunc) Play(steps []Batch) { f(steps) }
