package rules

import (
	"errors"

	"github.com/mitchelldurbincs/HexTactics/internal/game/ability"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/status"
)

// Built-in behavior names as referenced by catalogs
const (
	BehaviorBlink     = "blink"
	BehaviorCatapult  = "catapult"
	BehaviorLunge     = "lunge"
	BehaviorShockwave = "shockwave"
	BehaviorStunBolt  = "stun_bolt"
	BehaviorRally     = "rally"
	BehaviorGuard     = "guard"
	BehaviorStalwart  = "stalwart"
)

// Default perk values when a catalog entry leaves them out
const (
	defaultBlinkRange    = 2
	defaultCatapultRange = 3
	defaultLungeRange    = 2
	defaultStunRange     = 3
)

func init() {
	builtins := map[string]BehaviorFactory{
		BehaviorBlink:     newBlink,
		BehaviorCatapult:  newCatapult,
		BehaviorLunge:     newLunge,
		BehaviorShockwave: newShockwave,
		BehaviorStunBolt:  newStunBolt,
		BehaviorRally:     newRally,
		BehaviorGuard:     newGuard,
		BehaviorStalwart:  newStalwart,
	}
	for name, ctor := range builtins {
		if err := RegisterBehavior(name, ctor); err != nil {
			panic(err)
		}
	}
}

// blink teleports to any free, non-adjacent hex within range
func newBlink() Behavior {
	return BehaviorFuncs{
		ID:   BehaviorBlink,
		Type: SpecialMove,
		Moves: func(ctx *Context) []Candidate {
			var out []Candidate
			for _, h := range ctx.Board.Grid.Range(ctx.From, ctx.State.Perk(ability.PerkRange, defaultBlinkRange)) {
				// adjacent hexes are plain steps
				if core.Distance(ctx.From, h) > 1 && !ctx.Board.IsBlocked(h) {
					out = append(out, Candidate{Dest: h, Kind: Special, Direction: core.DirectionTo(ctx.From, h)})
				}
			}
			return out
		},
	}
}

// catapult launches from a board edge in a straight line
func newCatapult() Behavior {
	return BehaviorFuncs{
		ID:   BehaviorCatapult,
		Type: SpecialMove,
		Usable: func(ctx *Context) bool {
			return ctx.Board.Grid.IsEdge(ctx.From)
		},
		Moves: func(ctx *Context) []Candidate {
			var out []Candidate
			reach := ctx.State.Perk(ability.PerkRange, defaultCatapultRange)
			for _, d := range core.Directions {
				for n := 2; n <= reach; n++ {
					h, ok := ctx.Board.Grid.NeighborAtDistance(ctx.From, d, n)
					if !ok {
						break
					}
					if !ctx.Board.IsBlocked(h) {
						out = append(out, Candidate{Dest: h, Kind: Special, Direction: d})
					}
				}
			}
			return out
		},
	}
}

// lunge dashes through empty hexes and strikes the enemy directly beyond
func newLunge() Behavior {
	return BehaviorFuncs{
		ID:   BehaviorLunge,
		Type: SpecialMove,
		Usable: func(ctx *Context) bool {
			return ctx.Unit.Status.CanMove() && ctx.Unit.Status.CanAttack()
		},
		Moves: func(ctx *Context) []Candidate {
			var out []Candidate
			reach := ctx.State.Perk(ability.PerkRange, defaultLungeRange)
			for _, d := range core.Directions {
				for n := 1; n <= reach; n++ {
					landing, ok := ctx.Board.Grid.NeighborAtDistance(ctx.From, d, n)
					if !ok || ctx.Board.IsBlocked(landing) {
						break
					}
					beyond, ok := ctx.Board.Grid.Neighbor(landing, d)
					if ok && ctx.CanStrike(beyond) {
						out = append(out, Candidate{
							Dest:          landing,
							Kind:          SpecialAttack,
							Direction:     d,
							AttackTargets: []core.Hex{beyond},
						})
					}
				}
			}
			return out
		},
	}
}

// shockwave pushes every adjacent movable unit one hex outward
func newShockwave() Behavior {
	return BehaviorFuncs{
		ID:   BehaviorShockwave,
		Type: Command,
		Usable: func(ctx *Context) bool {
			return len(shockwaveTargets(ctx)) > 0
		},
		Run: func(ctx *Context, _ core.Hex, fx Applier) error {
			for _, d := range core.Directions {
				h, ok := ctx.Board.Grid.Neighbor(ctx.From, d)
				if !ok {
					continue
				}
				u, ok := ctx.UnitAt(h)
				if !ok || !u.Status.CanBeMoved() || !CanAffect(ctx.Unit, u) {
					continue
				}
				// an anchored unit or a wall behind the target stops only that push
				if err := fx.Push(u.ID, d); err != nil && !errors.Is(err, core.ErrPushBlocked) {
					return err
				}
			}
			return nil
		},
	}
}

func shockwaveTargets(ctx *Context) []core.Hex {
	var out []core.Hex
	for _, d := range core.Directions {
		h, ok := ctx.Board.Grid.Neighbor(ctx.From, d)
		if !ok {
			continue
		}
		if u, ok := ctx.UnitAt(h); ok && u.Status.CanBeMoved() && CanAffect(ctx.Unit, u) {
			out = append(out, h)
		}
	}
	return out
}

// stun_bolt stuns an enemy in range until the ability's duration completes
func newStunBolt() Behavior {
	return BehaviorFuncs{
		ID:    BehaviorStunBolt,
		Type:  Command,
		Aimed: true,
		TargetFn: func(ctx *Context) []core.Hex {
			var out []core.Hex
			for _, h := range ctx.Board.Grid.Range(ctx.From, ctx.State.Perk(ability.PerkRange, defaultStunRange)) {
				u, ok := ctx.UnitAt(h)
				if ok && u.Team != ctx.Unit.Team && CanAffect(ctx.Unit, u) {
					out = append(out, h)
				}
			}
			return out
		},
		Run: func(ctx *Context, target core.Hex, fx Applier) error {
			u, ok := ctx.UnitAt(target)
			if !ok {
				return core.ErrNoSuchTarget
			}
			caster, victim, units := ctx.Unit.ID, u.ID, ctx.Units
			if ctx.State.BaseDuration == 0 {
				// no duration to wait on: the victim loses exactly its next turn
				fx.ApplyStatus(victim, status.Stunned, 2, caster)
				return nil
			}
			fx.ApplyStatus(victim, status.Stunned, 0, caster)
			ctx.State.OnDurationComplete = func() {
				if v, ok := units.Unit(victim); ok {
					v.Status.Remove(status.Stunned, caster)
				}
			}
			return nil
		},
	}
}

// rally grants an adjacent ally that has not acted an extra action
func newRally() Behavior {
	return BehaviorFuncs{
		ID:    BehaviorRally,
		Type:  Command,
		Aimed: true,
		TargetFn: func(ctx *Context) []core.Hex {
			var out []core.Hex
			for _, d := range core.Directions {
				h, ok := ctx.Board.Grid.Neighbor(ctx.From, d)
				if !ok {
					continue
				}
				u, ok := ctx.UnitAt(h)
				if ok && u.Team == ctx.Unit.Team && !ctx.Acted(u.ID) && CanAffect(ctx.Unit, u) {
					out = append(out, h)
				}
			}
			return out
		},
		Run: func(ctx *Context, target core.Hex, fx Applier) error {
			u, ok := ctx.UnitAt(target)
			if !ok {
				return core.ErrNoSuchTarget
			}
			fx.Queue(u.ID)
			return nil
		},
	}
}

// guard toggles Shielded and Rooted on the caster
func newGuard() Behavior {
	return BehaviorFuncs{
		ID:   BehaviorGuard,
		Type: ToggleCommand,
		Run: func(ctx *Context, _ core.Hex, fx Applier) error {
			on, err := ctx.State.Toggle()
			if err != nil {
				return err
			}
			self := ctx.Unit.ID
			if on {
				fx.ApplyStatus(self, status.Shielded, 0, self)
				fx.ApplyStatus(self, status.Rooted, 0, self)
				return nil
			}
			fx.RemoveStatus(self, status.Shielded, self)
			fx.RemoveStatus(self, status.Rooted, self)
			return nil
		},
	}
}

// stalwart is permanently Anchored
func newStalwart() Behavior {
	return BehaviorFuncs{
		ID:   BehaviorStalwart,
		Type: Passive,
		Run: func(ctx *Context, _ core.Hex, fx Applier) error {
			fx.ApplyStatus(ctx.Unit.ID, status.Anchored, 0, ctx.Unit.ID)
			return nil
		},
	}
}
