package game

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/HexTactics/internal/catalog"
	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/testutil"
)

func benchCatalog(b *testing.B) *catalog.Catalog {
	b.Helper()
	c, err := catalog.New(
		[]catalog.UnitDef{
			{ID: warden, Name: "Warden", Role: "leader", AttackValue: 50, PositionWeight: 2},
			{ID: footman, Name: "Footman", Role: "pawn", AttackValue: 10, AssistValue: 2, PositionWeight: 1},
		},
		nil,
	)
	if err != nil {
		b.Fatal(err)
	}
	return c
}

// benchMatch lines up a row of pawns in front of each leader on a generated
// board of the given radius
func benchMatch(b *testing.B, radius int) config.MatchConfig {
	b.Helper()
	home := func(r int) config.TeamConfig {
		t := config.TeamConfig{Units: []config.UnitPlacement{{Unit: warden, Q: 0, R: r}}}
		row := radius / 2
		if r < 0 {
			row = -row
		}
		for q := -radius / 2; q <= radius/2; q++ {
			t.Units = append(t.Units, config.UnitPlacement{Unit: footman, Q: q, R: row})
		}
		return t
	}
	m := config.MatchConfig{
		BoardRadius: radius,
		Teams:       []config.TeamConfig{home(radius - 1), home(1 - radius)},
	}
	out, err := mapgen.NewGenerator(mapgen.DefaultMapConfig(radius), rand.New(rand.NewSource(7))).Generate(m)
	if err != nil {
		b.Fatal(err)
	}
	return out
}

func newBenchEngine(b *testing.B, radius int) *Engine {
	b.Helper()
	e, err := NewEngine(context.Background(), GameConfig{
		Match:   benchMatch(b, radius),
		Catalog: benchCatalog(b),
		Logger:  testutil.NopLogger(),
		GameID:  "bench",
	})
	if err != nil {
		b.Fatal(err)
	}
	return e
}

func BenchmarkUpdatePlayerStats(b *testing.B) {
	for _, radius := range []int{4, 8} {
		e := newBenchEngine(b, radius)
		b.Run(fmt.Sprintf("radius=%d", radius), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				e.updatePlayerStats()
			}
		})
	}
}

func BenchmarkFindMoves(b *testing.B) {
	e := newBenchEngine(b, 6)
	units := e.gs.Units.Team(0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u := units[i%len(units)]
		e.gen.FindMoves(u, u.Hex, rules.NoNode, false)
	}
}

func BenchmarkSelectableUnits(b *testing.B) {
	e := newBenchEngine(b, 6)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.SelectableUnits()
	}
}

func BenchmarkBoardRendering(b *testing.B) {
	e := newBenchEngine(b, 8)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Render(RenderOptions{Color: true, Coordinates: true})
	}
}

func BenchmarkGreedyMatch(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := newBenchEngine(b, 5)
		b.StartTimer()

		for step := 0; step < 400 && !e.IsGameOver(); step++ {
			if err := PlayGreedyAction(context.Background(), e); err != nil {
				b.Fatal(err)
			}
		}
	}
}
