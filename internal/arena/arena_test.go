package arena

import (
	"context"
	"testing"

	"othello/internal/engine"
	"othello/internal/othello"
)

func quickPlayer(name string, depth int) Player {
	cfg := engine.DefaultSearchConfig()
	cfg.MidDepth = depth
	cfg.ExactEmpties = 6
	cfg.WLDEmpties = 6
	return Player{Name: name, Eval: engine.NewEvaluator(), Search: cfg}
}

func TestMatchTallies(t *testing.T) {
	cfg := Config{Games: 5, Concurrency: 3, RandomOpening: 6, Seed: 3}
	rep, err := Match(context.Background(), cfg, quickPlayer("a", 1), quickPlayer("b", 2))
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if rep.AWins+rep.BWins+rep.Draws != cfg.Games {
		t.Fatalf("tally %d+%d+%d != %d", rep.AWins, rep.BWins, rep.Draws, cfg.Games)
	}
	ids := map[string]bool{}
	sum := 0
	for i, g := range rep.Games {
		if g.ID == "" || ids[g.ID] {
			t.Fatalf("game %d: bad id %q", i, g.ID)
		}
		ids[g.ID] = true
		if g.AIsDark != (i%2 == 0) {
			t.Fatalf("game %d: colours not alternated", i)
		}
		if len(g.Moves) == 0 {
			t.Fatalf("game %d: no moves recorded", i)
		}
		sum += g.ADiff()
	}
	if sum != rep.ADiscs {
		t.Fatalf("disc sum got=%d want=%d", rep.ADiscs, sum)
	}
}

// 开局两两相同，结果不受并发度影响
func TestMatchDeterministic(t *testing.T) {
	a, b := quickPlayer("a", 1), quickPlayer("b", 1)
	serial, err := Match(context.Background(), Config{Games: 4, Concurrency: 1, RandomOpening: 8, Seed: 9}, a, b)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	parallel, err := Match(context.Background(), Config{Games: 4, Concurrency: 4, RandomOpening: 8, Seed: 9}, a, b)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	for i := range serial.Games {
		if serial.Games[i].Diff != parallel.Games[i].Diff {
			t.Fatalf("game %d: serial=%d parallel=%d", i, serial.Games[i].Diff, parallel.Games[i].Diff)
		}
	}
	for i := 0; i+1 < len(serial.Games); i += 2 {
		x, y := serial.Games[i].Moves, serial.Games[i+1].Moves
		for j := 0; j < 8 && j < len(x) && j < len(y); j++ {
			if x[j] != y[j] {
				t.Fatalf("games %d/%d: openings differ at ply %d", i, i+1, j)
			}
		}
	}
}

func TestMatchErrors(t *testing.T) {
	if _, err := Match(context.Background(), Config{Games: 0}, quickPlayer("a", 1), quickPlayer("b", 1)); err == nil {
		t.Fatalf("zero games should fail")
	}
	noEval := quickPlayer("b", 1)
	noEval.Eval = nil
	if _, err := Match(context.Background(), Config{Games: 2}, quickPlayer("a", 1), noEval); err == nil {
		t.Fatalf("missing evaluator should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Match(ctx, Config{Games: 2, Concurrency: 1}, quickPlayer("a", 1), quickPlayer("b", 1)); err == nil {
		t.Fatalf("cancelled match should fail")
	}
}

func TestMakeOpeningsReplayable(t *testing.T) {
	for _, op := range makeOpenings(Config{Games: 6, RandomOpening: 8, Seed: 5}) {
		b := othello.NewBoard()
		c := othello.Black
		for _, p := range op {
			if !b.CanPlay(c) {
				c = -c
			}
			if b.Flip(c, p) == 0 {
				t.Fatalf("opening move %v not legal for %v", p, c)
			}
			c = -c
		}
	}
}
