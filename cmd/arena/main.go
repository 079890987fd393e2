package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"othello/internal/arena"
	"othello/internal/config"
	"othello/internal/engine"
)

func main() {
	aWeights := flag.String("a", "eval.dat", "weights file for player A")
	bWeights := flag.String("b", "eval.dat", "weights file for player B")
	aLevel := flag.String("a-level", "", `search level for A, e.g. "mid=4,exact=12"`)
	bLevel := flag.String("b-level", "", "search level for B")
	totalGames := flag.Int("games", 20, "number of games to play")
	concurrency := flag.Int("concurrency", 0, "games played at once, 0 for GOMAXPROCS")
	opening := flag.Int("opening", 8, "random opening plies shared by each pair of games")
	seed := flag.Uint64("seed", 1, "opening seed")
	logLevel := flag.String("log-level", "info", "zerolog level")
	flag.Parse()

	if err := config.SetupLogging(*logLevel, os.Stderr, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	playerA := mustPlayer("A", *aWeights, *aLevel)
	playerB := mustPlayer("B", *bWeights, *bLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := arena.Config{
		Games:         *totalGames,
		Concurrency:   *concurrency,
		RandomOpening: *opening,
		Seed:          *seed,
	}
	rep, err := arena.Match(ctx, cfg, playerA, playerB)
	if err != nil {
		log.Fatal().Err(err).Msg("arena-failed")
	}

	for i, g := range rep.Games {
		dark, light := rep.A, rep.B
		if !g.AIsDark {
			dark, light = light, dark
		}
		fmt.Printf("game %3d  X %-28s O %-28s  %+3d  %s\n", i+1, dark, light, g.Diff, g.ID)
	}
	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", rep.A, rep.AWins)
	fmt.Printf("%s: %d\n", rep.B, rep.BWins)
	fmt.Printf("Draws: %d\n", rep.Draws)
	fmt.Printf("Disc difference for A: %+d (%.2f per game)\n", rep.ADiscs, float64(rep.ADiscs)/float64(len(rep.Games)))
}

func mustPlayer(tag, weights, level string) arena.Player {
	search, err := config.ParseLevel(level, engine.DefaultSearchConfig())
	if err != nil {
		log.Fatal().Err(err).Str("player", tag).Msg("bad-level")
	}
	eval := engine.NewEvaluator()
	if err := eval.LoadFile(weights); err != nil {
		log.Warn().Err(err).Str("player", tag).Msg("using-zero-weights")
	}
	return arena.Player{
		Name:   fmt.Sprintf("%s[%s mid=%d exact=%d]", tag, weights, search.MidDepth, search.ExactEmpties),
		Eval:   eval,
		Search: search,
	}
}
