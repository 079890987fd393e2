package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"othello/internal/config"
	"othello/internal/engine"
	"othello/internal/learn"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	games := flag.Int("games", 0, "number of self-play games (overrides config)")
	weightsPath := flag.String("weights", "", "weights file to load and save (overrides config)")
	seed := flag.Uint64("seed", 0, "random seed, 0 for entropy")
	level := flag.String("level", "", `search level for both sides, e.g. "mid=2,exact=10"`)
	jsonLog := flag.Bool("json", false, "write JSON logs instead of console output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *games > 0 {
		cfg.LearnGames = *games
	}
	if *weightsPath != "" {
		cfg.WeightsPath = *weightsPath
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := config.SetupLogging(cfg.LogLevel, os.Stderr, !*jsonLog); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lc := cfg.Learn()
	search, err := config.ParseLevel(*level, lc.Black)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-level")
	}
	lc.Black, lc.White = search, search

	eval := engine.NewEvaluator()
	cfg.ApplyEvaluator(eval)
	loadWeights(eval, cfg.WeightsPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Int("games", cfg.LearnGames).Int("mid", search.MidDepth).
		Int("exact", search.ExactEmpties).Uint64("seed", cfg.Seed).Msg("selfplay-start")
	sum, err := learn.NewTrainer(eval, lc).Run(ctx, cfg.LearnGames)
	if err != nil && errors.Cause(err) != context.Canceled {
		log.Fatal().Err(err).Msg("selfplay-failed")
	}
	log.Info().
		Int("games", sum.Games).
		Int("black-wins", sum.BlackWins).
		Int("white-wins", sum.WhiteWins).
		Int("draws", sum.Draws).
		Int("positions", sum.Positions).
		Int("updated", sum.Updated).
		Dur("elapsed", sum.Elapsed).
		Msg("selfplay-finished")
}

// loadWeights 读不到或读坏都从全零权重开始学，坏文件由 LoadWeights 挪开
func loadWeights(eval *engine.Evaluator, path string) engine.WeightsStatus {
	status, err := eval.LoadWeights(path)
	switch status {
	case engine.WeightsLoaded:
		log.Info().Str("path", path).Msg("weights-loaded")
	case engine.WeightsMissing:
		log.Info().Str("path", path).Msg("starting-from-zero-weights")
	default:
		log.Warn().Err(err).Str("path", path).Msg("weights-broken-starting-from-zero")
	}
	return status
}
