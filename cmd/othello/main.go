package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"othello/internal/config"
	"othello/internal/engine"
	"othello/internal/game"
	"othello/internal/learn"
	"othello/internal/othello"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	human := flag.String("human", "black", "human side: black, white, both or none")
	weightsPath := flag.String("weights", "", "path to evaluation weights (overrides config)")
	level := flag.String("level", "", `search level, e.g. "mid=6,wld=14,exact=12,sort=3"`)
	learnGames := flag.Int("learn", 0, "run N self-play learning games instead of playing")
	logLevel := flag.String("log-level", "", "zerolog level (overrides config)")
	plain := flag.Bool("plain", false, "disable colors")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *weightsPath != "" {
		cfg.WeightsPath = *weightsPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := config.SetupLogging(cfg.LogLevel, os.Stderr, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	search, err := config.ParseLevel(*level, cfg.Search())
	if err != nil {
		log.Fatal().Err(err).Msg("bad-level")
	}

	eval := loadEvaluator(cfg)

	if *learnGames > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		lc := cfg.Learn()
		lc.Black, lc.White = search, search
		sum, err := learn.NewTrainer(eval, lc).Run(ctx, *learnGames)
		if err != nil && errors.Cause(err) != context.Canceled {
			log.Fatal().Err(err).Msg("learning-failed")
		}
		log.Info().Int("games", sum.Games).Int("black-wins", sum.BlackWins).
			Int("white-wins", sum.WhiteWins).Int("draws", sum.Draws).
			Dur("elapsed", sum.Elapsed).Msg("learning-summary")
		return
	}

	humans, err := parseHumans(*human)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-human")
	}
	p := &play{
		gs:     game.NewManager().NewGame(),
		eng:    engine.NewEngine(eval, search),
		humans: humans,
		r:      newRenderer(os.Stdout, *plain),
		in:     bufio.NewScanner(os.Stdin),
		out:    os.Stdout,
	}
	if err := p.run(); err != nil && err != io.EOF {
		log.Fatal().Err(err).Msg("game-aborted")
	}
}

// loadEvaluator 找不到或读坏权重文件时用全零权重继续
func loadEvaluator(cfg config.Config) *engine.Evaluator {
	eval := engine.NewEvaluator()
	cfg.ApplyEvaluator(eval)
	path, err := engine.ResolveWeightsPath(cfg.WeightsPath)
	if err != nil {
		log.Warn().Err(err).Msg("weights-missing")
		return eval
	}
	if status, err := eval.LoadWeights(path); status != engine.WeightsLoaded {
		log.Warn().Err(err).Str("path", path).Stringer("status", status).Msg("weights-load-failed")
		return eval
	}
	log.Info().Str("path", path).Msg("weights-loaded")
	return eval
}

func parseHumans(s string) (map[othello.Color]bool, error) {
	switch strings.ToLower(s) {
	case "black":
		return map[othello.Color]bool{othello.Black: true}, nil
	case "white":
		return map[othello.Color]bool{othello.White: true}, nil
	case "both":
		return map[othello.Color]bool{othello.Black: true, othello.White: true}, nil
	case "none", "":
		return map[othello.Color]bool{}, nil
	}
	return nil, errors.Errorf("unknown side %q", s)
}

type play struct {
	gs     *game.GameState
	eng    *engine.Engine
	humans map[othello.Color]bool
	r      *renderer
	in     *bufio.Scanner
	out    io.Writer
}

func (p *play) run() error {
	for {
		gs := p.gs
		switch gs.Status() {
		case othello.TurnFinish:
			fmt.Fprint(p.out, p.r.board(gs.Board, othello.Empty))
			fmt.Fprintln(p.out, p.r.headline(resultLine(gs)))
			return nil
		case othello.TurnPass:
			fmt.Fprintf(p.out, "%v has no move and passes\n", gs.Turn)
			if err := gs.Pass(); err != nil {
				return err
			}
			continue
		}

		fmt.Fprint(p.out, p.r.board(gs.Board, gs.Turn))
		if p.humans[gs.Turn] {
			if err := p.humanTurn(); err != nil {
				return err
			}
			continue
		}

		res := p.eng.Search(gs.Board, gs.Turn)
		log.Debug().Str("move", res.Move.String()).Int("score", res.Score).Str("mode", res.Mode.String()).
			Int("depth", res.Depth).Int64("nodes", res.Nodes).Dur("time", res.TimeUsed).Msg("search")
		fmt.Fprintf(p.out, "%v plays %v (%s %d, score %d, %d nodes, %v)\n",
			gs.Turn, res.Move, res.Mode, res.Depth, res.Score, res.Nodes, res.TimeUsed)
		if err := gs.Play(res.Move); err != nil {
			return errors.WithMessage(err, "engine move")
		}
	}
}

// humanTurn 读到合法输入为止。支持着法、undo、hint、quit
func (p *play) humanTurn() error {
	gs := p.gs
	for {
		fmt.Fprintf(p.out, "%v> ", gs.Turn)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		line := strings.ToLower(strings.TrimSpace(p.in.Text()))
		switch line {
		case "":
			continue
		case "quit", "q":
			return io.EOF
		case "undo", "u":
			if !p.undo() {
				fmt.Fprintln(p.out, "nothing to undo")
				continue
			}
			return nil
		case "hint", "h":
			res := p.eng.Search(gs.Board, gs.Turn)
			fmt.Fprintf(p.out, "hint: %v (score %d)\n", res.Move, res.Score)
			continue
		}

		pos, err := othello.ParseMove(line)
		if err != nil {
			fmt.Fprintln(p.out, "enter a move like d3, or undo / hint / quit")
			continue
		}
		if err := gs.Play(pos); err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return nil
	}
}

// undo 回退到上一次轮到人类落子的局面
func (p *play) undo() bool {
	gs := p.gs
	undone := false
	for len(gs.History) > 0 {
		if err := gs.Undo(); err != nil {
			break
		}
		undone = true
		if p.humans[gs.Turn] && gs.Status() == othello.TurnMove {
			break
		}
	}
	return undone
}

func resultLine(gs *game.GameState) string {
	b := gs.Board
	return fmt.Sprintf("%v %d-%d", gs.Result(), b.Count(othello.Black), b.Count(othello.White))
}
