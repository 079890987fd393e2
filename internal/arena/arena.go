package arena

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"othello/internal/engine"
	"othello/internal/game"
	"othello/internal/learn"
	"othello/internal/othello"
)

// Player 一方：估值（只读共享）+ 搜索参数
type Player struct {
	Name   string
	Eval   *engine.Evaluator
	Search engine.SearchConfig
}

type Config struct {
	Games         int // 总局数；两局一组共用开局、交换先后手
	Concurrency   int // 同时进行的对局数，0 表示 GOMAXPROCS
	RandomOpening int
	Seed          uint64
}

func DefaultConfig() Config {
	return Config{Games: 20, RandomOpening: 8, Seed: 1}
}

// GameRecord 一局的记录
type GameRecord struct {
	ID      string
	AIsDark bool // A 执黑
	Diff    int  // 黑减白
	Moves   []othello.Pos
}

// ADiff A 方视角的子数差
func (r GameRecord) ADiff() int {
	if r.AIsDark {
		return r.Diff
	}
	return -r.Diff
}

type Report struct {
	A, B   string
	AWins  int
	BWins  int
	Draws  int
	ADiscs int // A 方子数差之和
	Games  []GameRecord
}

// Match 在 a、b 之间并发下 cfg.Games 局。每局各自新建 Engine，Evaluator 共享只读。
func Match(ctx context.Context, cfg Config, a, b Player) (Report, error) {
	if cfg.Games <= 0 {
		return Report{}, errors.Errorf("arena: games must be positive, got %d", cfg.Games)
	}
	if a.Eval == nil || b.Eval == nil {
		return Report{}, errors.New("arena: both players need an evaluator")
	}
	limit := cfg.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	openings := makeOpenings(cfg)
	mgr := game.NewManager()
	records := make([]GameRecord, cfg.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			aIsDark := i%2 == 0
			dark, light := a, b
			if !aIsDark {
				dark, light = b, a
			}
			rec, err := playGame(mgr, openings[i/2], dark, light)
			if err != nil {
				return errors.WithMessagef(err, "game %d", i)
			}
			rec.AIsDark = aIsDark
			records[i] = rec
			log.Debug().Str("id", rec.ID).Int("game", i).Int("diff", rec.Diff).Msg("arena-game-done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep := Report{A: a.Name, B: b.Name, Games: records}
	for _, r := range records {
		d := r.ADiff()
		rep.ADiscs += d
		switch {
		case d > 0:
			rep.AWins++
		case d < 0:
			rep.BWins++
		default:
			rep.Draws++
		}
	}
	return rep, nil
}

// makeOpenings 顺序生成开局，结果与并发度无关
func makeOpenings(cfg Config) [][]othello.Pos {
	rng := learn.NewRNG(cfg.Seed)
	out := make([][]othello.Pos, (cfg.Games+1)/2)
	for i := range out {
		b := othello.NewBoard()
		learn.RandomOpening(b, othello.Black, cfg.RandomOpening, rng)
		moves := make([]othello.Pos, b.Ply())
		for j := len(moves) - 1; j >= 0; j-- {
			last, _ := b.LastMove()
			moves[j] = last.Pos
			b.Unflip()
		}
		out[i] = moves
	}
	return out
}

func playGame(mgr *game.Manager, opening []othello.Pos, dark, light Player) (GameRecord, error) {
	gs := mgr.NewGame()
	engines := map[othello.Color]*engine.Engine{
		othello.Black: engine.NewEngine(dark.Eval, dark.Search),
		othello.White: engine.NewEngine(light.Eval, light.Search),
	}

	for _, p := range opening {
		if gs.Status() == othello.TurnPass {
			if err := gs.Pass(); err != nil {
				return GameRecord{}, err
			}
		}
		if err := gs.Play(p); err != nil {
			return GameRecord{}, errors.WithMessage(err, "replay opening")
		}
	}

	for {
		switch gs.Status() {
		case othello.TurnFinish:
			return GameRecord{
				ID:    gs.ID,
				Diff:  gs.Board.Diff(othello.Black),
				Moves: append([]othello.Pos(nil), gs.History...),
			}, nil
		case othello.TurnPass:
			if err := gs.Pass(); err != nil {
				return GameRecord{}, err
			}
			continue
		}
		res := engines[gs.Turn].Search(gs.Board, gs.Turn)
		if err := gs.Play(res.Move); err != nil {
			return GameRecord{}, errors.WithMessagef(err, "%v engine", gs.Turn)
		}
	}
}
