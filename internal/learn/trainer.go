package learn

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"othello/internal/engine"
	"othello/internal/othello"
)

// Config 自对局学习参数
type Config struct {
	RandomOpening     int // 开局随机走的轮数
	RandomMovePercent int // 之后每步随机走的概率（百分比）
	RandomMinEmpties  int // 空格数大于它时才允许随机走
	EndgameWindow     int // 空格数小于它的局面不参与训练（终局搜索已精确）
	TrainMaxEmpties   int // 空格数不超过它的局面才参与训练
	UpdateInterval    int // 每多少局应用一次权重更新
	SaveInterval      int // 每多少局保存一次权重

	Black, White engine.SearchConfig
	WeightsPath  string // 为空时不保存
	Seed         uint64
}

// DefaultConfig 中局 4 层，终局 12 空
func DefaultConfig() Config {
	search := engine.DefaultSearchConfig()
	return Config{
		RandomOpening:     8,
		RandomMovePercent: 1,
		RandomMinEmpties:  12,
		EndgameWindow:     8,
		TrainMaxEmpties:   othello.NumCells - 12,
		UpdateInterval:    10,
		SaveInterval:      100,
		Black:             search,
		White:             search,
	}
}

// GameResult 一局自对局的结果
type GameResult struct {
	Diff      int // 黑减白
	Moves     int
	Positions int // 送去训练的局面数
}

// Summary 一次 Run 的汇总
type Summary struct {
	Games     int
	BlackWins int
	WhiteWins int
	Draws     int
	Positions int
	Updated   int
	Elapsed   time.Duration
}

// Trainer 两个 Engine 共享同一个 Evaluator 对下，用终局子数差训练估值
type Trainer struct {
	cfg   Config
	eval  *engine.Evaluator
	black *engine.Engine
	white *engine.Engine
	board *othello.Board
	rng   *frand.RNG

	movers []othello.Color // 每一手的落子方
}

func NewTrainer(eval *engine.Evaluator, cfg Config) *Trainer {
	return &Trainer{
		cfg:    cfg,
		eval:   eval,
		black:  engine.NewEngine(eval, cfg.Black),
		white:  engine.NewEngine(eval, cfg.White),
		board:  othello.NewBoard(),
		rng:    NewRNG(cfg.Seed),
		movers: make([]othello.Color, 0, othello.NumCells),
	}
}

// Board 当前对局的棋盘（只读用）
func (t *Trainer) Board() *othello.Board { return t.board }

func (t *Trainer) engineFor(c othello.Color) *engine.Engine {
	if c == othello.Black {
		return t.black
	}
	return t.white
}

// PlayGame 从开局下完一局，棋盘停在终局
func (t *Trainer) PlayGame() GameResult {
	b := t.board
	b.Reset()
	c, movers := RandomOpening(b, othello.Black, t.cfg.RandomOpening, t.rng)
	t.movers = append(t.movers[:0], movers...)

	for {
		switch b.State(c) {
		case othello.TurnFinish:
			return GameResult{Diff: b.Diff(othello.Black), Moves: b.Ply()}
		case othello.TurnPass:
			c = -c
			continue
		}

		var p othello.Pos
		if b.Empties() > t.cfg.RandomMinEmpties && t.rng.Intn(100) < t.cfg.RandomMovePercent {
			p = RandomMove(b, c, t.rng)
		} else {
			p = t.engineFor(c).Search(b, c).Move
		}
		if b.Flip(c, p) == 0 {
			panic("learn: engine returned an illegal move " + p.String())
		}
		t.movers = append(t.movers, c)
		c = -c
	}
}

// Train 把终局倒退回去，对中局每个局面以落子方视角的结果累计。
// 白方落子的局面先反转成轮黑走再累计。
func (t *Trainer) Train(diff int) int {
	b := t.board
	target := diff * engine.DiskValue

	for b.Ply() > 0 && b.Empties() < t.cfg.EndgameWindow {
		b.Unflip()
	}

	n := 0
	for b.Ply() > 0 && b.Empties() < t.cfg.TrainMaxEmpties {
		mover := t.movers[b.Ply()-1]
		b.Unflip()
		if mover == othello.Black {
			t.eval.Accumulate(b, target)
		} else {
			b.Reverse()
			t.eval.Accumulate(b, -target)
			b.Reverse()
		}
		n++
	}
	return n
}

// Run 连续自对局 games 局。ctx 只在两局之间检查。
func (t *Trainer) Run(ctx context.Context, games int) (Summary, error) {
	start := time.Now()
	var sum Summary
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			sum.Elapsed = time.Since(start)
			return sum, t.finish(sum, err)
		}

		res := t.PlayGame()
		res.Positions = t.Train(res.Diff)

		sum.Games++
		sum.Positions += res.Positions
		switch {
		case res.Diff > 0:
			sum.BlackWins++
		case res.Diff < 0:
			sum.WhiteWins++
		default:
			sum.Draws++
		}

		if t.cfg.UpdateInterval > 0 && sum.Games%t.cfg.UpdateInterval == 0 {
			updated := t.eval.ApplyUpdates()
			sum.Updated += updated
			log.Debug().Int("game", sum.Games).Int("updated", updated).Msg("apply-updates")
		}
		if t.cfg.SaveInterval > 0 && sum.Games%t.cfg.SaveInterval == 0 {
			log.Info().
				Int("game", sum.Games).
				Int("of", games).
				Int("black-wins", sum.BlackWins).
				Int("white-wins", sum.WhiteWins).
				Int("draws", sum.Draws).
				Dur("elapsed", time.Since(start)).
				Msg("learning")
			if err := t.save(); err != nil {
				sum.Elapsed = time.Since(start)
				return sum, err
			}
		}
	}
	sum.Elapsed = time.Since(start)
	return sum, t.finish(sum, nil)
}

// finish 结束（或被取消）时保存一次
func (t *Trainer) finish(sum Summary, cause error) error {
	if err := t.save(); err != nil {
		if cause != nil {
			return errors.WithMessage(cause, err.Error())
		}
		return err
	}
	log.Info().Int("games", sum.Games).Int("positions", sum.Positions).Msg("learning-finished")
	return cause
}

func (t *Trainer) save() error {
	if t.cfg.WeightsPath == "" {
		return nil
	}
	return errors.Wrap(t.eval.SaveFile(t.cfg.WeightsPath), "save weights")
}
