package game

import (
	"time"

	"github.com/pkg/errors"

	"othello/internal/othello"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameOver      = errors.New("game is over")
	ErrIllegalMove   = errors.New("illegal move")
	ErrCannotPass    = errors.New("cannot pass while a move is available")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// GameState 一局对局：棋盘 + 轮到谁 + 着法记录（pass 记为 NoMove）
type GameState struct {
	ID        string
	Board     *othello.Board
	Turn      othello.Color
	History   []othello.Pos
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newGameState(id string) *GameState {
	now := time.Now()
	return &GameState{
		ID:        id,
		Board:     othello.NewBoard(),
		Turn:      othello.Black,
		History:   make([]othello.Pos, 0, othello.NumCells),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Status 轮到的一方：能下 / 必须 pass / 终局
func (g *GameState) Status() othello.Turn { return g.Board.State(g.Turn) }

func (g *GameState) Over() bool { return g.Status() == othello.TurnFinish }

func (g *GameState) Result() othello.Result { return g.Board.Judge() }

// Play 轮到的一方在 p 落子
func (g *GameState) Play(p othello.Pos) error {
	if g.Over() {
		return ErrGameOver
	}
	if !p.OnBoard() || !g.Board.IsLegal(g.Turn, p) {
		return errors.Wrapf(ErrIllegalMove, "%v by %v", p, g.Turn)
	}
	g.Board.Flip(g.Turn, p)
	g.History = append(g.History, p)
	g.Turn = -g.Turn
	g.UpdatedAt = time.Now()
	return nil
}

// Pass 只有无子可下且对方能下时才允许
func (g *GameState) Pass() error {
	switch g.Status() {
	case othello.TurnFinish:
		return ErrGameOver
	case othello.TurnMove:
		return ErrCannotPass
	}
	g.History = append(g.History, othello.NoMove)
	g.Turn = -g.Turn
	g.UpdatedAt = time.Now()
	return nil
}

// Undo 撤销最后一条记录（落子或 pass）
func (g *GameState) Undo() error {
	n := len(g.History)
	if n == 0 {
		return ErrNothingToUndo
	}
	if g.History[n-1] != othello.NoMove {
		g.Board.Unflip()
	}
	g.History = g.History[:n-1]
	g.Turn = -g.Turn
	g.UpdatedAt = time.Now()
	return nil
}
