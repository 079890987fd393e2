package game

import (
	"sync"
	"testing"

	"github.com/pkg/errors"

	"othello/internal/othello"
)

func mustPos(t *testing.T, s string) othello.Pos {
	t.Helper()
	p, err := othello.ParseMove(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return p
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	g := m.NewGame()
	if g.ID == "" {
		t.Fatalf("empty game id")
	}
	got, err := m.Get(g.ID)
	if err != nil || got != g {
		t.Fatalf("get: got=%p err=%v", got, err)
	}
	if err := m.Play(g.ID, mustPos(t, "d3")); err != nil {
		t.Fatalf("play d3: %v", err)
	}
	if g.Turn != othello.White || len(g.History) != 1 {
		t.Fatalf("after d3: turn=%v history=%v", g.Turn, g.History)
	}
	if err := m.Remove(g.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := m.Get(g.ID); errors.Cause(err) != ErrGameNotFound {
		t.Fatalf("get removed: err=%v", err)
	}
	if err := m.Play(g.ID, mustPos(t, "c3")); errors.Cause(err) != ErrGameNotFound {
		t.Fatalf("play removed: err=%v", err)
	}
}

func TestManagerConcurrentGames(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	ids := make([]string, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g := m.NewGame()
			ids[i] = g.ID
			_ = m.Play(g.ID, othello.PosOf(4, 3))
		}(i)
	}
	wg.Wait()
	if m.Len() != len(ids) {
		t.Fatalf("games got=%d want=%d", m.Len(), len(ids))
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestIllegalMoveAndPass(t *testing.T) {
	g := NewManager().NewGame()
	if err := g.Play(mustPos(t, "a1")); errors.Cause(err) != ErrIllegalMove {
		t.Fatalf("a1: err=%v", err)
	}
	if err := g.Play(othello.NoMove); errors.Cause(err) != ErrIllegalMove {
		t.Fatalf("no move: err=%v", err)
	}
	if err := g.Pass(); errors.Cause(err) != ErrCannotPass {
		t.Fatalf("pass: err=%v", err)
	}
	if g.Turn != othello.Black || len(g.History) != 0 {
		t.Fatalf("rejected input changed the game")
	}
}

func TestForcedPassAndFinish(t *testing.T) {
	// 黑下 H8 后白无棋可下，黑也无棋：终局
	b, err := othello.Decode(
		"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXX-O" +
			"XXXXXXO-")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	g := newGameState("fixed")
	g.Board = b
	if err := g.Play(mustPos(t, "h8")); err != nil {
		t.Fatalf("h8: %v", err)
	}
	if !g.Over() {
		t.Fatalf("game should be over, status=%v", g.Status())
	}
	if err := g.Play(mustPos(t, "g7")); errors.Cause(err) != ErrGameOver {
		t.Fatalf("play after end: err=%v", err)
	}
	if g.Result() != othello.BlackWin {
		t.Fatalf("result got=%v", g.Result())
	}
}

func TestPassThenUndo(t *testing.T) {
	// 黑下 F8 后白无棋可下，黑还能下 H6
	b, err := othello.Decode(
		"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXX--" +
			"XXXXXXXO" +
			"XXXXX-OX")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	g := newGameState("fixed")
	g.Board = b
	if err := g.Play(mustPos(t, "f8")); err != nil {
		t.Fatalf("f8: %v", err)
	}
	if g.Status() != othello.TurnPass {
		t.Fatalf("white should have to pass, status=%v", g.Status())
	}
	if err := g.Pass(); err != nil {
		t.Fatalf("pass: %v", err)
	}
	if g.Turn != othello.Black || g.History[len(g.History)-1] != othello.NoMove {
		t.Fatalf("after pass: turn=%v history=%v", g.Turn, g.History)
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("undo pass: %v", err)
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("undo f8: %v", err)
	}
	if g.Turn != othello.Black || g.Board.Ply() != 0 {
		t.Fatalf("after undo: turn=%v ply=%d", g.Turn, g.Board.Ply())
	}
	if err := g.Undo(); errors.Cause(err) != ErrNothingToUndo {
		t.Fatalf("undo empty: err=%v", err)
	}
}
