package engine

import (
	"sort"

	"othello/internal/othello"
)

type scoredMove struct {
	pos   othello.Pos
	score int
}

// orderedMoves 试下每个合法着法，用一次静态估值排序，落子方最好的在前。
// 同分保持候选表顺序。
func (e *Engine) orderedMoves(b *othello.Board, c othello.Color) []othello.Pos {
	scored := make([]scoredMove, 0, 16)
	for p := e.cands.first(); p != candHead; p = e.cands.next[p] {
		if b.Flip(c, p) == 0 {
			continue
		}
		scored = append(scored, scoredMove{pos: p, score: e.leafValue(b, c)})
		b.Unflip()
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	out := make([]othello.Pos, len(scored))
	for i, m := range scored {
		out[i] = m.pos
	}
	return out
}

// moveOrder 根节点用：深度够就排序，否则按候选表顺序
func (e *Engine) moveOrder(b *othello.Board, c othello.Color, depth int) []othello.Pos {
	if depth > e.cfg.SortDepth {
		return e.orderedMoves(b, c)
	}
	moves := make([]othello.Pos, 0, 16)
	for p := e.cands.first(); p != candHead; p = e.cands.next[p] {
		if b.IsLegal(c, p) {
			moves = append(moves, p)
		}
	}
	return moves
}
