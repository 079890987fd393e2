package engine

import (
	"fmt"
	"time"

	"othello/internal/othello"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000

	// 终局搜索的窗口（子数差）
	maxDiff = othello.NumCells
)

// Search 为 c 找一步棋。搜索过程中原地修改 b，返回前全部还原。
func (e *Engine) Search(b *othello.Board, c othello.Color) SearchResult {
	start := time.Now()
	e.nodes.Store(0)
	e.cache.reset()
	ply0 := b.Ply()

	empties := b.Empties()
	res := SearchResult{Move: othello.NoMove, Depth: empties}
	switch {
	case empties <= e.cfg.ExactEmpties:
		res.Mode = ModeExact
	case empties <= e.cfg.WLDEmpties:
		res.Mode = ModeWLD
	default:
		res.Mode = ModeMidgame
	}
	e.mode = res.Mode

	if !b.CanPlay(c) {
		res.TimeUsed = time.Since(start)
		return res
	}

	switch res.Mode {
	case ModeExact:
		e.cands.seed(b)
		res.Score, res.Move = e.searchRoot(b, c, empties, -maxDiff, maxDiff)
	case ModeWLD:
		e.cands.seed(b)
		res.Score, res.Move = e.searchRoot(b, c, empties, -maxDiff, 1)
	default:
		res.Score, res.Move, res.Depth = e.searchMidgame(b, c, start)
	}

	if b.Ply() != ply0 {
		panic(fmt.Sprintf("engine: search left %d moves on the board", b.Ply()-ply0))
	}
	res.Nodes = e.nodes.Load()
	res.TimeUsed = time.Since(start)
	return res
}

// searchMidgame 估值函数只在“轮黑走”的方向上训练过，白方先整体反转。
// 迭代加深到 MidDepth，预算只在两层之间检查。
func (e *Engine) searchMidgame(b *othello.Board, c othello.Color, start time.Time) (int, othello.Pos, int) {
	if c == othello.White {
		b.Reverse()
		defer b.Reverse()
		c = othello.Black
	}
	e.cands.seed(b)

	bestScore, bestMove, done := 0, othello.NoMove, 0
	for depth := 1; depth <= e.cfg.MidDepth; depth++ {
		if depth > 1 && e.overBudget(start) {
			break
		}
		bestScore, bestMove = e.searchRoot(b, c, depth, -scoreInf, scoreInf)
		done = depth
	}
	return bestScore, bestMove, done
}

func (e *Engine) overBudget(start time.Time) bool {
	if e.cfg.NodeLimit > 0 && e.nodes.Load() >= e.cfg.NodeLimit {
		return true
	}
	return e.cfg.TimeLimit > 0 && time.Since(start) >= e.cfg.TimeLimit
}

// searchRoot 根节点：与内部节点相同，但要记住最佳着法
func (e *Engine) searchRoot(b *othello.Board, c othello.Color, depth, alpha, beta int) (int, othello.Pos) {
	bestScore, bestMove := -scoreInf, othello.NoMove
	for _, p := range e.moveOrder(b, c, depth) {
		e.cands.remove(p)
		b.Flip(c, p)
		v := -e.negamax(b, -c, depth-1, -beta, -alpha)
		b.Unflip()
		e.cands.restore(p)

		if v > bestScore {
			bestScore, bestMove = v, p
		}
		if v > alpha {
			alpha = v
			if alpha >= beta {
				break
			}
		}
	}
	return bestScore, bestMove
}

// negamax fail-hard：被剪枝时返回 beta。
// 终局模式下 depth 不起作用，以空格数为准。
func (e *Engine) negamax(b *othello.Board, c othello.Color, depth, alpha, beta int) int {
	if e.mode == ModeMidgame {
		if depth <= 0 {
			e.nodes.Add(1)
			return e.leafValue(b, c)
		}
	} else {
		switch b.Empties() {
		case 0:
			e.nodes.Add(1)
			return b.Diff(c)
		case 1:
			return e.solveLastOne(b, c, e.cands.first())
		case 2:
			p := e.cands.first()
			return e.solveLastTwo(b, c, p, e.cands.next[p], alpha, beta)
		}
		depth = b.Empties()
	}

	moved := false
	if depth > e.cfg.SortDepth {
		for _, p := range e.orderedMoves(b, c) {
			moved = true
			e.cands.remove(p)
			b.Flip(c, p)
			v := -e.negamax(b, -c, depth-1, -beta, -alpha)
			b.Unflip()
			e.cands.restore(p)
			if v > alpha {
				alpha = v
				if alpha >= beta {
					return beta
				}
			}
		}
	} else {
		for p := e.cands.first(); p != candHead; p = e.cands.next[p] {
			if b.Flip(c, p) == 0 {
				continue
			}
			moved = true
			e.cands.remove(p)
			v := -e.negamax(b, -c, depth-1, -beta, -alpha)
			e.cands.restore(p)
			b.Unflip()
			if v > alpha {
				alpha = v
				if alpha >= beta {
					return beta
				}
			}
		}
	}
	if moved {
		return alpha
	}

	// 无子可下：对方也不能下就是终局，否则 pass，深度不变
	if !b.CanPlay(-c) {
		e.nodes.Add(1)
		return e.terminalValue(b, c)
	}
	return -e.negamax(b, -c, depth, -beta, -alpha)
}

// leafValue 中局叶子：估值是黑方视角
func (e *Engine) leafValue(b *othello.Board, c othello.Color) int {
	v := e.evaluate(b)
	if c == othello.White {
		return -v
	}
	return v
}

func (e *Engine) terminalValue(b *othello.Board, c othello.Color) int {
	if e.mode == ModeMidgame {
		return b.Diff(c) * DiskValue
	}
	return b.Diff(c)
}

// solveLastOne 只剩 p 一个空格：直接按翻转数算出终局子数差
func (e *Engine) solveLastOne(b *othello.Board, c othello.Color, p othello.Pos) int {
	e.nodes.Add(1)
	own, opp := b.Count(c), b.Count(-c)
	if n := b.CountFlips(c, p); n > 0 {
		return own + n + 1 - (opp - n)
	}
	if n := b.CountFlips(-c, p); n > 0 {
		return own - n - (opp + n + 1)
	}
	return own - opp
}

// solveLastTwo 剩 p、q 两个空格
func (e *Engine) solveLastTwo(b *othello.Board, c othello.Color, p, q othello.Pos, alpha, beta int) int {
	if v, ok := e.lastTwoFor(b, c, p, q); ok {
		return failHard(v, alpha, beta)
	}
	if v, ok := e.lastTwoFor(b, -c, p, q); ok {
		return failHard(-v, alpha, beta)
	}
	e.nodes.Add(1)
	return failHard(b.Diff(c), alpha, beta)
}

// lastTwoFor c 在两个空格里选一个下，另一个交给 solveLastOne
func (e *Engine) lastTwoFor(b *othello.Board, c othello.Color, p, q othello.Pos) (int, bool) {
	best, moved := -scoreInf, false
	for _, sq := range [2][2]othello.Pos{{p, q}, {q, p}} {
		if b.Flip(c, sq[0]) == 0 {
			continue
		}
		moved = true
		v := -e.solveLastOne(b, -c, sq[1])
		b.Unflip()
		if v > best {
			best = v
		}
	}
	return best, moved
}

func failHard(v, alpha, beta int) int {
	if v >= beta {
		return beta
	}
	if v > alpha {
		return v
	}
	return alpha
}
