package othello

import "fmt"

// IsLegal p 为空，且至少一个方向上是连续的对方子并以己方子收尾
func (b *Board) IsLegal(c Color, p Pos) bool {
	mustPlayer(c)
	checkPos(p)
	if b.cells[p] != Empty {
		return false
	}
	opp := -c
	for _, d := range probeDirs[p] {
		q := p + d
		if b.cells[q] != opp {
			continue
		}
		for q += d; b.cells[q] == opp; q += d {
		}
		if b.cells[q] == c {
			return true
		}
	}
	return false
}

// CountFlips 不改棋盘，返回在 p 落子会翻转的子数；0 即不合法
func (b *Board) CountFlips(c Color, p Pos) int {
	mustPlayer(c)
	checkPos(p)
	if b.cells[p] != Empty {
		return 0
	}
	opp := -c
	n := 0
	for _, d := range probeDirs[p] {
		q := p + d
		if b.cells[q] != opp {
			continue
		}
		run := 1
		for q += d; b.cells[q] == opp; q += d {
			run++
		}
		if b.cells[q] == c {
			n += run
		}
	}
	return n
}

// Flip 在 p 落 c 子并翻转，写一条悔棋记录，返回翻转数。
// 不合法时返回 0 且不改棋盘。
func (b *Board) Flip(c Color, p Pos) int {
	mustPlayer(c)
	checkPos(p)
	if b.cells[p] != Empty {
		return 0
	}
	opp := -c
	rec := MoveRecord{Pos: p, Color: c}
	for _, d := range probeDirs[p] {
		q := p + d
		if b.cells[q] != opp {
			continue
		}
		for q += d; b.cells[q] == opp; q += d {
		}
		if b.cells[q] != c {
			continue
		}
		for r := p + d; r != q; r += d {
			b.set(r, c)
			rec.Flips[rec.NumFlips] = r
			rec.NumFlips++
		}
	}
	n := rec.NumFlips
	if n == 0 {
		return 0
	}
	b.set(p, c)
	b.count[c+1] += n + 1
	b.count[opp+1] -= n
	b.count[Empty+1]--
	b.undo = append(b.undo, rec)
	return n
}

// Unflip 撤销最近一步
func (b *Board) Unflip() {
	last := len(b.undo) - 1
	if last < 0 {
		panic("othello: unflip with empty undo log")
	}
	rec := &b.undo[last]
	c, opp := rec.Color, -rec.Color
	b.set(rec.Pos, Empty)
	for i := 0; i < rec.NumFlips; i++ {
		b.set(rec.Flips[i], opp)
	}
	b.count[c+1] -= rec.NumFlips + 1
	b.count[opp+1] += rec.NumFlips
	b.count[Empty+1]++
	b.undo = b.undo[:last]
}

// CanPlay c 是否有任意合法着法
func (b *Board) CanPlay(c Color) bool {
	for _, p := range playable {
		if b.cells[p] == Empty && b.IsLegal(c, p) {
			return true
		}
	}
	return false
}

// LegalMoves 把 c 的合法着法追加到 dst
func (b *Board) LegalMoves(c Color, dst []Pos) []Pos {
	for _, p := range playable {
		if b.cells[p] == Empty && b.IsLegal(c, p) {
			dst = append(dst, p)
		}
	}
	return dst
}

func (b *Board) CountLegalMoves(c Color) int {
	n := 0
	for _, p := range playable {
		if b.cells[p] == Empty && b.IsLegal(c, p) {
			n++
		}
	}
	return n
}

// State 轮到 c 时：能下 / 必须 pass / 终局
func (b *Board) State(c Color) Turn {
	if b.CanPlay(c) {
		return TurnMove
	}
	if b.CanPlay(-c) {
		return TurnPass
	}
	return TurnFinish
}

// Perft 走法树叶子数，pass 也算一层
func (b *Board) Perft(c Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var buf [32]Pos
	moves := b.LegalMoves(c, buf[:0])
	if len(moves) == 0 {
		if !b.CanPlay(-c) {
			return 1
		}
		return b.Perft(-c, depth-1)
	}
	var n uint64
	for _, p := range moves {
		if b.Flip(c, p) == 0 {
			panic(fmt.Sprintf("othello: legal move %v did not flip", p))
		}
		n += b.Perft(-c, depth-1)
		b.Unflip()
	}
	return n
}
