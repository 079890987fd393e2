package engine

import "othello/internal/othello"

// 静态优先顺序：角、角旁斜二格、边上离角两格、边中、中心环、中心、内圈、C 位、X 位
var priorityOrder = mustParseSquares(
	"A1 H1 A8 H8",
	"C3 F3 C6 F6",
	"C1 F1 A3 H3 A6 H6 C8 F8",
	"D1 E1 A4 H4 A5 H5 D8 E8",
	"D3 E3 C4 F4 C5 F5 D6 E6",
	"D4 E4 D5 E5",
	"C2 D2 E2 F2 B3 G3 B4 G4 B5 G5 B6 G6 C7 D7 E7 F7",
	"B1 G1 A2 H2 A7 H7 B8 G8",
	"B2 G2 B7 G7",
)

func mustParseSquares(groups ...string) []othello.Pos {
	out := make([]othello.Pos, 0, othello.NumCells)
	seen := make(map[othello.Pos]bool, othello.NumCells)
	for _, g := range groups {
		for i := 0; i+1 < len(g); i += 3 {
			p, err := othello.ParseMove(g[i : i+2])
			if err != nil || seen[p] {
				panic("engine: bad priority square " + g[i:i+2])
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	if len(out) != othello.NumCells {
		panic("engine: priority order must list every square once")
	}
	return out
}

// candidateList 空格的双向链表，next/prev 用坐标做下标，head 为哨兵。
// remove/restore 都是 O(1)，restore 必须按 remove 的逆序进行。
type candidateList struct {
	next [othello.BoardLen + 1]othello.Pos
	prev [othello.BoardLen + 1]othello.Pos
}

const candHead = othello.Pos(othello.BoardLen)

// seed 按优先顺序串起当前所有空格
func (l *candidateList) seed(b *othello.Board) {
	last := candHead
	for _, p := range priorityOrder {
		if b.At(p) != othello.Empty {
			continue
		}
		l.next[last] = p
		l.prev[p] = last
		last = p
	}
	l.next[last] = candHead
	l.prev[candHead] = last
}

func (l *candidateList) first() othello.Pos { return l.next[candHead] }

func (l *candidateList) remove(p othello.Pos) {
	l.next[l.prev[p]] = l.next[p]
	l.prev[l.next[p]] = l.prev[p]
}

func (l *candidateList) restore(p othello.Pos) {
	l.next[l.prev[p]] = p
	l.prev[l.next[p]] = p
}
