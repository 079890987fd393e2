package othello

import "fmt"

// Board 带一圈墙的 8x8 棋盘。子数、模式累加器、哈希都随落子增量更新，
// 搜索时原地 Flip/Unflip，结束前必须全部撤销。
type Board struct {
	cells    [BoardLen]Color
	count    [3]int // 下标 color+1：白、空、黑
	patterns [NumInstances]int
	hash     uint64
	undo     []MoveRecord
}

var (
	playable   = buildPlayable()
	probeDirs  = buildProbeDirs()
	wallTempl  = buildWallTemplate()
	startDisks = map[Pos]Color{
		PosOf(4, 4): White,
		PosOf(5, 5): White,
		PosOf(4, 5): Black,
		PosOf(5, 4): Black,
	}
)

func buildPlayable() []Pos {
	out := make([]Pos, 0, NumCells)
	for r := 1; r <= Size; r++ {
		for c := 1; c <= Size; c++ {
			out = append(out, PosOf(c, r))
		}
	}
	return out
}

// 只有沿该方向前两格都在盘内，才可能夹住对方的子
func buildProbeDirs() [BoardLen][]Pos {
	var t [BoardLen][]Pos
	for _, p := range buildPlayable() {
		for _, d := range directions {
			if (p + d).OnBoard() && (p + 2*d).OnBoard() {
				t[p] = append(t[p], d)
			}
		}
	}
	return t
}

func buildWallTemplate() [BoardLen]Color {
	var t [BoardLen]Color
	for i := range t {
		t[i] = Wall
	}
	for _, p := range buildPlayable() {
		t[p] = Empty
	}
	return t
}

// Playable 64 个可下格，按 A1..H1, A2.. 的顺序
func Playable() []Pos { return playable }

// NewBoard 开局局面
func NewBoard() *Board {
	b := &Board{undo: make([]MoveRecord, 0, NumCells)}
	b.Reset()
	return b
}

// Reset 回到开局，清空悔棋日志
func (b *Board) Reset() {
	b.cells = wallTempl
	for p, c := range startDisks {
		b.cells[p] = c
	}
	b.undo = b.undo[:0]
	b.sync()
}

// sync 整盘扫描重建子数、模式、哈希。只在初始化和解码时调用。
func (b *Board) sync() {
	b.count = [3]int{}
	for _, p := range playable {
		b.count[b.cells[p]+1]++
	}
	b.RecomputePatterns()
	b.hash = b.CalculateHash()
}

// Clone 深拷贝，包括悔棋日志
func (b *Board) Clone() *Board {
	nb := *b
	nb.undo = make([]MoveRecord, len(b.undo), cap(b.undo))
	copy(nb.undo, b.undo)
	return &nb
}

func checkPos(p Pos) {
	if !p.OnBoard() {
		panic(fmt.Sprintf("othello: position %d is off the board", int(p)))
	}
}

// At 读格子状态（墙外坐标返回 Wall）
func (b *Board) At(p Pos) Color {
	if p < 0 || int(p) >= BoardLen {
		return Wall
	}
	return b.cells[p]
}

// Count 某色子数；Empty 返回空格数
func (b *Board) Count(c Color) int {
	if c == Wall {
		return 0
	}
	return b.count[c+1]
}

func (b *Board) Empties() int { return b.count[Empty+1] }

// Diff 从 c 的角度看的子数差
func (b *Board) Diff(c Color) int {
	return b.count[c+1] - b.count[c.Opponent()+1]
}

// Ply 自上次 Reset 以来落下的手数
func (b *Board) Ply() int { return len(b.undo) }

// LastMove 最近一步的记录
func (b *Board) LastMove() (MoveRecord, bool) {
	if len(b.undo) == 0 {
		return MoveRecord{}, false
	}
	return b.undo[len(b.undo)-1], true
}

// Judge 比较双方子数
func (b *Board) Judge() Result {
	switch d := b.Diff(Black); {
	case d > 0:
		return BlackWin
	case d < 0:
		return WhiteWin
	}
	return Draw
}

// Reverse 黑白互换。子数、日志、模式、哈希同步互换。
func (b *Board) Reverse() {
	for _, p := range playable {
		if c := b.cells[p]; c == Black || c == White {
			b.set(p, -c)
		}
	}
	b.count[Black+1], b.count[White+1] = b.count[White+1], b.count[Black+1]
	for i := range b.undo {
		b.undo[i].Color = -b.undo[i].Color
	}
}
