package othello

import "fmt"

const (
	Size      = 8
	Stride    = Size + 1 // 第 0 列兼作左右两侧的墙
	NumCells  = Size * Size
	BoardLen  = Stride*(Size+2) + 1
	MaxFlips  = 4 * (Size - 2) // 一步翻转数的上界
	FirstCell = Pos(1*Stride + 1)
	LastCell  = Pos(Size*Stride + Size)
)

type Color int8

const (
	Empty Color = 0
	Black Color = 1
	White Color = -1
	Wall  Color = 2
)

// Opponent 黑白互换；空位和墙原样返回
func (c Color) Opponent() Color {
	if c == Black || c == White {
		return -c
	}
	return c
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	}
	return fmt.Sprintf("Color(%d)", int8(c))
}

func mustPlayer(c Color) {
	if c != Black && c != White {
		panic(fmt.Sprintf("othello: %v is not a player color", c))
	}
}

// Pos 带墙棋盘上的坐标：row*9 + col，行列都从 1 开始。A1=10，H8=80。
type Pos int

// NoMove 表示 pass / 无着法
const NoMove Pos = -1

func PosOf(col, row int) Pos {
	return Pos(row*Stride + col)
}

func (p Pos) Col() int { return int(p) % Stride }
func (p Pos) Row() int { return int(p) / Stride }

// OnBoard 是否在 8x8 可下区域内
func (p Pos) OnBoard() bool {
	if p < FirstCell || p > LastCell {
		return false
	}
	c := p.Col()
	return c >= 1 && c <= Size
}

var directions = [8]Pos{
	-Stride - 1, -Stride, -Stride + 1,
	-1, +1,
	Stride - 1, Stride, Stride + 1,
}

// Result 终局判定
type Result int8

const (
	Draw     Result = 0
	BlackWin Result = 1
	WhiteWin Result = -1
)

func (r Result) String() string {
	switch r {
	case BlackWin:
		return "black wins"
	case WhiteWin:
		return "white wins"
	}
	return "draw"
}

// Turn 轮到某方时的局面状态
type Turn int8

const (
	TurnMove   Turn = iota // 有合法着法
	TurnPass               // 无子可下，但对方可以
	TurnFinish             // 双方都不能下，终局
)

func (t Turn) String() string {
	switch t {
	case TurnMove:
		return "move"
	case TurnPass:
		return "pass"
	}
	return "finish"
}

// MoveRecord 悔棋日志里的一条记录
type MoveRecord struct {
	Pos      Pos
	Color    Color // 落子方，撤销时被翻的子还原成对方颜色
	NumFlips int
	Flips    [MaxFlips]Pos
}
