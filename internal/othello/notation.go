package othello

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrBadMove  = errors.New("malformed move")
	ErrBadBoard = errors.New("malformed board string")
)

// ParseMove 解析 "d3" / "D3"，列 A-H，行 1-8
func ParseMove(s string) (Pos, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return NoMove, errors.Wrapf(ErrBadMove, "%q", s)
	}
	col := int(s[0]|0x20) - 'a' + 1
	row := int(s[1]) - '0'
	if col < 1 || col > Size || row < 1 || row > Size {
		return NoMove, errors.Wrapf(ErrBadMove, "%q", s)
	}
	return PosOf(col, row), nil
}

func (p Pos) String() string {
	if p == NoMove {
		return "pass"
	}
	if !p.OnBoard() {
		return fmt.Sprintf("Pos(%d)", int(p))
	}
	return fmt.Sprintf("%c%d", 'A'+p.Col()-1, p.Row())
}

func cellChar(c Color) byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return '-'
}

// Encode 64 个字符，从 A1 开始逐行：X 黑，O 白，- 空
func (b *Board) Encode() string {
	var sb strings.Builder
	sb.Grow(NumCells)
	for _, p := range playable {
		sb.WriteByte(cellChar(b.cells[p]))
	}
	return sb.String()
}

// Decode 解析 Encode 的输出；忽略空白和 '/'。得到的棋盘没有悔棋记录。
func Decode(s string) (*Board, error) {
	b := &Board{undo: make([]MoveRecord, 0, NumCells)}
	b.cells = wallTempl
	i := 0
	for _, ch := range s {
		var c Color
		switch ch {
		case ' ', '\t', '\n', '\r', '/':
			continue
		case 'X', 'x', '*':
			c = Black
		case 'O', 'o':
			c = White
		case '-', '.':
			c = Empty
		default:
			return nil, errors.Wrapf(ErrBadBoard, "unexpected %q at cell %d", ch, i)
		}
		if i >= NumCells {
			return nil, errors.Wrap(ErrBadBoard, "too many cells")
		}
		b.cells[playable[i]] = c
		i++
	}
	if i != NumCells {
		return nil, errors.Wrapf(ErrBadBoard, "got %d cells, want %d", i, NumCells)
	}
	b.sync()
	return b, nil
}

func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  A B C D E F G H\n")
	for r := 1; r <= Size; r++ {
		sb.WriteByte(byte('0' + r))
		for c := 1; c <= Size; c++ {
			sb.WriteByte(' ')
			sb.WriteByte(cellChar(b.cells[PosOf(c, r)]))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "black %d  white %d  empty %d\n", b.Count(Black), b.Count(White), b.Empties())
	return sb.String()
}
