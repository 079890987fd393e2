package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"othello/internal/othello"
)

// renderer 终端棋盘。黑白子、可下点、最后一手用不同样式区分
type renderer struct {
	out *termenv.Output
}

func newRenderer(w io.Writer, plain bool) *renderer {
	opts := []termenv.OutputOption{}
	if plain {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &renderer{out: termenv.NewOutput(w, opts...)}
}

func (r *renderer) cell(b *othello.Board, p othello.Pos, turn othello.Color, last othello.Pos) string {
	var s termenv.Style
	switch b.At(p) {
	case othello.Black:
		s = r.out.String("X").Foreground(r.out.Color("#e0e0e0")).Bold()
	case othello.White:
		s = r.out.String("O").Foreground(r.out.Color("#ff5f5f")).Bold()
	default:
		if turn != othello.Empty && b.IsLegal(turn, p) {
			s = r.out.String("*").Foreground(r.out.Color("#5fd75f"))
		} else {
			s = r.out.String("-").Faint()
		}
	}
	if p == last {
		s = s.Underline()
	}
	return s.String()
}

// board turn 为 Empty 时不标可下点
func (r *renderer) board(b *othello.Board, turn othello.Color) string {
	last := othello.NoMove
	if rec, ok := b.LastMove(); ok {
		last = rec.Pos
	}
	var sb strings.Builder
	sb.WriteString("  A B C D E F G H\n")
	for row := 1; row <= othello.Size; row++ {
		fmt.Fprintf(&sb, "%d", row)
		for col := 1; col <= othello.Size; col++ {
			sb.WriteByte(' ')
			sb.WriteString(r.cell(b, othello.PosOf(col, row), turn, last))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "X %d  O %d  empty %d\n", b.Count(othello.Black), b.Count(othello.White), b.Empties())
	return sb.String()
}

func (r *renderer) headline(s string) string {
	return r.out.String(s).Bold().String()
}
