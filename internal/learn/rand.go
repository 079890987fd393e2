package learn

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"othello/internal/othello"
)

// NewRNG 固定种子得到可复现的随机序列；seed 为 0 时取系统熵
func NewRNG(seed uint64) *frand.RNG {
	if seed == 0 {
		key := frand.Entropy256()
		return frand.NewCustom(key[:], 1024, 12)
	}
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return frand.NewCustom(key, 1024, 12)
}

// RandomMove 在 c 的合法着法中等概率选一个；无棋可下返回 NoMove
func RandomMove(b *othello.Board, c othello.Color, rng *frand.RNG) othello.Pos {
	var buf [32]othello.Pos
	moves := b.LegalMoves(c, buf[:0])
	if len(moves) == 0 {
		return othello.NoMove
	}
	return moves[rng.Intn(len(moves))]
}

// RandomOpening 从当前局面随机走 n 轮（无棋可下的一轮算 pass），返回之后轮到的一方
// 和实际落子的颜色序列
func RandomOpening(b *othello.Board, c othello.Color, n int, rng *frand.RNG) (othello.Color, []othello.Color) {
	movers := make([]othello.Color, 0, n)
	for i := 0; i < n; i++ {
		if p := RandomMove(b, c, rng); p != othello.NoMove {
			b.Flip(c, p)
			movers = append(movers, c)
		}
		c = -c
	}
	return c, movers
}
