package othello

// 每格黑白各一个随机键，splitmix64 固定种子生成，进程内不变
var zobristDisks = initZobrist()

func initZobrist() (keys [2][BoardLen]uint64) {
	seed := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		seed += 0x9E3779B97F4A7C15
		z := seed
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}
	for side := 0; side < 2; side++ {
		for p := 0; p < BoardLen; p++ {
			keys[side][p] = next()
		}
	}
	return keys
}

func diskKey(c Color, p Pos) uint64 {
	switch c {
	case Black:
		return zobristDisks[0][p]
	case White:
		return zobristDisks[1][p]
	}
	return 0
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希（不含轮到谁走）
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for _, p := range playable {
		h ^= diskKey(b.cells[p], p)
	}
	return h
}

// Hash 增量维护的哈希
func (b *Board) Hash() uint64 { return b.hash }
