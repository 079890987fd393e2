package engine

import "othello/internal/othello"

const evalCacheCap = 1 << 20

// evalCache 静态估值缓存，键为棋盘的 Zobrist 哈希。
// 估值只取决于子的分布，所以不需要区分轮到谁走。
type evalCache struct {
	m map[uint64]int32
}

func newEvalCache() *evalCache {
	return &evalCache{m: make(map[uint64]int32, 1<<14)}
}

// reset 每次根搜索前清空，保证同一局面的搜索结果可复现
func (c *evalCache) reset() {
	clear(c.m)
}

func (c *evalCache) get(key uint64) (int32, bool) {
	v, ok := c.m[key]
	return v, ok
}

func (c *evalCache) store(key uint64, v int32) {
	if len(c.m) >= evalCacheCap {
		clear(c.m)
	}
	c.m[key] = v
}

// evaluate 黑方视角的静态估值，带缓存
func (e *Engine) evaluate(b *othello.Board) int {
	key := b.Hash()
	if v, ok := e.cache.get(key); ok {
		return int(v)
	}
	v := e.eval.Evaluate(b)
	e.cache.store(key, int32(v))
	return v
}
