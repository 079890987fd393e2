package engine

import (
	"math"

	"golang.org/x/exp/constraints"

	"othello/internal/othello"
)

const (
	// 一个子的分值；训练目标 = 子数差 × DiskValue
	DiskValue = 1000
	// 单个权重的上限（饱和，不溢出）
	MaxWeight = 20 * DiskValue

	DefaultLearningRate = 0.01
	DefaultMinFrequency = 2
)

// Evaluator 模式权重表。分数永远是“黑方视角、轮黑走”的，白方调用方取反，
// 或先 Reverse 棋盘。
type Evaluator struct {
	weights [othello.NumKinds][]int32
	sums    [othello.NumKinds][]int64
	counts  [othello.NumKinds][]int32

	LearningRate float64
	MinFrequency int32
}

// 镜像表：nil 表示恒等映射
var mirrors = buildMirrors()

func buildMirrors() [othello.NumKinds][]int32 {
	var m [othello.NumKinds][]int32
	for k := othello.Kind(0); k < othello.NumKinds; k++ {
		switch k {
		case othello.KindEdge, othello.KindParity:
			// 边模式成对列出，镜像实例的读数与原读数相同
			continue
		case othello.KindCorner:
			m[k] = permuteTable(k.Cells(), []int{0, 3, 6, 1, 4, 7, 2, 5})
		default:
			n := k.Cells()
			rev := make([]int, n)
			for i := range rev {
				rev[i] = n - 1 - i
			}
			m[k] = permuteTable(n, rev)
		}
	}
	return m
}

// permuteTable 第 i 位数字取原索引第 perm[i] 位（高位在前）
func permuteTable(n int, perm []int) []int32 {
	size := 1
	for i := 0; i < n; i++ {
		size *= 3
	}
	t := make([]int32, size)
	digits := make([]int, n)
	for idx := 0; idx < size; idx++ {
		v := idx
		for i := n - 1; i >= 0; i-- {
			digits[i] = v % 3
			v /= 3
		}
		m := 0
		for i := 0; i < n; i++ {
			m = m*3 + digits[perm[i]]
		}
		t[idx] = int32(m)
	}
	return t
}

// Mirror 索引在镜像下对应的索引
func Mirror(k othello.Kind, idx int) int {
	if m := mirrors[k]; m != nil {
		return int(m[idx])
	}
	return idx
}

func NewEvaluator() *Evaluator {
	e := &Evaluator{
		LearningRate: DefaultLearningRate,
		MinFrequency: DefaultMinFrequency,
	}
	for k := othello.Kind(0); k < othello.NumKinds; k++ {
		n := k.TableSize()
		e.weights[k] = make([]int32, n)
		e.sums[k] = make([]int64, n)
		e.counts[k] = make([]int32, n)
	}
	return e
}

// Reset 权重和累计全部清零
func (e *Evaluator) Reset() {
	for k := range e.weights {
		clear(e.weights[k])
		clear(e.sums[k])
		clear(e.counts[k])
	}
}

func (e *Evaluator) Weight(k othello.Kind, idx int) int32 { return e.weights[k][idx] }

// SetWeight 直接写一个权重（连同镜像），超限饱和
func (e *Evaluator) SetWeight(k othello.Kind, idx int, w int32) {
	w = clamp(w, -MaxWeight, MaxWeight)
	e.weights[k][idx] = w
	e.weights[k][Mirror(k, idx)] = w
}

// Stats 某索引尚未应用的累计差值和出现次数
func (e *Evaluator) Stats(k othello.Kind, idx int) (sum int64, count int32) {
	return e.sums[k][idx], e.counts[k][idx]
}

// Evaluate 42 个模式实例 + 奇偶
func (e *Evaluator) Evaluate(b *othello.Board) int {
	v := 0
	for i, inst := range othello.Instances() {
		v += int(e.weights[inst.Kind][b.PatternValue(i)])
	}
	v += int(e.weights[othello.KindParity][b.Empties()&1])
	return v
}

// Accumulate 记录 target 与当前估值之差，镜像索引同步累计
func (e *Evaluator) Accumulate(b *othello.Board, target int) {
	diff := int64(target - e.Evaluate(b))
	for i, inst := range othello.Instances() {
		e.add(inst.Kind, b.PatternValue(i), diff)
	}
	e.add(othello.KindParity, b.Empties()&1, diff)
}

func (e *Evaluator) add(k othello.Kind, idx int, diff int64) {
	e.sums[k][idx] += diff
	e.counts[k][idx]++
	if m := Mirror(k, idx); m != idx {
		e.sums[k][m] += diff
		e.counts[k][m]++
	}
}

// ApplyUpdates 出现次数达到 MinFrequency 的索引按平均差值更新，返回更新的个数
func (e *Evaluator) ApplyUpdates() int {
	updated := 0
	for k := range e.weights {
		w, sums, counts := e.weights[k], e.sums[k], e.counts[k]
		for idx := range w {
			cnt := counts[idx]
			if cnt == 0 || cnt < e.MinFrequency {
				continue
			}
			delta := int64(math.Round(float64(sums[idx]) / float64(cnt) * e.LearningRate))
			w[idx] = int32(clamp(int64(w[idx])+delta, -MaxWeight, MaxWeight))
			sums[idx] = 0
			counts[idx] = 0
			updated++
		}
	}
	return updated
}

func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
