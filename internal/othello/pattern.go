package othello

import "fmt"

// Kind 模式种类。顺序即权重文件中各表的顺序，不能改。
type Kind int

const (
	KindHV2 Kind = iota
	KindHV3
	KindHV4
	KindDiag8
	KindDiag7
	KindDiag6
	KindDiag5
	KindDiag4
	KindEdge
	KindCorner
	KindParity
	NumKinds
)

var kindNames = [NumKinds]string{
	"hv2", "hv3", "hv4", "diag8", "diag7", "diag6", "diag5", "diag4", "edge", "corner", "parity",
}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Cells 该种类每个实例的格子数；Parity 不是格子模式，返回 0
func (k Kind) Cells() int {
	switch k {
	case KindDiag7:
		return 7
	case KindDiag6:
		return 6
	case KindDiag5:
		return 5
	case KindDiag4:
		return 4
	case KindParity:
		return 0
	}
	return 8
}

// TableSize 权重表长度 3^n，Parity 为 2
func (k Kind) TableSize() int {
	if k == KindParity {
		return 2
	}
	return pow3(k.Cells())
}

const (
	NumInstances   = 42
	maxCellEntries = 6
	digitBlack     = 0
	digitWhite     = 1
	digitEmpty     = 2
)

// Instance 一个模式实例：种类 + 按权位从高到低排列的格子
type Instance struct {
	Kind  Kind
	Cells []Pos
}

type cellEntry struct {
	inst int
	pow  int
}

type cellEntries struct {
	n int
	e [maxCellEntries]cellEntry
}

var (
	instances   = buildInstances()
	cellTable   = buildCellTable(instances)
	emptyValues = buildEmptyValues(instances)
)

// digitOf 以 color+1 为下标：White, Empty, Black
var digitOf = [3]int{digitWhite, digitEmpty, digitBlack}

func digit(c Color) int { return digitOf[c+1] }

func pow3(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 3
	}
	return v
}

// Instances 返回全部模式实例（只读）
func Instances() []Instance { return instances }

// 8 种对称变换两两成对：t 与 t∘转置
var symmetries = [8]func(c, r int) (int, int){
	func(c, r int) (int, int) { return c, r },
	func(c, r int) (int, int) { return r, c },
	func(c, r int) (int, int) { return Size + 1 - c, r },
	func(c, r int) (int, int) { return Size + 1 - r, c },
	func(c, r int) (int, int) { return c, Size + 1 - r },
	func(c, r int) (int, int) { return r, Size + 1 - c },
	func(c, r int) (int, int) { return Size + 1 - c, Size + 1 - r },
	func(c, r int) (int, int) { return Size + 1 - r, Size + 1 - c },
}

type cr struct{ c, r int }

func transform(cells []cr, sym int) []Pos {
	out := make([]Pos, len(cells))
	for i, x := range cells {
		c, r := symmetries[sym](x.c, x.r)
		out[i] = PosOf(c, r)
	}
	return out
}

func buildInstances() []Instance {
	out := make([]Instance, 0, NumInstances)

	// 横竖线：第 k 行、第 9-k 行、第 k 列、第 9-k 列
	for _, hv := range []struct {
		line int
		kind Kind
	}{{2, KindHV2}, {3, KindHV3}, {4, KindHV4}} {
		lines := [4][]Pos{}
		for i := 1; i <= Size; i++ {
			lines[0] = append(lines[0], PosOf(i, hv.line))
			lines[1] = append(lines[1], PosOf(i, Size+1-hv.line))
			lines[2] = append(lines[2], PosOf(hv.line, i))
			lines[3] = append(lines[3], PosOf(Size+1-hv.line, i))
		}
		for _, l := range lines {
			out = append(out, Instance{Kind: hv.kind, Cells: l})
		}
	}

	// 两条主对角线
	var main, anti []Pos
	for i := 1; i <= Size; i++ {
		main = append(main, PosOf(i, i))
		anti = append(anti, PosOf(i, Size+1-i))
	}
	out = append(out, Instance{Kind: KindDiag8, Cells: main}, Instance{Kind: KindDiag8, Cells: anti})

	// 短对角线，长度 n，偏移 k=8-n
	for _, dg := range []struct {
		n    int
		kind Kind
	}{{7, KindDiag7}, {6, KindDiag6}, {5, KindDiag5}, {4, KindDiag4}} {
		k := Size - dg.n
		var a, b, c, d []Pos
		for i := 1; i <= dg.n; i++ {
			a = append(a, PosOf(i, i+k))
			b = append(b, PosOf(i+k, i))
			c = append(c, PosOf(i, dg.n+1-i))
			d = append(d, PosOf(i+k, Size+1-i))
		}
		for _, l := range [][]Pos{a, b, c, d} {
			out = append(out, Instance{Kind: dg.kind, Cells: l})
		}
	}

	// 边 + X 位：从每个角出发沿两条边各一个，成对排列保证镜像读数相同
	edge := make([]cr, 0, 8)
	for c := 1; c <= 7; c++ {
		edge = append(edge, cr{c, 1})
	}
	edge = append(edge, cr{2, 2})
	for sym := 0; sym < 8; sym++ {
		out = append(out, Instance{Kind: KindEdge, Cells: transform(edge, sym)})
	}

	// 角上 3x3 去掉最远角
	corner := []cr{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {2, 2}, {3, 2}, {1, 3}, {2, 3}}
	for _, sym := range []int{0, 2, 4, 6} {
		out = append(out, Instance{Kind: KindCorner, Cells: transform(corner, sym)})
	}

	if len(out) != NumInstances {
		panic(fmt.Sprintf("othello: built %d pattern instances, want %d", len(out), NumInstances))
	}
	return out
}

func buildCellTable(insts []Instance) [BoardLen]cellEntries {
	var t [BoardLen]cellEntries
	for i, inst := range insts {
		n := len(inst.Cells)
		for j, p := range inst.Cells {
			ce := &t[p]
			if ce.n == maxCellEntries {
				panic(fmt.Sprintf("othello: cell %v is in more than %d patterns", p, maxCellEntries))
			}
			ce.e[ce.n] = cellEntry{inst: i, pow: pow3(n - 1 - j)}
			ce.n++
		}
	}
	return t
}

func buildEmptyValues(insts []Instance) [NumInstances]int {
	var v [NumInstances]int
	for i, inst := range insts {
		for j := range inst.Cells {
			v[i] += digitEmpty * pow3(len(inst.Cells)-1-j)
		}
	}
	return v
}

// PatternIndex 直接按格子读出实例的三进制值，不依赖增量累加器
func (b *Board) PatternIndex(inst int) int {
	v := 0
	for _, p := range instances[inst].Cells {
		v = v*3 + digit(b.cells[p])
	}
	return v
}

// PatternValue O(1) 读取实例当前的累加值
func (b *Board) PatternValue(inst int) int {
	return b.patterns[inst]
}

// Patterns 当前全部累加值的拷贝
func (b *Board) Patterns() [NumInstances]int {
	return b.patterns
}

// PatternsFromScratch 从空盘值出发，按已落子格子重新累加
func (b *Board) PatternsFromScratch() [NumInstances]int {
	v := emptyValues
	for _, p := range playable {
		c := b.cells[p]
		if c == Empty {
			continue
		}
		ce := &cellTable[p]
		for i := 0; i < ce.n; i++ {
			v[ce.e[i].inst] += (digit(c) - digitEmpty) * ce.e[i].pow
		}
	}
	return v
}

// RecomputePatterns 重建累加器（仅在整盘初始化时使用）
func (b *Board) RecomputePatterns() {
	b.patterns = b.PatternsFromScratch()
}

// set 是唯一改变格子颜色的入口：同时维护模式累加器和哈希
func (b *Board) set(p Pos, c Color) {
	old := b.cells[p]
	if old == c {
		return
	}
	delta := digit(c) - digit(old)
	ce := &cellTable[p]
	for i := 0; i < ce.n; i++ {
		b.patterns[ce.e[i].inst] += delta * ce.e[i].pow
	}
	b.hash ^= diskKey(old, p) ^ diskKey(c, p)
	b.cells[p] = c
}
