package engine

import (
	"sync/atomic"
	"time"

	"othello/internal/othello"
)

// Mode 根节点按剩余空格选的搜索方式
type Mode int8

const (
	ModeMidgame Mode = iota // 定深 + 估值函数
	ModeWLD                 // 只分胜负和
	ModeExact               // 精确子数差
)

func (m Mode) String() string {
	switch m {
	case ModeWLD:
		return "wld"
	case ModeExact:
		return "exact"
	}
	return "midgame"
}

// 搜索配置
type SearchConfig struct {
	MidDepth     int // 中局搜索深度（ply）
	WLDEmpties   int // 空格数不超过它时做胜负搜索
	ExactEmpties int // 空格数不超过它时做完全读秒
	SortDepth    int // 剩余深度大于它才按估值排序

	// 只在中局迭代加深的两层之间检查，不会打断正在进行的一层
	NodeLimit int64
	TimeLimit time.Duration
}

// DefaultSearchConfig mid=4, wld=12, exact=12
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MidDepth:     4,
		WLDEmpties:   12,
		ExactEmpties: 12,
		SortDepth:    2,
	}
}

// 搜索结果
type SearchResult struct {
	Move     othello.Pos   // 最佳着法，无子可下时为 othello.NoMove
	Score    int           // 落子方视角。中局单位为 DiskValue，终局为子数差
	Mode     Mode          // 使用的搜索方式
	Depth    int           // 中局实际完成的深度；终局为空格数
	Nodes    int64         // 叶子数
	TimeUsed time.Duration // 花费时间
}

// Engine 单线程搜索器。一个 Engine 同一时间只能服务一个 Search 调用；
// 多个 Engine 可以共享同一个只读的 Evaluator。
type Engine struct {
	eval  *Evaluator
	cfg   SearchConfig
	nodes atomic.Int64
	mode  Mode

	cache *evalCache
	cands candidateList
}

func NewEngine(eval *Evaluator, cfg SearchConfig) *Engine {
	if eval == nil {
		eval = NewEvaluator()
	}
	if cfg.MidDepth <= 0 {
		cfg.MidDepth = 1
	}
	return &Engine{
		eval:  eval,
		cfg:   cfg,
		cache: newEvalCache(),
	}
}

func (e *Engine) Config() SearchConfig { return e.cfg }

func (e *Engine) SetConfig(cfg SearchConfig) {
	if cfg.MidDepth <= 0 {
		cfg.MidDepth = 1
	}
	e.cfg = cfg
}

func (e *Engine) Evaluator() *Evaluator { return e.eval }

// Nodes 当前（或上一次）搜索已访问的叶子数，可在其他 goroutine 里读
func (e *Engine) Nodes() int64 { return e.nodes.Load() }
