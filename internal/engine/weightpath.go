package engine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// WeightsStatus LoadWeights 的结果
type WeightsStatus int8

const (
	WeightsLoaded  WeightsStatus = iota
	WeightsMissing               // 文件不存在，权重全零
	WeightsBroken                // 读不满或多出数据，权重全零，原文件已挪开
)

func (s WeightsStatus) String() string {
	switch s {
	case WeightsMissing:
		return "missing"
	case WeightsBroken:
		return "broken"
	}
	return "loaded"
}

// brokenSuffix 坏权重文件改名后加的后缀
const brokenSuffix = ".bad"

// LoadWeights 读 path。不存在或读坏时权重回到全零，返回的错误只用来记日志。
// 读坏的文件改名为 path+".bad"，之后 SaveFile 写同一路径时不会把它覆盖掉。
func (e *Evaluator) LoadWeights(path string) (WeightsStatus, error) {
	err := e.LoadFile(path)
	if err == nil {
		return WeightsLoaded, nil
	}
	info, statErr := os.Stat(path)
	if os.IsNotExist(errors.Cause(err)) || os.IsNotExist(statErr) {
		return WeightsMissing, err
	}
	if statErr != nil || !info.Mode().IsRegular() {
		return WeightsBroken, err
	}
	bad := path + brokenSuffix
	if rerr := os.Rename(path, bad); rerr != nil {
		return WeightsBroken, errors.WithMessagef(err, "could not move aside (%v)", rerr)
	}
	return WeightsBroken, errors.WithMessagef(err, "%d bytes, want %d, moved to %s", info.Size(), WeightsFileSize(), bad)
}

// weightsCandidates 原路径；相对路径再试用户配置目录 othello/ 下和可执行文件目录下的同名文件
func weightsCandidates(path string) []string {
	out := []string{path}
	if filepath.IsAbs(path) {
		return out
	}
	base := filepath.Base(path)
	if dir, err := os.UserConfigDir(); err == nil {
		out = append(out, filepath.Join(dir, "othello", base))
	}
	if exe, err := os.Executable(); err == nil {
		out = append(out, filepath.Join(filepath.Dir(exe), base))
	}
	return out
}

// ResolveWeightsPath 返回第一个存在的候选权重文件
func ResolveWeightsPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty weights path")
	}
	cands := weightsCandidates(path)
	for _, p := range cands {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", errors.Errorf("weights file not found, checked: %s", strings.Join(cands, ", "))
}
