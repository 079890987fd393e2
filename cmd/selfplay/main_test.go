package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"othello/internal/engine"
	"othello/internal/learn"
	"othello/internal/othello"
)

// 权重文件读坏时从全零开始学，坏文件留在 .bad，新权重照常写回原路径
func TestBrokenWeightsStartFromZero(t *testing.T) {
	for _, size := range []int{0, 100} {
		dir := t.TempDir()
		path := filepath.Join(dir, "eval.dat")
		if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
			t.Fatal(err)
		}

		eval := engine.NewEvaluator()
		eval.SetWeight(othello.KindParity, 0, 123)
		if got := loadWeights(eval, path); got != engine.WeightsBroken {
			t.Fatalf("%d-byte file: status got=%v want=%v", size, got, engine.WeightsBroken)
		}
		if w := eval.Weight(othello.KindParity, 0); w != 0 {
			t.Fatalf("%d-byte file: weights not reset, parity=%d", size, w)
		}
		if info, err := os.Stat(path + ".bad"); err != nil || info.Size() != int64(size) {
			t.Fatalf("%d-byte file: broken copy not kept: %v", size, err)
		}

		cfg := learn.DefaultConfig()
		cfg.Seed = 1
		cfg.Black.MidDepth, cfg.Black.WLDEmpties, cfg.Black.ExactEmpties = 1, 6, 6
		cfg.White = cfg.Black
		cfg.WeightsPath = path
		if _, err := learn.NewTrainer(eval, cfg).Run(context.Background(), 1); err != nil {
			t.Fatalf("%d-byte file: run: %v", size, err)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() != engine.WeightsFileSize() {
			t.Fatalf("%d-byte file: weights not written back: %v", size, err)
		}
		if got := loadWeights(engine.NewEvaluator(), path); got != engine.WeightsLoaded {
			t.Fatalf("%d-byte file: reload status got=%v", size, got)
		}
	}
}

func TestMissingWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.dat")
	if got := loadWeights(engine.NewEvaluator(), path); got != engine.WeightsMissing {
		t.Fatalf("status got=%v want=%v", got, engine.WeightsMissing)
	}
	if _, err := os.Stat(path + ".bad"); !os.IsNotExist(err) {
		t.Fatalf("nothing should be moved aside: %v", err)
	}
}
