package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"othello/internal/othello"
)

func filledEvaluator(seed uint64) *Evaluator {
	rng := testRNG(seed)
	e := NewEvaluator()
	for k := range e.weights {
		for i := range e.weights[k] {
			e.weights[k][i] = int32(rng.Intn(2*MaxWeight+1) - MaxWeight)
		}
	}
	return e
}

func sameWeights(a, b *Evaluator) bool {
	for k := range a.weights {
		if len(a.weights[k]) != len(b.weights[k]) {
			return false
		}
		for i := range a.weights[k] {
			if a.weights[k][i] != b.weights[k][i] {
				return false
			}
		}
	}
	return true
}

func allZero(e *Evaluator) bool {
	for k := range e.weights {
		for _, w := range e.weights[k] {
			if w != 0 {
				return false
			}
		}
	}
	return true
}

func TestWeightsRoundTrip(t *testing.T) {
	src := filledEvaluator(21)
	var buf bytes.Buffer
	if err := src.Save(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := 0
	for k := othello.Kind(0); k < othello.NumKinds; k++ {
		want += 4 * k.TableSize()
	}
	if buf.Len() != want || int64(want) != WeightsFileSize() {
		t.Fatalf("file size: got=%d want=%d (WeightsFileSize %d)", buf.Len(), want, WeightsFileSize())
	}

	dst := NewEvaluator()
	if err := dst.Load(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !sameWeights(src, dst) {
		t.Fatalf("weights differ after round trip")
	}
}

func TestWeightsTruncatedFallsBackToZero(t *testing.T) {
	var buf bytes.Buffer
	if err := filledEvaluator(22).Save(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	data := buf.Bytes()

	for _, n := range []int{0, 3, 4 * 6561, len(data) - 1} {
		e := filledEvaluator(23)
		if err := e.Load(bytes.NewReader(data[:n])); err == nil {
			t.Fatalf("load of %d bytes should fail", n)
		}
		if !allZero(e) {
			t.Fatalf("load of %d bytes should leave zero weights", n)
		}
	}

	// 多出来的数据说明表的布局不一致
	e := filledEvaluator(23)
	long := append(append([]byte(nil), data...), 0)
	if err := e.Load(bytes.NewReader(long)); err != ErrWeightsTrailing {
		t.Fatalf("trailing byte: got err=%v want %v", err, ErrWeightsTrailing)
	}
	if !allZero(e) {
		t.Fatalf("trailing byte should leave zero weights")
	}
}

func TestWeightsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eval.dat")

	e := filledEvaluator(24)
	if err := e.LoadFile(path); err == nil {
		t.Fatalf("missing file should report an error")
	}
	if !allZero(e) {
		t.Fatalf("missing file should leave zero weights")
	}

	src := filledEvaluator(25)
	if err := src.SaveFile(path); err != nil {
		t.Fatalf("save file: %v", err)
	}
	if err := e.LoadFile(path); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if !sameWeights(src, e) {
		t.Fatalf("weights differ after file round trip")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}

	resolved, err := ResolveWeightsPath(path)
	if err != nil || resolved != path {
		t.Fatalf("resolve: got=%q err=%v", resolved, err)
	}
	if _, err := ResolveWeightsPath(filepath.Join(dir, "nope.dat")); err == nil {
		t.Fatalf("resolve of a missing file should fail")
	}
}

func TestSaveFileErrorKeepsWeights(t *testing.T) {
	src := filledEvaluator(26)
	before := filledEvaluator(26)
	bad := filepath.Join(t.TempDir(), "missing", "eval.dat")
	if err := src.SaveFile(bad); err == nil {
		t.Fatalf("save into a missing directory should fail")
	}
	if !sameWeights(src, before) {
		t.Fatalf("failed save changed in-memory weights")
	}
}

func TestLoadWeightsRecovers(t *testing.T) {
	var buf bytes.Buffer
	if err := filledEvaluator(27).Save(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	good := buf.Bytes()

	tests := []struct {
		name string
		data []byte // nil 表示不创建文件
		want WeightsStatus
	}{
		{name: "good", data: good, want: WeightsLoaded},
		{name: "missing", data: nil, want: WeightsMissing},
		{name: "empty", data: []byte{}, want: WeightsBroken},
		{name: "truncated", data: make([]byte, 100), want: WeightsBroken},
		{name: "trailing", data: append(append([]byte(nil), good...), 1, 2), want: WeightsBroken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "eval.dat")
			if tt.data != nil {
				if err := os.WriteFile(path, tt.data, 0o644); err != nil {
					t.Fatal(err)
				}
			}
			e := filledEvaluator(28)
			got, err := e.LoadWeights(path)
			if got != tt.want {
				t.Fatalf("status got=%v want=%v (err %v)", got, tt.want, err)
			}
			if (err == nil) != (tt.want == WeightsLoaded) {
				t.Fatalf("status %v with err=%v", got, err)
			}
			if tt.want == WeightsLoaded {
				return
			}
			if !allZero(e) {
				t.Fatalf("%s file should leave zero weights", tt.name)
			}
			if tt.want != WeightsBroken {
				return
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("broken file still at %s: %v", path, err)
			}
			kept, err := os.ReadFile(path + brokenSuffix)
			if err != nil || !bytes.Equal(kept, tt.data) {
				t.Fatalf("broken file not kept intact: %v", err)
			}
			// 之后的保存写回原路径
			if err := e.SaveFile(path); err != nil {
				t.Fatalf("save after recovery: %v", err)
			}
		})
	}
}

func TestResolveWeightsPathConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only drives os.UserConfigDir on linux")
	}
	cfgDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgDir)
	want := filepath.Join(cfgDir, "othello", "resolve-test.dat")
	if err := os.MkdirAll(filepath.Dir(want), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := NewEvaluator().SaveFile(want); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveWeightsPath("resolve-test.dat")
	if err != nil || got != want {
		t.Fatalf("resolve: got=%q err=%v want %q", got, err, want)
	}
	if _, err := ResolveWeightsPath(""); err == nil {
		t.Fatalf("empty path should fail")
	}
}
