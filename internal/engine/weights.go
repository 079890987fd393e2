package engine

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"othello/internal/othello"
)

// 权重文件：按 Kind 顺序依次写每张表，每项 int32 小端，无文件头。

// ErrWeightsTrailing 读完全部表后还有数据，多半是表的顺序或大小不一致
var ErrWeightsTrailing = errors.New("trailing data after weight tables")

// WeightsFileSize 合法权重文件的字节数
func WeightsFileSize() int64 {
	var n int64
	for k := othello.Kind(0); k < othello.NumKinds; k++ {
		n += 4 * int64(k.TableSize())
	}
	return n
}

// Load 按固定顺序读全部权重表。读不满或末尾有多余数据都整体回退为全零并返回错误。
func (e *Evaluator) Load(r io.Reader) error {
	var tables [othello.NumKinds][]int32
	for k := othello.Kind(0); k < othello.NumKinds; k++ {
		t := make([]int32, k.TableSize())
		if err := binary.Read(r, binary.LittleEndian, t); err != nil {
			e.Reset()
			return errors.Wrapf(err, "read %v weights", k)
		}
		tables[k] = t
	}
	var extra [1]byte
	switch n, err := io.ReadFull(r, extra[:]); {
	case n > 0:
		e.Reset()
		return ErrWeightsTrailing
	case err != io.EOF:
		e.Reset()
		return errors.Wrap(err, "read weights")
	}
	for k := range tables {
		for i, w := range tables[k] {
			tables[k][i] = clamp(w, -MaxWeight, MaxWeight)
		}
		e.weights[k] = tables[k]
		clear(e.sums[k])
		clear(e.counts[k])
	}
	return nil
}

// Save 按固定顺序写全部权重表
func (e *Evaluator) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for k := othello.Kind(0); k < othello.NumKinds; k++ {
		if err := binary.Write(bw, binary.LittleEndian, e.weights[k]); err != nil {
			return errors.Wrapf(err, "write %v weights", k)
		}
	}
	return errors.Wrap(bw.Flush(), "flush weights")
}

// LoadFile 文件不存在或被截断时权重为全零，错误交给调用方记录
func (e *Evaluator) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		e.Reset()
		return errors.Wrap(err, "open weights")
	}
	defer f.Close()
	return errors.WithMessage(e.Load(bufio.NewReader(f)), path)
}

// SaveFile 先写临时文件再改名，失败时原文件和内存中的权重都不动
func (e *Evaluator) SaveFile(path string) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create weights temp file")
	}
	tmp := f.Name()
	if err := e.Save(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.WithMessage(err, path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "close weights temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "rename weights to %s", path)
	}
	return nil
}
