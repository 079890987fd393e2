package othello

import "testing"

func TestPatternLayout(t *testing.T) {
	perKind := map[Kind]int{}
	for i, inst := range Instances() {
		perKind[inst.Kind]++
		if got, want := len(inst.Cells), inst.Kind.Cells(); got != want {
			t.Fatalf("instance %d (%v): got=%d cells want=%d", i, inst.Kind, got, want)
		}
		seen := map[Pos]bool{}
		for _, p := range inst.Cells {
			if !p.OnBoard() {
				t.Fatalf("instance %d has off-board cell %d", i, int(p))
			}
			if seen[p] {
				t.Fatalf("instance %d repeats cell %v", i, p)
			}
			seen[p] = true
		}
	}
	want := map[Kind]int{
		KindHV2: 4, KindHV3: 4, KindHV4: 4, KindDiag8: 2,
		KindDiag7: 4, KindDiag6: 4, KindDiag5: 4, KindDiag4: 4,
		KindEdge: 8, KindCorner: 4,
	}
	for k, n := range want {
		if perKind[k] != n {
			t.Fatalf("%v instances: got=%d want=%d", k, perKind[k], n)
		}
	}
}

func TestPatternCellsByName(t *testing.T) {
	names := func(inst Instance) string {
		s := ""
		for _, p := range inst.Cells {
			s += p.String()
		}
		return s
	}
	cases := []struct {
		inst int
		want string
	}{
		{13, "A8B7C6D5E4F3G2H1"},
		{14, "A2B3C4D5E6F7G8"},
		{16, "A7B6C5D4E3F2G1"},
		{17, "B8C7D6E5F4G3H2"},
		{30, "A1B1C1D1E1F1G1B2"},
		{31, "A1A2A3A4A5A6A7B2"},
		{32, "H1G1F1E1D1C1B1G2"},
		{38, "A1B1C1A2B2C2A3B3"},
	}
	for _, tc := range cases {
		if got := names(Instances()[tc.inst]); got != tc.want {
			t.Fatalf("instance %d: got=%s want=%s", tc.inst, got, tc.want)
		}
	}
}

func TestPatternEmptyBoardValues(t *testing.T) {
	b, err := Decode(emptyBoardString())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, inst := range Instances() {
		want := inst.Kind.TableSize() - 1 // 全是 2
		if got := b.PatternValue(i); got != want {
			t.Fatalf("instance %d: got=%d want=%d", i, got, want)
		}
	}
}

func emptyBoardString() string {
	s := ""
	for i := 0; i < NumCells; i++ {
		s += "-"
	}
	return s
}

// 随机 Flip/Unflip 序列后增量值必须等于从零重算
func TestPatternConsistency(t *testing.T) {
	rng := testRNG(7)
	for game := 0; game < 30; game++ {
		b := NewBoard()
		c := Black
		for b.State(c) != TurnFinish {
			if moves := b.LegalMoves(c, nil); len(moves) > 0 {
				b.Flip(c, moves[rng.Intn(len(moves))])
				if rng.Intn(4) == 0 && b.Ply() > 1 {
					b.Unflip()
					b.Unflip()
					c = -c
				}
			}
			c = -c
			if got, want := b.Patterns(), b.PatternsFromScratch(); got != want {
				t.Fatalf("game %d ply %d: accumulators drifted", game, b.Ply())
			}
			for i := range Instances() {
				if got, want := b.PatternValue(i), b.PatternIndex(i); got != want {
					t.Fatalf("instance %d: got=%d want=%d", i, got, want)
				}
			}
		}
		for b.Ply() > 0 {
			b.Unflip()
		}
		if b.Patterns() != NewBoard().Patterns() {
			t.Fatalf("game %d: full unwind did not restore opening patterns", game)
		}
	}
}
