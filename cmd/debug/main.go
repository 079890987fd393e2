package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"othello/internal/engine"
	"othello/internal/othello"
)

func main() {
	boardStr := flag.String("board", "", "64-char board (X black, O white, - empty), default start position")
	white := flag.Bool("white", false, "white to move")
	perft := flag.Int("perft", 0, "count leaf nodes to this depth")
	patterns := flag.Bool("patterns", false, "print every pattern instance index")
	weights := flag.String("weights", "", "weights file; when set, print the evaluation and a search")
	flag.Parse()

	b := othello.NewBoard()
	if *boardStr != "" {
		var err error
		if b, err = othello.Decode(*boardStr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	side := othello.Black
	if *white {
		side = othello.White
	}

	fmt.Print(b)
	fmt.Println("Encoded:", b.Encode())
	fmt.Printf("Hash: %016x\n", b.Hash())
	fmt.Println("Legal moves:", b.LegalMoves(side, nil))

	if *patterns {
		for i, inst := range othello.Instances() {
			fmt.Printf("%2d %-7v %6d\n", i, inst.Kind, b.PatternIndex(i))
		}
	}

	for d := 1; d <= *perft; d++ {
		start := time.Now()
		n := b.Perft(side, d)
		fmt.Printf("perft(%d) = %d  %v\n", d, n, time.Since(start))
	}

	if *weights != "" {
		eval := engine.NewEvaluator()
		if err := eval.LoadFile(*weights); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("Eval (black):", eval.Evaluate(b))
		res := engine.NewEngine(eval, engine.DefaultSearchConfig()).Search(b, side)
		fmt.Printf("Search: %v score %d mode %v depth %d nodes %d time %v\n",
			res.Move, res.Score, res.Mode, res.Depth, res.Nodes, res.TimeUsed)
	}
}
