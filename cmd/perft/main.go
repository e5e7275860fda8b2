// Command perft counts legal move paths from a position, the standard
// way to validate a move generator against known node counts.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"chesscore/internal/chess"
)

func main() {
	fen := flag.String("fen", chess.StartFEN, "FEN string (defaults to the initial position)")
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-move node counts at the root")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := chess.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "perft: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		entries, total := chess.Divide(board, *depth)
		slices.SortFunc(entries, func(a, b chess.DivideEntry) int {
			return strings.Compare(a.Move.String(), b.Move.String())
		})
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
		}
		fmt.Printf("Total: %d\n", total)
		return
	}

	start := time.Now()
	nodes := chess.Perft(board, *depth)
	elapsed := time.Since(start)
	fmt.Printf("depth %d \t%d nodes \t%s \t%.0f nps\n",
		*depth, nodes, elapsed, float64(nodes)/elapsed.Seconds())
}
