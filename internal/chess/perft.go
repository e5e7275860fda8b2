package chess

// Perft counts the leaf nodes of the legal move tree at the given
// depth. It exercises generation, legality filtering and make/unmake
// together, which makes it the standard correctness probe for all three.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	legal := b.LegalMoves()
	if depth == 1 {
		return uint64(legal.Len())
	}

	var nodes uint64
	for i := 0; i < legal.Len(); i++ {
		undo := b.MakeMove(legal.Get(i))
		nodes += Perft(b, depth-1)
		b.UnmakeMove(undo)
	}
	return nodes
}

// DivideEntry is one root move with its subtree leaf count.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Divide splits a perft count per root move, the usual way to localize
// a generation bug by diffing against another engine.
func Divide(b *Board, depth int) ([]DivideEntry, uint64) {
	legal := b.LegalMoves()
	entries := make([]DivideEntry, 0, legal.Len())

	var total uint64
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		undo := b.MakeMove(m)
		n := Perft(b, depth-1)
		b.UnmakeMove(undo)
		entries = append(entries, DivideEntry{Move: m, Nodes: n})
		total += n
	}
	return entries, total
}
