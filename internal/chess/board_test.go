package chess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mustMove finds the legal move written in coordinate notation, failing
// the test if the position does not allow it.
func mustMove(t *testing.T, b *Board, uci string) Move {
	t.Helper()
	legal := b.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		if m := legal.Get(i); m.String() == uci {
			return m
		}
	}
	t.Fatalf("no legal move %q in %s", uci, b.FEN())
	return NoMove
}

func TestMakeUnmakeIsExactInverse(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		uci  string
	}{
		{"quiet move", StartFEN, "g1f3"},
		{"double push", StartFEN, "e2e4"},
		{"capture", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "e4d5"},
		{"kingside castle", "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1", "e1g1"},
		{"queenside castle", "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R b KQkq - 0 1", "e8c8"},
		{"en passant", "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2", "d4e3"},
		{"promotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8q"},
		{"promotion capture", "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7b8n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			before := b.Copy()

			undo := b.MakeMove(mustMove(t, b, tc.uci))
			if b.Hash != b.computeHash() {
				t.Errorf("incremental hash %016x, recomputed %016x", b.Hash, b.computeHash())
			}
			b.UnmakeMove(undo)

			if diff := cmp.Diff(before, b); diff != "" {
				t.Errorf("board not restored (-before +after):\n%s", diff)
			}
			if got := b.FEN(); got != tc.fen {
				t.Errorf("FEN after undo = %q, want %q", got, tc.fen)
			}
		})
	}
}

func TestMakeMoveEffects(t *testing.T) {
	t.Run("en passant removes the passed pawn", func(t *testing.T) {
		b, _ := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2")
		undo := b.MakeMove(mustMove(t, b, "d4e3"))
		if undo.Captured() != WhitePawn {
			t.Errorf("captured = %v, want white pawn", undo.Captured())
		}
		if b.PieceAt(E4) != NoPiece {
			t.Error("passed pawn still on e4")
		}
		if b.PieceAt(E3) != BlackPawn {
			t.Error("capturing pawn not on e3")
		}
	})

	t.Run("castling relocates the rook", func(t *testing.T) {
		b, _ := ParseFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
		b.MakeMove(mustMove(t, b, "e1c1"))
		if b.PieceAt(C1) != WhiteKing || b.PieceAt(D1) != WhiteRook {
			t.Errorf("after O-O-O: c1=%v d1=%v", b.PieceAt(C1), b.PieceAt(D1))
		}
		if b.PieceAt(A1) != NoPiece || b.PieceAt(E1) != NoPiece {
			t.Error("origin squares not vacated")
		}
		if b.Castling.Has(WhiteKingside) || b.Castling.Has(WhiteQueenside) {
			t.Errorf("white rights not cleared: %v", b.Castling)
		}
		if !b.Castling.Has(BlackKingside) || !b.Castling.Has(BlackQueenside) {
			t.Errorf("black rights disturbed: %v", b.Castling)
		}
	})

	t.Run("rook capture clears the right", func(t *testing.T) {
		b, _ := ParseFEN("r3k2r/8/8/8/8/8/6B1/R3K2R w KQkq - 0 1")
		b.MakeMove(mustMove(t, b, "g2a8"))
		if b.Castling.Has(BlackQueenside) {
			t.Error("black queenside right survived rook capture on a8")
		}
		if !b.Castling.Has(BlackKingside) {
			t.Error("black kingside right lost without cause")
		}
	})

	t.Run("promotion swaps the pawn", func(t *testing.T) {
		b, _ := ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
		b.MakeMove(mustMove(t, b, "a7a8q"))
		if b.PieceAt(A8) != WhiteQueen {
			t.Errorf("a8 = %v, want white queen", b.PieceAt(A8))
		}
		if b.Pieces[White][Pawn] != 0 {
			t.Error("pawn bitboard still populated")
		}
	})

	t.Run("clock resets on pawn moves and captures only", func(t *testing.T) {
		b, _ := ParseFEN("4k3/8/8/3r4/8/8/4P3/3RK3 w - - 7 30")
		undo := b.MakeMove(mustMove(t, b, "d1d2"))
		if b.HalfMoveClock != 8 {
			t.Errorf("clock after quiet move = %d, want 8", b.HalfMoveClock)
		}
		b.UnmakeMove(undo)

		undo = b.MakeMove(mustMove(t, b, "e2e3"))
		if b.HalfMoveClock != 0 {
			t.Errorf("clock after pawn move = %d, want 0", b.HalfMoveClock)
		}
		b.UnmakeMove(undo)

		b.MakeMove(mustMove(t, b, "d1d5"))
		if b.HalfMoveClock != 0 {
			t.Errorf("clock after capture = %d, want 0", b.HalfMoveClock)
		}
	})

	t.Run("full move number advances after black", func(t *testing.T) {
		b := NewBoard()
		b.MakeMove(mustMove(t, b, "e2e4"))
		if b.FullMoveNumber != 1 {
			t.Errorf("after white: %d, want 1", b.FullMoveNumber)
		}
		b.MakeMove(mustMove(t, b, "e7e5"))
		if b.FullMoveNumber != 2 {
			t.Errorf("after black: %d, want 2", b.FullMoveNumber)
		}
	})
}

func TestHashDistinguishesState(t *testing.T) {
	// Identical placement, different en passant rights.
	a, _ := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2")
	b, _ := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2")
	if a.Hash == b.Hash {
		t.Error("en passant rights not hashed")
	}

	// Identical placement, different castling rights.
	c, _ := ParseFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	d, _ := ParseFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w Kq - 0 1")
	if c.Hash == d.Hash {
		t.Error("castling rights not hashed")
	}

	// Side to move.
	e, _ := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	f, _ := ParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if e.Hash == f.Hash {
		t.Error("side to move not hashed")
	}

	// The clock fields are not position identity and must not hash.
	g, _ := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 5 9")
	if e.Hash != g.Hash {
		t.Error("move counters leaked into the hash")
	}
}

func TestPieceAt(t *testing.T) {
	b := NewBoard()
	tests := []struct {
		sq   Square
		want Piece
	}{
		{A1, WhiteRook},
		{E1, WhiteKing},
		{D8, BlackQueen},
		{H7, BlackPawn},
		{E4, NoPiece},
	}
	for _, tc := range tests {
		if got := b.PieceAt(tc.sq); got != tc.want {
			t.Errorf("PieceAt(%v) = %v, want %v", tc.sq, got, tc.want)
		}
	}
}
