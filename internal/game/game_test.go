package game

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chesscore/internal/chess"
)

func TestNewGameStartsAtInitialPosition(t *testing.T) {
	g := New()
	if got := g.FEN(); got != chess.StartFEN {
		t.Errorf("FEN = %q, want start position", got)
	}
	if g.SideToMove() != chess.White {
		t.Error("white must move first")
	}
	if len(g.LegalMoves()) != 20 {
		t.Errorf("legal moves = %d, want 20", len(g.LegalMoves()))
	}
	if g.Outcome().Status != InProgress {
		t.Errorf("outcome = %v, want in progress", g.Outcome())
	}
	if g.InCheck() {
		t.Error("start position reports check")
	}
}

func TestMakeMoveRejectsIllegal(t *testing.T) {
	g := New()

	err := g.MakeMove(chess.NewMove(chess.E2, chess.E5))
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("three-square pawn push: %v, want ErrIllegalMove", err)
	}
	err = g.MakeMove(chess.NewMove(chess.E7, chess.E5))
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("moving for the opponent: %v, want ErrIllegalMove", err)
	}
	if len(g.MoveHistory()) != 0 {
		t.Error("rejected moves entered the history")
	}
}

func TestMakeMoveRejectsAfterGameEnd(t *testing.T) {
	g := New()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	err := g.MakeMove(chess.NewMove(chess.A2, chess.A3))
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("move after checkmate: %v, want ErrIllegalMove", err)
	}
}

func TestUndoMove(t *testing.T) {
	g := New()
	if err := g.UndoMove(); !errors.Is(err, ErrNoMoveToUndo) {
		t.Errorf("undo at start: %v, want ErrNoMoveToUndo", err)
	}

	before, _ := chess.ParseFEN(g.FEN())
	play(t, g, "e2e4", "c7c5", "g1f3")

	if err := g.UndoMove(); err != nil {
		t.Fatalf("UndoMove: %v", err)
	}
	if got := g.FEN(); got != "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2" {
		t.Errorf("FEN after one undo = %q", got)
	}

	if err := g.UndoMove(); err != nil {
		t.Fatalf("UndoMove: %v", err)
	}
	if err := g.UndoMove(); err != nil {
		t.Fatalf("UndoMove: %v", err)
	}

	after, _ := chess.ParseFEN(g.FEN())
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("board differs from start after full unwind:\n%s", diff)
	}
	if err := g.UndoMove(); !errors.Is(err, ErrNoMoveToUndo) {
		t.Errorf("undo past start: %v, want ErrNoMoveToUndo", err)
	}
}

func TestUndoRestoresOutcome(t *testing.T) {
	g := New()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if g.Outcome().Status != Checkmate {
		t.Fatal("expected checkmate")
	}

	if err := g.UndoMove(); err != nil {
		t.Fatalf("UndoMove: %v", err)
	}
	if got := g.Outcome().Status; got != InProgress {
		t.Errorf("outcome after undo = %v, want in progress", got)
	}
	if g.SideToMove() != chess.Black {
		t.Error("side to move not restored")
	}

	// The mating move is available again.
	m, err := g.ParseMove("d8h4")
	if err != nil {
		t.Fatalf("ParseMove after undo: %v", err)
	}
	if err := g.MakeMove(m); err != nil {
		t.Fatalf("remake after undo: %v", err)
	}
	if g.Outcome().Status != Checkmate {
		t.Error("replayed mate not detected")
	}
}

func TestParseMove(t *testing.T) {
	g := New()

	m, err := g.ParseMove("e2e4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.From() != chess.E2 || m.To() != chess.E4 {
		t.Errorf("parsed %v", m)
	}

	for _, bad := range []string{"", "e2", "e2e4x", "x2e4", "e2x4", "e2e9", "e7e8z"} {
		if _, err := g.ParseMove(bad); !errors.Is(err, ErrInvalidMoveText) {
			t.Errorf("ParseMove(%q): %v, want ErrInvalidMoveText", bad, err)
		}
	}

	if _, err := g.ParseMove("e2e5"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("ParseMove(e2e5): %v, want ErrIllegalMove", err)
	}
}

func TestParseMovePromotions(t *testing.T) {
	g, err := NewFromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("NewFromFEN: %v", err)
	}

	// The bare push is ambiguous without the promotion letter.
	if _, err := g.ParseMove("a7a8"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("ParseMove(a7a8): %v, want ErrIllegalMove", err)
	}

	m, err := g.ParseMove("a7a8R")
	if err != nil {
		t.Fatalf("ParseMove with uppercase letter: %v", err)
	}
	if m.Promotion() != chess.Rook {
		t.Errorf("promotion = %v, want rook", m.Promotion())
	}

	m, err = g.ParseMove("a7a8n")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if err := g.MakeMove(m); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if g.Board().PieceAt(chess.A8) != chess.WhiteKnight {
		t.Error("underpromotion not applied")
	}
}

func TestMovesFrom(t *testing.T) {
	g := New()

	knight := g.MovesFrom(chess.G1)
	if len(knight) != 2 {
		t.Errorf("moves from g1 = %d, want 2", len(knight))
	}
	for _, m := range knight {
		if m.To() != chess.F3 && m.To() != chess.H3 {
			t.Errorf("unexpected knight target %v", m.To())
		}
	}

	if moves := g.MovesFrom(chess.E4); moves != nil {
		t.Errorf("moves from an empty square = %v", moves)
	}
	if moves := g.MovesFrom(chess.E7); moves != nil {
		t.Errorf("moves for the side not on turn = %v", moves)
	}
}

func TestMoveHistory(t *testing.T) {
	g := New()
	play(t, g, "e2e4", "e7e5", "g1f3")

	hist := g.MoveHistory()
	want := []string{"e2e4", "e7e5", "g1f3"}
	if len(hist) != len(want) {
		t.Fatalf("history length = %d, want %d", len(hist), len(want))
	}
	for i, m := range hist {
		if m.String() != want[i] {
			t.Errorf("history[%d] = %v, want %s", i, m, want[i])
		}
	}

	g.UndoMove()
	if got := len(g.MoveHistory()); got != 2 {
		t.Errorf("history length after undo = %d, want 2", got)
	}
}

func TestReset(t *testing.T) {
	g := New()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	g.Reset()
	if got := g.FEN(); got != chess.StartFEN {
		t.Errorf("FEN after reset = %q", got)
	}
	if len(g.MoveHistory()) != 0 {
		t.Error("history survived reset")
	}
	if g.Outcome().Status != InProgress {
		t.Error("outcome survived reset")
	}
	if err := g.MakeMove(chess.NewMove(chess.E2, chess.E4)); err != nil {
		t.Errorf("move after reset: %v", err)
	}
}

func TestNewFromFENRejectsMalformed(t *testing.T) {
	if _, err := NewFromFEN("not a fen"); !errors.Is(err, chess.ErrInvalidFEN) {
		t.Errorf("NewFromFEN: %v, want ErrInvalidFEN", err)
	}
}
