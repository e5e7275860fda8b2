// Package game drives a chess game on top of the rules core: it tracks
// move history, answers legality queries, and classifies terminal
// positions (mate, stalemate, and the draw rules).
package game

import (
	"errors"
	"fmt"
	"strings"

	"chesscore/internal/chess"
)

var (
	// ErrIllegalMove is returned when a move is not legal in the current
	// position, or when the game has already ended.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoMoveToUndo is returned by UndoMove at the initial position.
	ErrNoMoveToUndo = errors.New("no move to undo")

	// ErrInvalidMoveText is returned when move text cannot be parsed as
	// coordinate notation, before any legality check.
	ErrInvalidMoveText = errors.New("invalid move text")
)

// historyEntry records one played move together with the state needed
// to take it back exactly.
type historyEntry struct {
	move    chess.Move
	undo    chess.UndoInfo
	hash    uint64 // position key before the move, for repetition counts
	outcome Outcome
}

// Game owns a board and its full history. Legal moves and the outcome
// are computed once per position and cached until the next move or undo.
type Game struct {
	board   *chess.Board
	history []historyEntry
	legal   *chess.MoveList
	outcome Outcome
}

// New starts a game from the standard starting position.
func New() *Game {
	g := &Game{board: chess.NewBoard()}
	g.refresh()
	return g
}

// NewFromFEN starts a game from an arbitrary position.
func NewFromFEN(fen string) (*Game, error) {
	b, err := chess.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{board: b}
	g.refresh()
	return g, nil
}

// refresh recomputes the cached legal-move list and outcome.
func (g *Game) refresh() {
	g.legal = g.board.LegalMoves()
	g.outcome = g.classify(g.legal)
}

// Board exposes the underlying position for queries. Callers must not
// mutate it; play moves through MakeMove.
func (g *Game) Board() *chess.Board { return g.board }

// SideToMove returns the color whose turn it is.
func (g *Game) SideToMove() chess.Color { return g.board.SideToMove }

// FEN serializes the current position.
func (g *Game) FEN() string { return g.board.FEN() }

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.board.InCheck(g.board.SideToMove)
}

// Outcome returns the classification of the current position.
func (g *Game) Outcome() Outcome { return g.outcome }

// LegalMoves returns every legal move in the current position. The
// slice is shared with the game's cache and must not be modified.
func (g *Game) LegalMoves() []chess.Move {
	return g.legal.Slice()
}

// MovesFrom returns the legal moves starting on the given square.
func (g *Game) MovesFrom(from chess.Square) []chess.Move {
	var moves []chess.Move
	for _, m := range g.legal.Slice() {
		if m.From() == from {
			moves = append(moves, m)
		}
	}
	return moves
}

// MakeMove plays a move. The move must be legal in the current position
// and the game must still be in progress.
func (g *Game) MakeMove(m chess.Move) error {
	if g.outcome.Status.Terminal() {
		return fmt.Errorf("%w: game is over (%v)", ErrIllegalMove, g.outcome)
	}
	if !g.legal.Contains(m) {
		return fmt.Errorf("%w: %v", ErrIllegalMove, m)
	}

	entry := historyEntry{move: m, hash: g.board.Hash, outcome: g.outcome}
	entry.undo = g.board.MakeMove(m)
	g.history = append(g.history, entry)
	g.refresh()
	return nil
}

// UndoMove takes back the most recent move, restoring the previous
// position and outcome exactly. Undo is available even after the game
// has ended.
func (g *Game) UndoMove() error {
	if len(g.history) == 0 {
		return ErrNoMoveToUndo
	}
	entry := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.board.UnmakeMove(entry.undo)
	g.legal = g.board.LegalMoves()
	g.outcome = entry.outcome
	return nil
}

// ParseMove parses coordinate notation ("e2e4", "e7e8q") and resolves
// it against the current position's legal moves. Promotions require the
// trailing piece letter; it is accepted in either case.
func (g *Game) ParseMove(text string) (chess.Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return chess.NoMove, fmt.Errorf("%w: %q", ErrInvalidMoveText, text)
	}
	from, err := chess.ParseSquare(text[:2])
	if err != nil {
		return chess.NoMove, fmt.Errorf("%w: %q", ErrInvalidMoveText, text)
	}
	to, err := chess.ParseSquare(text[2:4])
	if err != nil {
		return chess.NoMove, fmt.Errorf("%w: %q", ErrInvalidMoveText, text)
	}

	promo := chess.NoPieceType
	if len(text) == 5 {
		switch strings.ToLower(text[4:]) {
		case "n":
			promo = chess.Knight
		case "b":
			promo = chess.Bishop
		case "r":
			promo = chess.Rook
		case "q":
			promo = chess.Queen
		default:
			return chess.NoMove, fmt.Errorf("%w: promotion piece %q", ErrInvalidMoveText, text[4:])
		}
	}

	for _, m := range g.legal.Slice() {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() != (promo != chess.NoPieceType) {
			continue
		}
		if m.IsPromotion() && m.Promotion() != promo {
			continue
		}
		return m, nil
	}
	return chess.NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, text)
}

// MoveHistory returns the moves played so far, oldest first.
func (g *Game) MoveHistory() []chess.Move {
	moves := make([]chess.Move, len(g.history))
	for i := range g.history {
		moves[i] = g.history[i].move
	}
	return moves
}

// Reset discards the history and returns to the starting position.
func (g *Game) Reset() {
	g.board = chess.NewBoard()
	g.history = g.history[:0]
	g.refresh()
}

// String renders the board with the side to move and outcome below it.
func (g *Game) String() string {
	var sb strings.Builder
	sb.WriteString(g.board.String())
	fmt.Fprintf(&sb, "%s to move, %v\n", g.board.SideToMove, g.outcome)
	return sb.String()
}
