package game

import "chesscore/internal/chess"

// Status classifies a game. Every status except InProgress is terminal:
// the only way out is an explicit reset or undo.
type Status uint8

const (
	InProgress Status = iota
	Checkmate
	Stalemate
	DrawFiftyMove
	DrawRepetition
	DrawInsufficientMaterial
)

// Terminal reports whether the game is over.
func (s Status) Terminal() bool { return s != InProgress }

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "draw by fifty-move rule"
	case DrawRepetition:
		return "draw by threefold repetition"
	case DrawInsufficientMaterial:
		return "draw by insufficient material"
	}
	return "unknown"
}

// Outcome is a game classification. Winner is meaningful only when
// Status is Checkmate.
type Outcome struct {
	Status Status
	Winner chess.Color
}

func (o Outcome) String() string {
	if o.Status == Checkmate {
		return o.Status.String() + ", " + o.Winner.String() + " wins"
	}
	return o.Status.String()
}

// classify computes the outcome for the current position. The caller
// passes the memoized legal-move list for the side to move.
func (g *Game) classify(legal *chess.MoveList) Outcome {
	b := g.board

	if legal.Len() == 0 {
		if b.InCheck(b.SideToMove) {
			return Outcome{Status: Checkmate, Winner: b.SideToMove.Opposite()}
		}
		return Outcome{Status: Stalemate}
	}
	if b.HalfMoveClock >= 100 {
		return Outcome{Status: DrawFiftyMove}
	}
	if g.repetitions() >= 3 {
		return Outcome{Status: DrawRepetition}
	}
	if insufficientMaterial(b) {
		return Outcome{Status: DrawInsufficientMaterial}
	}
	return Outcome{Status: InProgress}
}

// repetitions counts how often the current position (placement, side to
// move, castling rights, en passant target) has occurred, including now.
func (g *Game) repetitions() int {
	n := 1
	for i := range g.history {
		if g.history[i].hash == g.board.Hash {
			n++
		}
	}
	return n
}

// insufficientMaterial reports whether no sequence of legal moves can
// lead to checkmate for either side. The material table used here:
// king versus king, king and one minor piece versus king, and king and
// bishop versus king and bishop with both bishops on like-colored
// squares. Combinations such as two knights versus a bare king are
// treated as sufficient, since mating sequences exist with cooperation.
func insufficientMaterial(b *chess.Board) bool {
	for _, c := range [2]chess.Color{chess.White, chess.Black} {
		if b.Pieces[c][chess.Pawn]|b.Pieces[c][chess.Rook]|b.Pieces[c][chess.Queen] != 0 {
			return false
		}
	}

	wMinors := b.Pieces[chess.White][chess.Knight].Count() + b.Pieces[chess.White][chess.Bishop].Count()
	bMinors := b.Pieces[chess.Black][chess.Knight].Count() + b.Pieces[chess.Black][chess.Bishop].Count()

	if wMinors+bMinors <= 1 {
		return true // K vs K, or K+minor vs K
	}

	if wMinors == 1 && bMinors == 1 {
		wBishop := b.Pieces[chess.White][chess.Bishop]
		bBishop := b.Pieces[chess.Black][chess.Bishop]
		if wBishop.Count() == 1 && bBishop.Count() == 1 &&
			squareShade(wBishop.LSB()) == squareShade(bBishop.LSB()) {
			return true
		}
	}
	return false
}

// squareShade returns 0 for dark squares and 1 for light squares.
func squareShade(sq chess.Square) int {
	return (sq.File() + sq.Rank()) & 1
}
