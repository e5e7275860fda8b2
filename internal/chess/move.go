package chess

// Move packs a move into 16 bits:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-13 promotion piece, as offset from Knight
//	bits 14-15 kind (normal, promotion, en passant, castling)
//
// Double pawn pushes and the castle side are not stored; they are
// derived from the squares when the move is applied.
type Move uint16

const (
	kindNormal    Move = 0 << 14
	kindPromotion Move = 1 << 14
	kindEnPassant Move = 2 << 14
	kindCastle    Move = 3 << 14
)

// NoMove is the zero move, used as an invalid sentinel.
const NoMove Move = 0

// NewMove builds a plain move (including captures and double pushes).
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion builds a promotion to promo, which must be one of
// Knight, Bishop, Rook or Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | kindPromotion
}

// NewEnPassant builds an en passant capture landing on the target square.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | kindEnPassant
}

// NewCastle builds a castling move described by the king's displacement.
func NewCastle(from, to Square) Move {
	return Move(from) | Move(to)<<6 | kindCastle
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> 6 & 0x3F)
}

// Promotion returns the promotion piece type, or NoPieceType for
// non-promotion moves.
func (m Move) Promotion() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	return PieceType(m>>12&3) + Knight
}

func (m Move) IsPromotion() bool { return m&kindCastle == kindPromotion }
func (m Move) IsEnPassant() bool { return m&kindCastle == kindEnPassant }
func (m Move) IsCastle() bool    { return m&kindCastle == kindCastle }

// KingsideCastle reports whether a castling move is to the kingside.
func (m Move) KingsideCastle() bool {
	return m.IsCastle() && m.To() > m.From()
}

// String returns the UCI form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

// MoveList is a fixed-capacity move list; 256 exceeds the maximum
// number of moves in any legal chess position.
type MoveList struct {
	moves [256]Move
	n     int
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.n] = m
	ml.n++
}

// Len returns the number of moves.
func (ml *MoveList) Len() int { return ml.n }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Contains reports whether m is in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.n; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move { return ml.moves[:ml.n] }
