package chess

// Zobrist keys for position identity. A position key covers piece
// placement, side to move, castling rights and the en passant file,
// which is exactly the state that defines a repetition.
var (
	zobristPiece     [2][6][64]uint64
	zobristCastling  [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	// xorshift64* with a fixed seed keeps keys reproducible across runs.
	state := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		state ^= state >> 12
		state ^= state << 25
		state ^= state >> 27
		return state * 0x2545F4914F6CDD1D
	}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = next()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = next()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = next()
	}
	zobristSide = next()
}

// computeHash rebuilds the Zobrist key from scratch. MakeMove maintains
// the key incrementally; this is the reference for parsing and debug
// assertions.
func (b *Board) computeHash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := b.Pieces[c][pt]
			for bb != 0 {
				h ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}
	if b.SideToMove == Black {
		h ^= zobristSide
	}
	h ^= zobristCastling[b.Castling]
	if b.EnPassant != NoSquare {
		h ^= zobristEnPassant[b.EnPassant.File()]
	}
	return h
}
