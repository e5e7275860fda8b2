package chess

// Precomputed attack tables for the non-sliding pieces, plus the
// between/line tables used for pin and check-evasion rays. Sliding
// attacks live in magic.go.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard

	betweenBB [64][64]Bitboard // squares strictly between two aligned squares
	lineBB    [64][64]Bitboard // full line through two aligned squares
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		knightAttacks[sq] = (bb<<17)&notFileA |
			(bb<<15)&notFileH |
			(bb>>17)&notFileH |
			(bb>>15)&notFileA |
			(bb<<10)&notFileAB |
			(bb<<6)&notFileGH |
			(bb>>10)&notFileGH |
			(bb>>6)&notFileAB

		kingAttacks[sq] = bb.North() | bb.South() | bb.East() | bb.West() |
			bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}

	initRays()
	initMagics()
}

func initRays() {
	for from := A1; from <= H8; from++ {
		for to := A1; to <= H8; to++ {
			df := sign(to.File() - from.File())
			dr := sign(to.Rank() - from.Rank())
			if df == 0 && dr == 0 {
				continue
			}
			diag := abs(to.File()-from.File()) == abs(to.Rank()-from.Rank())
			if df != 0 && dr != 0 && !diag {
				continue // not aligned
			}

			var between Bitboard
			for f, r := from.File()+df, from.Rank()+dr; f != to.File() || r != to.Rank(); f, r = f+df, r+dr {
				between = between.Set(mustSquare(f, r))
			}
			betweenBB[from][to] = between

			var line Bitboard
			for f, r := from.File(), from.Rank(); f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f-df, r-dr {
				line = line.Set(mustSquare(f, r))
			}
			for f, r := from.File()+df, from.Rank()+dr; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+df, r+dr {
				line = line.Set(mustSquare(f, r))
			}
			lineBB[from][to] = line
		}
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the squares a pawn of color c attacks from sq.
func PawnAttacks(sq Square, c Color) Bitboard { return pawnAttacks[c][sq] }

// BishopAttacks returns bishop attacks from sq given the occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return bishopTable[m.offset+uint32(((uint64(occupied)&uint64(m.mask))*m.magic)>>m.shift)]
}

// RookAttacks returns rook attacks from sq given the occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return rookTable[m.offset+uint32(((uint64(occupied)&uint64(m.mask))*m.magic)>>m.shift)]
}

// QueenAttacks returns queen attacks from sq given the occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// Between returns the squares strictly between two aligned squares,
// empty when the squares share no rank, file or diagonal.
func Between(a, b Square) Bitboard { return betweenBB[a][b] }

// aligned reports whether c lies on the line through a and b.
func aligned(a, b, c Square) bool { return lineBB[a][b].Has(c) }

// attackersTo returns all pieces of color c that attack sq under the
// given occupancy. Each piece pattern is reversed from the target
// square, so the cost is proportional to the piece count.
func (b *Board) attackersTo(sq Square, c Color, occupied Bitboard) Bitboard {
	return pawnAttacks[c.Opposite()][sq]&b.Pieces[c][Pawn] |
		knightAttacks[sq]&b.Pieces[c][Knight] |
		kingAttacks[sq]&b.Pieces[c][King] |
		BishopAttacks(sq, occupied)&(b.Pieces[c][Bishop]|b.Pieces[c][Queen]) |
		RookAttacks(sq, occupied)&(b.Pieces[c][Rook]|b.Pieces[c][Queen])
}

// IsSquareAttacked reports whether any piece of byColor attacks sq.
func (b *Board) IsSquareAttacked(sq Square, byColor Color) bool {
	return b.attackersTo(sq, byColor, b.AllOccupied) != 0
}

// InCheck reports whether the king of color c is attacked.
func (b *Board) InCheck(c Color) bool {
	return b.IsSquareAttacked(b.KingSquare[c], c.Opposite())
}

// checkers returns the pieces giving check to the side to move.
func (b *Board) checkers() Bitboard {
	us := b.SideToMove
	return b.attackersTo(b.KingSquare[us], us.Opposite(), b.AllOccupied)
}

// pinned returns the side to move's pieces that are absolutely pinned
// to their king, found by x-raying sliders through single blockers.
func (b *Board) pinned() Bitboard {
	us := b.SideToMove
	them := us.Opposite()
	ksq := b.KingSquare[us]

	var pinned Bitboard
	snipers := BishopAttacks(ksq, 0)&(b.Pieces[them][Bishop]|b.Pieces[them][Queen]) |
		RookAttacks(ksq, 0)&(b.Pieces[them][Rook]|b.Pieces[them][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & b.AllOccupied
		if blockers.Count() == 1 && blockers&b.Occupied[us] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}
