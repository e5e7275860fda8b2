package chess

// PseudoLegalMoves generates every move consistent with piece movement
// patterns and occupancy, ignoring whether the mover's king is left in
// check. Each (from, to, promotion) triple appears exactly once; order
// is unspecified.
func (b *Board) PseudoLegalMoves() *MoveList {
	ml := &MoveList{}
	us := b.SideToMove

	b.genPawnMoves(ml, us)
	b.genPieceMoves(ml, us)
	b.genCastleMoves(ml, us)
	return ml
}

// LegalMoves filters PseudoLegalMoves down to moves that do not leave
// the mover's own king attacked.
func (b *Board) LegalMoves() *MoveList {
	pseudo := b.PseudoLegalMoves()
	legal := &MoveList{}

	pinned := b.pinned()
	checkers := b.checkers()
	for i := 0; i < pseudo.Len(); i++ {
		if m := pseudo.Get(i); b.isLegal(m, pinned, checkers) {
			legal.Add(m)
		}
	}
	return legal
}

// HasLegalMoves reports whether the side to move has any legal move,
// without materializing the full list.
func (b *Board) HasLegalMoves() bool {
	pseudo := b.PseudoLegalMoves()
	pinned := b.pinned()
	checkers := b.checkers()
	for i := 0; i < pseudo.Len(); i++ {
		if b.isLegal(pseudo.Get(i), pinned, checkers) {
			return true
		}
	}
	return false
}

func (b *Board) genPawnMoves(ml *MoveList, us Color) {
	them := us.Opposite()
	pawns := b.Pieces[us][Pawn]
	empty := ^b.AllOccupied
	enemies := b.Occupied[them]

	var push1, push2, capLeft, capRight, promoRank Bitboard
	var forward int
	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		capLeft = pawns.NorthWest() & enemies
		capRight = pawns.NorthEast() & enemies
		promoRank = Rank8
		forward = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		capLeft = pawns.SouthWest() & enemies
		capRight = pawns.SouthEast() & enemies
		promoRank = Rank1
		forward = -8
	}

	addTargets := func(targets Bitboard, delta int) {
		promos := targets & promoRank
		for t := targets &^ promoRank; t != 0; {
			to := t.PopLSB()
			ml.Add(NewMove(Square(int(to)-delta), to))
		}
		for promos != 0 {
			to := promos.PopLSB()
			from := Square(int(to) - delta)
			for _, promo := range [4]PieceType{Queen, Rook, Bishop, Knight} {
				ml.Add(NewPromotion(from, to, promo))
			}
		}
	}

	addTargets(push1, forward)
	addTargets(capLeft, forward-1)
	addTargets(capRight, forward+1)
	for push2 != 0 {
		to := push2.PopLSB()
		ml.Add(NewMove(Square(int(to)-2*forward), to))
	}

	if b.EnPassant != NoSquare {
		// The capturing pawns are the ones that would attack the
		// en passant square as defenders.
		attackers := pawnAttacks[them][b.EnPassant] & pawns
		for attackers != 0 {
			ml.Add(NewEnPassant(attackers.PopLSB(), b.EnPassant))
		}
	}
}

func (b *Board) genPieceMoves(ml *MoveList, us Color) {
	occupied := b.AllOccupied
	notOurs := ^b.Occupied[us]

	addFrom := func(pieces Bitboard, attacks func(Square) Bitboard) {
		for pieces != 0 {
			from := pieces.PopLSB()
			targets := attacks(from) & notOurs
			for targets != 0 {
				ml.Add(NewMove(from, targets.PopLSB()))
			}
		}
	}

	addFrom(b.Pieces[us][Knight], KnightAttacks)
	addFrom(b.Pieces[us][Bishop], func(sq Square) Bitboard { return BishopAttacks(sq, occupied) })
	addFrom(b.Pieces[us][Rook], func(sq Square) Bitboard { return RookAttacks(sq, occupied) })
	addFrom(b.Pieces[us][Queen], func(sq Square) Bitboard { return QueenAttacks(sq, occupied) })
	addFrom(b.Pieces[us][King], KingAttacks)
}

// genCastleMoves emits castling moves when the right is held, the
// squares between king and rook are empty, and neither the king's
// current square nor its transit squares are attacked. Castling through
// check is illegal even when the destination itself would be safe.
func (b *Board) genCastleMoves(ml *MoveList, us Color) {
	them := us.Opposite()
	rank := 0
	kingside, queenside := WhiteKingside, WhiteQueenside
	if us == Black {
		rank = 7
		kingside, queenside = BlackKingside, BlackQueenside
	}

	e := mustSquare(4, rank)
	if b.Castling.Has(kingside) {
		f, g := mustSquare(5, rank), mustSquare(6, rank)
		if b.AllOccupied&(SquareBB(f)|SquareBB(g)) == 0 &&
			!b.IsSquareAttacked(e, them) &&
			!b.IsSquareAttacked(f, them) &&
			!b.IsSquareAttacked(g, them) {
			ml.Add(NewCastle(e, g))
		}
	}
	if b.Castling.Has(queenside) {
		bSq, c, d := mustSquare(1, rank), mustSquare(2, rank), mustSquare(3, rank)
		if b.AllOccupied&(SquareBB(bSq)|SquareBB(c)|SquareBB(d)) == 0 &&
			!b.IsSquareAttacked(e, them) &&
			!b.IsSquareAttacked(d, them) &&
			!b.IsSquareAttacked(c, them) {
			ml.Add(NewCastle(e, c))
		}
	}
}

// isLegal decides whether a pseudo-legal move leaves the mover's king
// safe. Non-pinned, non-king, non-en-passant moves cannot expose the
// king when it is not in check, so only the remaining cases need work.
func (b *Board) isLegal(m Move, pinned, checkers Bitboard) bool {
	us := b.SideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()
	ksq := b.KingSquare[us]

	if from == ksq {
		if m.IsCastle() {
			// Transit squares were verified at generation; the move
			// only remains illegal when the king starts in check.
			return checkers == 0
		}
		// The king's own square must not shield the destination.
		occ := b.AllOccupied &^ SquareBB(from)
		return b.attackersTo(to, them, occ) == 0
	}

	if checkers != 0 {
		if checkers.Count() > 1 {
			return false // double check: only the king may move
		}
		checker := checkers.LSB()

		if m.IsEnPassant() {
			// The capture can resolve the check only by removing the
			// checking pawn; the two-pawn removal still needs the
			// make/unmake test for uncovered horizontal attacks.
			capSq := to - 8
			if us == Black {
				capSq = to + 8
			}
			return capSq == checker && b.legalAfter(m)
		}

		// Block the ray or capture the checker, without breaking a pin.
		if !(SquareBB(checker) | Between(checker, ksq)).Has(to) {
			return false
		}
		return !pinned.Has(from) || aligned(from, to, ksq)
	}

	if m.IsEnPassant() {
		// Removing both pawns from one rank can uncover a rook or
		// queen; the pin table cannot see that, so simulate.
		return b.legalAfter(m)
	}
	return !pinned.Has(from) || aligned(from, to, ksq)
}

// legalAfter applies the move, tests the mover's king, and reverses it.
func (b *Board) legalAfter(m Move) bool {
	us := b.SideToMove
	undo := b.MakeMove(m)
	safe := !b.InCheck(us)
	b.UnmakeMove(undo)
	return safe
}
