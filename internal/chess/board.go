package chess

import (
	"fmt"
	"log"
	"strings"
)

// CastlingRights is the set of castling options still available.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether every right in r is still held.
func (cr CastlingRights) Has(r CastlingRights) bool {
	return cr&r == r
}

// String returns the FEN castling field ("KQkq", "-", ...).
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range []byte("KQkq") {
		if cr&(1<<i) != 0 {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Board is a complete chess position: piece placement as bitboards plus
// the game-state fields a FEN record carries. It is mutated only through
// MakeMove/UnmakeMove; everything else is a query.
type Board struct {
	// Pieces holds one bitboard per (color, piece type).
	Pieces [2][6]Bitboard

	// Occupancy aggregates, maintained incrementally.
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // target square of a double push, or NoSquare
	HalfMoveClock  int
	FullMoveNumber int

	// Hash is the Zobrist key over placement, side to move, castling
	// rights and en passant file, maintained incrementally.
	Hash uint64

	// KingSquare caches each king's position for check detection.
	KingSquare [2]Square
}

// debugChecks enables internal consistency assertions (hash recomputation
// after every move). A failure is a bug in the engine, so it aborts.
var debugChecks = false

// PieceAt returns the piece on sq, or NoPiece for an empty square.
func (b *Board) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if b.AllOccupied&bb == 0 {
		return NoPiece
	}
	c := White
	if b.Occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if b.Pieces[c][pt]&bb != 0 {
			return MakePiece(pt, c)
		}
	}
	return NoPiece
}

// IsOccupied reports whether sq holds a piece.
func (b *Board) IsOccupied(sq Square) bool {
	return b.AllOccupied.Has(sq)
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

func (b *Board) putPiece(p Piece, sq Square) {
	c, pt := p.Color(), p.Type()
	bb := SquareBB(sq)
	b.Pieces[c][pt] |= bb
	b.Occupied[c] |= bb
	b.AllOccupied |= bb
	if pt == King {
		b.KingSquare[c] = sq
	}
}

func (b *Board) dropPiece(p Piece, sq Square) {
	c, pt := p.Color(), p.Type()
	bb := SquareBB(sq)
	b.Pieces[c][pt] &^= bb
	b.Occupied[c] &^= bb
	b.AllOccupied &^= bb
}

func (b *Board) shiftPiece(p Piece, from, to Square) {
	c, pt := p.Color(), p.Type()
	moveBB := SquareBB(from) | SquareBB(to)
	b.Pieces[c][pt] ^= moveBB
	b.Occupied[c] ^= moveBB
	b.AllOccupied ^= moveBB
	if pt == King {
		b.KingSquare[c] = to
	}
}

// UndoInfo carries everything needed to reverse one MakeMove. The
// placement is snapshotted whole; at ~100 bytes that is cheaper to
// restore than to recompute, and it makes the inverse exact by
// construction.
type UndoInfo struct {
	pieces         [2][6]Bitboard
	occupied       [2]Bitboard
	allOccupied    Bitboard
	kingSquare     [2]Square
	captured       Piece
	castling       CastlingRights
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int
	hash           uint64
}

// Captured returns the piece removed by the move, NoPiece if none.
func (u UndoInfo) Captured() Piece { return u.captured }

// MakeMove applies a pseudo-legal move and returns the record needed to
// undo it. Legality is the caller's concern: the move must come from
// this position's move generator.
func (b *Board) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		pieces:         b.Pieces,
		occupied:       b.Occupied,
		allOccupied:    b.AllOccupied,
		kingSquare:     b.KingSquare,
		captured:       NoPiece,
		castling:       b.Castling,
		enPassant:      b.EnPassant,
		halfMoveClock:  b.HalfMoveClock,
		fullMoveNumber: b.FullMoveNumber,
		hash:           b.Hash,
	}

	us := b.SideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()
	piece := b.PieceAt(from)
	pt := piece.Type()

	b.Hash ^= zobristSide
	b.Hash ^= zobristCastling[b.Castling]
	if b.EnPassant != NoSquare {
		b.Hash ^= zobristEnPassant[b.EnPassant.File()]
	}
	b.EnPassant = NoSquare

	// Captures. En passant removes a pawn that is not on the
	// destination square.
	if m.IsEnPassant() {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		undo.captured = MakePiece(Pawn, them)
		b.dropPiece(undo.captured, capSq)
		b.Hash ^= zobristPiece[them][Pawn][capSq]
	} else if captured := b.PieceAt(to); captured != NoPiece {
		undo.captured = captured
		b.dropPiece(captured, to)
		b.Hash ^= zobristPiece[them][captured.Type()][to]
	}

	b.shiftPiece(piece, from, to)
	b.Hash ^= zobristPiece[us][pt][from] ^ zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promo := m.Promotion()
		b.Pieces[us][Pawn] &^= SquareBB(to)
		b.Pieces[us][promo] |= SquareBB(to)
		b.Hash ^= zobristPiece[us][Pawn][to] ^ zobristPiece[us][promo][to]
	}

	// Castling relocates the rook in the same ply.
	if m.IsCastle() {
		rookFrom, rookTo := rookCastleSquares(m)
		b.shiftPiece(MakePiece(Rook, us), rookFrom, rookTo)
		b.Hash ^= zobristPiece[us][Rook][rookFrom] ^ zobristPiece[us][Rook][rookTo]
	}

	// Castling rights are lost permanently when the king moves or when
	// a rook leaves or is captured on its home corner.
	if pt == King {
		if us == White {
			b.Castling &^= WhiteKingside | WhiteQueenside
		} else {
			b.Castling &^= BlackKingside | BlackQueenside
		}
	}
	for _, sq := range [2]Square{from, to} {
		switch sq {
		case A1:
			b.Castling &^= WhiteQueenside
		case H1:
			b.Castling &^= WhiteKingside
		case A8:
			b.Castling &^= BlackQueenside
		case H8:
			b.Castling &^= BlackKingside
		}
	}
	b.Hash ^= zobristCastling[b.Castling]

	// A double push opens the skipped square to en passant for one ply.
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		b.EnPassant = Square((int(from) + int(to)) / 2)
		b.Hash ^= zobristEnPassant[b.EnPassant.File()]
	}

	if pt == Pawn || undo.captured != NoPiece {
		b.HalfMoveClock = 0
	} else {
		b.HalfMoveClock++
	}
	if us == Black {
		b.FullMoveNumber++
	}
	b.SideToMove = them

	if debugChecks && b.Hash != b.computeHash() {
		log.Panicf("chess: hash desync after %v (incremental %016x, recomputed %016x)",
			m, b.Hash, b.computeHash())
	}
	return undo
}

// UnmakeMove restores the position recorded by the matching MakeMove.
func (b *Board) UnmakeMove(undo UndoInfo) {
	b.Pieces = undo.pieces
	b.Occupied = undo.occupied
	b.AllOccupied = undo.allOccupied
	b.KingSquare = undo.kingSquare
	b.Castling = undo.castling
	b.EnPassant = undo.enPassant
	b.HalfMoveClock = undo.halfMoveClock
	b.FullMoveNumber = undo.fullMoveNumber
	b.Hash = undo.hash
	b.SideToMove = b.SideToMove.Opposite()
}

// rookCastleSquares returns the rook's relocation for a castling move.
func rookCastleSquares(m Move) (from, to Square) {
	rank := m.From().Rank()
	if m.KingsideCastle() {
		return mustSquare(7, rank), mustSquare(5, rank)
	}
	return mustSquare(0, rank), mustSquare(3, rank)
}

// String renders the board as ASCII, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(b.PieceAt(mustSquare(file, rank)).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
