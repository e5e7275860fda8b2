// Package chess implements the rules core of the game: board
// representation using bitboards, move generation, legality checking,
// and FEN import/export.
package chess

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned when square text or coordinates are out of range.
var ErrInvalidSquare = errors.New("invalid square")

// Square is a board square index 0-63 in Little-Endian Rank-File
// mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// SquareAt builds a square from 0-indexed file and rank. Both must be
// in 0-7; anything else fails with ErrInvalidSquare.
func SquareAt(file, rank int) (Square, error) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("%w: file=%d rank=%d", ErrInvalidSquare, file, rank)
	}
	return Square(rank<<3 | file), nil
}

// mustSquare is for table initialization where coordinates are known good.
func mustSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1'))
}

// File returns the file 0-7 (0 = a-file).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank 0-7 (0 = first rank).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Valid reports whether the square is one of the 64 board squares.
func (sq Square) Valid() bool {
	return sq < NoSquare
}

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}
