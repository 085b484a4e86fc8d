package board

import "math/bits"

// A Bitboard has one bit per square. Square index is x + 8*y, where x is
// the column (a-h) and y the row (1-8), both in 0..8.
type Bitboard uint64

const (
	// Dim is the dimension of the board.
	Dim = 8

	// NumSquares is Dim * Dim.
	NumSquares = Dim * Dim

	Full Bitboard = 0xFFFFFFFFFFFFFFFF
)

// SquareBit returns the singleton mask for (x, y).
func SquareBit(x, y int) Bitboard {
	return Bitboard(1) << (x + Dim*y)
}

// PopLSB returns the lowest set bit of bb as a singleton mask and clears it
// from bb. bb must not be zero.
func PopLSB(bb *Bitboard) Bitboard {
	lsb := *bb & -*bb
	*bb ^= lsb
	return lsb
}

// PopCount returns the number of set bits.
func (bb Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(bb))
}

// Contains reports whether the square at (x, y) is set.
func (bb Bitboard) Contains(x, y int) bool {
	return bb&SquareBit(x, y) != 0
}

// Index returns the square index of the lowest set bit, or 64 if bb is empty.
func (bb Bitboard) Index() int {
	return bits.TrailingZeros64(uint64(bb))
}
