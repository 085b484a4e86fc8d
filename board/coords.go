package board

import (
	"errors"
	"strings"
)

var ErrBadSquare = errors.New("square must look like [a-h][1-8]")

// ParseSquare turns a designator such as "d3" into a singleton mask. The
// letter is the column and the digit the row.
func ParseSquare(s string) (Bitboard, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return 0, ErrBadSquare
	}
	x := int(s[0]) - 'a'
	y := int(s[1]) - '1'
	if x < 0 || x >= Dim || y < 0 || y >= Dim {
		return 0, ErrBadSquare
	}
	return SquareBit(x, y), nil
}

// SquareName is the inverse of ParseSquare for the lowest set bit of bb.
func SquareName(bb Bitboard) string {
	if bb == 0 {
		return "--"
	}
	idx := bb.Index()
	return string([]byte{byte('a' + idx%Dim), byte('1' + idx/Dim)})
}

// Squares lists the names of every set square in bit-scan order.
func Squares(bb Bitboard) []string {
	names := make([]string, 0, bb.PopCount())
	for bb != 0 {
		names = append(names, SquareName(PopLSB(&bb)))
	}
	return names
}
