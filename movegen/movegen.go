// Package movegen generates and applies Othello moves on bitboards. It is
// the hot path of the search: nothing here allocates.
package movegen

import (
	"errors"

	"github.com/othello-go/othello/board"
)

const (
	notFileA board.Bitboard = 0xFEFEFEFEFEFEFEFE
	notFileH board.Bitboard = 0x7F7F7F7F7F7F7F7F

	// maxRun is the longest run of opponent disks that can be flanked.
	maxRun = 6
)

var (
	ErrNotSingleSquare = errors.New("move must be exactly one square")
	ErrIllegalMove     = errors.New("move is not legal in this position")
)

// A direction shifts a whole bitboard one square along a compass line.
// The operand is masked first so no disk wraps from one edge to the
// opposite one.
type direction struct {
	shift uint
	left  bool
	mask  board.Bitboard
}

var directions = [8]direction{
	{shift: 7, left: true, mask: notFileA},    // x-1, y+1
	{shift: 8, left: true, mask: board.Full},  // y+1
	{shift: 9, left: true, mask: notFileH},    // x+1, y+1
	{shift: 1, left: true, mask: notFileH},    // x+1
	{shift: 7, left: false, mask: notFileH},   // x+1, y-1
	{shift: 8, left: false, mask: board.Full}, // y-1
	{shift: 9, left: false, mask: notFileA},   // x-1, y-1
	{shift: 1, left: false, mask: notFileA},   // x-1
}

func (d direction) step(bb board.Bitboard) board.Bitboard {
	bb &= d.mask
	if d.left {
		return bb << d.shift
	}
	return bb >> d.shift
}

// run collects the opponent disks in a contiguous line from seed along d.
func (d direction) run(seed, opp board.Bitboard) board.Bitboard {
	t := opp & d.step(seed)
	for i := 1; i < maxRun; i++ {
		t |= opp & d.step(t)
	}
	return t
}

// GenMoves returns the empty squares where c can play.
func GenMoves(b board.Board, c board.Color) board.Bitboard {
	own := b.Bitboard(c)
	opp := b.Bitboard(c.Invert())

	var moves board.Bitboard
	for _, d := range directions {
		moves |= d.step(d.run(own, opp))
	}
	return moves &^ (own | opp)
}

// MakeMove plays mv for c and returns the resulting board. mv must be a
// single square taken from GenMoves(b, c); anything else yields a
// meaningless board. Use Play when the move comes from outside the engine.
func MakeMove(b board.Board, c board.Color, mv board.Bitboard) board.Board {
	own := b.Bitboard(c) | mv
	opp := b.Bitboard(c.Invert())

	for _, d := range directions {
		t := opp & d.step(mv)
		if t == 0 {
			continue
		}
		for i := 1; i < maxRun; i++ {
			t |= opp & d.step(t)
		}
		// Only flip when an own disk closes the line.
		if own&d.step(t) != 0 {
			own ^= t
			opp ^= t
		}
	}
	return board.WithMasks(c, own, opp)
}

// Play is MakeMove with the preconditions checked.
func Play(b board.Board, c board.Color, mv board.Bitboard) (board.Board, error) {
	if mv == 0 || mv&(mv-1) != 0 {
		return b, ErrNotSingleSquare
	}
	if GenMoves(b, c)&mv == 0 {
		return b, ErrIllegalMove
	}
	return MakeMove(b, c, mv), nil
}

// HasMoves reports whether c has at least one legal move.
func HasMoves(b board.Board, c board.Color) bool {
	return GenMoves(b, c) != 0
}

// GameOver reports whether neither side can move.
func GameOver(b board.Board) bool {
	return !HasMoves(b, board.Black) && !HasMoves(b, board.White)
}
