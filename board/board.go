package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	startBlack Bitboard = 0x0000000810000000
	startWhite Bitboard = 0x0000001008000000
)

var (
	ErrOverlappingDisks = errors.New("a square cannot hold both colors")
	ErrBadBoardString   = errors.New("board string must be 32 hex digits")
)

// Board is an 8x8 Othello position: one mask per color. It is a value type;
// moves produce new boards and never modify an existing one. The two masks
// are always disjoint.
type Board struct {
	black Bitboard
	white Bitboard
}

// NewBoard returns the starting position, with the four center squares
// split diagonally between the colors.
func NewBoard() Board {
	return Board{black: startBlack, white: startWhite}
}

// FromBitboards builds a board from explicit masks.
func FromBitboards(black, white Bitboard) (Board, error) {
	if black&white != 0 {
		return Board{}, ErrOverlappingDisks
	}
	return Board{black: black, white: white}, nil
}

// WithMasks builds a board from the disks of side c and of its opponent.
// It is the hot-path constructor used by move application: own and opp
// must be disjoint and this is not checked.
func WithMasks(c Color, own, opp Bitboard) Board {
	if c == Black {
		return Board{black: own, white: opp}
	}
	return Board{black: opp, white: own}
}

// Bitboard returns the disks of color c.
func (b Board) Bitboard(c Color) Bitboard {
	if c == Black {
		return b.black
	}
	return b.white
}

// Occupied returns every square holding a disk.
func (b Board) Occupied() Bitboard {
	return b.black | b.white
}

// Empty returns every square without a disk.
func (b Board) Empty() Bitboard {
	return ^(b.black | b.white)
}

// SquareAt returns the state of the square at (x, y).
func (b Board) SquareAt(x, y int) Square {
	switch {
	case b.black.Contains(x, y):
		return BlackDisk
	case b.white.Contains(x, y):
		return WhiteDisk
	}
	return Empty
}

// Score counts the disks of each color.
func (b Board) Score() Score {
	return Score{Black: b.black.PopCount(), White: b.white.PopCount()}
}

// String encodes the board as 16 hex digits for black followed by 16 for
// white.
func (b Board) String() string {
	return fmt.Sprintf("%016x%016x", uint64(b.black), uint64(b.white))
}

// Parse decodes the String form of a board.
func Parse(s string) (Board, error) {
	s = strings.TrimSpace(s)
	if len(s) != 32 {
		return Board{}, ErrBadBoardString
	}
	black, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("black disks: %w", err)
	}
	white, err := strconv.ParseUint(s[16:], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("white disks: %w", err)
	}
	return FromBitboards(Bitboard(black), Bitboard(white))
}

// Score holds the disk count of each color.
type Score struct {
	Black int `yaml:"black"`
	White int `yaml:"white"`
}

// Get returns the count for c.
func (s Score) Get(c Color) int {
	if c == Black {
		return s.Black
	}
	return s.White
}

// Spread is black's count minus white's.
func (s Score) Spread() int {
	return s.Black - s.White
}

// Leader returns the color with more disks. ok is false on a tie.
func (s Score) Leader() (c Color, ok bool) {
	switch {
	case s.Black > s.White:
		return Black, true
	case s.White > s.Black:
		return White, true
	}
	return Black, false
}

func (s Score) String() string {
	return fmt.Sprintf("X: %d - O: %d", s.Black, s.White)
}
