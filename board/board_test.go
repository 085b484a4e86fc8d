package board

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestPopLSB(t *testing.T) {
	is := is.New(t)
	bb := Bitboard(0b101100)
	is.Equal(PopLSB(&bb), Bitboard(0b100))
	is.Equal(bb, Bitboard(0b101000))
	is.Equal(PopLSB(&bb), Bitboard(0b1000))
	is.Equal(PopLSB(&bb), Bitboard(0b100000))
	is.Equal(bb, Bitboard(0))

	top := Bitboard(1) << 63
	is.Equal(PopLSB(&top), Bitboard(1)<<63)
	is.Equal(top, Bitboard(0))
}

func TestPopCountAndContains(t *testing.T) {
	is := is.New(t)
	is.Equal(Bitboard(0).PopCount(), 0)
	is.Equal(Full.PopCount(), 64)
	is.Equal(Bitboard(0x8100000000000081).PopCount(), 4)

	corners := Bitboard(0x8100000000000081)
	is.True(corners.Contains(0, 0))
	is.True(corners.Contains(7, 0))
	is.True(corners.Contains(0, 7))
	is.True(corners.Contains(7, 7))
	is.True(!corners.Contains(1, 0))
	is.True(!corners.Contains(0, 1))
}

func TestStartingPosition(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.Equal(b.SquareAt(4, 3), BlackDisk) // e4
	is.Equal(b.SquareAt(3, 4), BlackDisk) // d5
	is.Equal(b.SquareAt(3, 3), WhiteDisk) // d4
	is.Equal(b.SquareAt(4, 4), WhiteDisk) // e5
	is.Equal(b.SquareAt(0, 0), Empty)
	is.Equal(b.Score(), Score{Black: 2, White: 2})
	is.Equal(b.Bitboard(Black)&b.Bitboard(White), Bitboard(0))
	is.Equal(b.Occupied().PopCount(), 4)
	is.Equal(b.Empty().PopCount(), 60)
}

func TestFromBitboards(t *testing.T) {
	is := is.New(t)
	_, err := FromBitboards(0b11, 0b10)
	is.Equal(err, ErrOverlappingDisks)

	b, err := FromBitboards(0b01, 0b10)
	is.NoErr(err)
	is.Equal(b.SquareAt(0, 0), BlackDisk)
	is.Equal(b.SquareAt(1, 0), WhiteDisk)
}

func TestWithMasks(t *testing.T) {
	is := is.New(t)
	b := WithMasks(White, 0b01, 0b10)
	is.Equal(b.Bitboard(White), Bitboard(0b01))
	is.Equal(b.Bitboard(Black), Bitboard(0b10))
}

func TestParseBoard(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.Equal(b.String(), "00000008100000000000001008000000")

	parsed, err := Parse(b.String())
	is.NoErr(err)
	is.Equal(parsed, b)

	_, err = Parse("1234")
	is.Equal(err, ErrBadBoardString)

	_, err = Parse("zz000008100000000000001008000000")
	is.True(err != nil)

	_, err = Parse("0000000000000001" + "0000000000000001")
	is.Equal(err, ErrOverlappingDisks)
}

func TestScore(t *testing.T) {
	is := is.New(t)
	s := Score{Black: 40, White: 24}
	is.Equal(s.Get(Black), 40)
	is.Equal(s.Get(White), 24)
	is.Equal(s.Spread(), 16)
	c, ok := s.Leader()
	is.True(ok)
	is.Equal(c, Black)

	_, ok = Score{Black: 32, White: 32}.Leader()
	is.True(!ok)
}

func TestColor(t *testing.T) {
	is := is.New(t)
	is.Equal(Black.Invert(), White)
	is.Equal(White.Invert(), Black)
	is.Equal(Black.Invert().Invert(), Black)

	for _, tc := range []struct {
		in   string
		want Color
	}{
		{"black", Black}, {"B", Black}, {"x", Black},
		{"White", White}, {"w", White}, {"O", White},
	} {
		c, err := ParseColor(tc.in)
		is.NoErr(err)
		is.Equal(c, tc.want)
	}
	_, err := ParseColor("red")
	is.Equal(err, ErrUnknownColor)
}

func TestParseSquare(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		in   string
		x, y int
	}{
		{"a1", 0, 0},
		{"h1", 7, 0},
		{"a8", 0, 7},
		{"h8", 7, 7},
		{"d3", 3, 2},
		{" E6\n", 4, 5},
	} {
		bb, err := ParseSquare(tc.in)
		is.NoErr(err)
		is.Equal(bb, SquareBit(tc.x, tc.y))
		is.Equal(SquareName(bb), strings.ToLower(strings.TrimSpace(tc.in)))
	}
	for _, bad := range []string{"", "a", "a9", "i1", "a0", "11", "a10"} {
		_, err := ParseSquare(bad)
		is.Equal(err, ErrBadSquare)
	}
}

func TestSquares(t *testing.T) {
	is := is.New(t)
	is.Equal(Squares(0x8100000000000081), []string{"a1", "h1", "a8", "h8"})
	is.Equal(len(Squares(0)), 0)
	is.Equal(SquareName(0), "--")
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	c4, err := ParseSquare("c4")
	is.NoErr(err)
	d4, err := ParseSquare("d4")
	is.NoErr(err)

	expected := "  a b c d e f g h\n" +
		"1 - - - - - - - - \n" +
		"2 - - - - - - - - \n" +
		"3 - - - - - - - - \n" +
		"4 - - ~ O X - - - \n" +
		"5 - - - X O - - - \n" +
		"6 - - - - - - - - \n" +
		"7 - - - - - - - - \n" +
		"8 - - - - - - - - \n"
	is.Equal(NewBoard().ToDisplayText(c4, d4, false), expected)

	colored := NewBoard().ToDisplayText(c4, d4, true)
	is.True(strings.Contains(colored, colorRed+"O "+colorReset))
	is.True(strings.Contains(colored, colorYellow+"~ "+colorReset))
}
