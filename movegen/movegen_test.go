package movegen

import (
	"math/rand/v2"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/othello-go/othello/board"
)

func mustSquare(t testing.TB, s string) board.Bitboard {
	bb, err := board.ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return bb
}

func TestStartingMoves(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	moves := GenMoves(b, board.Black)
	is.Equal(moves.PopCount(), 4)
	is.Equal(board.Squares(moves), []string{"d3", "c4", "f5", "e6"})

	moves = GenMoves(b, board.White)
	is.Equal(board.Squares(moves), []string{"e3", "f4", "c5", "d6"})
	is.Equal(moves&b.Occupied(), board.Bitboard(0))
}

func TestMakeMoveFlips(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	after := MakeMove(b, board.Black, mustSquare(t, "f5"))

	is.Equal(after.SquareAt(5, 4), board.BlackDisk) // f5
	is.Equal(after.SquareAt(4, 4), board.BlackDisk) // e5 flipped
	is.Equal(after.SquareAt(3, 3), board.WhiteDisk) // d4 untouched
	is.Equal(after.Score(), board.Score{Black: 4, White: 1})

	// the input board is a value and must not change.
	is.Equal(b, board.NewBoard())
}

func TestMakeMoveMultipleDirections(t *testing.T) {
	is := is.New(t)
	// A white ring around d4 inside a black ring: d4 flips in all eight
	// directions.
	var black, white board.Bitboard
	for _, s := range []string{"b2", "d2", "f2", "b4", "f4", "b6", "d6", "f6"} {
		black |= mustSquare(t, s)
	}
	for _, s := range []string{"c3", "d3", "e3", "c4", "e4", "c5", "d5", "e5"} {
		white |= mustSquare(t, s)
	}
	b, err := board.FromBitboards(black, white)
	is.NoErr(err)

	d4 := mustSquare(t, "d4")
	is.True(GenMoves(b, board.Black)&d4 != 0)
	after := MakeMove(b, board.Black, d4)
	is.Equal(after.Bitboard(board.White), board.Bitboard(0))
	is.Equal(after.Score(), board.Score{Black: 17, White: 0})
}

func TestMakeMoveNeedsClosingDisk(t *testing.T) {
	is := is.New(t)
	// d1 flanks b1 and c1 against a1. The run e1..h1 reaches the edge and
	// must stay white.
	black := mustSquare(t, "a1")
	var white board.Bitboard
	for _, s := range []string{"b1", "c1", "e1", "f1", "g1", "h1"} {
		white |= mustSquare(t, s)
	}
	b, err := board.FromBitboards(black, white)
	is.NoErr(err)

	d1 := mustSquare(t, "d1")
	is.Equal(GenMoves(b, board.Black), d1)
	after := MakeMove(b, board.Black, d1)
	is.Equal(board.Squares(after.Bitboard(board.Black)), []string{"a1", "b1", "c1", "d1"})
	is.Equal(board.Squares(after.Bitboard(board.White)), []string{"e1", "f1", "g1", "h1"})
}

func TestNoWrapAcrossEdges(t *testing.T) {
	is := is.New(t)
	// Shifting h1 one step east would land on a2 without the edge masks.
	b, err := board.FromBitboards(mustSquare(t, "h1"), mustSquare(t, "a2"))
	is.NoErr(err)
	is.Equal(GenMoves(b, board.Black), board.Bitboard(0))
	is.Equal(GenMoves(b, board.White), board.Bitboard(0))

	// Same for a3 one step west, which would land on h2.
	b, err = board.FromBitboards(mustSquare(t, "a3"), mustSquare(t, "h2"))
	is.NoErr(err)
	is.Equal(GenMoves(b, board.Black), board.Bitboard(0))
	is.Equal(GenMoves(b, board.White), board.Bitboard(0))
}

func TestLongestRun(t *testing.T) {
	is := is.New(t)
	// Black a1, white b1..g1: h1 flanks six disks.
	black := mustSquare(t, "a1")
	var white board.Bitboard
	for _, s := range []string{"b1", "c1", "d1", "e1", "f1", "g1"} {
		white |= mustSquare(t, s)
	}
	b, err := board.FromBitboards(black, white)
	is.NoErr(err)
	h1 := mustSquare(t, "h1")
	is.Equal(GenMoves(b, board.Black), h1)
	after := MakeMove(b, board.Black, h1)
	is.Equal(after.Score(), board.Score{Black: 8, White: 0})
}

func TestPlayChecksPreconditions(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()

	_, err := Play(b, board.Black, 0)
	is.Equal(err, ErrNotSingleSquare)
	_, err = Play(b, board.Black, mustSquare(t, "d3")|mustSquare(t, "c4"))
	is.Equal(err, ErrNotSingleSquare)
	_, err = Play(b, board.Black, mustSquare(t, "a1"))
	is.Equal(err, ErrIllegalMove)
	_, err = Play(b, board.Black, mustSquare(t, "d4"))
	is.Equal(err, ErrIllegalMove)

	got, err := Play(b, board.Black, mustSquare(t, "d3"))
	is.NoErr(err)
	is.Equal(got, MakeMove(b, board.Black, mustSquare(t, "d3")))
}

func TestPassAndGameOver(t *testing.T) {
	is := is.New(t)
	// White on b1 cannot flank black's corner disk; black can play c1.
	b, err := board.FromBitboards(mustSquare(t, "a1"), mustSquare(t, "b1"))
	is.NoErr(err)
	is.True(!HasMoves(b, board.White))
	is.True(HasMoves(b, board.Black))
	is.True(!GameOver(b))

	b = MakeMove(b, board.Black, mustSquare(t, "c1"))
	is.True(GameOver(b))
	is.Equal(b.Score(), board.Score{Black: 3, White: 0})
}

func checkInvariants(t *testing.T, b board.Board, c board.Color, depth int) {
	t.Helper()
	if b.Bitboard(board.Black)&b.Bitboard(board.White) != 0 {
		t.Fatalf("overlapping disks in %v", b)
	}
	if depth == 0 {
		return
	}
	moves := GenMoves(b, c)
	if moves&b.Occupied() != 0 {
		t.Fatalf("move on an occupied square in %v", b)
	}
	before := b.Score()
	for moves != 0 {
		mv := board.PopLSB(&moves)
		after := MakeMove(b, c, mv)
		sc := after.Score()
		if sc.Get(c) <= before.Get(c) {
			t.Fatalf("mover count did not grow: %v -> %v", b, after)
		}
		if sc.Black+sc.White != before.Black+before.White+1 {
			t.Fatalf("total disks must grow by one: %v -> %v", b, after)
		}
		checkInvariants(t, after, c.Invert(), depth-1)
	}
}

func TestMoveInvariantsExhaustive(t *testing.T) {
	depth := 6
	if testing.Short() {
		depth = 4
	}
	checkInvariants(t, board.NewBoard(), board.Black, depth)
}

func TestMoveInvariantsRandomGames(t *testing.T) {
	r := rand.New(rand.NewPCG(17, 42))
	for game := 0; game < 200; game++ {
		b := board.NewBoard()
		c := board.Black
		for !GameOver(b) {
			moves := GenMoves(b, c)
			if moves == 0 {
				c = c.Invert()
				continue
			}
			n := r.IntN(moves.PopCount())
			for i := 0; i < n; i++ {
				board.PopLSB(&moves)
			}
			mv := board.PopLSB(&moves)
			next, err := Play(b, c, mv)
			assert.NoError(t, err)
			assert.Zero(t, next.Bitboard(board.Black)&next.Bitboard(board.White))
			assert.Greater(t, next.Score().Get(c), b.Score().Get(c))
			b = next
			c = c.Invert()
		}
		sc := b.Score()
		assert.LessOrEqual(t, sc.Black+sc.White, board.NumSquares)
	}
}

func TestPerft(t *testing.T) {
	expected := []uint64{1, 4, 12, 56, 244, 1396, 8200, 55092, 390216, 3005288}
	maxDepth := len(expected) - 1
	if testing.Short() {
		maxDepth = 6
	}
	for depth := 0; depth <= maxDepth; depth++ {
		assert.Equal(t, expected[depth], Perft(board.NewBoard(), board.Black, depth),
			"perft at depth %d", depth)
	}
}

func BenchmarkGenMoves(b *testing.B) {
	bd := board.NewBoard()
	for i := 0; i < b.N; i++ {
		GenMoves(bd, board.Black)
	}
}

func BenchmarkMakeMove(b *testing.B) {
	bd := board.NewBoard()
	mv, _ := board.ParseSquare("f5")
	for i := 0; i < b.N; i++ {
		MakeMove(bd, board.Black, mv)
	}
}

func BenchmarkPerft7(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Perft(board.NewBoard(), board.Black, 7)
	}
}
