package alphabeta

import (
	"math/rand/v2"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/othello-go/othello/board"
	"github.com/othello-go/othello/movegen"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func mustSquare(t testing.TB, s string) board.Bitboard {
	bb, err := board.ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return bb
}

func mustBoard(t testing.TB, black, white []string) board.Board {
	var bb, wb board.Bitboard
	for _, s := range black {
		bb |= mustSquare(t, s)
	}
	for _, s := range white {
		wb |= mustSquare(t, s)
	}
	b, err := board.FromBitboards(bb, wb)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// minimax is the unpruned search, with the same pass rules.
func minimax(b board.Board, c board.Color, depth int) int32 {
	if depth == 0 {
		return Evaluate(b)
	}
	moves := movegen.GenMoves(b, c)
	if moves == 0 {
		c = c.Invert()
		depth--
		if depth == 0 {
			return Evaluate(b)
		}
		moves = movegen.GenMoves(b, c)
		if moves == 0 {
			return EvaluateEnd(b)
		}
	}
	depth--
	best := WinValue
	if c == board.Black {
		best = LossValue
	}
	for moves != 0 {
		v := minimax(movegen.MakeMove(b, c, board.PopLSB(&moves)), c.Invert(), depth)
		if c == board.Black {
			best = max(best, v)
		} else {
			best = min(best, v)
		}
	}
	return best
}

type position struct {
	b board.Board
	c board.Color
}

// randomPositions plays seeded random games and collects positions that
// still have moves for the side on turn.
func randomPositions(n int) []position {
	r := rand.New(rand.NewPCG(3, 7))
	var out []position
	for len(out) < n {
		b := board.NewBoard()
		c := board.Black
		plies := 10 + r.IntN(45)
		for i := 0; i < plies && !movegen.GameOver(b); i++ {
			moves := movegen.GenMoves(b, c)
			if moves == 0 {
				c = c.Invert()
				continue
			}
			for skip := r.IntN(moves.PopCount()); skip > 0; skip-- {
				board.PopLSB(&moves)
			}
			b = movegen.MakeMove(b, c, board.PopLSB(&moves))
			c = c.Invert()
		}
		if movegen.HasMoves(b, c) {
			out = append(out, position{b, c})
		}
	}
	return out
}

func TestEvaluateStartIsBalanced(t *testing.T) {
	is := is.New(t)
	is.Equal(Evaluate(board.NewBoard()), int32(0))
}

func TestEvaluateZonesAndMobility(t *testing.T) {
	is := is.New(t)
	// Corner for black: +100.
	is.Equal(Evaluate(mustBoard(t, []string{"a1"}, nil)), int32(100))
	// Corner for black, x-square for white: 100 + 50, and black can take
	// b2 by playing c3: +5 mobility.
	is.Equal(Evaluate(mustBoard(t, []string{"a1"}, []string{"b2"})), int32(155))
	// Mirror image with colors swapped.
	is.Equal(Evaluate(mustBoard(t, []string{"b2"}, []string{"a1"})), int32(-155))
}

func TestZonesPartitionBoard(t *testing.T) {
	is := is.New(t)
	var union board.Bitboard
	for _, z := range zones {
		is.Equal(union&z.mask, board.Bitboard(0))
		union |= z.mask
	}
	is.Equal(union, board.Full)
}

func TestEvaluateEnd(t *testing.T) {
	is := is.New(t)
	is.Equal(EvaluateEnd(mustBoard(t, []string{"a1", "b1"}, []string{"h8"})), WinValue)
	is.Equal(EvaluateEnd(mustBoard(t, []string{"a1"}, []string{"h8", "g8"})), LossValue)
	is.Equal(EvaluateEnd(mustBoard(t, []string{"a1"}, []string{"h8"})), int32(0))
}

func TestTerminalPosition(t *testing.T) {
	is := is.New(t)
	sr := searcher{}
	won := mustBoard(t, []string{"a1", "b1", "c1"}, nil)
	is.Equal(sr.alphabeta(won, LossValue, WinValue, board.White, 3), WinValue)
	is.Equal(sr.alphabeta(won, LossValue, WinValue, board.Black, 3), WinValue)

	lost := mustBoard(t, nil, []string{"a1", "b1", "c1"})
	is.Equal(sr.alphabeta(lost, LossValue, WinValue, board.Black, 5), LossValue)

	drawn := mustBoard(t, []string{"a1"}, []string{"h8"})
	is.Equal(sr.alphabeta(drawn, LossValue, WinValue, board.Black, 2), int32(0))

	// At the horizon the static evaluation wins over the terminal check.
	is.Equal(sr.alphabeta(won, LossValue, WinValue, board.Black, 0), Evaluate(won))
}

func TestForcedPassUsesAPly(t *testing.T) {
	is := is.New(t)
	// White cannot move; black can play c1.
	b := mustBoard(t, []string{"a1"}, []string{"b1"})
	is.True(!movegen.HasMoves(b, board.White))

	sr := searcher{}
	is.Equal(sr.alphabeta(b, LossValue, WinValue, board.White, 1), Evaluate(b))

	c1 := mustSquare(t, "c1")
	is.Equal(sr.alphabeta(b, LossValue, WinValue, board.White, 2),
		Evaluate(movegen.MakeMove(b, board.Black, c1)))
}

func TestMatchesMinimax(t *testing.T) {
	maxDepth := 4
	if testing.Short() {
		maxDepth = 3
	}
	for depth := 1; depth <= maxDepth; depth++ {
		for _, c := range []board.Color{board.Black, board.White} {
			sr := searcher{}
			got := sr.alphabeta(board.NewBoard(), LossValue, WinValue, c, depth)
			if want := minimax(board.NewBoard(), c, depth); got != want {
				t.Errorf("start, %v, depth %d: alphabeta %d, minimax %d", c, depth, got, want)
			}
		}
	}
	for i, p := range randomPositions(25) {
		sr := searcher{}
		got := sr.alphabeta(p.b, LossValue, WinValue, p.c, 3)
		if want := minimax(p.b, p.c, 3); got != want {
			t.Errorf("position %d (%v): alphabeta %d, minimax %d", i, p.b, got, want)
		}
	}
}

func TestPruningSavesNodes(t *testing.T) {
	is := is.New(t)
	sr := searcher{}
	sr.alphabeta(board.NewBoard(), LossValue, WinValue, board.Black, 6)
	var fullTree uint64
	for d := 0; d <= 6; d++ {
		fullTree += movegen.Perft(board.NewBoard(), board.Black, d)
	}
	is.True(sr.nodes > 0)
	is.True(sr.nodes < fullTree)
}
