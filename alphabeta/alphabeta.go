// Package alphabeta chooses Othello moves with depth-limited minimax and
// alpha-beta pruning. Black is always the maximizing side.
package alphabeta

import (
	"github.com/othello-go/othello/board"
	"github.com/othello-go/othello/movegen"
)

// The search is fail-hard: a cut returns the bound reached so far. A side
// with no moves passes, which costs one ply; if the opponent cannot move
// either, the position is scored with EvaluateEnd.

// searcher carries the counters of one root task. Nothing in it is shared
// between goroutines.
type searcher struct {
	nodes uint64
}

func (s *searcher) alphabeta(b board.Board, α, β int32, c board.Color, depth int) int32 {
	s.nodes++
	if depth == 0 {
		return Evaluate(b)
	}

	moves := movegen.GenMoves(b, c)
	if moves == 0 {
		// A forced pass uses up a ply.
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

	next := c.Invert()
	depth--

	var value int32
	if c == board.Black {
		value = LossValue
		for moves != 0 {
			child := movegen.MakeMove(b, c, board.PopLSB(&moves))
			value = max(value, s.alphabeta(child, α, β, next, depth))
			α = max(α, value)
			if α >= β {
				break
			}
		}
	} else {
		value = WinValue
		for moves != 0 {
			child := movegen.MakeMove(b, c, board.PopLSB(&moves))
			value = min(value, s.alphabeta(child, α, β, next, depth))
			β = min(β, value)
			if α >= β {
				break
			}
		}
	}
	return value
}
