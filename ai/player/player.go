// Package player holds the move choosers that drive a game: the alpha-beta
// engine, a human at a terminal, and a random mover.
package player

import (
	"errors"
	"fmt"
	"strings"

	"lukechampine.com/frand"

	"github.com/othello-go/othello/alphabeta"
	"github.com/othello-go/othello/board"
)

const (
	HumanPlayer     = "human"
	AlphaBetaPlayer = "alphabeta"
	RandomPlayer    = "random"
)

var ErrUnknownPlayer = errors.New("unknown player type")

// Player chooses one move out of a non-empty set of legal moves.
type Player interface {
	ChooseMove(b board.Board, moves board.Bitboard, c board.Color) (board.Bitboard, error)
	Name() string
}

// AlphaBeta wraps the search engine.
type AlphaBeta struct {
	solver *alphabeta.Solver
	last   alphabeta.Result
}

func NewAlphaBeta(maxDepth, threads int) *AlphaBeta {
	s := alphabeta.NewSolver(maxDepth)
	s.SetThreads(threads)
	return &AlphaBeta{solver: s}
}

func (p *AlphaBeta) Name() string {
	return fmt.Sprintf("%s-%d", AlphaBetaPlayer, p.solver.MaxDepth())
}

func (p *AlphaBeta) Solver() *alphabeta.Solver {
	return p.solver
}

// LastResult is the full search result behind the last chosen move.
func (p *AlphaBeta) LastResult() alphabeta.Result {
	return p.last
}

func (p *AlphaBeta) ChooseMove(b board.Board, moves board.Bitboard, c board.Color) (board.Bitboard, error) {
	res, err := p.solver.Solve(b, moves, c)
	if err != nil {
		return 0, err
	}
	p.last = res
	return res.Best, nil
}

// Random plays a uniformly random legal move.
type Random struct{}

func (Random) Name() string {
	return RandomPlayer
}

func (Random) ChooseMove(b board.Board, moves board.Bitboard, c board.Color) (board.Bitboard, error) {
	if moves == 0 {
		return 0, alphabeta.ErrNoMoves
	}
	for skip := frand.Intn(moves.PopCount()); skip > 0; skip-- {
		board.PopLSB(&moves)
	}
	return board.PopLSB(&moves), nil
}

// New builds a non-interactive player from its type name. Human players
// need a line source and are built with NewHuman instead.
func New(kind string, maxDepth, threads int) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case AlphaBetaPlayer:
		return NewAlphaBeta(maxDepth, threads), nil
	case RandomPlayer:
		return Random{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, kind)
}
