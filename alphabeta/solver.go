package alphabeta

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/othello-go/othello/board"
	"github.com/othello-go/othello/movegen"
)

const DefaultMaxDepth = 9

var (
	ErrNoMoves       = errors.New("there are no legal moves to choose from")
	ErrNegativeDepth = errors.New("search depth cannot be negative")
)

// MoveValue is the searched value of one root move.
type MoveValue struct {
	Move  board.Bitboard
	Value int32
	Nodes uint64
}

// Result is the outcome of a Solve call. Candidates are in bit-scan order.
type Result struct {
	Best       board.Bitboard
	Value      int32
	Candidates []MoveValue
	Nodes      uint64
	Elapsed    time.Duration
}

func (r Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "best %s (%s); %d nodes in %v\n",
		board.SquareName(r.Best), FormatValue(r.Value), r.Nodes, r.Elapsed.Round(time.Millisecond))
	for _, c := range r.Candidates {
		fmt.Fprintf(&sb, "  %s %s\n", board.SquareName(c.Move), FormatValue(c.Value))
	}
	return sb.String()
}

// FormatValue prints the sentinel values as forced wins and losses.
func FormatValue(v int32) string {
	switch v {
	case WinValue:
		return "black wins"
	case LossValue:
		return "white wins"
	}
	return fmt.Sprintf("%d", v)
}

// Solver searches every root move in its own goroutine. Each search starts
// from a full window; bounds are never shared between root moves.
type Solver struct {
	maxDepth int
	threads  int
}

// NewSolver returns a solver that searches maxDepth plies below each root
// move.
func NewSolver(maxDepth int) *Solver {
	return &Solver{maxDepth: maxDepth}
}

// SetThreads bounds how many root moves are searched at once. Zero or less
// means one goroutine per root move.
func (s *Solver) SetThreads(threads int) {
	s.threads = max(threads, 0)
}

func (s *Solver) Threads() int {
	return s.threads
}

func (s *Solver) SetMaxDepth(depth int) error {
	if depth < 0 {
		return ErrNegativeDepth
	}
	s.maxDepth = depth
	return nil
}

func (s *Solver) MaxDepth() int {
	return s.maxDepth
}

// Solve searches every move in moves for side c and returns the best one:
// the highest value for black, the lowest for white. Ties go to the move
// found first in bit-scan order.
func (s *Solver) Solve(b board.Board, moves board.Bitboard, c board.Color) (Result, error) {
	if moves == 0 {
		return Result{}, ErrNoMoves
	}
	tstart := time.Now()
	log.Debug().Int("depth", s.maxDepth).Int("threads", s.threads).
		Str("color", c.String()).Int("root-moves", moves.PopCount()).Msg("alphabeta-solve-config")

	candidates := make([]MoveValue, moves.PopCount())
	g := errgroup.Group{}
	if s.threads > 0 {
		g.SetLimit(s.threads)
	}
	for i := 0; moves != 0; i++ {
		m := board.PopLSB(&moves)
		child := movegen.MakeMove(b, c, m)
		g.Go(func() error {
			sr := searcher{}
			v := sr.alphabeta(child, LossValue, WinValue, c.Invert(), s.maxDepth)
			candidates[i] = MoveValue{Move: m, Value: v, Nodes: sr.nodes}
			return nil
		})
	}
	// The searches cannot fail; Wait is only the join barrier.
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Candidates: candidates}
	best := candidates[0]
	for _, cand := range candidates {
		res.Nodes += cand.Nodes
		if (c == board.Black && cand.Value > best.Value) ||
			(c == board.White && cand.Value < best.Value) {
			best = cand
		}
	}
	res.Best = best.Move
	res.Value = best.Value
	res.Elapsed = time.Since(tstart)

	log.Debug().
		Str("move", board.SquareName(res.Best)).
		Str("value", FormatValue(res.Value)).
		Uint64("nodes", res.Nodes).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")
	return res, nil
}

// ChooseMove returns only the best move of Solve.
func (s *Solver) ChooseMove(b board.Board, moves board.Bitboard, c board.Color) (board.Bitboard, error) {
	res, err := s.Solve(b, moves, c)
	if err != nil {
		return 0, err
	}
	return res.Best, nil
}
