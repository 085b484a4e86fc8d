package alphabeta

import (
	"math"

	"github.com/othello-go/othello/board"
	"github.com/othello-go/othello/movegen"
)

const (
	// WinValue and LossValue are returned for finished games, from black's
	// point of view.
	WinValue  = int32(math.MaxInt32)
	LossValue = int32(math.MinInt32)

	MobilityWeight = 5
)

type zone struct {
	mask   board.Bitboard
	weight int32
}

// zones partition the board by strategic value. Every mask is symmetric
// under the eight board symmetries.
var zones = [7]zone{
	{0x8100000000000081, 100}, // corners
	{0x2400810000810024, 10},  // edge squares two away from corners
	{0x1800008181000018, 5},   // middle of the edges
	{0x00003C3C3C3C0000, -1},  // center
	{0x003C424242423C00, -2},  // ring around the center
	{0x4281000000008142, -20}, // edge squares next to corners
	{0x0042000000004200, -50}, // x-squares
}

// Evaluate is the static evaluation used at the search horizon. Positive
// values favor black regardless of who is to move.
func Evaluate(b board.Board) int32 {
	black := b.Bitboard(board.Black)
	white := b.Bitboard(board.White)

	var res int32
	for _, z := range zones {
		res += z.weight * int32((black&z.mask).PopCount()-(white&z.mask).PopCount())
	}
	blackMobility := movegen.GenMoves(b, board.Black).PopCount()
	whiteMobility := movegen.GenMoves(b, board.White).PopCount()
	res += MobilityWeight * int32(blackMobility-whiteMobility)
	return res
}

// EvaluateEnd scores a finished game: WinValue if black has more disks,
// LossValue if white has, and 0 for a draw.
func EvaluateEnd(b board.Board) int32 {
	leader, ok := b.Score().Leader()
	switch {
	case !ok:
		return 0
	case leader == board.Black:
		return WinValue
	}
	return LossValue
}
