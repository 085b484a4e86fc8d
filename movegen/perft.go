package movegen

import "github.com/othello-go/othello/board"

// Perft counts the leaves of the move tree of the given depth. A forced
// pass uses up one ply; a position where neither side can move is a leaf.
func Perft(b board.Board, c board.Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := GenMoves(b, c)
	if moves == 0 {
		if !HasMoves(b, c.Invert()) {
			return 1
		}
		return Perft(b, c.Invert(), depth-1)
	}
	var leaves uint64
	for moves != 0 {
		leaves += Perft(MakeMove(b, c, board.PopLSB(&moves)), c.Invert(), depth-1)
	}
	return leaves
}
