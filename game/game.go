// Package game runs a game of Othello between two players: it alternates
// turns, records forced passes and detects the end of the game. A Game
// doesn't care how its moves are chosen; players live in ai/player.
package game

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/othello-go/othello/board"
	"github.com/othello-go/othello/movegen"
)

var ErrGameOver = errors.New("the game is over")

type PlayState int

const (
	Playing PlayState = iota
	GameOver
)

func (p PlayState) String() string {
	if p == GameOver {
		return "game over"
	}
	return "playing"
}

// Player is the move-selection contract a game is driven by.
type Player interface {
	ChooseMove(b board.Board, moves board.Bitboard, c board.Color) (board.Bitboard, error)
}

// Turn is one entry of the game history. Move is zero for a pass.
type Turn struct {
	Color board.Color
	Move  board.Bitboard
	After board.Board
}

func (t Turn) IsPass() bool {
	return t.Move == 0
}

func (t Turn) String() string {
	if t.IsPass() {
		return t.Color.Symbol() + " pass"
	}
	return t.Color.Symbol() + " " + board.SquareName(t.Move)
}

type Game struct {
	start   board.Board
	board   board.Board
	onturn  board.Color
	playing PlayState
	turns   []Turn
	colors  bool
}

// NewGame starts from the standard position with black to move.
func NewGame() *Game {
	g, _ := NewGameFromBoard(board.NewBoard(), board.Black)
	return g
}

// NewGameFromBoard starts a game from an arbitrary position. If c cannot
// move but its opponent can, a pass is recorded right away; if neither can
// move the game is already over.
func NewGameFromBoard(b board.Board, c board.Color) (*Game, error) {
	if b.Bitboard(board.Black)&b.Bitboard(board.White) != 0 {
		return nil, board.ErrOverlappingDisks
	}
	g := &Game{start: b, board: b, onturn: c}
	g.settle()
	return g, nil
}

// settle makes sure the side on turn has a move, recording a pass or
// ending the game otherwise.
func (g *Game) settle() {
	if movegen.HasMoves(g.board, g.onturn) {
		return
	}
	if movegen.HasMoves(g.board, g.onturn.Invert()) {
		g.turns = append(g.turns, Turn{Color: g.onturn, After: g.board})
		log.Debug().Str("color", g.onturn.String()).Int("turn", len(g.turns)).Msg("forced-pass")
		g.onturn = g.onturn.Invert()
		return
	}
	g.playing = GameOver
	log.Debug().Str("score", g.board.Score().String()).Msg("game-over")
}

func (g *Game) SetColors(colors bool) {
	g.colors = colors
}

func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) PlayerOnTurn() board.Color {
	return g.onturn
}

// LegalMoves is empty only once the game is over.
func (g *Game) LegalMoves() board.Bitboard {
	if g.playing == GameOver {
		return 0
	}
	return movegen.GenMoves(g.board, g.onturn)
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) Score() board.Score {
	return g.board.Score()
}

// Winner reports the leader once the game is over. ok is false while the
// game is still going or when it ended in a draw.
func (g *Game) Winner() (c board.Color, ok bool) {
	if g.playing != GameOver {
		return board.Black, false
	}
	return g.board.Score().Leader()
}

// Turn is the number of turns played so far, passes included.
func (g *Game) Turn() int {
	return len(g.turns)
}

func (g *Game) Turns() []Turn {
	return g.turns
}

// LastMove is the last disk placed, or zero.
func (g *Game) LastMove() board.Bitboard {
	for i := len(g.turns) - 1; i >= 0; i-- {
		if !g.turns[i].IsPass() {
			return g.turns[i].Move
		}
	}
	return 0
}

// History lists every turn as "X d3" or "O pass".
func (g *Game) History() []string {
	return lo.Map(g.turns, func(t Turn, _ int) string {
		return t.String()
	})
}

// Fingerprint identifies the sequence of moves played from the starting
// position. Two games that went the same way share a fingerprint.
func (g *Game) Fingerprint() uint64 {
	return xxhash.Sum64String(g.start.String() + ":" + strings.Join(g.History(), ","))
}

// PlayMove plays mv for the side on turn and hands the turn over.
func (g *Game) PlayMove(mv board.Bitboard) error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	nb, err := movegen.Play(g.board, g.onturn, mv)
	if err != nil {
		return fmt.Errorf("%s %s: %w", g.onturn.Symbol(), board.SquareName(mv), err)
	}
	g.board = nb
	g.turns = append(g.turns, Turn{Color: g.onturn, Move: mv, After: nb})
	g.onturn = g.onturn.Invert()
	g.settle()
	return nil
}

// ToDisplayText renders the position with the moves of the side on turn.
func (g *Game) ToDisplayText() string {
	return g.board.ToDisplayText(g.LegalMoves(), g.LastMove(), g.colors)
}

// Play asks black and white for moves until the game is over. With a nil
// out nothing is printed.
func (g *Game) Play(black, white Player, out io.Writer) error {
	players := [2]Player{board.Black: black, board.White: white}
	for g.playing == Playing {
		if out != nil {
			fmt.Fprintln(out, g.ToDisplayText())
		}
		c := g.onturn
		mv, err := players[c].ChooseMove(g.board, g.LegalMoves(), c)
		if err != nil {
			return err
		}
		if err := g.PlayMove(mv); err != nil {
			return err
		}
	}
	if out != nil {
		fmt.Fprintln(out, g.ToDisplayText())
		fmt.Fprintln(out, g.Summary())
	}
	return nil
}

// Summary is the final score line followed by who won.
func (g *Game) Summary() string {
	score := g.Score()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Game over! Final score is [%s]\n", score)
	if c, ok := score.Leader(); ok {
		fmt.Fprintf(&sb, "%s player won! Congratulations!", c.Symbol())
	} else {
		sb.WriteString("It's a draw!")
	}
	return sb.String()
}
