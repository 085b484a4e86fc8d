package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/othello-go/othello/alphabeta"
	"github.com/othello-go/othello/board"
)

var ErrInputClosed = errors.New("input closed before a move was entered")

// LineReader is a source of input lines. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

type bufioLineReader struct {
	r *bufio.Reader
}

// NewLineReader reads lines from a plain reader, such as a pipe.
func NewLineReader(r io.Reader) LineReader {
	return &bufioLineReader{r: bufio.NewReader(r)}
}

func (b *bufioLineReader) Readline() (string, error) {
	line, err := b.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return line, nil
}

// Human asks for moves on a terminal until it gets a legal one.
type Human struct {
	in  LineReader
	out io.Writer
}

func NewHuman(in LineReader, out io.Writer) *Human {
	return &Human{in: in, out: out}
}

func (h *Human) Name() string {
	return HumanPlayer
}

func (h *Human) ChooseMove(b board.Board, moves board.Bitboard, c board.Color) (board.Bitboard, error) {
	if moves == 0 {
		return 0, alphabeta.ErrNoMoves
	}
	fmt.Fprintf(h.out, "%s player, where do you want to play? (format: [a-h][1-8])\n", c.Symbol())
	for {
		line, err := h.in.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return 0, ErrInputClosed
		} else if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInputClosed, err)
		}
		mv, err := board.ParseSquare(line)
		if err != nil {
			log.Debug().Str("input", line).Msg("bad-square")
			fmt.Fprintln(h.out, "Please enter a square like d3.")
			continue
		}
		if mv&moves == 0 {
			fmt.Fprintf(h.out, "%s is not a legal move. Legal moves: %v\n",
				board.SquareName(mv), board.Squares(moves))
			continue
		}
		return mv, nil
	}
}
