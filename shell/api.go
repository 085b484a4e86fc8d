package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/othello-go/othello/ai/player"
	"github.com/othello-go/othello/automatic"
	"github.com/othello-go/othello/board"
	"github.com/othello-go/othello/config"
	"github.com/othello-go/othello/game"
	"github.com/othello-go/othello/movegen"
)

const defaultHistogramWidth = 40

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) StringDefault(key, defaultS string) string {
	if v := c.String(key); v != "" {
		return v
	}
	return defaultS
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("usage")
	}
	return usageTopic(cmd.args[0])
}

// gameText is the board followed by who is to move, or the result.
func (sc *ShellController) gameText() string {
	var sb strings.Builder
	sb.WriteString(sc.game.ToDisplayText())
	if sc.game.Playing() == game.GameOver {
		sb.WriteString(sc.game.Summary())
		return sb.String()
	}
	fmt.Fprintf(&sb, "%s to move. Score %s",
		sc.game.PlayerOnTurn().Symbol(), sc.game.Score())
	return sb.String()
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.setGame(game.NewGame())
	return msg(sc.gameText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.gameText()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if sc.game.Playing() == game.GameOver {
		return nil, game.ErrGameOver
	}
	mvs := sc.game.LegalMoves()
	return msg(fmt.Sprintf("%s can play: %s", sc.game.PlayerOnTurn().Symbol(),
		strings.Join(board.Squares(mvs), " "))), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <square>")
	}
	mv, err := board.ParseSquare(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(mv); err != nil {
		return nil, err
	}
	return msg(sc.gameText()), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game.Playing() == game.GameOver {
		return nil, game.ErrGameOver
	}
	c := sc.game.PlayerOnTurn()
	res, err := sc.solver.Solve(sc.game.Board(), sc.game.LegalMoves(), c)
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(res.Best); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s plays %s\n%s", c.Symbol(), board.SquareName(res.Best), sc.gameText())), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if sc.game.Playing() == game.GameOver {
		return nil, game.ErrGameOver
	}
	res, err := sc.solver.Solve(sc.game.Board(), sc.game.LegalMoves(), sc.game.PlayerOnTurn())
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(res.String(), "\n")), nil
}

func (sc *ShellController) setboard(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 || len(cmd.args) > 2 {
		return nil, errors.New("usage: setboard <32 hex digits> [black|white]")
	}
	b, err := board.Parse(cmd.args[0])
	if err != nil {
		return nil, err
	}
	c := board.Black
	if len(cmd.args) == 2 {
		c, err = board.ParseColor(cmd.args[1])
		if err != nil {
			return nil, err
		}
	}
	g, err := game.NewGameFromBoard(b, c)
	if err != nil {
		return nil, err
	}
	sc.setGame(g)
	return msg(sc.gameText()), nil
}

func (sc *ShellController) depth(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(fmt.Sprintf("search depth is %d", sc.solver.MaxDepth())), nil
	}
	d, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.solver.SetMaxDepth(d); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("search depth set to %d", d)), nil
}

func (sc *ShellController) threads(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(fmt.Sprintf("search threads: %d", sc.solver.Threads())), nil
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.solver.SetThreads(n)
	return msg(fmt.Sprintf("search threads set to %d", sc.solver.Threads())), nil
}

// history prints one numbered line per black/white turn pair.
func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	turns := sc.game.History()
	if len(turns) == 0 {
		return msg("no moves yet"), nil
	}
	lines := lo.Map(lo.Chunk(turns, 2), func(pair []string, i int) string {
		return fmt.Sprintf("%3d. %s", i+1, strings.Join(pair, "  "))
	})
	return msg(strings.Join(lines, "\n")), nil
}

func (sc *ShellController) newPlayer(kind string) (player.Player, error) {
	if strings.EqualFold(strings.TrimSpace(kind), player.HumanPlayer) {
		if sc.lines == nil {
			return nil, errors.New("no terminal for a human player")
		}
		return player.NewHuman(sc.lines, sc.w), nil
	}
	return player.New(kind, sc.solver.MaxDepth(), sc.solver.Threads())
}

// autoplay plays the current game to the end with the configured players.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if sc.game.Playing() == game.GameOver {
		return nil, game.ErrGameOver
	}
	black, err := sc.newPlayer(cmd.options.StringDefault("black", sc.config.GetString(config.ConfigBlackPlayer)))
	if err != nil {
		return nil, err
	}
	white, err := sc.newPlayer(cmd.options.StringDefault("white", sc.config.GetString(config.ConfigWhitePlayer)))
	if err != nil {
		return nil, err
	}
	if err := sc.game.Play(black, white, sc.w); err != nil {
		return nil, err
	}
	return nil, nil
}

// match plays computer-vs-computer games and reports on them.
func (sc *ShellController) match(cmd *shellcmd) (*Response, error) {
	numGames := sc.config.GetInt(config.ConfigMatchGames)
	var err error
	if cmd.args != nil {
		numGames, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	if numGames <= 0 {
		return nil, errors.New("need a positive number of games")
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigMatchThreads))
	if err != nil {
		return nil, err
	}
	width, err := histogramWidth(cmd)
	if err != nil {
		return nil, err
	}

	mcfg := sc.config.Clone()
	mcfg.Set(config.ConfigBlackPlayer, cmd.options.StringDefault("black", sc.config.GetString(config.ConfigBlackPlayer)))
	mcfg.Set(config.ConfigWhitePlayer, cmd.options.StringDefault("white", sc.config.GetString(config.ConfigWhitePlayer)))
	mcfg.Set(config.ConfigSearchDepth, sc.solver.MaxDepth())
	mcfg.Set(config.ConfigSearchThreads, sc.solver.Threads())

	var logfile io.Writer
	if fn := cmd.options.String("log"); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		logfile = f
	}
	result, err := automatic.PlayCompVComp(context.Background(), mcfg, numGames, threads, logfile)
	if err != nil {
		return nil, err
	}
	return sc.matchReport(result, width)
}

func histogramWidth(cmd *shellcmd) (int, error) {
	width, err := cmd.options.IntDefault("width", defaultHistogramWidth)
	if err != nil {
		return 0, err
	}
	if width < 1 {
		return 0, automatic.ErrBadHistogramWidth
	}
	return width, nil
}

func (sc *ShellController) matchReport(result *automatic.MatchResult, width int) (*Response, error) {
	report, err := result.YAML()
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString(report)
	if err := result.Histogram(&sb, width); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// analyze summarizes a turn log written by match -log.
func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("usage: analyze <logfile>")
	}
	result, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	width, err := histogramWidth(cmd)
	if err != nil {
		return nil, err
	}
	return sc.matchReport(result, width)
}

func (sc *ShellController) perft(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("usage: perft <depth>")
	}
	d, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if d < 0 {
		return nil, errors.New("depth cannot be negative")
	}
	n := movegen.Perft(sc.game.Board(), sc.game.PlayerOnTurn(), d)
	return msg(fmt.Sprintf("perft(%d) = %d", d, n)), nil
}

func (sc *ShellController) version(cmd *shellcmd) (*Response, error) {
	v := sc.gitVersion
	if v == "" {
		v = "unknown"
	}
	return msg(fmt.Sprintf("othello %s (%s)", v, sc.execPath)), nil
}

func movesOf(sc *ShellController) []string {
	return board.Squares(sc.game.LegalMoves())
}
