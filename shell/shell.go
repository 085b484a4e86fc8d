// Package shell is the interactive front end: a readline loop that plays
// games, asks the engine for moves and runs computer-vs-computer matches.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/othello-go/othello/ai/player"
	"github.com/othello-go/othello/alphabeta"
	"github.com/othello-go/othello/config"
	"github.com/othello-go/othello/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l          *readline.Instance
	w          io.Writer
	lines      player.LineReader
	config     *config.Config
	execPath   string
	gitVersion string

	game   *game.Game
	solver *alphabeta.Solver
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.w)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	prompt := "othello> "
	if cfg.GetBool(config.ConfigColors) {
		prompt = "\033[32mothello>\033[0m "
	}
	sc := newController(cfg, nil, nil)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.w = l.Stderr()
	sc.lines = l
	sc.execPath = execPath
	sc.gitVersion = gitVersion
	return sc
}

// newController builds a controller without a terminal. Output goes to w
// and human players read their moves from lines.
func newController(cfg *config.Config, w io.Writer, lines player.LineReader) *ShellController {
	solver := alphabeta.NewSolver(cfg.GetInt(config.ConfigSearchDepth))
	solver.SetThreads(cfg.GetInt(config.ConfigSearchThreads))
	sc := &ShellController{
		w:      w,
		lines:  lines,
		config: cfg,
		solver: solver,
	}
	sc.setGame(game.NewGame())
	return sc
}

func (sc *ShellController) setGame(g *game.Game) {
	g.SetColors(sc.config.GetBool(config.ConfigColors))
	sc.game = g
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func isOption(field string) bool {
	if len(field) < 2 || field[0] != '-' {
		return false
	}
	// "-3" is a number, not an option.
	_, err := strconv.Atoi(field)
	return err != nil
}

// extractFields splits a command line into the command, its positional
// arguments and its "-name value" options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		if !isOption(fields[i]) {
			args = append(args, fields[i])
			continue
		}
		if i+1 >= len(fields) {
			return nil, errWrongOptionSyntax
		}
		opt := strings.TrimPrefix(fields[i], "-")
		options[opt] = append(options[opt], fields[i+1])
		i++
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) handle(cmd *shellcmd, sig chan os.Signal) (*Response, error) {
	switch cmd.cmd {
	case "exit", "bye":
		if sig != nil {
			sig <- syscall.SIGINT
		}
		return nil, errQuit
	case "help", "h", "?":
		return sc.help(cmd)
	case "new", "n":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves", "m":
		return sc.moves(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "ai", "a":
		return sc.aiplay(cmd)
	case "hint":
		return sc.hint(cmd)
	case "setboard":
		return sc.setboard(cmd)
	case "depth":
		return sc.depth(cmd)
	case "threads":
		return sc.threads(cmd)
	case "history":
		return sc.history(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "match":
		return sc.match(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "perft":
		return sc.perft(cmd)
	case "script":
		return sc.script(cmd)
	case "version", "v":
		return sc.version(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// runLine parses and runs one command line.
func (sc *ShellController) runLine(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.handle(cmd, sig)
}

// Execute runs a single command line, for non-interactive use.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.runLine(line, sig)
	if err != nil && err != errQuit {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	sc.showMessage(sc.game.ToDisplayText())
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.runLine(line, sig)
		if err == errQuit {
			break
		} else if err != nil {
			sc.showError(err)
		} else if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	log.Info().Msg("Cleaning up...")
}
