package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/othello-go/othello/game"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("othello_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// Run executes a shell command and returns its output.
func Run(L *lua.LState) int {
	line := L.ToString(1)
	sc := getShell(L)
	r, err := sc.runLine(line, nil)
	if err != nil {
		log.Err(err).Str("line", line).Msg("error-executing-command")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	if r == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

func Board(L *lua.LState) int {
	sc := getShell(L)
	L.Push(lua.LString(sc.game.Board().String()))
	return 1
}

func Score(L *lua.LState) int {
	sc := getShell(L)
	score := sc.game.Score()
	L.Push(lua.LNumber(score.Black))
	L.Push(lua.LNumber(score.White))
	return 2
}

func Over(L *lua.LState) int {
	sc := getShell(L)
	L.Push(lua.LBool(sc.game.Playing() == game.GameOver))
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("othello_shell", lsc)
	L.SetGlobal("othello_run", L.NewFunction(Run))
	L.SetGlobal("othello_board", L.NewFunction(Board))
	L.SetGlobal("othello_score", L.NewFunction(Score))
	L.SetGlobal("othello_over", L.NewFunction(Over))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
