// Package automatic plays computer-vs-computer games with no screen and
// summarizes the results.
package automatic

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/othello-go/othello/ai/player"
	"github.com/othello-go/othello/board"
	"github.com/othello-go/othello/config"
	"github.com/othello-go/othello/game"
)

// LogHeader is the first line of a turn log.
const LogHeader = "gameID,turn,color,player,move,black,white\n"

// GameRunner plays whole games between two computer players.
type GameRunner struct {
	game    *game.Game
	players [2]player.Player
	logchan chan string
}

// NewGameRunner builds the players named in cfg. Human players are replaced
// by the alpha-beta player, since nobody is at the screen.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{logchan: logchan}
	err := r.Init(cfg.GetString(config.ConfigBlackPlayer), cfg.GetString(config.ConfigWhitePlayer),
		cfg.GetInt(config.ConfigSearchDepth), cfg.GetInt(config.ConfigSearchThreads))
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Init sets up both players.
func (r *GameRunner) Init(black, white string, depth, threads int) error {
	for idx, kind := range []string{black, white} {
		if strings.EqualFold(strings.TrimSpace(kind), player.HumanPlayer) {
			log.Warn().Str("color", board.Color(idx).String()).Msg("no humans in automatic games, using alphabeta")
			kind = player.AlphaBetaPlayer
		}
		p, err := player.New(kind, depth, threads)
		if err != nil {
			return err
		}
		r.players[idx] = p
	}
	return nil
}

// PlayerNames are the names of the black and white players.
func (r *GameRunner) PlayerNames() [2]string {
	return [2]string{r.players[board.Black].Name(), r.players[board.White].Name()}
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// GameResult is the outcome of one automatic game.
type GameResult struct {
	ID          int
	Score       board.Score
	Turns       int
	Fingerprint uint64
}

// PlayGame plays a full game from the starting position.
func (r *GameRunner) PlayGame(id int) (GameResult, error) {
	r.game = game.NewGame()
	for r.game.Playing() == game.Playing {
		c := r.game.PlayerOnTurn()
		logged := r.game.Turn()
		mv, err := r.players[c].ChooseMove(r.game.Board(), r.game.LegalMoves(), c)
		if err != nil {
			return GameResult{}, fmt.Errorf("game %d: %w", id, err)
		}
		if err := r.game.PlayMove(mv); err != nil {
			return GameResult{}, fmt.Errorf("game %d: %w", id, err)
		}
		r.logTurns(id, logged)
	}
	log.Debug().Int("game", id).Str("score", r.game.Score().String()).Msg("game-over")
	return GameResult{
		ID:          id,
		Score:       r.game.Score(),
		Turns:       r.game.Turn(),
		Fingerprint: r.game.Fingerprint(),
	}, nil
}

// logTurns sends every turn played since from, passes included.
func (r *GameRunner) logTurns(id, from int) {
	if r.logchan == nil {
		return
	}
	turns := r.game.Turns()
	for i := from; i < len(turns); i++ {
		t := turns[i]
		mv := "pass"
		if !t.IsPass() {
			mv = board.SquareName(t.Move)
		}
		score := t.After.Score()
		r.logchan <- fmt.Sprintf("%d,%d,%s,%s,%s,%d,%d\n",
			id, i+1, t.Color.Symbol(), r.players[t.Color].Name(), mv, score.Black, score.White)
	}
}
