package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/othello-go/othello/board"
	"github.com/othello-go/othello/game"
)

var ErrBadLogRecord = errors.New("malformed turn log record")

// AnalyzeLogFile summarizes a turn log written by PlayCompVComp.
func AnalyzeLogFile(filepath string) (*MatchResult, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return AnalyzeLog(file)
}

// AnalyzeLog replays every game of a turn log and builds the match result
// from the replayed games. Games are keyed by ID; turns of different games
// may be interleaved.
func AnalyzeLog(rd io.Reader) (*MatchResult, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = 7

	// Record looks like:
	// gameID,turn,color,player,move,black,white
	games := map[int]*game.Game{}
	var order []int
	var names [2]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			continue
		}
		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: game id %q", ErrBadLogRecord, record[0])
		}
		c, err := board.ParseColor(record[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadLogRecord, err)
		}
		names[c] = record[3]

		g, ok := games[id]
		if !ok {
			g = game.NewGame()
			games[id] = g
			order = append(order, id)
		}
		if record[4] == "pass" {
			// Passes are recorded by the replay itself.
			continue
		}
		mv, err := board.ParseSquare(record[4])
		if err != nil {
			return nil, fmt.Errorf("%w: game %d: %w", ErrBadLogRecord, id, err)
		}
		if g.PlayerOnTurn() != c {
			return nil, fmt.Errorf("%w: game %d turn %s: %s is not on turn", ErrBadLogRecord, id, record[1], c)
		}
		if err := g.PlayMove(mv); err != nil {
			return nil, fmt.Errorf("%w: game %d: %w", ErrBadLogRecord, id, err)
		}
		score := g.Score()
		black, berr := strconv.Atoi(record[5])
		white, werr := strconv.Atoi(record[6])
		if berr != nil || werr != nil || black != score.Black || white != score.White {
			return nil, fmt.Errorf("%w: game %d turn %s: score does not match the replay", ErrBadLogRecord, id, record[1])
		}
	}

	match := NewMatchResult(names[board.Black], names[board.White])
	for _, id := range order {
		g := games[id]
		if g.Playing() != game.GameOver {
			return nil, fmt.Errorf("%w: game %d is unfinished", ErrBadLogRecord, id)
		}
		match.Add(GameResult{ID: id, Score: g.Score(), Turns: g.Turn(), Fingerprint: g.Fingerprint()})
	}
	return match, nil
}
