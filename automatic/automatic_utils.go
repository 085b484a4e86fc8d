package automatic

// Computer vs computer matches.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/othello-go/othello/config"
)

var (
	CVCCounter *expvar.Int
	// IsPlaying is the number of matches in progress: zero or one.
	IsPlaying *expvar.Int

	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

type Job struct {
	ID int
}

// PlayCompVComp plays numGames games with the players configured in cfg,
// threads games at a time. Every turn is written to logfile as CSV unless
// logfile is nil. Cancelling ctx stops queueing games; the games already
// queued are finished and counted.
func PlayCompVComp(ctx context.Context, cfg *config.Config, numGames, threads int,
	logfile io.Writer) (*MatchResult, error) {

	// Claim the counter before checking it, so two matches started at once
	// cannot both get through.
	if IsPlaying.Add(1); IsPlaying.Value() > 1 {
		IsPlaying.Add(-1)
		return nil, ErrAlreadyPlaying
	}
	defer IsPlaying.Add(-1)
	threads = max(1, min(threads, numGames))
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	var logChan chan string
	if logfile != nil {
		logChan = make(chan string, 100)
	}
	runners := make([]*GameRunner, threads)
	for i := range runners {
		r, err := NewGameRunner(logChan, cfg)
		if err != nil {
			return nil, err
		}
		runners[i] = r
	}
	names := runners[0].PlayerNames()
	match := NewMatchResult(names[0], names[1])
	tstart := time.Now()

	CVCCounter.Set(0)
	jobs := make(chan Job, 100)
	results := make(chan GameResult, 100)
	errs := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(threads)

	for _, r := range runners {
		go func(r *GameRunner) {
			defer wg.Done()
			for j := range jobs {
				res, err := r.PlayGame(j.ID)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					continue
				}
				results <- res
				CVCCounter.Add(1)
			}
		}(r)
	}

	go func() {
	gameLoop:
		for i := 1; i <= numGames; i++ {
			if ctx.Err() != nil {
				log.Info().Msg("Got stop signal, exiting soon...")
				break
			}
			select {
			case jobs <- Job{ID: i}:
			case <-ctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				break gameLoop
			}
			if i%1000 == 0 {
				log.Info().Msgf("Queued %v jobs", i)
			}
		}
		close(jobs)
		log.Debug().Msg("Finished queueing all jobs.")
		wg.Wait()
		log.Debug().Msg("All games finished.")
		if logChan != nil {
			close(logChan)
		}
		close(results)
	}()

	logDone := make(chan struct{})
	go func() {
		defer close(logDone)
		if logChan == nil {
			return
		}
		io.WriteString(logfile, LogHeader)
		for msg := range logChan {
			io.WriteString(logfile, msg)
		}
		log.Debug().Msg("Exiting turn logger goroutine!")
	}()

	for res := range results {
		match.Add(res)
	}
	<-logDone
	match.Elapsed = time.Since(tstart)

	log.Info().Int("games", match.Games).Int("black-wins", match.BlackWins).
		Int("white-wins", match.WhiteWins).Int("draws", match.Draws).
		Float64("time-elapsed-sec", match.Elapsed.Seconds()).Msg("match-finished")

	select {
	case err := <-errs:
		return match, err
	default:
	}
	return match, nil
}
