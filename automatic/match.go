package automatic

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"gopkg.in/yaml.v3"

	"github.com/othello-go/othello/board"
	"github.com/othello-go/othello/stats"
)

const histogramBins = 15

var ErrBadHistogramWidth = errors.New("histogram width must be at least 1")

// MatchResult accumulates the outcomes of a series of games between the
// same two players.
type MatchResult struct {
	BlackPlayer string
	WhitePlayer string
	Games       int
	BlackWins   int
	WhiteWins   int
	Draws       int
	Elapsed     time.Duration

	// Spread is black's disk count minus white's.
	Spread stats.Statistic
	Turns  stats.Statistic

	spreads      []float64
	fingerprints map[uint64]struct{}
}

func NewMatchResult(black, white string) *MatchResult {
	return &MatchResult{
		BlackPlayer:  black,
		WhitePlayer:  white,
		fingerprints: map[uint64]struct{}{},
	}
}

func (m *MatchResult) Add(res GameResult) {
	m.Games++
	switch c, ok := res.Score.Leader(); {
	case !ok:
		m.Draws++
	case c == board.Black:
		m.BlackWins++
	default:
		m.WhiteWins++
	}
	spread := float64(res.Score.Spread())
	m.Spread.Push(spread)
	m.Turns.Push(float64(res.Turns))
	m.spreads = append(m.spreads, spread)
	m.fingerprints[res.Fingerprint] = struct{}{}
}

// DistinctGames counts games that differ in at least one move.
func (m *MatchResult) DistinctGames() int {
	return len(m.fingerprints)
}

// BlackScore is black's match score: a point per win, half per draw.
func (m *MatchResult) BlackScore() float64 {
	return float64(m.BlackWins) + float64(m.Draws)/2
}

type SpreadReport struct {
	Mean  float64 `yaml:"mean"`
	Stdev float64 `yaml:"stdev"`
	CI95  float64 `yaml:"ci95"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// MatchReport is the serialized form of a MatchResult.
type MatchReport struct {
	Black          string       `yaml:"black"`
	White          string       `yaml:"white"`
	Games          int          `yaml:"games"`
	BlackWins      int          `yaml:"black_wins"`
	WhiteWins      int          `yaml:"white_wins"`
	Draws          int          `yaml:"draws"`
	BlackScorePct  float64      `yaml:"black_score_pct"`
	DistinctGames  int          `yaml:"distinct_games"`
	MeanTurns      float64      `yaml:"mean_turns"`
	Spread         SpreadReport `yaml:"spread"`
	ElapsedSeconds float64      `yaml:"elapsed_sec"`
}

func (m *MatchResult) Report() MatchReport {
	r := MatchReport{
		Black:         m.BlackPlayer,
		White:         m.WhitePlayer,
		Games:         m.Games,
		BlackWins:     m.BlackWins,
		WhiteWins:     m.WhiteWins,
		Draws:         m.Draws,
		DistinctGames: m.DistinctGames(),
		MeanTurns:     m.Turns.Mean(),
		Spread: SpreadReport{
			Mean:  m.Spread.Mean(),
			Stdev: m.Spread.Stdev(),
			CI95:  m.Spread.ConfidenceInterval(95),
			Min:   m.Spread.Min(),
			Max:   m.Spread.Max(),
		},
		ElapsedSeconds: m.Elapsed.Seconds(),
	}
	if m.Games > 0 {
		r.BlackScorePct = 100 * m.BlackScore() / float64(m.Games)
	}
	return r
}

func (m *MatchResult) YAML() (string, error) {
	out, err := yaml.Marshal(m.Report())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Histogram draws the distribution of final spreads, width columns wide.
func (m *MatchResult) Histogram(w io.Writer, width int) error {
	if width < 1 {
		return ErrBadHistogramWidth
	}
	if len(m.spreads) == 0 {
		_, err := io.WriteString(w, "no games played\n")
		return err
	}
	fmt.Fprintf(w, "Final spread (%s minus %s):\n", m.BlackPlayer, m.WhitePlayer)
	h := histogram.Hist(histogramBins, m.spreads)
	return histogram.Fprint(w, h, histogram.Linear(width))
}
