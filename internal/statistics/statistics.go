// Package statistics aggregates the results of simulated blackjack hands
package statistics

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// HandResult represents the outcome of a single hand
type HandResult struct {
	Outcome     game.Outcome
	PlayerValue int
	DealerValue int
	PlayerCards int // Cards the player finished with
	DealerCards int
}

// Score returns the hand's result from the player's side: +1 for a
// player win, -1 for a dealer win, 0 otherwise
func (r HandResult) Score() float64 {
	switch {
	case r.Outcome.PlayerWon():
		return 1
	case r.Outcome.DealerWon():
		return -1
	default:
		return 0
	}
}

// Statistics tracks outcome counts and the running score of many hands
type Statistics struct {
	Hands    int
	Outcomes map[game.Outcome]int
	SumScore float64
	SumSq    float64 // Sum of squares for variance calculation

	PlayerHits  int // Cards drawn by the player beyond the opening two
	DealerHits  int
	MaxDealerAt int // Highest dealer total seen
}

// New creates empty statistics
func New() *Statistics {
	return &Statistics{Outcomes: make(map[game.Outcome]int)}
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[game.Outcome]int)
	}
	score := result.Score()
	s.Hands++
	s.Outcomes[result.Outcome]++
	s.SumScore += score
	s.SumSq += score * score

	if result.PlayerCards > game.TargetHandSize {
		s.PlayerHits += result.PlayerCards - game.TargetHandSize
	}
	if result.DealerCards > game.TargetHandSize {
		s.DealerHits += result.DealerCards - game.TargetHandSize
	}
	if result.DealerValue > s.MaxDealerAt {
		s.MaxDealerAt = result.DealerValue
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[game.Outcome]int)
	}
	s.Hands += other.Hands
	for o, n := range other.Outcomes {
		s.Outcomes[o] += n
	}
	s.SumScore += other.SumScore
	s.SumSq += other.SumSq
	s.PlayerHits += other.PlayerHits
	s.DealerHits += other.DealerHits
	if other.MaxDealerAt > s.MaxDealerAt {
		s.MaxDealerAt = other.MaxDealerAt
	}
}

// Mean returns the average score per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumScore / float64(s.Hands)
}

// Variance returns the sample variance of the score
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of the score
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Rate returns the share of hands that ended with outcome
func (s *Statistics) Rate(outcome game.Outcome) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Outcomes[outcome]) / float64(s.Hands)
}

// PlayerWins returns the number of hands the player won
func (s *Statistics) PlayerWins() int {
	return s.count(game.Outcome.PlayerWon)
}

// DealerWins returns the number of hands the dealer won
func (s *Statistics) DealerWins() int {
	return s.count(game.Outcome.DealerWon)
}

func (s *Statistics) count(pred func(game.Outcome) bool) int {
	n := 0
	for o, c := range s.Outcomes {
		if pred(o) {
			n += c
		}
	}
	return n
}

// Validate checks the counters are consistent with each other
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	total := 0
	for _, n := range s.Outcomes {
		total += n
	}
	if total != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match hands count (%d)", total, s.Hands)
	}

	if s.Outcomes[game.OutcomeUnknown] > 0 {
		return fmt.Errorf("%d hands ended without an outcome", s.Outcomes[game.OutcomeUnknown])
	}

	wantScore := float64(s.PlayerWins() - s.DealerWins())
	if math.Abs(s.SumScore-wantScore) > 1e-6 {
		return fmt.Errorf("score mismatch: sum=%.2f, wins-losses=%.0f", s.SumScore, wantScore)
	}
	return nil
}

// Summary renders a short multi-line report
func (s *Statistics) Summary() string {
	var b strings.Builder
	lo, hi := s.ConfidenceInterval95()
	fmt.Fprintf(&b, "Hands: %d\n", s.Hands)
	fmt.Fprintf(&b, "Player wins: %d (%.1f%%)  Dealer wins: %d (%.1f%%)  Pushes: %d (%.1f%%)\n",
		s.PlayerWins(), pct(s.PlayerWins(), s.Hands),
		s.DealerWins(), pct(s.DealerWins(), s.Hands),
		s.Outcomes[game.OutcomePush], 100*s.Rate(game.OutcomePush))
	for _, o := range []game.Outcome{
		game.OutcomePlayerBlackjack,
		game.OutcomePlayerBust,
		game.OutcomeDealerBust,
		game.OutcomePlayerWins,
		game.OutcomeDealerWins,
	} {
		fmt.Fprintf(&b, "  %-17s %6d (%.1f%%)\n", o, s.Outcomes[o], 100*s.Rate(o))
	}
	fmt.Fprintf(&b, "Score per hand: %+.4f (95%% CI %+.4f to %+.4f)\n", s.Mean(), lo, hi)
	return b.String()
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
