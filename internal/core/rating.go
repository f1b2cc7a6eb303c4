package core

import "math"

const (
	// DefaultRating is assigned to identities that report no rating.
	DefaultRating = 400
	// KFactor bounds how far a single game moves a rating.
	KFactor = 32
)

// Score is a player's result in a concluded game.
type Score float64

const (
	ScoreLoss Score = 0
	ScoreDraw Score = 0.5
	ScoreWin  Score = 1
)

// ExpectedScore is the Elo win expectancy of player against opponent.
func ExpectedScore(player, opponent int) float64 {
	return 1 / (1 + math.Pow(10, float64(opponent-player)/400))
}

// NewRating computes the updated Elo rating, rounding half up.
func NewRating(player, opponent int, score Score) int {
	delta := KFactor * (float64(score) - ExpectedScore(player, opponent))
	return int(math.Floor(float64(player) + delta + 0.5))
}

// RateMatch returns both updated ratings given the first player's score.
func RateMatch(first, second int, firstScore Score) (int, int) {
	secondScore := ScoreWin - firstScore
	return NewRating(first, second, firstScore), NewRating(second, first, secondScore)
}
