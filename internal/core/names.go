package core

import (
	"fmt"
	"math/rand/v2"
)

var (
	nameAdjectives = []string{
		"amber", "bold", "brave", "calm", "clever", "crimson", "daring", "eager",
		"fierce", "gentle", "golden", "hidden", "ivory", "jolly", "lucky", "mighty",
		"noble", "quiet", "rapid", "silent", "silver", "swift", "velvet", "wild",
	}
	nameNouns = []string{
		"bishop", "castle", "crown", "falcon", "fortress", "gambit", "king", "knight",
		"lion", "pawn", "queen", "raven", "rook", "sentinel", "tiger", "tower",
		"wolf", "dragon", "eagle", "harbor", "meadow", "river", "summit", "comet",
	}
)

// NameGenerator produces human-shareable room names like "swift-knight-0421".
type NameGenerator struct {
	intN func(n int) int
}

// NewNameGenerator returns a generator backed by math/rand/v2.
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{intN: rand.IntN}
}

// Next returns a candidate name. Uniqueness is the caller's problem.
func (g *NameGenerator) Next() string {
	adj := nameAdjectives[g.intN(len(nameAdjectives))]
	noun := nameNouns[g.intN(len(nameNouns))]
	return fmt.Sprintf("%s-%s-%04d", adj, noun, g.intN(10000))
}
