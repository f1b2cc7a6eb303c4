package core

import (
	"math/rand/v2"
	"strings"
)

// Color is the side a participant plays.
type Color string

const (
	ColorWhite Color = "white"
	ColorBlack Color = "black"
)

// Opposite returns the complementary color.
func (c Color) Opposite() Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// ColorChoice is the creator's requested side.
type ColorChoice string

const (
	ChoiceWhite  ColorChoice = "white"
	ChoiceBlack  ColorChoice = "black"
	ChoiceRandom ColorChoice = "random"
)

// ParseColorChoice accepts white, black or random (case-insensitive).
// An empty value means white, matching the default lobby selection.
func ParseColorChoice(s string) (ColorChoice, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "white", "w":
		return ChoiceWhite, true
	case "black", "b":
		return ChoiceBlack, true
	case "random":
		return ChoiceRandom, true
	default:
		return "", false
	}
}

// CoinFlip returns true or false with equal probability.
type CoinFlip func() bool

func fairCoin() bool {
	return rand.IntN(2) == 0
}

// resolve turns a choice into a concrete color.
func (c ColorChoice) resolve(flip CoinFlip) Color {
	switch c {
	case ChoiceBlack:
		return ColorBlack
	case ChoiceRandom:
		if flip() {
			return ColorWhite
		}
		return ColorBlack
	default:
		return ColorWhite
	}
}
