// apps/term/internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Verdict: the five marks for one scored guess.
//   - State: where a Round is in its lifecycle.
//   - Round: a single game against one hidden answer.

package game

import (
	"encoding/json"
	"fmt"
)

const (
	// WordLength is the number of letters in every answer and guess.
	WordLength = 5
	// MaxAttempts is the number of guesses a player gets per round.
	MaxAttempts = 6
)

// Mark represents the evaluation result for a single letter in a guess.
// The zero value is not a valid mark; Score always assigns one of the three.
type Mark uint8

const (
	MarkCorrect Mark = iota + 1 // right letter, right position
	MarkPresent                 // letter is in the answer elsewhere
	MarkAbsent                  // letter is not (or no longer) available
)

// String returns the lowercase name used in logs and JSON.
func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkPresent:
		return "present"
	case MarkAbsent:
		return "absent"
	}
	panic(fmt.Sprintf("game: invalid mark %d", uint8(m)))
}

// MarshalJSON encodes the mark as its name.
func (m Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Verdict holds the marks for one guess, aligned with its letters.
type Verdict [WordLength]Mark

// Solved reports whether every letter is MarkCorrect.
func (v Verdict) Solved() bool {
	for _, m := range v {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// Correct counts the letters in the right position.
func (v Verdict) Correct() int {
	n := 0
	for _, m := range v {
		if m == MarkCorrect {
			n++
		}
	}
	return n
}

// State is the coarse lifecycle position of a Round.
type State string

const (
	StateAwaitingGuess State = "playing"
	StateWon           State = "won"
	StateLost          State = "lost"
)

// Turn is one scored guess.
type Turn struct {
	Guess   string  `json:"guess"`
	Verdict Verdict `json:"marks"`
}

// Round holds the state of a single game.
type Round struct {
	ID     string // uuid, used by the HTTP API to address the round
	Answer string // always lowercase
	Turns  []Turn
	State  State

	dictionary []string // sorted; shared with the word source
}
