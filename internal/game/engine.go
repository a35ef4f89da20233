// apps/term/internal/game/engine.go
//
// Core game engine for a single Wordle round.
// Responsibilities:
//   - Create rounds against a fixed answer (6 attempts x 5 letters).
//   - Validate guesses (length, dictionary membership via binary search).
//   - Score guesses using the classic two-pass Wordle algorithm.
//   - Track state transitions: playing -> won/lost.
//
// Answers and dictionaries are supplied by the caller (see the words package),
// so the engine itself never touches the filesystem.

package game

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidLength = errors.New("guess must be exactly 5 letters")
	ErrUnknownWord   = errors.New("word not in dictionary")
	ErrRoundOver     = errors.New("round is over")
)

// UserMessage maps engine errors to the text shown to players.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLength):
		return "Your guess must be exactly 5 letters long!"
	case errors.Is(err, ErrUnknownWord):
		return "I've never seen that word before!"
	case errors.Is(err, ErrRoundOver):
		return "This round is already over."
	case err == nil:
		return ""
	}
	return err.Error()
}

// Normalize trims surrounding whitespace and lowercases w.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Validate checks a raw guess against a sorted dictionary and returns the
// normalized word. The length check runs first, so it does not depend on
// dictionary contents.
func Validate(guess string, dictionary []string) (string, error) {
	guess = Normalize(guess)
	if utf8.RuneCountInString(guess) != WordLength {
		return "", ErrInvalidLength
	}
	if _, found := slices.BinarySearch(dictionary, guess); !found {
		return "", ErrUnknownWord
	}
	return guess, nil
}

// Score implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) answer letters.
//
// Pass 2:
//   - For each non-correct guess letter: if a remaining count exists for that
//     letter, mark Present and decrement; otherwise mark Absent.
//
// Exact matches are resolved before any misplaced letter can claim them.
func Score(guess, answer string) Verdict {
	var v Verdict
	g := []rune(Normalize(guess))
	a := []rune(Normalize(answer))
	if len(g) != WordLength || len(a) != WordLength {
		panic("game: Score called with a word that is not 5 letters")
	}

	remaining := make(map[rune]int, WordLength)
	for i := range WordLength {
		if g[i] == a[i] {
			v[i] = MarkCorrect
		} else {
			remaining[a[i]]++
		}
	}

	for i := range WordLength {
		if v[i] == MarkCorrect {
			continue
		}
		if remaining[g[i]] > 0 {
			v[i] = MarkPresent
			remaining[g[i]]--
		} else {
			v[i] = MarkAbsent
		}
	}
	return v
}

// NewRound starts a round against answer. dictionary must be sorted; it is
// shared, not copied.
func NewRound(answer string, dictionary []string) *Round {
	return &Round{
		ID:         uuid.NewString(),
		Answer:     Normalize(answer),
		State:      StateAwaitingGuess,
		dictionary: dictionary,
	}
}

// Guess validates and scores a guess, mutating the round.
//
// Invalid guesses return an error and leave the round untouched, so they do
// not use up an attempt. After a valid guess:
//   - all Correct -> StateWon
//   - sixth miss  -> StateLost
//   - otherwise   -> StateAwaitingGuess
func (r *Round) Guess(raw string) (Verdict, error) {
	if r.Finished() {
		return Verdict{}, ErrRoundOver
	}
	guess, err := Validate(raw, r.dictionary)
	if err != nil {
		return Verdict{}, err
	}

	v := Score(guess, r.Answer)
	r.Turns = append(r.Turns, Turn{Guess: guess, Verdict: v})

	switch {
	case v.Solved():
		r.State = StateWon
	case len(r.Turns) >= MaxAttempts:
		r.State = StateLost
	}
	return v, nil
}

// Attempts is the number of scored guesses so far.
func (r *Round) Attempts() int { return len(r.Turns) }

// Finished reports whether the round reached Won or Lost.
func (r *Round) Finished() bool {
	return r.State == StateWon || r.State == StateLost
}
