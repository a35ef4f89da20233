// apps/term/internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Load the answer pool and the guess dictionary from line-delimited files,
//     or fall back to the embedded defaults in the assets package.
//   - Keep the dictionary sorted (the validator binary-searches it).
//   - Supply RandomAnswer, DailyAnswer, IsAllowed and Stats.
//
// Word Lists:
//   - "answers": candidate solutions (exactly 5 lowercase letters).
//   - "dictionary": valid guesses (always includes answers).
//
// Loading behaviour (Load):
//  1. answers and dictionary paths both set: load each from its file.
//  2. only the dictionary path set: use that file for both lists.
//  3. only the answers path set: answers from file, embedded dictionary.
//  4. neither set: embedded answers and dictionary.
//
// Constraints:
//   - Words must be 5 alphabetic letters (a-z); other lines are skipped.
//   - Lists are normalized to lowercase.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/term/assets"
	"github.com/robalobadob/wordle/apps/term/internal/daily"
	"github.com/robalobadob/wordle/apps/term/internal/game"
)

// ErrEmptyPool is returned when no usable answer survives loading.
var ErrEmptyPool = errors.New("words: answers list is empty")

// Source holds the answer pool and the sorted guess dictionary.
// It is read-only after construction and safe for concurrent use.
type Source struct {
	answers    []string
	dictionary []string
}

// Load builds a Source from the given files; empty paths select the embedded
// defaults as described in the package comment.
func Load(answersPath, dictPath string) (*Source, error) {
	var ansList, dictList []string
	var err error

	switch {
	case answersPath != "" && dictPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if dictList, err = readWordFile(dictPath); err != nil {
			return nil, err
		}

	case answersPath == "" && dictPath != "":
		if dictList, err = readWordFile(dictPath); err != nil {
			return nil, err
		}
		ansList = dictList

	case answersPath != "" && dictPath == "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if dictList, err = embedded(assets.AllowedList); err != nil {
			return nil, err
		}

	default:
		if ansList, err = embedded(assets.AnswersList); err != nil {
			return nil, err
		}
		if dictList, err = embedded(assets.AllowedList); err != nil {
			return nil, err
		}
	}

	if !slices.IsSorted(normalize(dictList)) {
		log.Warn().Str("path", dictPath).Msg("dictionary is not sorted; sorting in memory")
	}
	return New(ansList, dictList)
}

// New builds a Source from in-memory lists. Words are normalized and
// filtered; answers are merged into the dictionary, which is then sorted.
func New(answers, dictionary []string) (*Source, error) {
	ans := lo.Uniq(normalize(answers))
	if len(ans) == 0 {
		return nil, ErrEmptyPool
	}
	dict := append(normalize(dictionary), ans...)
	slices.Sort(dict)
	dict = slices.Compact(dict)

	return &Source{answers: ans, dictionary: dict}, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("lines", len(out)).Msg("word file read")
	return out, nil
}

func embedded(list func() ([]string, error)) ([]string, error) {
	out, err := list()
	if err != nil {
		return nil, fmt.Errorf("words: embedded list: %w", err)
	}
	return out, nil
}

// normalize lowercases and trims each line, keeping only 5-letter a-z words.
func normalize(lines []string) []string {
	out := lo.Map(lines, func(l string, _ int) string { return game.Normalize(l) })
	return lo.Filter(out, func(w string, _ int) bool {
		return len(w) == game.WordLength && isAlpha(w)
	})
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomAnswer returns a cryptographically random answer from the pool.
func (s *Source) RandomAnswer() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s.answers))))
	if err != nil {
		log.Warn().Err(err).Msg("random answer failed, using first word")
		return s.answers[0]
	}
	return s.answers[n.Int64()]
}

// DailyAnswer returns the answer shared by every player for t's UTC date.
func (s *Source) DailyAnswer(t time.Time, salt string) string {
	return s.answers[daily.WordIndex(t, salt, len(s.answers))]
}

// Dictionary returns the sorted guess dictionary. Callers must not modify it.
func (s *Source) Dictionary() []string { return s.dictionary }

// Answers returns the answer pool. Callers must not modify it.
func (s *Source) Answers() []string { return s.answers }

// IsAllowed reports whether w is a valid guess.
func (s *Source) IsAllowed(w string) bool {
	_, ok := slices.BinarySearch(s.dictionary, strings.ToLower(w))
	return ok
}

// Stats returns counts of loaded words: (answers, dictionary).
func (s *Source) Stats() (answersCount int, dictionaryCount int) {
	return len(s.answers), len(s.dictionary)
}
