// apps/term/internal/stats/histogram.go
//
// Win histogram persisted as a small text file, one "<attempts>:<count>"
// line per attempt bucket (1..6).
//
// Load never fails: a missing or malformed file is logged and replaced with
// an empty histogram. Dump overwrites the file and reports every error;
// callers treat a failed dump as fatal.

package stats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/game"
)

// Histogram maps attempts-to-win (1..game.MaxAttempts) to win counts.
type Histogram [game.MaxAttempts]int

// Record adds one win at the given attempt count.
func (h *Histogram) Record(attempts int) {
	if attempts < 1 || attempts > game.MaxAttempts {
		panic(fmt.Sprintf("stats: attempts %d out of range", attempts))
	}
	h[attempts-1]++
}

// Count returns the number of wins at the given attempt count.
func (h Histogram) Count(attempts int) int {
	if attempts < 1 || attempts > game.MaxAttempts {
		return 0
	}
	return h[attempts-1]
}

// Wins is the total number of recorded wins.
func (h Histogram) Wins() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Max is the largest bucket, handy for scaling bars.
func (h Histogram) Max() int {
	m := 0
	for _, c := range h {
		m = max(m, c)
	}
	return m
}

// Load reads a histogram from path, falling back to an empty one.
func Load(path string) Histogram {
	h, err := Parse(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info().Str("path", path).Msg("no stats file yet, starting fresh")
		return Histogram{}
	case err != nil:
		log.Warn().Err(err).Str("path", path).Msg("stats file unreadable, starting fresh")
		return Histogram{}
	}
	return h
}

// Parse reads a histogram from path and reports any problem.
// Blank lines are ignored; every other line must be "<attempts>:<count>".
func Parse(path string) (Histogram, error) {
	var h Histogram
	data, err := os.ReadFile(path)
	if err != nil {
		return h, err
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		tries, freq, ok := strings.Cut(text, ":")
		if !ok {
			return Histogram{}, fmt.Errorf("stats: %s:%d: missing ':'", path, line)
		}
		a, err := strconv.ParseUint(tries, 10, 8)
		if err != nil || a < 1 || a > game.MaxAttempts {
			return Histogram{}, fmt.Errorf("stats: %s:%d: bad attempts %q", path, line, tries)
		}
		c, err := strconv.ParseUint(freq, 10, 0)
		if err != nil {
			return Histogram{}, fmt.Errorf("stats: %s:%d: bad count %q", path, line, freq)
		}
		h[a-1] = int(c)
	}
	return h, sc.Err()
}

// Dump writes h to path, replacing any existing file.
func Dump(path string, h Histogram) error {
	var buf bytes.Buffer
	for i, c := range h {
		fmt.Fprintf(&buf, "%d:%d\n", i+1, c)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("stats: write %s: %w", path, err)
	}
	return nil
}
