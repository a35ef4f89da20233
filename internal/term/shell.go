// apps/term/internal/term/shell.go
//
// Line-oriented terminal front end.
// Responsibilities:
//   - Drive rounds: prompt, validate, score, render colored tiles.
//   - Announce wins (remark + attempt count) and losses (reveal the answer).
//   - Record wins into the histogram and persist it after every win.
//   - Optionally log finished rounds to the SQLite history.
//   - Offer a replay after each round.

package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/history"
	"github.com/robalobadob/wordle/apps/term/internal/stats"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

// remarks are indexed by attempts-1.
var remarks = [game.MaxAttempts]string{"Genius", "Marvelous", "Amazing", "Nice", "Passable", "Whew"}

// errQuit marks the end of input.
var errQuit = errors.New("input closed")

// Options configures a Shell.
type Options struct {
	Source    *words.Source
	StatsFile string         // histogram file; empty keeps stats in memory
	History   *history.Store // optional
	Mode      string         // recorded with history entries

	// PickAnswer chooses the answer for each round. Defaults to Source.RandomAnswer.
	PickAnswer func() string

	In  io.Reader
	Out io.Writer
}

// Shell plays rounds over a reader/writer pair.
type Shell struct {
	opts   Options
	in     *bufio.Scanner
	out    io.Writer
	styles Styles
	hist   stats.Histogram
}

// New builds a Shell and loads the histogram from StatsFile.
func New(opts Options) *Shell {
	if opts.PickAnswer == nil {
		opts.PickAnswer = opts.Source.RandomAnswer
	}
	if opts.Mode == "" {
		opts.Mode = "random"
	}
	s := &Shell{
		opts:   opts,
		in:     bufio.NewScanner(opts.In),
		out:    opts.Out,
		styles: NewStyles(opts.Out),
	}
	if opts.StatsFile != "" {
		s.hist = stats.Load(opts.StatsFile)
	}
	return s
}

// Histogram returns the current win histogram.
func (s *Shell) Histogram() stats.Histogram { return s.hist }

// Run plays rounds until the player declines a replay or input ends.
// Only a failed histogram write is reported as an error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := s.PlayRound(ctx)
		if errors.Is(err, errQuit) {
			if r != nil {
				fmt.Fprintf(s.out, "\nThe word was %s.\n", strings.ToUpper(r.Answer))
			}
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(s.out, "Would you like to play again? (y/Y)")
		line, ok := s.readLine()
		if !ok || (line != "y" && line != "Y") {
			return nil
		}
	}
}

// PlayRound plays one round to completion and returns it.
func (s *Shell) PlayRound(ctx context.Context) (*game.Round, error) {
	r := game.NewRound(s.opts.PickAnswer(), s.opts.Source.Dictionary())
	log.Debug().Str("round", r.ID).Msg("round started")

	for !r.Finished() {
		fmt.Fprintln(s.out, "Enter your guess:")
		line, ok := s.readLine()
		if !ok {
			return r, errQuit
		}
		v, err := r.Guess(line)
		if err != nil {
			fmt.Fprintln(s.out, game.UserMessage(err))
			continue
		}
		fmt.Fprintln(s.out, s.styles.Row(r.Turns[len(r.Turns)-1].Guess, v))
	}

	switch r.State {
	case game.StateWon:
		n := r.Attempts()
		fmt.Fprintln(s.out, s.styles.Win.Render(fmt.Sprintf("%s, you win! (%d/%d)", remarks[n-1], n, game.MaxAttempts)))
		s.hist.Record(n)
		if s.opts.StatsFile != "" {
			if err := stats.Dump(s.opts.StatsFile, s.hist); err != nil {
				return r, err
			}
		}
	case game.StateLost:
		fmt.Fprintln(s.out, s.styles.Loss.Render(fmt.Sprintf("Oof! The word was %s. Better luck next time!", strings.ToUpper(r.Answer))))
	}

	if s.opts.History != nil {
		if err := s.opts.History.Record(ctx, r, s.opts.Mode); err != nil {
			log.Warn().Err(err).Str("round", r.ID).Msg("record history")
		}
	}
	return r, nil
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// WriteHistogram prints a bar chart of h.
func WriteHistogram(w io.Writer, h stats.Histogram) {
	st := NewStyles(w)
	fmt.Fprintf(w, "Wins: %d\n", h.Wins())
	top := h.Max()
	for a := 1; a <= game.MaxAttempts; a++ {
		c := h.Count(a)
		width := 0
		if top > 0 {
			width = c * 30 / top
		}
		if c > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(w, "%d | %s %d\n", a, st.Correct.Render(strings.Repeat("#", width)), c)
	}
}
