package term

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/term/internal/game"
)

// Color palette
var (
	ColorCorrect = lipgloss.Color("#6aaa64") // Green - right position
	ColorPresent = lipgloss.Color("#c9b458") // Yellow - wrong position
	ColorAbsent  = lipgloss.Color("#f1faee") // White - not in word
	ColorMuted   = lipgloss.Color("#666666") // Gray - hints, bars
	ColorAccent  = lipgloss.Color("#FF6B6B") // Red - loss
)

// Styles are bound to one output, so colors are dropped automatically when
// that output is not a terminal.
type Styles struct {
	Correct lipgloss.Style
	Present lipgloss.Style
	Absent  lipgloss.Style
	Muted   lipgloss.Style
	Win     lipgloss.Style
	Loss    lipgloss.Style
}

// NewStyles builds the palette for w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Correct: r.NewStyle().Bold(true).Foreground(ColorCorrect),
		Present: r.NewStyle().Bold(true).Foreground(ColorPresent),
		Absent:  r.NewStyle().Foreground(ColorAbsent),
		Muted:   r.NewStyle().Foreground(ColorMuted),
		Win:     r.NewStyle().Bold(true).Foreground(ColorCorrect),
		Loss:    r.NewStyle().Foreground(ColorAccent),
	}
}

// Tile renders one bracketed letter in the style of its mark.
func (s Styles) Tile(letter rune, m game.Mark) string {
	text := "[" + strings.ToUpper(string(letter)) + "]"
	switch m {
	case game.MarkCorrect:
		return s.Correct.Render(text)
	case game.MarkPresent:
		return s.Present.Render(text)
	case game.MarkAbsent:
		return s.Absent.Render(text)
	}
	panic("term: unknown mark")
}

// Row renders a scored guess as five tiles.
func (s Styles) Row(guess string, v game.Verdict) string {
	var b strings.Builder
	for i, r := range []rune(guess) {
		b.WriteString(s.Tile(r, v[i]))
	}
	return b.String()
}
