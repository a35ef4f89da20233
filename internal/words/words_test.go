package words

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestLoad_Embedded(t *testing.T) {
	src, err := Load("", "")
	require.NoError(t, err)

	answers, dict := src.Stats()
	assert.Greater(t, answers, 0)
	assert.GreaterOrEqual(t, dict, answers)
	assert.True(t, slices.IsSorted(src.Dictionary()))
	for _, a := range src.Answers() {
		assert.True(t, src.IsAllowed(a), "answer %q must be a valid guess", a)
	}
}

func TestLoad_BothFiles(t *testing.T) {
	answers := writeLines(t, "repo.txt", "CRANE", "slate", "toolong", "", "ab1de")
	dict := writeLines(t, "dict.txt", "abide", "hello", "speed")

	src, err := Load(answers, dict)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"crane", "slate"}, src.Answers())
	assert.Equal(t, []string{"abide", "crane", "hello", "slate", "speed"}, src.Dictionary())
	assert.True(t, src.IsAllowed("HELLO"))
	assert.False(t, src.IsAllowed("zzzzz"))
}

func TestLoad_DictionaryOnly(t *testing.T) {
	dict := writeLines(t, "dict.txt", "abide", "hello")

	src, err := Load("", dict)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"abide", "hello"}, src.Answers())
}

func TestLoad_UnsortedDictionaryIsSorted(t *testing.T) {
	answers := writeLines(t, "repo.txt", "crane")
	dict := writeLines(t, "dict.txt", "speed", "abide", "hello")

	src, err := Load(answers, dict)
	require.NoError(t, err)
	assert.Equal(t, []string{"abide", "crane", "hello", "speed"}, src.Dictionary())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNew_EmptyPool(t *testing.T) {
	_, err := New([]string{"toolong", ""}, []string{"crane"})
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestRandomAnswer_FromPool(t *testing.T) {
	src, err := New([]string{"crane", "slate"}, nil)
	require.NoError(t, err)
	for range 20 {
		assert.Contains(t, []string{"crane", "slate"}, src.RandomAnswer())
	}
}

func TestDailyAnswer_StableForDate(t *testing.T) {
	src, err := New([]string{"crane", "slate", "abide", "hello"}, nil)
	require.NoError(t, err)

	morning := time.Date(2024, 5, 4, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 5, 4, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, src.DailyAnswer(morning, "s"), src.DailyAnswer(evening, "s"))
	assert.Contains(t, src.Answers(), src.DailyAnswer(morning, "s"))
}
