package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/history"
	"github.com/robalobadob/wordle/apps/term/internal/stats"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	src, err := words.New(
		[]string{"crane", "slate"},
		[]string{"blimp", "crate", "dough", "fjord", "quick", "vivid", "wight"},
	)
	require.NoError(t, err)
	opts.Source = src
	if opts.PickAnswer == nil {
		opts.PickAnswer = func() string { return "crane" }
	}
	if opts.RateLimitBurst == 0 {
		opts.RateLimitBurst = 100
	}
	return New(opts)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, Options{})
	w := do(t, s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, World", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestQuickGuess(t *testing.T) {
	answers := []string{"crane", "slate"}
	i := 0
	s := newTestServer(t, Options{PickAnswer: func() string {
		a := answers[i%len(answers)]
		i++
		return a
	}})

	tests := []struct {
		word string
		want string
	}{
		{"crat", "Your guess must be exactly 5 letters long!"},
		{"zzzzz", "I've never seen that word before!"},
		{"crate", "Incorrect!"},
		{"CRANE", "Correct!"},
		// held answer rotated to slate
		{"crane", "Incorrect!"},
		{"slate", "Correct!"},
	}
	for _, tt := range tests {
		w := do(t, s, http.MethodGet, "/guess/"+tt.word, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tt.want, w.Body.String(), "guess %q", tt.word)
	}
}

func newGame(t *testing.T, s *Server, body string) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/game/new", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res newGameRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.GameID)
	assert.Equal(t, game.MaxAttempts, res.Attempts)
	return res.GameID
}

type guessBody struct {
	Marks   []string `json:"marks"`
	State   string   `json:"state"`
	Attempt int      `json:"attempt"`
	Answer  string   `json:"answer"`
}

func guess(t *testing.T, s *Server, id, word string) (int, guessBody) {
	t.Helper()
	w := do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+id+`","guess":"`+word+`"}`)
	var res guessBody
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	return w.Code, res
}

func TestGameAPI_Win(t *testing.T) {
	statsFile := filepath.Join(t.TempDir(), "user_data.txt")
	h, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer h.Close()

	s := newTestServer(t, Options{StatsFile: statsFile, History: h})
	id := newGame(t, s, `{"answer":"crane"}`)

	code, res := guess(t, s, id, "slate")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"absent", "absent", "correct", "absent", "correct"}, res.Marks)
	assert.Equal(t, "playing", res.State)
	assert.Empty(t, res.Answer)

	code, _ = guess(t, s, id, "nope")
	assert.Equal(t, http.StatusBadRequest, code)

	code, res = guess(t, s, id, "crane")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "won", res.State)
	assert.Equal(t, 2, res.Attempt)
	assert.Equal(t, "crane", res.Answer)

	assert.Equal(t, 1, stats.Load(statsFile).Count(2))

	entries, err := h.Recent(t.Context(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "http", entries[0].Mode)

	// finished rounds are dropped from the store
	code, _ = guess(t, s, id, "crane")
	assert.Equal(t, http.StatusNotFound, code)

	w := do(t, s, http.MethodGet, "/stats", "")
	var st statsRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 1, st.Wins)
	assert.Equal(t, 1, st.Distribution["2"])
}

func TestGameAPI_Loss(t *testing.T) {
	s := newTestServer(t, Options{})
	id := newGame(t, s, `{}`)

	var res guessBody
	for _, w := range []string{"dough", "blimp", "fjord", "quick", "vivid", "wight"} {
		var code int
		code, res = guess(t, s, id, w)
		require.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, "lost", res.State)
	assert.Equal(t, "crane", res.Answer)
	assert.Equal(t, stats.Histogram{}, s.hist)
}

func TestGameAPI_Errors(t *testing.T) {
	s := newTestServer(t, Options{})

	w := do(t, s, http.MethodPost, "/game/new", `{"answer":"zzzzz"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown_word")

	w = do(t, s, http.MethodPost, "/game/guess", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	code, _ := guess(t, s, "missing", "crane")
	assert.Equal(t, http.StatusNotFound, code)

	w = do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	w := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 3})
	for i := range 3 {
		w := do(t, s, http.MethodGet, "/guess/crate", "")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}
	w := do(t, s, http.MethodGet, "/guess/crate", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// unlimited routes are unaffected
	w = do(t, s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDaily(t *testing.T) {
	h, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer h.Close()

	now := time.Date(2024, time.March, 3, 15, 0, 0, 0, time.UTC)
	s := newTestServer(t, Options{History: h, DailySalt: "pepper", Now: func() time.Time { return now }})

	w := do(t, s, http.MethodGet, "/daily", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info dailyRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "2024-03-03", info.Date)
	assert.Equal(t, 988, info.Number)

	w = do(t, s, http.MethodPost, "/daily/new", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res dailyNewRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.GameID)
	assert.Equal(t, "2024-03-03", res.Date)

	answer := s.opts.Source.DailyAnswer(now, "pepper")
	code, g := guess(t, s, res.GameID, answer)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "won", g.State)

	entries, err := h.Recent(t.Context(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "daily", entries[0].Mode)
	assert.Equal(t, answer, entries[0].Answer)
}
