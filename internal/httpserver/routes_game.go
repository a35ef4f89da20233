package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/stats"
)

// handleQuickGuess checks one word against the held answer and answers in
// plain text. A correct guess rotates the held answer.
func (s *Server) handleQuickGuess(w http.ResponseWriter, r *http.Request) {
	guess, err := game.Validate(chi.URLParam(r, "word"), s.opts.Source.Dictionary())
	if err != nil {
		writeText(w, http.StatusOK, game.UserMessage(err))
		return
	}

	s.mu.Lock()
	solved := game.Score(guess, s.answer).Solved()
	if solved {
		s.answer = s.opts.PickAnswer()
	}
	s.mu.Unlock()

	if solved {
		log.Info().Str("guess", guess).Msg("held answer solved, rotated")
		writeText(w, http.StatusOK, "Correct!")
		return
	}
	writeText(w, http.StatusOK, "Incorrect!")
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID   string `json:"gameId"`
	Attempts int    `json:"maxAttempts"`
}

// handleNewGame creates a new round in the store.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	answer := s.opts.PickAnswer()
	if req.Answer != "" {
		a, err := game.Validate(req.Answer, s.opts.Source.Dictionary())
		if err != nil {
			status, code := errorCode(err)
			writeError(w, status, code, game.UserMessage(err))
			return
		}
		answer = a
	}

	g := game.NewRound(answer, s.opts.Source.Dictionary())
	if err := s.opts.Store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save round")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Attempts: game.MaxAttempts})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks   game.Verdict `json:"marks"`
	State   game.State   `json:"state"`
	Attempt int          `json:"attempt"`
	Answer  string       `json:"answer,omitempty"` // revealed once finished
}

// handleGuess applies a guess to a stored round and, once the round is
// finished, records it.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	s.roundMu.Lock()
	defer s.roundMu.Unlock()

	g, err := s.opts.Store.Get(r.Context(), req.GameID)
	if err != nil {
		status, code := errorCode(err)
		writeError(w, status, code, "")
		return
	}

	v, err := g.Guess(req.Guess)
	if err != nil {
		status, code := errorCode(err)
		writeError(w, status, code, game.UserMessage(err))
		return
	}

	res := guessRes{Marks: v, State: g.State, Attempt: g.Attempts()}
	if g.Finished() {
		res.Answer = g.Answer
		s.finish(r, g)
	} else if err := s.opts.Store.Save(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// finish records a finished round and drops it from the store. Failures are
// logged; the player already has their result.
func (s *Server) finish(r *http.Request, g *game.Round) {
	if g.State == game.StateWon {
		s.statsMu.Lock()
		s.hist.Record(g.Attempts())
		if s.opts.StatsFile != "" {
			if err := stats.Dump(s.opts.StatsFile, s.hist); err != nil {
				log.Error().Err(err).Msg("dump stats")
			}
		}
		s.statsMu.Unlock()
	}
	mode := "http"
	if m, ok := s.modes.LoadAndDelete(g.ID); ok {
		mode = m.(string)
	}
	if s.opts.History != nil {
		if err := s.opts.History.Record(r.Context(), g, mode); err != nil {
			log.Warn().Err(err).Str("round", g.ID).Msg("record history")
		}
	}
	if err := s.opts.Store.Delete(r.Context(), g.ID); err != nil {
		log.Warn().Err(err).Str("round", g.ID).Msg("delete round")
	}
}

type statsRes struct {
	Wins         int            `json:"wins"`
	Distribution map[string]int `json:"distribution"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.statsMu.Lock()
	h := s.hist
	s.statsMu.Unlock()

	res := statsRes{Wins: h.Wins(), Distribution: make(map[string]int, game.MaxAttempts)}
	for a := 1; a <= game.MaxAttempts; a++ {
		res.Distribution[strconv.Itoa(a)] = h.Count(a)
	}
	_ = json.NewEncoder(w).Encode(res)
}
