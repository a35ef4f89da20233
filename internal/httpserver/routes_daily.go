// apps/term/internal/httpserver/routes_daily.go
//
// HTTP routes for the daily word.
//   - GET  /daily     → today's date key and puzzle number
//   - POST /daily/new → start a round on today's word (guess via /game/guess)
//
// Word selection is deterministic: date + salt (see internal/daily).
// Finished daily rounds are recorded in history with mode "daily".

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/daily"
	"github.com/robalobadob/wordle/apps/term/internal/game"
)

// epoch is puzzle #0.
var epoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

type dailyRes struct {
	Date   string `json:"date"`
	Number int    `json:"number"`
}

// today returns today's UTC date key and puzzle number.
func today(now time.Time) dailyRes {
	key := daily.DateKey(now)
	d, _ := time.Parse("2006-01-02", key)
	return dailyRes{Date: key, Number: int(d.Sub(epoch).Hours() / 24)}
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(today(s.opts.Now()))
}

type dailyNewRes struct {
	newGameRes
	dailyRes
}

// handleDailyNew starts a round on today's word.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	now := s.opts.Now()
	answer := s.opts.Source.DailyAnswer(now, s.opts.DailySalt)

	g := game.NewRound(answer, s.opts.Source.Dictionary())
	if err := s.opts.Store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save daily round")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	s.modes.Store(g.ID, "daily")

	_ = json.NewEncoder(w).Encode(dailyNewRes{
		newGameRes: newGameRes{GameID: g.ID, Attempts: game.MaxAttempts},
		dailyRes:   today(now),
	})
}
