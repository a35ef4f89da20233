// apps/term/main.go
//
// Entry point for the wordle binary.
// Loads an optional .env file, then hands off to the cobra command tree
// (play, serve, stats, history). See internal/cli.

package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		log.Fatal().Err(err).Msg("wordle exited")
	}
}
