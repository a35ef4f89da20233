// Package cli wires the wordle commands: play, serve, stats and history.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robalobadob/wordle/apps/term/internal/config"
	"github.com/robalobadob/wordle/apps/term/internal/history"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

// NewRootCommand builds the command tree around a fresh viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "wordle",
		Short: "Guess the five-letter word in six tries",
		Long: `A terminal Wordle.

Each guess is scored letter by letter:
  green  - right letter, right spot
  yellow - in the word, wrong spot
  gray   - not in the word

Wins are tallied by attempt count in a histogram file.

Running 'wordle' without a subcommand starts a game.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runPlay,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("words", "", "answer list file (default: embedded)")
	pf.String("dict", "", "sorted dictionary file (default: embedded)")
	pf.String("stats", "", "histogram file (default ./user_data.txt)")
	pf.String("db", "", "SQLite history database (disabled when empty)")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	_ = a.v.BindPFlag(config.KeyWordsFile, pf.Lookup("words"))
	_ = a.v.BindPFlag(config.KeyDictFile, pf.Lookup("dict"))
	_ = a.v.BindPFlag(config.KeyStatsFile, pf.Lookup("stats"))
	_ = a.v.BindPFlag(config.KeyDBPath, pf.Lookup("db"))
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))

	root.Flags().Bool("daily", false, "play today's word")

	root.AddCommand(
		a.newPlayCommand(),
		a.newServeCommand(),
		a.newStatsCommand(),
		a.newHistoryCommand(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// setup resolves configuration and installs the global logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

// loadWords reads the answer pool and dictionary named by the config.
func (a *app) loadWords() (*words.Source, error) {
	src, err := words.Load(a.cfg.WordsFile, a.cfg.DictFile)
	if err != nil {
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	n, d := src.Stats()
	log.Debug().Int("answers", n).Int("dictionary", d).Msg("word lists loaded")
	return src, nil
}

// openHistory opens the history database, or returns nil when disabled.
func (a *app) openHistory() (*history.Store, error) {
	if a.cfg.DBPath == "" {
		return nil, nil
	}
	h, err := history.Open(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return h, nil
}
