package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/stats"
	"github.com/robalobadob/wordle/apps/term/internal/term"
)

func (a *app) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the win histogram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			term.WriteHistogram(cmd.OutOrStdout(), stats.Load(a.cfg.StatsFile))
			return nil
		},
	}
}

func (a *app) newHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently finished rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DBPath == "" {
				return fmt.Errorf("history is disabled; set --db or WORDLE_DB_PATH")
			}
			h, err := a.openHistory()
			if err != nil {
				return err
			}
			defer h.Close()

			entries, err := h.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No rounds yet.")
				return nil
			}
			for _, e := range entries {
				result := "lost"
				if e.Won {
					result = fmt.Sprintf("won %d/%d", e.Attempts, game.MaxAttempts)
				}
				fmt.Fprintf(out, "%s  %-6s  %s  %-8s  %s\n",
					e.FinishedAt.Local().Format("2006-01-02 15:04"),
					e.Mode,
					strings.ToUpper(e.Answer),
					result,
					strings.Join(e.Guesses, " "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of rounds to show")
	return cmd
}
