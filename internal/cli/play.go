package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/term/internal/term"
)

func (a *app) newPlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play rounds in the terminal",
		Args:  cobra.NoArgs,
		RunE:  a.runPlay,
	}
	cmd.Flags().Bool("daily", false, "play today's word")
	return cmd
}

func (a *app) runPlay(cmd *cobra.Command, _ []string) error {
	src, err := a.loadWords()
	if err != nil {
		return err
	}
	h, err := a.openHistory()
	if err != nil {
		return err
	}
	if h != nil {
		defer h.Close()
	}

	opts := term.Options{
		Source:    src,
		StatsFile: a.cfg.StatsFile,
		History:   h,
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
	}
	if daily, _ := cmd.Flags().GetBool("daily"); daily {
		salt := a.cfg.DailySalt
		opts.Mode = "daily"
		opts.PickAnswer = func() string { return src.DailyAnswer(time.Now(), salt) }
	}

	return term.New(opts).Run(cmd.Context())
}
