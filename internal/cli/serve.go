package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/term/internal/config"
	"github.com/robalobadob/wordle/apps/term/internal/httpserver"
)

func (a *app) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the guessing game over HTTP",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default :5175)")
	_ = a.v.BindPFlag(config.KeyAddr, cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
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

	srv := httpserver.New(httpserver.Options{
		Source:         src,
		History:        h,
		StatsFile:      a.cfg.StatsFile,
		DailySalt:      a.cfg.DailySalt,
		RateLimitRPS:   a.cfg.RateLimitRPS,
		RateLimitBurst: a.cfg.RateLimitBurst,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx, a.cfg.Addr)
}
