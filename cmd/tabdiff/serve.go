package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"flo.znkr.io/tabdiff/layout"
	"flo.znkr.io/tabdiff/report"
	"flo.znkr.io/tabdiff/server"
	"flo.znkr.io/tabdiff/watch"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve LAYOUT",
		Short: "Serves a live report of the most recent change to LAYOUT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layout.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading layout: %w", err)
			}
			history := report.NewHistory(maxHistory)
			site, err := a.site(l, l, history)
			if err != nil {
				return err
			}

			srv, err := server.Run(a.cfg.Serve.Addr, site, a.log)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					a.log.Error().Err(err).Msg("shutdown failed")
				}
			}()
			a.log.Info().Msgf("Now serving at http://%s, press Ctrl-C to shut down", srv.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			werrc := make(chan error, 1)
			go func() {
				werrc <- watch.Run(ctx, args[0], a.log, func(prev, next *layout.Layout) {
					start := time.Now()
					site, err := a.site(prev, next, history)
					if err != nil {
						a.log.Error().Err(err).Msg("failed to update report")
						return
					}
					srv.ReplaceSite(site)
					a.log.Info().
						Int("changes", site.Report.Difference.Len()).
						Dur("took", time.Since(start)).
						Msg("report updated")
				})
			}()

			select {
			case err := <-werrc:
				if ctx.Err() != nil {
					fmt.Fprint(cmd.ErrOrStderr(), "\r") // remove Ctrl-C output characters
					a.log.Info().Msg("Received Ctrl-C, shutting down")
				}
				return err
			case err := <-srv.Error():
				return fmt.Errorf("serving: %v", err)
			}
		},
	}
	cmd.Flags().String("addr", "localhost:8080", "address to listen on")
	a.v.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// maxHistory is the number of changes published in the feed.
const maxHistory = 20

// site renders the report of the change from from to to. Actual changes are added to history.
func (a *app) site(from, to *layout.Layout, history *report.History) (*report.Site, error) {
	r, err := report.New(from, to, a.engine)
	if err != nil {
		return nil, err
	}
	if from != to {
		if err := history.Add(r, time.Now()); err != nil {
			return nil, err
		}
	}
	return report.NewSite(r, report.WithHistory(history, "http://"+a.cfg.Serve.Addr))
}
