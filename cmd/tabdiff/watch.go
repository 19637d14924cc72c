package main

import (
	"os"
	"os/signal"

	"flo.znkr.io/tabdiff/layout"
	"flo.znkr.io/tabdiff/report"
	"flo.znkr.io/tabdiff/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "watch LAYOUT",
		Short: "Prints the changes every time LAYOUT changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return watch.Run(ctx, args[0], a.log, func(prev, next *layout.Layout) {
				r, err := report.New(prev, next, a.engine)
				if err != nil {
					a.log.Error().Err(err).Msg("failed to diff layouts")
					return
				}
				a.log.Info().Int("changes", r.Difference.Len()).Msg("layout changed")
				if err := a.write(cmd.OutOrStdout(), r, format); err != nil {
					a.log.Error().Err(err).Msg("failed to write changes")
				}
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, markdown or json")
	return cmd
}
