package main

import (
	"flo.znkr.io/tabdiff/pack"
	"flo.znkr.io/tabdiff/report"
	"github.com/spf13/cobra"
)

func newPackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pack FROM TO OUT.tar",
		Short: "Packs the report of the changes from FROM to TO into a .tar file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadReport(args[0], args[1])
			if err != nil {
				return err
			}
			s, err := report.NewSite(r)
			if err != nil {
				return err
			}
			if err := pack.Pack(args[2], s); err != nil {
				return err
			}
			a.log.Info().Str("file", args[2]).Msg("packed report")
			return nil
		},
	}
}
