package main

import (
	"fmt"

	"flo.znkr.io/tabdiff/layout"
	"flo.znkr.io/tabdiff/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui LAYOUT",
		Short: "Interactively shows and hides the tabs of LAYOUT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layout.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading layout: %w", err)
			}
			m, err := tui.New(l, a.engine)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running tui: %v", err)
			}
			return nil
		},
	}
}
