package main

import (
	"fmt"
	"io"

	"flo.znkr.io/tabdiff/diff"
	"flo.znkr.io/tabdiff/layout"
	"flo.znkr.io/tabdiff/report"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newDiffCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "diff FROM TO",
		Short: "Prints the changes that turn layout FROM into layout TO",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadReport(args[0], args[1])
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), r, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, markdown or json")
	return cmd
}

func (a *app) loadReport(from, to string) (*report.Report, error) {
	fl, err := layout.Load(from)
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}
	tl, err := layout.Load(to)
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}
	r, err := report.New(fl, tl, a.engine)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("from", from).Str("to", to).Int("changes", r.Difference.Len()).Msg("diffed layouts")
	return r, nil
}

func (a *app) write(w io.Writer, r *report.Report, format string) error {
	switch format {
	case "text":
		writeText(w, r, a.cfg.Output.Color)
		return nil
	case "markdown", "md":
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(a.cfg.Output.Style),
			glamour.WithWordWrap(a.cfg.Output.Width),
		)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %v", err)
		}
		out, err := tr.RenderBytes(report.Markdown(r))
		if err != nil {
			return fmt.Errorf("rendering markdown: %v", err)
		}
		_, err = w.Write(out)
		return err
	case "json":
		data, err := report.JSON(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

var (
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3fb950"))
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

// writeText prints one line per change in the order the changes are applied.
func writeText(w io.Writer, r *report.Report, color bool) {
	style := func(s lipgloss.Style) lipgloss.Style {
		if !color {
			return lipgloss.NewStyle()
		}
		return s
	}

	fmt.Fprintf(w, "%s: %s → %s\n", r.Title, r.From.Title, r.To.Title)
	for _, c := range r.Difference.All() {
		switch c.Kind {
		case diff.Remove:
			fmt.Fprintln(w, style(removedStyle).Render(fmt.Sprintf("- %d %s (%s)", c.Index, c.Elem, c.Elem.ID)))
		case diff.Insert:
			fmt.Fprintln(w, style(addedStyle).Render(fmt.Sprintf("+ %d %s (%s)", c.Index, c.Elem, c.Elem.ID)))
		}
	}

	var summary string
	removals, insertions := len(r.Difference.Removals()), len(r.Difference.Insertions())
	switch {
	case !r.Difference.HasChanges():
		summary = "no changes"
	default:
		summary = fmt.Sprintf("%d changes (%d removals, %d insertions)", removals+insertions, removals, insertions)
	}
	fmt.Fprintln(w, style(summaryStyle).Render(summary))
}
