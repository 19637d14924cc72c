package tabbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	colorText     = lipgloss.Color("#e6edf3")
	colorTextDim  = lipgloss.Color("#484f58")
	colorAccent   = lipgloss.Color("#58a6ff")
	colorNotify   = lipgloss.Color("#f85149")
	colorInserted = lipgloss.Color("#3fb950")

	tabStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	selectedTabStyle = tabStyle.
				Foreground(colorAccent).
				Bold(true).
				Underline(true)

	disabledTabStyle = tabStyle.
				Foreground(colorTextDim)

	indicatorStyle = lipgloss.NewStyle().
			Foreground(colorNotify)
)

// InsertedStyle is the style HighlightInserted applies to freshly inserted buttons.
var InsertedStyle = tabStyle.Foreground(colorInserted)

// ViewOption configures View.
type ViewOption func(*viewOptions)

type viewOptions struct {
	highlight map[int]bool // button seqs
}

// Highlight renders the given buttons with InsertedStyle.
func Highlight(buttons ...*Button) ViewOption {
	return func(o *viewOptions) {
		for _, b := range buttons {
			o.highlight[b.seq] = true
		}
	}
}

// View renders the bar on a single line. If width is positive, titles are truncated so that every
// tab fits into an equal share of width.
func (b *Bar) View(width int, opts ...ViewOption) string {
	if len(b.buttons) == 0 {
		return disabledTabStyle.Render("(no tabs)")
	}

	o := viewOptions{highlight: make(map[int]bool)}
	for _, opt := range opts {
		opt(&o)
	}

	maxTitle := 0
	if width > 0 {
		// Padding takes two cells per tab.
		maxTitle = max(width/len(b.buttons)-2, 1)
	}

	cells := make([]string, 0, len(b.buttons))
	for i, btn := range b.buttons {
		style := tabStyle
		switch {
		case !btn.item.Enabled:
			style = disabledTabStyle
		case i == b.selected:
			style = selectedTabStyle
		case o.highlight[btn.seq]:
			style = InsertedStyle
		}
		cells = append(cells, style.Render(label(btn.item, maxTitle)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// label returns icon, title and indicator of item, truncated to maxWidth cells if maxWidth is
// positive.
func label(item Item, maxWidth int) string {
	var sb strings.Builder
	if item.Icon != "" {
		sb.WriteString(item.Icon)
		sb.WriteByte(' ')
	}
	sb.WriteString(item.String())
	s := sb.String()

	indicator := ""
	if item.Indicator {
		indicator = "•"
	}
	if maxWidth > 0 {
		s = runewidth.Truncate(s, maxWidth-runewidth.StringWidth(indicator), "…")
	}
	if indicator != "" {
		s += indicatorStyle.Render(indicator)
	}
	return s
}
