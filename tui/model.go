// Package tui implements an interactive tab toggler: every tab of a layout can be shown or hidden
// and the tab bar follows by applying the difference between the old and new visible tabs.
package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"flo.znkr.io/tabdiff/diff"
	"flo.znkr.io/tabdiff/layout"
	"flo.znkr.io/tabdiff/tabbar"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	barStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#30363d"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff")).Bold(true)
	hiddenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#484f58"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149"))
)

// Model is the bubbletea model of the toggler.
type Model struct {
	layout  *layout.Layout
	visible []bool
	cursor  int

	bar      *tabbar.Bar
	rec      *tabbar.Recorder
	last     diff.Difference[tabbar.Item]
	inserted []*tabbar.Button

	keys  KeyMap
	width int
	err   error
}

// New creates a model showing all tabs of l.
func New(l *layout.Layout, engine tabbar.Engine) (Model, error) {
	rec := &tabbar.Recorder{}
	m := Model{
		layout:  l,
		visible: make([]bool, len(l.Items)),
		bar:     tabbar.New(tabbar.WithEngine(engine), tabbar.WithObserver(rec)),
		rec:     rec,
		keys:    DefaultKeyMap(),
	}
	for i := range m.visible {
		m.visible[i] = true
	}
	if _, err := m.bar.SetItems(l.Items); err != nil {
		return Model{}, err
	}
	if len(l.Items) > 0 && l.Items[l.SelectedIndex()].Enabled {
		if err := m.bar.Select(l.SelectedIndex()); err != nil {
			return Model{}, err
		}
	}
	rec.Reset()
	return m, nil
}

// Bar returns the tab bar driven by the model.
func (m Model) Bar() *tabbar.Bar { return m.bar }

// Last returns the difference applied by the most recent toggle.
func (m Model) Last() diff.Difference[tabbar.Item] { return m.last }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if len(m.visible) > 0 {
				visible := slices.Clone(m.visible)
				visible[m.cursor] = !visible[m.cursor]
				m = m.apply(visible)
			}
		case key.Matches(msg, m.keys.Reset):
			visible := make([]bool, len(m.visible))
			for i := range visible {
				visible[i] = true
			}
			m = m.apply(visible)
		case key.Matches(msg, m.keys.Select):
			m = m.selectCursor()
		}
	}
	return m, nil
}

// apply makes visible the new visibility and pushes the visible items into the bar.
func (m Model) apply(visible []bool) Model {
	m.visible = visible
	items := make([]tabbar.Item, 0, len(m.visible))
	for i, item := range m.layout.Items {
		if m.visible[i] {
			items = append(items, item)
		}
	}

	m.rec.Reset()
	d, err := m.bar.SetItems(items)
	m.err = err
	m.last = d
	m.inserted = m.inserted[:0:0]
	for _, ev := range m.rec.Events {
		if ev.Op == diff.Insert {
			m.inserted = append(m.inserted, ev.Button)
		}
	}
	return m
}

func (m Model) selectCursor() Model {
	switch {
	case len(m.visible) == 0:
		m.err = errors.New("no tabs")
		return m
	case !m.visible[m.cursor]:
		m.err = fmt.Errorf("%s is hidden", m.layout.Items[m.cursor])
		return m
	}
	idx := 0
	for _, v := range m.visible[:m.cursor] {
		if v {
			idx++
		}
	}
	m.err = m.bar.Select(idx)
	return m
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.layout.Title))
	sb.WriteByte('\n')

	width := m.width
	if width > 4 {
		width -= 4 // border and margin
	}
	sb.WriteString(barStyle.Render(m.bar.View(width, tabbar.Highlight(m.inserted...))))
	sb.WriteString("\n\n")

	for i, item := range m.layout.Items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[x]"
		line := item.String()
		if !m.visible[i] {
			check = "[ ]"
			line = hiddenStyle.Render(line)
		}
		fmt.Fprintf(&sb, "%s%s %s\n", cursor, check, line)
	}
	sb.WriteByte('\n')

	if m.err != nil {
		sb.WriteString(errorStyle.Render("error: " + m.err.Error()))
	} else {
		sb.WriteString(statusStyle.Render("last change: " + m.last.String()))
	}
	sb.WriteByte('\n')

	help := make([]string, 0, 6)
	for _, b := range m.keys.bindings() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	sb.WriteString(statusStyle.Render(strings.Join(help, " • ")))
	sb.WriteByte('\n')
	return sb.String()
}
