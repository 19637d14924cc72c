package tabbar

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"flo.znkr.io/tabdiff/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(ids ...string) []Item {
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, Item{ID: id, Title: strings.ToUpper(id), Enabled: true})
	}
	return out
}

func ids(bs []*Button) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Item().ID)
	}
	return out
}

func TestSetItems(t *testing.T) {
	rec := &Recorder{}
	bar := New(WithObserver(rec))

	d, err := bar.SetItems(items("home", "search", "inbox", "profile"))
	require.NoError(t, err)
	assert.Len(t, d.Insertions(), 4)
	assert.Equal(t, []string{"home", "search", "inbox", "profile"}, ids(bar.Buttons()))

	before := bar.Buttons()
	rec.Reset()

	d, err = bar.SetItems(items("home", "inbox", "search", "profile", "settings"))
	require.NoError(t, err)
	assert.Equal(t, "-1:SEARCH +2:SEARCH +4:SETTINGS", d.String())
	assert.Equal(t, []string{"home", "inbox", "search", "profile", "settings"}, ids(bar.Buttons()))

	// Removals are reported before insertions, in application order.
	require.Len(t, rec.Events, 3)
	assert.Equal(t, diff.Remove, rec.Events[0].Op)
	assert.Equal(t, 1, rec.Events[0].Index)
	assert.Equal(t, diff.Insert, rec.Events[1].Op)
	assert.Equal(t, 2, rec.Events[1].Index)
	assert.Equal(t, diff.Insert, rec.Events[2].Op)
	assert.Equal(t, 4, rec.Events[2].Index)

	// Untouched buttons survive the update.
	after := bar.Buttons()
	assert.Same(t, before[0], after[0])
	assert.Same(t, before[2], after[1])
	assert.Same(t, before[3], after[3])
	assert.NotSame(t, before[1], after[2])
}

func TestSetItemsUpdatesInPlace(t *testing.T) {
	rec := &Recorder{}
	bar := New(WithObserver(rec))
	_, err := bar.SetItems(items("home", "inbox"))
	require.NoError(t, err)
	rec.Reset()

	next := items("home", "inbox")
	next[1].Indicator = true
	next[1].Title = "Messages"

	d, err := bar.SetItems(next)
	require.NoError(t, err)
	assert.False(t, d.HasChanges())
	require.Len(t, rec.Events, 1)
	assert.Equal(t, Updated, rec.Events[0].Op)
	assert.Equal(t, 1, rec.Events[0].Index)
	assert.Equal(t, "Messages", bar.Buttons()[1].Item().Title)
}

func TestSelection(t *testing.T) {
	bar := New()
	_, err := bar.SetItems(items("home", "search", "profile"))
	require.NoError(t, err)

	i, item, ok := bar.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, "home", item.ID)

	require.NoError(t, bar.Select(2))

	// The selected item moves with its tab.
	_, err = bar.SetItems(items("profile", "home"))
	require.NoError(t, err)
	i, item, _ = bar.Selected()
	assert.Equal(t, 0, i)
	assert.Equal(t, "profile", item.ID)

	// If the selected item disappears, the selection is clamped.
	require.NoError(t, bar.Select(1))
	_, err = bar.SetItems(items("profile"))
	require.NoError(t, err)
	i, item, _ = bar.Selected()
	assert.Equal(t, 0, i)
	assert.Equal(t, "profile", item.ID)

	_, err = bar.SetItems(nil)
	require.NoError(t, err)
	_, _, ok = bar.Selected()
	assert.False(t, ok)
}

func TestSelectNotSelectable(t *testing.T) {
	bar := New()
	next := items("home", "search")
	next[1].Enabled = false
	_, err := bar.SetItems(next)
	require.NoError(t, err)

	assert.ErrorIs(t, bar.Select(1), ErrNotSelectable)
	assert.ErrorIs(t, bar.Select(2), ErrNotSelectable)
	assert.ErrorIs(t, bar.Select(-1), ErrNotSelectable)
}

func TestSetItemsInconsistentEngine(t *testing.T) {
	// An engine that ignores the new items entirely.
	broken := func(from, to []Item) (diff.Difference[Item], error) {
		return diff.Difference[Item]{}, nil
	}
	bar := New(WithEngine(broken))
	_, err := bar.SetItems(items("home", "search"))
	require.ErrorIs(t, err, ErrInconsistent)

	// The bar recovered by rebuilding its buttons.
	assert.Equal(t, []string{"home", "search"}, ids(bar.Buttons()))
}

func TestSetItemsNegativeIndex(t *testing.T) {
	for _, kind := range []diff.Kind{diff.Remove, diff.Insert} {
		t.Run(kind.String(), func(t *testing.T) {
			broken := func(from, to []Item) (diff.Difference[Item], error) {
				return diff.NewDifference([]diff.Change[Item]{{Kind: kind, Elem: Item{ID: "x"}, Index: -1}}), nil
			}
			bar := New(WithEngine(broken))
			_, err := bar.SetItems(items("home", "search"))
			require.ErrorIs(t, err, ErrInconsistent)
			assert.Equal(t, []string{"home", "search"}, ids(bar.Buttons()))
		})
	}
}

func TestSelectionSkipsDisabled(t *testing.T) {
	disabled := func(list []Item, off ...string) []Item {
		for i := range list {
			if slices.Contains(off, list[i].ID) {
				list[i].Enabled = false
			}
		}
		return list
	}

	tests := []struct {
		name     string
		initial  []Item
		selected int
		next     []Item
		wantID   string // empty: no selection
	}{
		{
			name:     "only disabled tabs left",
			initial:  disabled(items("a", "b"), "b"),
			selected: 0,
			next:     disabled(items("b"), "b"),
		},
		{
			name:     "removed selection moves to nearest enabled tab",
			initial:  disabled(items("a", "b", "c", "d"), "c"),
			selected: 1,
			next:     disabled(items("a", "c", "d"), "c"),
			wantID:   "d",
		},
		{
			name:     "removed selection at the end moves left",
			initial:  disabled(items("a", "b", "c"), "b"),
			selected: 2,
			next:     disabled(items("a", "b"), "b"),
			wantID:   "a",
		},
		{
			name:     "selected tab becomes disabled",
			initial:  items("a", "b", "c"),
			selected: 1,
			next:     disabled(items("a", "b", "c"), "b"),
			wantID:   "c",
		},
		{
			name:     "first tab disabled",
			initial:  nil,
			selected: -1,
			next:     disabled(items("a", "b"), "a"),
			wantID:   "b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := New()
			_, err := bar.SetItems(tt.initial)
			require.NoError(t, err)
			if tt.selected >= 0 {
				require.NoError(t, bar.Select(tt.selected))
			}

			_, err = bar.SetItems(tt.next)
			require.NoError(t, err)

			i, item, ok := bar.Selected()
			if tt.wantID == "" {
				assert.False(t, ok, "selected %d (%s)", i, item.ID)
				assert.Equal(t, -1, i)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantID, item.ID)
			assert.True(t, item.Enabled)
			assert.NoError(t, bar.Select(i))
		})
	}
}

func TestSetItemsEngineError(t *testing.T) {
	bar := New(WithEngine(Myers(diff.TraceLimit(1))))
	_, err := bar.SetItems(items("a", "b"))
	require.NoError(t, err)

	_, err = bar.SetItems(items("c", "d"))
	assert.True(t, errors.Is(err, diff.ErrTooLarge), "got %v", err)
	assert.Equal(t, []string{"a", "b"}, ids(bar.Buttons()))
}

func TestEngines(t *testing.T) {
	from := items("home", "search", "inbox")
	to := items("inbox", "home", "settings")

	for _, name := range []string{"", "myers", "znkr"} {
		t.Run(name, func(t *testing.T) {
			engine, err := EngineByName(name)
			require.NoError(t, err)
			d, err := engine(from, to)
			require.NoError(t, err)
			got, err := diff.Apply(d, from)
			require.NoError(t, err)
			assert.Equal(t, to, got)
		})
	}

	_, err := EngineByName("patience")
	assert.Error(t, err)
}

func TestView(t *testing.T) {
	bar := New()
	assert.Contains(t, bar.View(0), "no tabs")

	next := items("home", "notifications")
	next[1].Icon = "♪"
	next[1].Indicator = true
	_, err := bar.SetItems(next)
	require.NoError(t, err)

	view := bar.View(0)
	assert.Contains(t, view, "HOME")
	assert.Contains(t, view, "♪ NOTIFICATIONS")
	assert.Contains(t, view, "•")

	narrow := bar.View(16, Highlight(bar.Buttons()[1]))
	assert.NotContains(t, narrow, "NOTIFICATIONS")
	assert.Contains(t, narrow, "…")
}
