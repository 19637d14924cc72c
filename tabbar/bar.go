package tabbar

import (
	"errors"
	"fmt"
	"slices"

	"flo.znkr.io/tabdiff/diff"
)

var (
	// ErrInconsistent is returned by SetItems if applying the computed difference didn't produce
	// the requested items. This only happens if the engine's equality isn't an equivalence
	// relation. The bar rebuilds all buttons before returning it.
	ErrInconsistent = errors.New("tabbar: buttons out of sync with items")

	// ErrNotSelectable is returned by Select for indices out of range and disabled items.
	ErrNotSelectable = errors.New("tabbar: item not selectable")
)

// Button is the visual counterpart of an item. Buttons survive updates as long as their item
// does, so a view can keep per-button state (like an animation) keyed by the button.
type Button struct {
	item Item
	seq  int
}

// Item returns the item currently displayed by the button.
func (b *Button) Item() Item { return b.item }

// Seq returns a number unique to this button within its bar.
func (b *Button) Seq() int { return b.seq }

// Observer is notified about every step SetItems performs, in the order it performs them.
type Observer interface {
	Removed(b *Button, index int)
	Inserted(b *Button, index int)
	Updated(b *Button, index int)
}

type nopObserver struct{}

func (nopObserver) Removed(*Button, int)  {}
func (nopObserver) Inserted(*Button, int) {}
func (nopObserver) Updated(*Button, int)  {}

// Bar is a tab bar. The zero value is not usable; use New.
type Bar struct {
	items    []Item
	buttons  []*Button
	selected int // -1 if nothing is selected
	engine   Engine
	observer Observer
	seq      int
}

// Option configures a Bar.
type Option func(*Bar)

// WithEngine sets the engine used to compute differences. The default is Myers().
func WithEngine(e Engine) Option {
	return func(b *Bar) {
		b.engine = e
	}
}

// WithObserver sets the observer notified about button changes.
func WithObserver(o Observer) Option {
	return func(b *Bar) {
		b.observer = o
	}
}

// New creates an empty bar.
func New(opts ...Option) *Bar {
	b := &Bar{
		selected: -1,
		engine:   Myers(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Items returns the items currently displayed.
func (b *Bar) Items() []Item { return slices.Clone(b.items) }

// Buttons returns the buttons currently displayed, in item order.
func (b *Bar) Buttons() []*Button { return slices.Clone(b.buttons) }

// Selected returns the index and item of the selected tab.
func (b *Bar) Selected() (int, Item, bool) {
	if b.selected < 0 {
		return -1, Item{}, false
	}
	return b.selected, b.items[b.selected], true
}

// Select selects the tab at index i.
func (b *Bar) Select(i int) error {
	if i < 0 || i >= len(b.items) {
		return fmt.Errorf("%w: index %d of %d", ErrNotSelectable, i, len(b.items))
	}
	if !b.items[i].Enabled {
		return fmt.Errorf("%w: %q is disabled", ErrNotSelectable, b.items[i].ID)
	}
	b.selected = i
	return nil
}

// SetItems replaces the displayed items. It computes the difference between the current and the
// new items and applies it to the buttons: removals first, highest index first, then insertions,
// lowest index first. Buttons whose item kept its ID but changed otherwise are updated in place.
//
// The selection stays on the same item if it survives the update and is still enabled. Otherwise
// the enabled tab closest to the selected position is selected. Disabled tabs are never selected.
func (b *Bar) SetItems(items []Item) (diff.Difference[Item], error) {
	d, err := b.engine(b.items, items)
	if err != nil {
		return diff.Difference[Item]{}, fmt.Errorf("computing difference: %w", err)
	}

	var selectedID string
	if _, item, ok := b.Selected(); ok {
		selectedID = item.ID
	}

	if err := b.apply(d, items); err != nil {
		b.rebuild(items)
		b.reselect(selectedID)
		return d, err
	}

	b.items = slices.Clone(items)
	b.reselect(selectedID)
	return d, nil
}

func (b *Bar) apply(d diff.Difference[Item], items []Item) error {
	for _, c := range d.All() {
		switch c.Kind {
		case diff.Remove:
			if c.Index < 0 || c.Index >= len(b.buttons) {
				return fmt.Errorf("%w: removing button %d of %d", ErrInconsistent, c.Index, len(b.buttons))
			}
			btn := b.buttons[c.Index]
			b.buttons = slices.Delete(b.buttons, c.Index, c.Index+1)
			b.observer.Removed(btn, c.Index)
		case diff.Insert:
			if c.Index < 0 || c.Index > len(b.buttons) {
				return fmt.Errorf("%w: inserting button at %d of %d", ErrInconsistent, c.Index, len(b.buttons))
			}
			btn := b.newButton(c.Elem)
			b.buttons = slices.Insert(b.buttons, c.Index, btn)
			b.observer.Inserted(btn, c.Index)
		}
	}

	if len(b.buttons) != len(items) {
		return fmt.Errorf("%w: %d buttons for %d items", ErrInconsistent, len(b.buttons), len(items))
	}
	for i, btn := range b.buttons {
		switch {
		case btn.item.Same(items[i]):
		case btn.item.Equal(items[i]):
			btn.item = items[i]
			b.observer.Updated(btn, i)
		default:
			return fmt.Errorf("%w: button %d shows %q instead of %q", ErrInconsistent, i, btn.item.ID, items[i].ID)
		}
	}
	return nil
}

func (b *Bar) rebuild(items []Item) {
	for i := len(b.buttons) - 1; i >= 0; i-- {
		b.observer.Removed(b.buttons[i], i)
	}
	b.buttons = b.buttons[:0]
	for i, item := range items {
		btn := b.newButton(item)
		b.buttons = append(b.buttons, btn)
		b.observer.Inserted(btn, i)
	}
	b.items = slices.Clone(items)
}

func (b *Bar) reselect(id string) {
	i := b.selected
	if id != "" {
		if j := slices.IndexFunc(b.items, func(item Item) bool { return item.ID == id }); j >= 0 {
			i = j
		}
	}
	b.selected = b.nearestEnabled(i)
}

// nearestEnabled returns the enabled item closest to i, preferring the right side on ties, or -1
// if no item is enabled.
func (b *Bar) nearestEnabled(i int) int {
	if len(b.items) == 0 {
		return -1
	}
	i = min(max(i, 0), len(b.items)-1)
	for d := range len(b.items) {
		if j := i + d; j < len(b.items) && b.items[j].Enabled {
			return j
		}
		if j := i - d; j >= 0 && b.items[j].Enabled {
			return j
		}
	}
	return -1
}

func (b *Bar) newButton(item Item) *Button {
	b.seq++
	return &Button{item: item, seq: b.seq}
}

// Event records a single step of an update.
type Event struct {
	Op     diff.Kind // diff.Insert or diff.Remove; Updated events use -1
	Index  int
	Button *Button
}

// Updated is the Op of events recorded for in-place updates.
const Updated diff.Kind = -1

// Recorder is an Observer that records every event.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Removed(b *Button, index int) {
	r.Events = append(r.Events, Event{diff.Remove, index, b})
}

func (r *Recorder) Inserted(b *Button, index int) {
	r.Events = append(r.Events, Event{diff.Insert, index, b})
}

func (r *Recorder) Updated(b *Button, index int) {
	r.Events = append(r.Events, Event{Updated, index, b})
}

// Reset discards all recorded events.
func (r *Recorder) Reset() { r.Events = r.Events[:0] }
