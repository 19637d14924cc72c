// Package tabbar implements a tab bar that keeps a list of buttons in sync with a list of tab
// items by applying the minimal difference between the old and the new items.
package tabbar

import (
	"fmt"

	"flo.znkr.io/tabdiff/diff"
	"flo.znkr.io/tabdiff/diff/znkrdiff"
)

// Item is a single tab.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Icon      string `json:"icon,omitempty"`
	Enabled   bool   `json:"enabled"`
	Indicator bool   `json:"indicator,omitempty"` // notification indicator next to the icon
}

// Equal reports whether a and b are the same tab. Tabs are identified by their ID alone; a tab
// whose title changed is still the same tab.
func (a Item) Equal(b Item) bool { return a.ID == b.ID }

// Same reports whether a and b are identical in every attribute.
func (a Item) Same(b Item) bool { return a == b }

func (a Item) String() string {
	if a.Title == "" {
		return a.ID
	}
	return a.Title
}

// Engine computes the difference between two item lists.
type Engine func(from, to []Item) (diff.Difference[Item], error)

// Myers returns the engine backed by the diff package.
func Myers(opts ...diff.Option) Engine {
	return func(from, to []Item) (diff.Difference[Item], error) {
		return diff.ComputeFunc(from, to, Item.Equal, opts...)
	}
}

// Znkr returns the engine backed by znkr.io/diff.
func Znkr() Engine {
	return func(from, to []Item) (diff.Difference[Item], error) {
		return znkrdiff.ComputeFunc(from, to, Item.Equal), nil
	}
}

// EngineByName resolves an engine name as used in configuration files: "myers" (or "") and
// "znkr".
func EngineByName(name string, opts ...diff.Option) (Engine, error) {
	switch name {
	case "", "myers":
		return Myers(opts...), nil
	case "znkr":
		return Znkr(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}
