package report

import (
	"encoding/xml"
	"fmt"
	"slices"
	"time"

	"golang.org/x/tools/blog/atom"
)

// History keeps the most recent reports, newest first.
type History struct {
	max     int
	entries []entry
}

type entry struct {
	report *Report
	time   time.Time
	body   []byte
}

// NewHistory creates a history keeping at most max reports.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add renders r and adds it as the newest report.
func (h *History) Add(r *Report, t time.Time) error {
	body, _, err := Render(Markdown(r))
	if err != nil {
		return err
	}
	h.entries = slices.Insert(h.entries, 0, entry{r, t, body})
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
	return nil
}

// Len returns the number of reports kept.
func (h *History) Len() int { return len(h.entries) }

// Feed renders the history as Atom feed. base is the URL the site is served at.
func (h *History) Feed(base string) ([]byte, error) {
	feed := atom.Feed{
		Title: "Layout changes",
		ID:    "tag:flo.znkr.io,2025:tabdiff",
		Link: []atom.Link{{
			Rel:  "self",
			Href: base + "/feed.atom",
		}},
	}
	if len(h.entries) > 0 {
		feed.Updated = atom.Time(h.entries[0].time)
	}

	for _, e := range h.entries {
		r := e.report
		feed.Entry = append(feed.Entry, &atom.Entry{
			Title: fmt.Sprintf("%s: %d changes", r.Title, r.Difference.Len()),
			ID:    fmt.Sprintf("%s/%d", feed.ID, e.time.UnixNano()),
			Link: []atom.Link{{
				Rel:  "alternate",
				Href: base + "/",
			}},
			Published: atom.Time(e.time),
			Updated:   atom.Time(e.time),
			Summary: &atom.Text{
				Type: "text",
				Body: r.Difference.String(),
			},
			Content: &atom.Text{
				Type: "html",
				Body: string(e.body),
			},
		})
	}

	b, err := xml.Marshal(feed)
	if err != nil {
		return nil, fmt.Errorf("encoding feed: %v", err)
	}
	return b, nil
}
