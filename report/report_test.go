package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"flo.znkr.io/tabdiff/layout"
	"flo.znkr.io/tabdiff/tabbar"
	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, src string) *layout.Layout {
	t.Helper()
	l, err := layout.Parse([]byte(src), layout.Text)
	if err != nil {
		t.Fatalf("parsing layout: %v", err)
	}
	return l
}

func newReport(t *testing.T, from, to string) *Report {
	t.Helper()
	r, err := New(mustParse(t, from), mustParse(t, to), tabbar.Myers())
	if err != nil {
		t.Fatalf("New(...) failed: %v", err)
	}
	return r
}

const (
	before = "# Before\nhome = Home\nsearch = Search\ninbox = Inbox\nprofile = Profile\n"
	after  = "# After\nhome = Home\ninbox = Inbox\nsearch = Search\nprofile = Profile\nsettings = Settings !\n"
)

func TestMarkdown(t *testing.T) {
	r := newReport(t, before, after)
	got := string(Markdown(r))

	for _, want := range []string{
		"# After\n",
		"From *Before* (4 tabs) to *After* (5 tabs).",
		"$d = |R| + |I| = 1 + 2 = 3$",
		"REMOVED: Search\n",
		"ADDED: Search, Settings\n",
		"| 1 | `search` | Search |\n",
		"| 2 | `search` | Search |\n| 4 | `settings` | Settings |\n",
		"5. Settings (disabled)\n",
		"[^order]: ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Markdown() doesn't contain %q:\n%s", want, got)
		}
	}
}

func TestMarkdownNoChanges(t *testing.T) {
	r := newReport(t, before, before)
	got := string(Markdown(r))
	if !strings.Contains(got, "NOTE: Both layouts show the same tabs in the same order.") {
		t.Errorf("Markdown() lacks the note:\n%s", got)
	}
	for _, unwanted := range []string{"## Removals", "## Insertions", "[^order]"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("Markdown() contains %q:\n%s", unwanted, got)
		}
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Home", "Home"},
		{"a|b", `a\|b`},
		{"*bold*", `\*bold\*`},
		{"$5", `\$5`},
		{"<b>", `\<b\>`},
	}
	for _, tt := range tests {
		if got := escape(tt.in); got != tt.want {
			t.Errorf("escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHTML(t *testing.T) {
	r := newReport(t, before, after)
	page, err := HTML(r)
	if err != nil {
		t.Fatalf("HTML(...) failed: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}

	if got := doc.Find("title").Text(); got != "After" {
		t.Errorf("title = %q, want %q", got, "After")
	}
	if got := doc.Find("main h1").Text(); got != "After" {
		t.Errorf("h1 = %q, want %q", got, "After")
	}

	var headings []string
	doc.Find("nav.toc a").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, s.Text())
	})
	want := []string{"Summary", "Removals", "Insertions", "Final order"}
	if diff := cmp.Diff(want, headings); diff != "" {
		t.Errorf("table of contents diff (-want, +got):\n%s", diff)
	}

	if got := strings.TrimSpace(doc.Find(".callout.removed").Text()); got != "RemovedSearch" {
		t.Errorf("removed callout = %q", got)
	}
	if n := doc.Find(".callout.added").Length(); n != 1 {
		t.Errorf("found %d added callouts, want 1", n)
	}
	if n := doc.Find("main table tbody tr").Length(); n != 3 {
		t.Errorf("found %d change rows, want 3", n)
	}
	if n := doc.Find("main math").Length(); n != 1 {
		t.Errorf("found %d formulas, want 1", n)
	}
	if n := doc.Find(".footnotes li").Length(); n != 1 {
		t.Errorf("found %d footnotes, want 1", n)
	}
	if n := doc.Find("main ol li").Length(); n < 5 {
		t.Errorf("final order has %d entries, want 5", n)
	}

	if n := doc.Find(".source tr.del").Length(); n != 2 {
		t.Errorf("source diff has %d deleted lines, want 2", n)
	}
	if n := doc.Find(".source tr.ins").Length(); n != 3 {
		t.Errorf("source diff has %d inserted lines, want 3", n)
	}
}

func TestJSON(t *testing.T) {
	r := newReport(t, before, after)
	data, err := JSON(r)
	if err != nil {
		t.Fatalf("JSON(...) failed: %v", err)
	}

	var got struct {
		Title    string
		Distance int
		Changes  []struct {
			Op    string
			Index int
			Item  tabbar.Item
		}
		Items []tabbar.Item
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.Title != "After" || got.Distance != 3 || len(got.Items) != 5 {
		t.Errorf("JSON(...) = %s", data)
	}
	var ops []string
	for _, c := range got.Changes {
		ops = append(ops, c.Op+":"+c.Item.ID)
	}
	want := []string{"remove:search", "insert:search", "insert:settings"}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("JSON(...) changes diff (-want, +got):\n%s", diff)
	}
}
