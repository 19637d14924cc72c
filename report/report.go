// Package report describes the difference between two tab layouts as Markdown, HTML and JSON.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"flo.znkr.io/tabdiff/diff"
	"flo.znkr.io/tabdiff/layout"
	"flo.znkr.io/tabdiff/tabbar"
)

// Report is the difference between two layouts.
type Report struct {
	Title      string
	From, To   *layout.Layout
	Difference diff.Difference[tabbar.Item]
}

// New computes the difference between from and to with engine.
func New(from, to *layout.Layout, engine tabbar.Engine) (*Report, error) {
	d, err := engine(from.Items, to.Items)
	if err != nil {
		return nil, fmt.Errorf("diffing %q and %q: %w", from.Title, to.Title, err)
	}
	return &Report{
		Title:      to.Title,
		From:       from,
		To:         to,
		Difference: d,
	}, nil
}

// Markdown renders the report as Markdown. Apart from CommonMark, it uses tables, footnotes,
// inline math and callouts.
func Markdown(r *Report) []byte {
	var buf bytes.Buffer
	w := func(format string, args ...any) { fmt.Fprintf(&buf, format, args...) }

	removals, insertions := r.Difference.Removals(), r.Difference.Insertions()

	w("# %s\n\n", escape(r.Title))
	w("From *%s* (%d tabs) to *%s* (%d tabs).\n\n", escape(r.From.Title), len(r.From.Items), escape(r.To.Title), len(r.To.Items))

	w("## Summary\n\n")
	if !r.Difference.HasChanges() {
		w("NOTE: Both layouts show the same tabs in the same order.\n\n")
	} else {
		w("The edit distance is $d = |R| + |I| = %d + %d = %d$.\n\n", len(removals), len(insertions), r.Difference.Len())
		if len(removals) > 0 {
			w("REMOVED: %s\n\n", titles(removals))
		}
		if len(insertions) > 0 {
			w("ADDED: %s\n\n", titles(insertions))
		}
	}

	if len(removals) > 0 {
		w("## Removals\n\n")
		w("Removals are listed in the order they are applied[^order].\n\n")
		changeTable(&buf, removals)
	}
	if len(insertions) > 0 {
		w("## Insertions\n\n")
		w("Insertions follow all removals[^order].\n\n")
		changeTable(&buf, insertions)
	}

	w("## Final order\n\n")
	if len(r.To.Items) == 0 {
		w("The layout has no tabs.\n\n")
	}
	for i, item := range r.To.Items {
		w("%d. %s", i+1, escape(item.String()))
		if !item.Enabled {
			w(" (disabled)")
		}
		w("\n")
	}

	if r.Difference.HasChanges() {
		w("\n[^order]: Removal indices refer to the original layout and are applied from the highest index down. ")
		w("Insertion indices refer to the final layout and are applied from the lowest index up.\n")
	}
	return buf.Bytes()
}

func changeTable(buf *bytes.Buffer, changes []diff.Change[tabbar.Item]) {
	buf.WriteString("| Index | ID | Title |\n| ---: | --- | --- |\n")
	for _, c := range changes {
		fmt.Fprintf(buf, "| %d | `%s` | %s |\n", c.Index, strings.ReplaceAll(c.Elem.ID, "`", "'"), escape(c.Elem.String()))
	}
	buf.WriteString("\n")
}

func titles(changes []diff.Change[tabbar.Item]) string {
	names := make([]string, 0, len(changes))
	for _, c := range changes {
		names = append(names, escape(c.Elem.String()))
	}
	return strings.Join(names, ", ")
}

var escaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "|", `\|`, "$", `\$`, "#", `\#`, "!", `\!`,
)

func escape(s string) string { return escaper.Replace(s) }

type jsonChange struct {
	Op    string      `json:"op"`
	Index int         `json:"index"`
	Item  tabbar.Item `json:"item"`
}

type jsonReport struct {
	Title    string        `json:"title"`
	From     string        `json:"from"`
	To       string        `json:"to"`
	Distance int           `json:"distance"`
	Changes  []jsonChange  `json:"changes"`
	Items    []tabbar.Item `json:"items"`
}

// JSON encodes the report. Changes are listed in the order they are applied.
func JSON(r *Report) ([]byte, error) {
	out := jsonReport{
		Title:    r.Title,
		From:     r.From.Title,
		To:       r.To.Title,
		Distance: r.Difference.Len(),
		Changes:  make([]jsonChange, 0, r.Difference.Len()),
		Items:    r.To.Items,
	}
	if out.Items == nil {
		out.Items = []tabbar.Item{}
	}
	for _, c := range r.Difference.All() {
		out.Changes = append(out.Changes, jsonChange{strings.ToLower(c.Kind.String()), c.Index, c.Elem})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %v", err)
	}
	return append(data, '\n'), nil
}
