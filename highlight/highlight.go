// Package highlight renders the sources of two layouts as a syntax highlighted line diff.
package highlight

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"flo.znkr.io/tabdiff/layout"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"znkr.io/diff"
	"znkr.io/diff/textdiff"
)

// Line is a single line of a source diff. From and To are 1-based line numbers in the old and the
// new source, 0 if the line doesn't exist on that side.
type Line struct {
	Op   diff.Op
	From int
	To   int
	HTML template.HTML
}

func (l Line) Removed() bool { return l.Op == diff.Delete }
func (l Line) Added() bool   { return l.Op == diff.Insert }

// Layouts diffs the sources of two layouts. Lines are highlighted as the layouts' format if both
// agree on one and left plain otherwise.
func Layouts(from, to *layout.Layout) ([]Line, error) {
	var f layout.Format
	if from.Format == to.Format {
		f = to.Format
	}
	return Diff(string(from.Source), string(to.Source), f)
}

// Diff computes a line diff between a and b and highlights every line as f.
func Diff(a, b string, f layout.Format) ([]Line, error) {
	lexer := lexerFor(f)

	edits := textdiff.Edits(a, b, textdiff.IndentHeuristic())
	out := make([]Line, 0, len(edits))
	var from, to int
	for _, e := range edits {
		l := Line{Op: e.Op}
		switch e.Op {
		case diff.Match:
			from++
			to++
			l.From, l.To = from, to
		case diff.Delete:
			from++
			l.From = from
		case diff.Insert:
			to++
			l.To = to
		}
		h, err := render(lexer, e.Line)
		if err != nil {
			return nil, err
		}
		l.HTML = h
		out = append(out, l)
	}
	return out, nil
}

func lexerFor(f layout.Format) chroma.Lexer {
	var l chroma.Lexer
	switch f {
	case layout.YAML, layout.TOML, layout.JSON:
		l = lexers.Get(string(f))
	case layout.Text:
		// The header of a text layout is markdown.
		l = lexers.Get("markdown")
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

func render(lexer chroma.Lexer, line string) (template.HTML, error) {
	it, err := lexer.Tokenise(nil, line)
	if err != nil {
		return "", fmt.Errorf("tokenizing %q: %v", line, err)
	}
	var sb strings.Builder
	for _, tok := range it.Tokens() {
		// Line breaks are implied by the surrounding markup.
		value := strings.TrimSuffix(tok.Value, "\n")
		if value == "" {
			continue
		}
		value = html.EscapeString(value)
		if c := class(tok.Type); c != "" {
			fmt.Fprintf(&sb, `<span class="%s">%s</span>`, c, value)
		} else {
			sb.WriteString(value)
		}
	}
	return template.HTML(sb.String()), nil
}

// class maps a token type to one of the report page's highlight classes.
func class(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Comment):
		return "hl-ii"
	case t == chroma.KeywordConstant, t.InSubCategory(chroma.LiteralNumber):
		return "hl-bl"
	case t.InSubCategory(chroma.LiteralString):
		return "hl-i"
	case t.InCategory(chroma.Keyword), t == chroma.NameTag, t == chroma.NameAttribute,
		t == chroma.GenericHeading, t == chroma.GenericSubheading:
		return "hl-b"
	case t.InCategory(chroma.Punctuation):
		return "hl-p"
	}
	return ""
}
