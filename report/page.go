package report

import (
	"bytes"
	"fmt"
	"html/template"

	"flo.znkr.io/tabdiff/highlight"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
td, th { padding: .2rem .6rem; border-bottom: 1px solid #ddd; }
.callout { border-left: 4px solid #888; padding: .2rem 1rem; margin: 1rem 0; }
.callout.added { border-color: #3fb950; }
.callout.removed { border-color: #f85149; }
.callout-title { font-weight: bold; }
.source { font-family: monospace; white-space: pre; border-collapse: collapse; }
.source td { border: none; padding: 0 .5rem; }
.source .ln { color: #888; text-align: right; user-select: none; }
.source .del { background: #ffebe9; }
.source .ins { background: #e6ffec; }
.hl-b { font-weight: bold; }
.hl-bl { color: #0550ae; }
.hl-i { font-style: italic; }
.hl-ii { font-style: italic; color: #6e7781; }
.hl-p { color: #6e7781; }
</style>
</head>
<body>
{{if .Contents}}<nav class="toc">{{.Contents}}</nav>{{end}}
<main>
{{.Body}}
</main>
{{if .Source}}<section class="source-diff">
<h2 id="source">Source</h2>
<table class="source">
{{range .Source}}<tr class="{{if .Removed}}del{{else if .Added}}ins{{end}}"><td class="ln">{{with .From}}{{.}}{{end}}</td><td class="ln">{{with .To}}{{.}}{{end}}</td><td>{{if .Removed}}-{{else if .Added}}+{{else}} {{end}}{{.HTML}}</td></tr>
{{end}}</table>
</section>{{end}}
</body>
</html>
`))

// HTML renders the report as a standalone HTML page, including a line diff of both layout sources.
func HTML(r *Report) ([]byte, error) {
	body, contents, err := Render(Markdown(r))
	if err != nil {
		return nil, err
	}

	var source []highlight.Line
	if len(r.From.Source) > 0 || len(r.To.Source) > 0 {
		source, err = highlight.Layouts(r.From, r.To)
		if err != nil {
			return nil, fmt.Errorf("highlighting sources: %v", err)
		}
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Title    string
		Contents template.HTML
		Body     template.HTML
		Source   []highlight.Line
	}{
		Title:    r.Title,
		Contents: template.HTML(contents),
		Body:     template.HTML(body),
		Source:   source,
	})
	if err != nil {
		return nil, fmt.Errorf("executing page template: %v", err)
	}
	return buf.Bytes(), nil
}
