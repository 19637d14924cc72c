package report

import (
	"bytes"
	"fmt"

	"flo.znkr.io/tabdiff/report/callouts"
	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Footnote,
		extension.Table,
		callouts.Extension,
		treeblood.MathML(),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Render converts Markdown to HTML. It also returns the table of contents of all headings below
// the title, rendered as a nested list, or nil if there are none.
func Render(data []byte) (body, contents []byte, err error) {
	root := md.Parser().Parse(text.NewReader(data))

	tree, err := toc.Inspect(root, data, toc.MinDepth(2))
	if err != nil {
		return nil, nil, fmt.Errorf("building table of contents: %v", err)
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, data, root); err != nil {
		return nil, nil, fmt.Errorf("rendering markdown: %v", err)
	}
	body = bytes.Clone(buf.Bytes())

	if list := toc.RenderList(tree); list != nil {
		buf.Reset()
		if err := md.Renderer().Render(&buf, data, list); err != nil {
			return nil, nil, fmt.Errorf("rendering table of contents: %v", err)
		}
		contents = bytes.Clone(buf.Bytes())
	}
	return body, contents, nil
}
