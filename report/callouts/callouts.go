// Package callouts is a goldmark extension that renders paragraphs starting with "NOTE: ",
// "ADDED: " or "REMOVED: " as highlighted boxes.
package callouts

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Label is the kind of a callout.
type Label int

const (
	Note Label = iota
	Added
	Removed
)

var labels = [...]struct {
	prefix string // marker at the start of the paragraph
	class  string
	title  string
}{
	Note:    {"NOTE: ", "note", "Note"},
	Added:   {"ADDED: ", "added", "Added"},
	Removed: {"REMOVED: ", "removed", "Removed"},
}

func (l Label) String() string {
	if l < 0 || int(l) >= len(labels) {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labels[l].title
}

// Node is a callout block. Its children are the paragraph without the marker.
type Node struct {
	ast.BaseBlock
	Label Label
}

var KindCallout = ast.NewNodeKind("Callout")

func (n *Node) Kind() ast.NodeKind { return KindCallout }

func (n *Node) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Label": n.Label.String()}, nil)
}

// Extension registers the callout parser and renderer.
var Extension goldmark.Extender = extension{}

type extension struct{}

func (extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(util.Prioritized(blockParser{}, 999)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(nodeRenderer{}, 500)))
}

type blockParser struct{}

var _ parser.BlockParser = blockParser{}

func (blockParser) Trigger() []byte {
	var t []byte
	for _, l := range labels {
		t = append(t, l.prefix[0])
	}
	return t
}

func (blockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 {
		return nil, parser.NoChildren
	}
	for i, l := range labels {
		if bytes.HasPrefix(line[pos:], []byte(l.prefix)) {
			reader.Advance(pos + len(l.prefix))
			return &Node{Label: Label(i)}, parser.HasChildren
		}
	}
	return nil, parser.NoChildren
}

// Continue keeps the callout open until the paragraph ends.
func (blockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, _ := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Close
	}
	reader.Advance(reader.LineOffset())
	return parser.Continue | parser.HasChildren
}

func (blockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}
func (blockParser) CanInterruptParagraph() bool                                { return false }
func (blockParser) CanAcceptIndentedLine() bool                                { return false }

type nodeRenderer struct{}

var _ renderer.NodeRenderer = nodeRenderer{}

func (r nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCallout, r.render)
}

func (nodeRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Node)
	if n.Label < 0 || int(n.Label) >= len(labels) {
		return ast.WalkStop, fmt.Errorf("unknown callout label: %v", n.Label)
	}
	if !entering {
		w.WriteString("</div>\n")
		return ast.WalkContinue, nil
	}
	l := labels[n.Label]
	fmt.Fprintf(w, `<div class="callout %s"><p class="callout-title">%s</p>`, l.class, l.title)
	return ast.WalkContinue, nil
}
