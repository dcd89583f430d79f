package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/klauspost/readahead"

	"github.com/ardnew/stencil/expr"
	"github.com/ardnew/stencil/log"
	"github.com/ardnew/stencil/markup"
)

// Markup output formats.
const (
	outputTree   = "tree"
	outputMarkup = "markup"
	outputTokens = "tokens"
)

// Markup parses markup and prints the resulting tree.
type Markup struct {
	Comments bool     `help:"Keep comment nodes in the tree" short:"c"`
	RawText  []string `default:"${rawText}" help:"Elements whose content is read verbatim" placeholder:"NAME"`
	Output   string   `default:"tree" enum:"tree,json,yaml,markup,tokens" help:"Output format (${enum})" short:"o"`
	Select   string   `help:"Print only elements for which EXPR is truthy" placeholder:"EXPR"`

	Files []string `arg:"" default:"-" help:"Markup file(s) to parse, or '-' for stdin" name:"file" optional:""`
}

// Run executes the markup command.
func (m *Markup) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if m.Output == outputTokens && m.Select != "" {
		return ErrFlagConflict.With(
			slog.String("output", m.Output),
			slog.String("select", m.Select),
		)
	}

	files := m.Files
	if len(files) == 0 {
		files = []string{stdinSource}
	}

	src, err := openSources(ctx, files...)
	if err != nil {
		return err
	}
	defer src.Close()

	opts := []markup.Option{
		markup.WithComments(m.Comments),
		markup.WithRawText(m.RawText...),
		markup.WithLogger(log.Default()),
	}

	out := stdioFrom(ctx).out

	if m.Output == outputTokens {
		return writeTokens(out, src, opts...)
	}

	tree, err := markup.ParseReader(ctx, src, opts...)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "markup parsed",
		slog.Any("files", src.Names()),
		slog.Int("nodes", tree.Len()),
	)

	ids := tree.Roots()

	if m.Select != "" {
		if ids, err = selectNodes(ctx, tree, m.Select); err != nil {
			return err
		}
	}

	return m.write(out, tree, ids)
}

func (m *Markup) write(w io.Writer, tree *markup.Tree, ids []markup.NodeID) error {
	switch m.Output {
	case outputJSON, outputYAML:
		docs := make([]markup.Doc, 0, len(ids))
		for _, id := range ids {
			docs = append(docs, tree.Doc(id))
		}

		return encode(w, m.Output, docs)

	case outputMarkup:
		if m.Select == "" {
			_, err := tree.WriteTo(w)

			return err
		}

		for _, id := range ids {
			if _, err := fmt.Fprintln(w, tree.Markup(id)); err != nil {
				return err
			}
		}

		return nil

	default:
		o := newOutline(w)
		for _, id := range ids {
			if err := o.write(tree, id, 0); err != nil {
				return err
			}
		}

		return nil
	}
}

// selectNodes returns the elements of tree, in document order, for which
// the selector evaluates truthy.
func selectNodes(ctx context.Context, tree *markup.Tree, selector string) ([]markup.NodeID, error) {
	prog, err := expr.Compile(selector, expr.WithLogger(log.Default()))
	if err != nil {
		return nil, ErrSelect.Wrap(err).With(slog.String("select", selector))
	}

	var ids []markup.NodeID

	for id, n := range tree.Find(func(n *markup.Node) bool { return n.Kind == markup.Element }) {
		v, err := prog.Evaluate(nodeData(tree, id, n), nil)
		if err != nil {
			return nil, ErrSelect.Wrap(err).With(
				slog.String("select", selector),
				slog.String("node", n.Name),
			)
		}

		if expr.Truthy(v) {
			ids = append(ids, id)
		}
	}

	log.DebugContext(ctx, "nodes selected",
		slog.String("select", selector),
		slog.Int("count", len(ids)),
	)

	return ids, nil
}

// nodeData is the target a selector is evaluated against.
func nodeData(tree *markup.Tree, id markup.NodeID, n *markup.Node) map[string]any {
	return map[string]any{
		"name":     n.Name,
		"kind":     n.Kind.String(),
		"close":    n.Close.String(),
		"depth":    n.Depth,
		"content":  n.Content,
		"text":     tree.Text(id),
		"attrs":    n.Attrs.Map(),
		"children": len(n.Children),
	}
}

// writeTokens prints one token per line: offset, kind, text and any
// attributes.
func writeTokens(w io.Writer, r io.Reader, opts ...markup.Option) error {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return ErrReadInput.Wrap(err)
	}

	for tok := range markup.NewLexer(string(data), opts...).All() {
		line := fmt.Sprintf("%d\t%s\t%s", tok.Offset, tok.Kind, strconv.Quote(tok.Text))
		for k, v := range tok.Attrs.All() {
			line += "\t" + k + "=" + strconv.Quote(v)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// outline renders a tree as an indented listing, one node per line.
type outline struct {
	w                               io.Writer
	tag, key, value, text, comment lipgloss.Style
}

func newOutline(w io.Writer) outline {
	r := lipgloss.NewRenderer(w)

	return outline{
		w:       w,
		tag:     r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		key:     r.NewStyle().Foreground(lipgloss.Color("6")),
		value:   r.NewStyle().Foreground(lipgloss.Color("2")),
		text:    r.NewStyle(),
		comment: r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}

const outlineIndent = "  "

func (o outline) write(tree *markup.Tree, id markup.NodeID, level int) error {
	n := tree.Node(id)
	if n == nil {
		return nil
	}

	var sb strings.Builder

	sb.WriteString(strings.Repeat(outlineIndent, level))

	switch n.Kind {
	case markup.Element:
		sb.WriteString(o.tag.Render(n.Name))

		for k, v := range n.Attrs.All() {
			sb.WriteString(" " + o.key.Render(k))

			if v != "" {
				sb.WriteString("=" + o.value.Render(strconv.Quote(v)))
			}
		}

		if n.Close == markup.SelfClosing {
			sb.WriteString(" /")
		}

	case markup.TextNode:
		sb.WriteString(o.text.Render(strconv.Quote(n.Content)))

	case markup.CommentNode:
		sb.WriteString(o.comment.Render("<!--" + n.Content + "-->"))
	}

	if _, err := fmt.Fprintln(o.w, sb.String()); err != nil {
		return err
	}

	for c := range tree.Children(id) {
		if err := o.write(tree, c, level+1); err != nil {
			return err
		}
	}

	return nil
}
