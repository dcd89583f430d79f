package markup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"
)

// Parse parses markup into a [Tree].
//
// The input must be textual: a string, a []byte, an [io.Reader] or a
// [fmt.Stringer]. Any other value fails with [ErrTemplateType] before
// lexing begins. Structurally malformed markup is never an error: unmatched
// open tags are closed implicitly and truncated constructs end at the end
// of input.
func Parse(ctx context.Context, input any, opts ...Option) (*Tree, error) {
	switch v := input.(type) {
	case string:
		return ParseString(ctx, v, opts...)

	case []byte:
		return ParseString(ctx, string(v), opts...)

	case io.Reader:
		return ParseReader(ctx, v, opts...)

	case fmt.Stringer:
		return ParseString(ctx, v.String(), opts...)

	default:
		return nil, ErrTemplateType.
			With(slog.String("type", fmt.Sprintf("%T", input)))
	}
}

// ParseReader reads all of r and parses it as markup.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Tree, error) {
	// Wrap reader with async read-ahead so reading overlaps with the
	// consumer's I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses markup held in a string.
func ParseString(ctx context.Context, s string, opts ...Option) (*Tree, error) {
	cfg := makeConfig(opts...)

	toks := filter(Tokens(s, opts...), cfg.comments)

	toks, closed := autoClose(toks)

	tree := assemble(toks)

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(s)),
		slog.Int("tokens", len(toks)),
		slog.Int("auto_closed", closed),
		slog.Int("nodes", tree.Len()),
	)

	return tree, nil
}

// filter drops doctypes, whitespace-only text and, unless keepComments is
// set, comments.
func filter(toks []Token, keepComments bool) []Token {
	out := toks[:0:0]

	for _, tok := range toks {
		switch {
		case tok.Kind == Doctype:
		case tok.Kind == Comment && !keepComments:
		case tok.Kind == Text && strings.Trim(tok.Text, blanks) == "":
		default:
			out = append(out, tok)
		}
	}

	return out
}

// autoClose repairs unbalanced markup in two passes.
//
// The first pass matches end tags against a stack of open tags. Every open
// tag popped on the way to its match never had an end tag of its own; an end
// tag that matches nothing is stray. The second pass rewrites the former to
// SelfCloseTag and drops the latter. It returns the repaired tokens and the
// number of tags rewritten.
func autoClose(toks []Token) ([]Token, int) {
	type open struct {
		name  string
		index int
	}

	var (
		stack     []open
		unmatched = make(map[int]struct{})
		stray     = make(map[int]struct{})
	)

	for i, tok := range toks {
		switch tok.Kind {
		case BeginTag:
			stack = append(stack, open{name: tok.Text, index: i})

		case EndTag:
			matched := false

			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if top.name == tok.Text {
					matched = true

					break
				}

				unmatched[top.index] = struct{}{}
			}

			if !matched {
				stray[i] = struct{}{}
			}
		}
	}

	out := make([]Token, 0, len(toks)-len(stray))

	for i, tok := range toks {
		if _, ok := stray[i]; ok {
			continue
		}

		if _, ok := unmatched[i]; ok {
			tok.Kind = SelfCloseTag
		}

		out = append(out, tok)
	}

	return out, len(unmatched)
}

// assemble builds the tree from balanced tokens in a single forward pass.
func assemble(toks []Token) *Tree {
	tree := &Tree{Nodes: make([]Node, 0, len(toks))}

	var (
		last  []NodeID
		depth int
	)

	for _, tok := range toks {
		var n Node

		switch tok.Kind {
		case BeginTag:
			depth++
			n = element(tok, depth, Paired)

		case EndTag:
			depth--

			continue

		case SelfCloseTag:
			n = element(tok, depth+1, SelfClosing)

		case Text:
			n = Node{Kind: TextNode, Content: tok.Text, Depth: depth + 1}

		case Comment:
			n = Node{Kind: CommentNode, Content: tok.Text, Depth: depth + 1}

		default:
			continue
		}

		last = tree.link(n, last)
	}

	return tree
}

func element(tok Token, depth int, style CloseStyle) Node {
	attrs := tok.Attrs
	if attrs == nil {
		attrs = NewAttrs()
	}

	return Node{
		Kind:  Element,
		Name:  tok.Text,
		Attrs: attrs,
		Depth: depth,
		Close: style,
	}
}
