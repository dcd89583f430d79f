package markup

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

// checkLinks verifies the structural invariants of every node in tree.
func checkLinks(t *testing.T, tree *Tree) {
	t.Helper()

	for id, n := range tree.Walk() {
		if n.Prev != NoNode {
			p := tree.Node(n.Prev)
			if p.Next != id {
				t.Errorf("node %d: prev %d does not link back (next=%d)", id, n.Prev, p.Next)
			}

			if p.Depth != n.Depth || p.Parent != n.Parent {
				t.Errorf("node %d: prev %d is not a sibling", id, n.Prev)
			}
		}

		if n.Next != NoNode {
			if q := tree.Node(n.Next); q.Prev != id {
				t.Errorf("node %d: next %d does not link back (prev=%d)", id, n.Next, q.Prev)
			}
		}

		if n.Parent == NoNode {
			if n.Depth != 1 {
				t.Errorf("node %d: root at depth %d", id, n.Depth)
			}

			if !slices.Contains(tree.Roots(), id) {
				t.Errorf("node %d: root missing from Roots", id)
			}

			continue
		}

		parent := tree.Node(n.Parent)
		if parent.Depth != n.Depth-1 {
			t.Errorf("node %d: depth %d under parent depth %d", id, n.Depth, parent.Depth)
		}

		count := 0
		for _, c := range parent.Children {
			if c == id {
				count++
			}
		}

		if count != 1 {
			t.Errorf("node %d: appears %d times among parent's children", id, count)
		}

		if !slices.IsSorted(parent.Children) {
			t.Errorf("node %d: parent's children out of document order", n.Parent)
		}
	}
}

func mustParse(t *testing.T, input string, opts ...Option) *Tree {
	t.Helper()

	tree, err := ParseString(t.Context(), input, opts...)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", input, err)
	}

	checkLinks(t, tree)

	return tree
}

func TestParse_AutoClose(t *testing.T) {
	tree := mustParse(t, "<a><b><c>x</a>")

	if tree.Len() != 4 {
		t.Fatalf("expected 4 nodes, got %d", tree.Len())
	}

	a, b, c, x := tree.Node(0), tree.Node(1), tree.Node(2), tree.Node(3)

	if a.Name != "a" || a.Close != Paired {
		t.Errorf("a: got name %q close %v", a.Name, a.Close)
	}

	if b.Name != "b" || b.Close != SelfClosing {
		t.Errorf("b: got name %q close %v", b.Name, b.Close)
	}

	if c.Name != "c" || c.Close != SelfClosing {
		t.Errorf("c: got name %q close %v", c.Name, c.Close)
	}

	if len(b.Children) != 0 || len(c.Children) != 0 {
		t.Error("self-closing elements must not have children")
	}

	if x.Kind != TextNode || x.Content != "x" {
		t.Errorf("x: got %v %q", x.Kind, x.Content)
	}

	// Implicitly closed elements do not nest, so b, c and x are siblings
	// beneath a.
	if want := []NodeID{1, 2, 3}; !slices.Equal(a.Children, want) {
		t.Errorf("a.Children = %v, want %v", a.Children, want)
	}

	if b.Next != 2 || c.Prev != 1 || c.Next != 3 || x.Prev != 2 {
		t.Error("sibling chain b -> c -> x is broken")
	}
}

func TestParse_RawText(t *testing.T) {
	tree := mustParse(t, "<script>if (a < b) {}</script>")

	if tree.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", tree.Len())
	}

	if got := tree.Text(0); got != "if (a < b) {}" {
		t.Errorf("script text = %q", got)
	}
}

func TestParse_Structure(t *testing.T) {
	tree := mustParse(t, `<!DOCTYPE html>
<html lang="en">
  <head><title>T</title></head>
  <body>
    <p class="x">one<br/>two</p>
    <p>three</p>
  </body>
</html>`)

	html := tree.Node(tree.Roots()[0])
	if html.Name != "html" || len(tree.Roots()) != 1 {
		t.Fatalf("unexpected roots %v", tree.Roots())
	}

	if lang, _ := html.Attrs.Get("lang"); lang != "en" {
		t.Errorf("lang = %q", lang)
	}

	var names []string
	for _, n := range tree.Children(tree.Roots()[0]) {
		names = append(names, n.Name)
	}

	if want := []string{"head", "body"}; !slices.Equal(names, want) {
		t.Errorf("html children = %v, want %v", names, want)
	}

	var ps []NodeID
	for id := range tree.Find(func(n *Node) bool { return n.Name == "p" }) {
		ps = append(ps, id)
	}

	if len(ps) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(ps))
	}

	if tree.Node(ps[0]).Next != ps[1] {
		t.Error("paragraphs should be adjacent siblings")
	}

	if got := tree.Text(ps[0]); got != "onetwo" {
		t.Errorf("first paragraph text = %q", got)
	}

	if d := tree.Node(ps[0]).Depth; d != 3 {
		t.Errorf("paragraph depth = %d, want 3", d)
	}
}

func TestParse_Comments(t *testing.T) {
	const input = "<a><!-- c -->x</a>"

	if tree := mustParse(t, input); tree.Len() != 2 {
		t.Errorf("comments dropped by default: got %d nodes", tree.Len())
	}

	tree := mustParse(t, input, WithComments(true))
	if tree.Len() != 3 {
		t.Fatalf("expected comment retained, got %d nodes", tree.Len())
	}

	if n := tree.Node(1); n.Kind != CommentNode || n.Content != " c " || n.Parent != 0 {
		t.Errorf("unexpected comment node %+v", n)
	}
}

func TestParse_Repairs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		roots []string
		count int
	}{
		{"stray end tag", "<a></b></a><c/>", []string{"a", "c"}, 2},
		{"unclosed at end", "<a><b>x", []string{"a"}, 3},
		{"stray end tag only", "</x>text", []string{""}, 1},
		{"mismatch closes all", "<a><b></c><d/>", []string{"a", "b", "d"}, 3},
		{"whitespace text dropped", "<a> </a>\n<b>\t</b>", []string{"a", "b"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.input)

			if tree.Len() != tt.count {
				t.Errorf("expected %d nodes, got %d", tt.count, tree.Len())
			}

			var roots []string
			for _, id := range tree.Roots() {
				roots = append(roots, tree.Node(id).Name)
			}

			if !slices.Equal(roots, tt.roots) {
				t.Errorf("roots = %v, want %v", roots, tt.roots)
			}
		})
	}
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestParse_InputTypes(t *testing.T) {
	const src = "<a>x</a>"

	inputs := map[string]any{
		"string":   src,
		"bytes":    []byte(src),
		"reader":   strings.NewReader(src),
		"buffer":   bytes.NewBufferString(src),
		"stringer": stringer(src),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			tree, err := Parse(t.Context(), input)
			if err != nil {
				t.Fatal(err)
			}

			if tree.Len() != 2 {
				t.Errorf("expected 2 nodes, got %d", tree.Len())
			}
		})
	}
}

func TestParse_TemplateType(t *testing.T) {
	for _, input := range []any{nil, 42, map[string]any{}, []string{"<a/>"}} {
		_, err := Parse(t.Context(), input)
		if !errors.Is(err, ErrTemplateType) {
			t.Errorf("Parse(%T): expected ErrTemplateType, got %v", input, err)
		}
	}
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseReader_Error(t *testing.T) {
	_, err := ParseReader(t.Context(), failReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

func TestTree_Navigation(t *testing.T) {
	tree := mustParse(t, "<ul><li>1</li><li>2</li><li>3</li></ul>")

	if p := tree.Parent(1); p == nil || p.Name != "ul" {
		t.Errorf("Parent(1) = %v", p)
	}

	if tree.Parent(0) != nil {
		t.Error("root has a parent")
	}

	var texts []string
	for id := range tree.Siblings(1) {
		texts = append(texts, tree.Text(id))
	}

	if want := []string{"2", "3"}; !slices.Equal(texts, want) {
		t.Errorf("siblings text = %v, want %v", texts, want)
	}

	if tree.Node(-1) != nil || tree.Node(NodeID(tree.Len())) != nil {
		t.Error("out of range ids must return nil")
	}
}

func BenchmarkParseString(b *testing.B) {
	src := strings.Repeat(`<div class="row"><p>text <b>bold</b><br></p><script>if (a < b) {}</script></div>`, 64)

	for b.Loop() {
		if _, err := ParseString(b.Context(), src); err != nil {
			b.Fatal(err)
		}
	}
}
