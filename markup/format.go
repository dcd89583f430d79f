package markup

import (
	"io"
	"strings"
)

// Doc is the nested, serializable form of a node and its descendants.
type Doc struct {
	Attrs    *Attrs `json:"attrs,omitempty"    yaml:"attrs,omitempty"`
	Kind     string `json:"kind"               yaml:"kind"`
	Name     string `json:"name,omitempty"     yaml:"name,omitempty"`
	Content  string `json:"content,omitempty"  yaml:"content,omitempty"`
	Close    string `json:"close,omitempty"    yaml:"close,omitempty"`
	Children []Doc  `json:"children,omitempty" yaml:"children,omitempty"`
	Depth    int    `json:"depth"              yaml:"depth"`
}

// Doc returns the nested form of the node id.
func (t *Tree) Doc(id NodeID) Doc {
	n := t.Node(id)
	if n == nil {
		return Doc{}
	}

	d := Doc{
		Kind:    n.Kind.String(),
		Name:    n.Name,
		Content: n.Content,
		Depth:   n.Depth,
	}

	if n.Kind == Element {
		d.Close = n.Close.String()

		if n.Attrs.Len() > 0 {
			d.Attrs = n.Attrs
		}
	}

	for _, c := range n.Children {
		d.Children = append(d.Children, t.Doc(c))
	}

	return d
}

// Docs returns the nested form of every root.
func (t *Tree) Docs() []Doc {
	docs := make([]Doc, 0, len(t.roots))
	for _, id := range t.roots {
		docs = append(docs, t.Doc(id))
	}

	return docs
}

// WriteTo writes the tree back out as markup.
//
// Paired elements are written with an end tag, self-closing elements as
// `<name ... />`, and text and raw-text content verbatim. Parsing the output
// yields a tree of the same shape.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())

	return int64(n), err
}

// String returns the tree written as markup.
func (t *Tree) String() string {
	var b strings.Builder

	for _, id := range t.roots {
		t.write(&b, id)
	}

	return b.String()
}

// Markup returns the subtree rooted at id written as markup.
func (t *Tree) Markup(id NodeID) string {
	if t.Node(id) == nil {
		return ""
	}

	var b strings.Builder

	t.write(&b, id)

	return b.String()
}

func (t *Tree) write(b *strings.Builder, id NodeID) {
	n := &t.Nodes[id]

	switch n.Kind {
	case TextNode:
		b.WriteString(n.Content)

	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Content)
		b.WriteString("-->")

	case Element:
		b.WriteByte('<')
		b.WriteString(n.Name)

		for k, v := range n.Attrs.All() {
			writeAttr(b, k, v)
		}

		if n.Close == SelfClosing && len(n.Children) == 0 {
			b.WriteString(" />")

			return
		}

		b.WriteByte('>')

		for _, c := range n.Children {
			t.write(b, c)
		}

		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteByte('>')
	}
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteByte(' ')
	b.WriteString(key)

	if value == "" {
		return
	}

	quote := byte('"')
	if strings.IndexByte(value, '"') >= 0 && strings.IndexByte(value, '\'') < 0 {
		quote = '\''
	}

	b.WriteByte('=')
	b.WriteByte(quote)
	b.WriteString(value)
	b.WriteByte(quote)
}
