package markup

import "iter"

// NodeKind identifies the class of a [Node].
type NodeKind int

const (
	Element NodeKind = iota
	TextNode
	CommentNode
)

// String returns the name of the node kind.
func (k NodeKind) String() string {
	switch k {
	case Element:
		return "element"

	case TextNode:
		return "text"

	case CommentNode:
		return "comment"

	default:
		return "unknown"
	}
}

// CloseStyle records how an element was closed in the source.
type CloseStyle int

const (
	Paired      CloseStyle = iota // <a>...</a>
	SelfClosing                   // <a/>, or an open tag never closed
)

// String returns the name of the close style.
func (c CloseStyle) String() string {
	if c == SelfClosing {
		return "self-closing"
	}

	return "paired"
}

// NodeID is a handle to a node in a [Tree].
type NodeID int

// NoNode is the NodeID of an absent link.
const NoNode NodeID = -1

// Node is an element, text run or comment in a [Tree].
//
// Parent, Prev, Next and Children are handles into the owning Tree, so a
// Node is only meaningful together with its Tree.
type Node struct {
	Attrs    *Attrs
	Name     string // element name
	Content  string // text or comment content
	Children []NodeID
	Kind     NodeKind
	Close    CloseStyle
	Depth    int
	Parent   NodeID
	Prev     NodeID
	Next     NodeID
}

// Tree is an arena of nodes in document order.
type Tree struct {
	Nodes []Node
	roots []NodeID
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.Nodes) }

// Node returns a pointer to the node with the given id, or nil if id does
// not refer to a node of t.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.Nodes) {
		return nil
	}

	return &t.Nodes[id]
}

// Roots returns the handles of the depth-1 nodes in document order.
func (t *Tree) Roots() []NodeID { return t.roots }

// Parent returns the parent of id, or nil for a root.
func (t *Tree) Parent(id NodeID) *Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}

	return t.Node(n.Parent)
}

// Children returns an iterator over the children of id in order.
func (t *Tree) Children(id NodeID) iter.Seq2[NodeID, *Node] {
	return func(yield func(NodeID, *Node) bool) {
		n := t.Node(id)
		if n == nil {
			return
		}

		for _, c := range n.Children {
			if !yield(c, &t.Nodes[c]) {
				return
			}
		}
	}
}

// Siblings returns an iterator over the siblings following id.
func (t *Tree) Siblings(id NodeID) iter.Seq2[NodeID, *Node] {
	return func(yield func(NodeID, *Node) bool) {
		n := t.Node(id)
		for n != nil && n.Next != NoNode {
			id = n.Next
			n = &t.Nodes[id]

			if !yield(id, n) {
				return
			}
		}
	}
}

// Walk returns a depth-first iterator over all nodes. Since nodes are stored
// in document order, this is a walk of the arena.
func (t *Tree) Walk() iter.Seq2[NodeID, *Node] {
	return func(yield func(NodeID, *Node) bool) {
		for i := range t.Nodes {
			if !yield(NodeID(i), &t.Nodes[i]) {
				return
			}
		}
	}
}

// Find returns an iterator over the nodes for which match returns true.
func (t *Tree) Find(match func(*Node) bool) iter.Seq2[NodeID, *Node] {
	return func(yield func(NodeID, *Node) bool) {
		for id, n := range t.Walk() {
			if match(n) && !yield(id, n) {
				return
			}
		}
	}
}

// Text returns the concatenated text content beneath id.
func (t *Tree) Text(id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}

	if n.Kind == TextNode {
		return n.Content
	}

	var s string
	for c := range t.Children(id) {
		s += t.Text(c)
	}

	return s
}

// link appends a node at depth and wires it to the nodes already placed.
//
// last holds the most recent node at each depth (last[d-1] is depth d).
// A node at or above the current depth closes the chains below it and
// becomes the next sibling of the node at its depth; a node one level
// deeper becomes the next child of the node above it.
func (t *Tree) link(n Node, last []NodeID) []NodeID {
	id := NodeID(len(t.Nodes))
	d := n.Depth

	n.Parent, n.Prev, n.Next = NoNode, NoNode, NoNode

	if d <= len(last) {
		n.Prev = last[d-1]
		t.Nodes[n.Prev].Next = id
		last = last[:d-1]
	}

	if d > 1 {
		n.Parent = last[d-2]
		t.Nodes[n.Parent].Children = append(t.Nodes[n.Parent].Children, id)
	} else {
		t.roots = append(t.roots, id)
	}

	t.Nodes = append(t.Nodes, n)

	return append(last, id)
}
