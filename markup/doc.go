// Package markup parses lenient HTML-like markup into a linked tree.
//
// Parsing runs in three stages. A [Lexer] scans the input into a flat
// sequence of [Token] values, reading the body of raw-text elements
// (script, pre, style and code by default) verbatim. [ParseAttrs] splits a
// tag's attribute string into ordered [Attrs]. The assembler then repairs
// unbalanced markup, treating every open tag left unclosed by an outer end
// tag as self-closing, and links the remaining tokens into a [Tree].
//
// A Tree is an arena: nodes live in document order in [Tree.Nodes] and refer
// to each other through [NodeID] handles, so parent, child and sibling links
// never form pointer cycles.
//
//	tree, err := markup.Parse(ctx, `<ul><li>a<li>b</ul>`)
//	for id, n := range tree.Find(func(n *markup.Node) bool { return n.Name == "li" }) {
//		fmt.Println(id, n.Close, tree.Text(id))
//	}
//
// Parsing never fails on malformed markup. The only errors are
// [ErrTemplateType] for input that is not textual and [ErrReadInput] when a
// reader fails.
package markup
