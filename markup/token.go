package markup

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	BeginTag Kind = iota
	EndTag
	SelfCloseTag
	Text
	Comment
	Doctype
)

// String returns the name of the token kind.
func (k Kind) String() string {
	switch k {
	case BeginTag:
		return "BeginTag"

	case EndTag:
		return "EndTag"

	case SelfCloseTag:
		return "SelfCloseTag"

	case Text:
		return "Text"

	case Comment:
		return "Comment"

	case Doctype:
		return "Doctype"

	default:
		return "Unknown"
	}
}

// Token is a single lexical unit of markup.
//
// Text holds the element name for tag kinds and the raw content for text,
// comment and doctype kinds. Attrs is nil unless the tag carried a non-blank
// attribute string.
type Token struct {
	Attrs  *Attrs
	Text   string
	Kind   Kind
	Offset int // byte offset of the token in the lexer input
}

// IsTag reports whether the token is one of the tag kinds.
func (t Token) IsTag() bool {
	return t.Kind == BeginTag || t.Kind == EndTag || t.Kind == SelfCloseTag
}
