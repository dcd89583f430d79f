package markup

import (
	"iter"
	"strings"
)

// blanks is the set of bytes treated as whitespace by the lexer and the
// attribute parser.
const blanks = " \t\r\n\f"

// DefaultRawText lists the elements whose content is captured verbatim.
var DefaultRawText = []string{"script", "pre", "style", "code"}

// Lexer scans markup into a sequence of [Token] values.
//
// A Lexer holds a single read cursor and one piece of mode state: the name
// of the raw-text element whose content must be read next, if any.
type Lexer struct {
	src     string
	pos     int
	raw     string
	rawText map[string]struct{}
}

// NewLexer returns a Lexer reading from src.
// Only [WithRawText] affects lexing; other options are ignored.
func NewLexer(src string, opts ...Option) *Lexer {
	cfg := makeConfig(opts...)

	lx := &Lexer{
		src:     src,
		rawText: make(map[string]struct{}, len(cfg.rawText)),
	}

	for _, name := range cfg.rawText {
		lx.rawText[strings.ToLower(name)] = struct{}{}
	}

	for lx.pos < len(lx.src) && strings.IndexByte(blanks, lx.src[lx.pos]) >= 0 {
		lx.pos++
	}

	return lx
}

// Next returns the next token and true, or a zero Token and false once the
// input is exhausted.
func (lx *Lexer) Next() (Token, bool) {
	if lx.pos >= len(lx.src) {
		return Token{}, false
	}

	if lx.raw != "" {
		return lx.rawContent(), true
	}

	rest := lx.src[lx.pos:]

	switch {
	case strings.HasPrefix(rest, "<!--"):
		return lx.delimited(Comment, "<!--", "-->"), true

	case strings.HasPrefix(rest, "<!DOCTYPE"):
		return lx.delimited(Doctype, "<!DOCTYPE", ">"), true

	case rest[0] == '<':
		return lx.tag(), true

	default:
		return lx.text(), true
	}
}

// All returns an iterator over the remaining tokens.
func (lx *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := lx.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokens lexes src to completion.
func Tokens(src string, opts ...Option) []Token {
	var toks []Token

	for tok := range NewLexer(src, opts...).All() {
		toks = append(toks, tok)
	}

	return toks
}

// rawContent reads verbatim up to the closing tag of the open raw-text
// element. The cursor is left on the closing tag so it is lexed as an
// ordinary EndTag.
func (lx *Lexer) rawContent() Token {
	start := lx.pos
	closing := "</" + lx.raw + ">"
	lx.raw = ""

	end := strings.Index(lx.src[start:], closing)
	if end < 0 {
		end = len(lx.src)
	} else {
		end += start
	}

	lx.pos = end

	return Token{Kind: Text, Text: lx.src[start:end], Offset: start}
}

// delimited reads a construct bounded by literal open and close sequences.
// A missing close sequence truncates the construct at end of input.
func (lx *Lexer) delimited(kind Kind, open, close string) Token {
	start := lx.pos
	body := start + len(open)

	end := strings.Index(lx.src[body:], close)
	if end < 0 {
		lx.pos = len(lx.src)

		return Token{Kind: kind, Text: lx.src[body:], Offset: start}
	}

	end += body
	lx.pos = end + len(close)

	return Token{Kind: kind, Text: lx.src[body:end], Offset: start}
}

func (lx *Lexer) text() Token {
	start := lx.pos

	end := strings.IndexByte(lx.src[start:], '<')
	if end < 0 {
		end = len(lx.src)
	} else {
		end += start
	}

	lx.pos = end

	return Token{Kind: Text, Text: lx.src[start:end], Offset: start}
}

func (lx *Lexer) tag() Token {
	start := lx.pos

	end, closed := scanTag(lx.src, start+1)
	if closed {
		lx.pos = end + 1
	} else {
		lx.pos = end
	}

	tok := classify(lx.src[start:end], closed)
	tok.Offset = start

	if _, ok := lx.rawText[strings.ToLower(tok.Text)]; ok {
		switch tok.Kind {
		case BeginTag:
			lx.raw = tok.Text

		case EndTag:
			lx.raw = ""
		}
	}

	return tok
}

// scanTag returns the index of the '>' terminating the tag body that begins
// at i, ignoring any '>' inside a quoted attribute value. If no terminator
// exists, it returns len(src) and false.
func scanTag(src string, i int) (int, bool) {
	var quote string

	for i < len(src) {
		switch {
		case quote != "":
			if strings.HasPrefix(src[i:], quote) {
				i += len(quote)
				quote = ""

				continue
			}

		case src[i] == '>':
			return i, true

		case src[i] == '=':
			if q := openQuote(src[i+1:]); q != "" {
				i += 1 + len(q)
				quote = q

				continue
			}
		}

		i++
	}

	return len(src), false
}

// openQuote returns the quote sequence s begins with: a bare quote
// character, or a backslash-escaped one as found in markup embedded in
// string literals.
func openQuote(s string) string {
	switch {
	case strings.HasPrefix(s, `\"`), strings.HasPrefix(s, `\'`):
		return s[:2]

	case strings.HasPrefix(s, `"`), strings.HasPrefix(s, `'`):
		return s[:1]

	default:
		return ""
	}
}

// classify builds a tag token from its body, which includes the leading '<'
// and excludes the terminating '>'.
func classify(body string, closed bool) Token {
	if strings.HasPrefix(body, "</") {
		return Token{Kind: EndTag, Text: strings.Trim(body[2:], blanks)}
	}

	kind := BeginTag
	inner := body[1:]

	if closed && strings.HasSuffix(inner, "/") {
		kind = SelfCloseTag
		inner = inner[:len(inner)-1]
	}

	name, rest := inner, ""
	if i := strings.IndexAny(inner, blanks); i >= 0 {
		name, rest = inner[:i], inner[i:]
	}

	tok := Token{Kind: kind, Text: name}

	if strings.Trim(rest, blanks) != "" {
		tok.Attrs = ParseAttrs(rest)
	}

	return tok
}
