package expr

import (
	"log/slog"
	"strconv"
	"strings"
)

// operators in match order; longer spellings come before their prefixes.
var operators = []string{
	"===", "!==",
	"==", "!=", ">=", "<=", "&&", "||",
	"+", "-", "*", "/", "%", "!", "?", ":", ">", "<",
}

var keywords = map[string]func(pos) Token{
	"null":      func(p pos) Token { return Null{p} },
	"undefined": func(p pos) Token { return Undef{p} },
	"true":      func(p pos) Token { return Bool{p, true} },
	"false":     func(p pos) Token { return Bool{p, false} },
}

type lexer struct {
	src  string
	toks []Token
	pos  int
}

// Lex scans src into abstract tokens. Identifiers are left unresolved; see
// [Resolve].
func Lex(src string) ([]Token, error) {
	lx := lexer{src: src}

	for {
		lx.skipBlanks()

		if lx.pos >= len(lx.src) {
			return lx.toks, nil
		}

		if err := lx.scan(); err != nil {
			return nil, err
		}
	}
}

func (lx *lexer) illegal(at int, reason string) error {
	return ErrIllegalExpression.With(
		slog.String("expression", lx.src),
		slog.Int("index", at),
		slog.String("reason", reason),
	)
}

func (lx *lexer) skipBlanks() {
	for lx.pos < len(lx.src) && isBlank(lx.src[lx.pos]) {
		lx.pos++
	}
}

func (lx *lexer) emit(tok Token) { lx.toks = append(lx.toks, tok) }

func (lx *lexer) scan() error {
	c := lx.src[lx.pos]

	switch {
	case c == '"' || c == '\'':
		return lx.scanString(c)
	case isDigit(c):
		lx.scanNumber()

		return nil
	case c == '.':
		return lx.scanKey()
	case isIdentStart(c):
		lx.scanWord()

		return nil
	case c == '[' || c == ']' || c == '(' || c == ')':
		lx.emit(Bracket{pos(lx.pos), c})
		lx.pos++

		return nil
	}

	return lx.scanOperator()
}

func (lx *lexer) scanString(quote byte) error {
	start := lx.pos

	end := strings.IndexByte(lx.src[start+1:], quote)
	if end < 0 {
		return ErrUnclosedStringLiteral.With(
			slog.String("expression", lx.src),
			slog.Int("index", start),
		)
	}

	lx.emit(StringLit{lx.src[start+1 : start+1+end], pos(start)})
	lx.pos = start + end + 2

	return nil
}

func (lx *lexer) scanNumber() {
	start := lx.pos
	dot := false

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]

		if c == '.' && !dot {
			// "1.x" is the number 1 followed by the key x.
			if next := lx.pos + 1; next < len(lx.src) && isIdentStart(lx.src[next]) {
				break
			}

			dot = true
			lx.pos++

			continue
		}

		if !isDigit(c) {
			break
		}

		lx.pos++
	}

	// ParseFloat accepts the trailing-point form "5." as 5.
	v, _ := strconv.ParseFloat(lx.src[start:lx.pos], 64)
	at := start

	if n := len(lx.toks); n > 0 && isOperator(lx.toks[n-1], "+", "-") &&
		opensOperand(lx.toks, n-1) {
		sign := lx.toks[n-1].(Operator)
		if sign.Op == "-" {
			v = -v
		}

		at = sign.Pos()
		lx.toks = lx.toks[:n-1]
	}

	lx.emit(Number{v, pos(at)})
}

// scanKey rewrites ".name" to the computed access [ "name" ].
func (lx *lexer) scanKey() error {
	start := lx.pos

	if start+1 >= len(lx.src) || !isIdentStart(lx.src[start+1]) {
		return lx.illegal(start, "expected a key after '.'")
	}

	lx.pos++
	name := lx.ident()

	lx.emit(Bracket{pos(start), '['})
	lx.emit(StringLit{name, pos(start + 1)})
	lx.emit(Bracket{pos(lx.pos - 1), ']'})

	return nil
}

func (lx *lexer) scanWord() {
	start := lx.pos
	word := lx.ident()

	if kw, ok := keywords[word]; ok {
		lx.emit(kw(pos(start)))

		return
	}

	lx.emit(Ident{word, pos(start)})
}

func (lx *lexer) ident() string {
	start := lx.pos

	for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
		lx.pos++
	}

	return lx.src[start:lx.pos]
}

func (lx *lexer) scanOperator() error {
	rest := lx.src[lx.pos:]

	for _, op := range operators {
		if !strings.HasPrefix(rest, op) {
			continue
		}

		prefix := op == "+" || op == "-" || op == "!"
		if !prefix && opensOperand(lx.toks, len(lx.toks)) {
			return lx.illegal(lx.pos, "operator "+op+" is missing its left operand")
		}

		lx.emit(Operator{op, pos(lx.pos)})
		lx.pos += len(op)

		return nil
	}

	switch rest[0] {
	case '&', '|', '=':
		return lx.illegal(lx.pos, "incomplete operator "+rest[:1])
	}

	return lx.illegal(lx.pos, "unexpected character "+strconv.QuoteRune(rune(rest[0])))
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
