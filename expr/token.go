package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is one lexical element of an expression. The concrete types are
// [Operator], [Bracket], [Number], [Bool], [Null], [Undef], [StringLit],
// [Ident] and [Ref]; no other type implements Token.
type Token interface {
	// Pos is the byte offset of the token in the expression source.
	Pos() int
	String() string
	token()
}

type pos int

func (p pos) Pos() int { return int(p) }
func (pos) token()     {}

// Operator is an arithmetic, comparison, logical or conditional operator.
type Operator struct {
	Op string
	pos
}

// Bracket is one of '[', ']', '(' or ')'.
type Bracket struct {
	pos
	Ch byte
}

// Number is a numeric literal or a numeric intermediate result.
type Number struct {
	V float64
	pos
}

type Bool struct {
	pos
	V bool
}

type Null struct{ pos }

// Undef is the undefined literal, and the value of names that resolve to
// nothing.
type Undef struct{ pos }

// StringLit is a string value: a quoted literal, a dotted key, or a resolved
// string.
type StringLit struct {
	V string
	pos
}

// Ident is a bare identifier awaiting resolution against scope and target.
type Ident struct {
	Name string
	pos
}

// Ref carries any other resolved value, such as a map, a slice or an
// integer, through reduction unchanged.
type Ref struct {
	V any
	pos
}

func (t Operator) String() string  { return t.Op }
func (t Bracket) String() string   { return string(t.Ch) }
func (t Number) String() string    { return formatNumber(t.V) }
func (t Bool) String() string      { return strconv.FormatBool(t.V) }
func (Null) String() string        { return "null" }
func (Undef) String() string       { return "undefined" }
func (t StringLit) String() string { return strconv.Quote(t.V) }
func (t Ident) String() string     { return t.Name }
func (t Ref) String() string       { return fmt.Sprintf("<%T>", t.V) }

// isOperand reports whether tok is a value rather than syntax.
func isOperand(tok Token) bool {
	switch tok.(type) {
	case Number, Bool, Null, Undef, StringLit, Ref:
		return true
	}

	return false
}

func isBracket(tok Token, ch byte) bool {
	b, ok := tok.(Bracket)

	return ok && b.Ch == ch
}

func isOperator(tok Token, ops ...string) bool {
	o, ok := tok.(Operator)
	if !ok {
		return false
	}

	if len(ops) == 0 {
		return true
	}

	for _, op := range ops {
		if o.Op == op {
			return true
		}
	}

	return false
}

// opensOperand reports whether the token before position i leaves room for
// a prefix operator: nothing, an operator, or an opening bracket.
func opensOperand(toks []Token, i int) bool {
	if i == 0 {
		return true
	}

	prev := toks[i-1]

	return isOperator(prev) || isBracket(prev, '(') || isBracket(prev, '[')
}

// valueOf returns the Go value carried by an operand token.
func valueOf(tok Token) any {
	switch t := tok.(type) {
	case Number:
		return t.V
	case Bool:
		return t.V
	case Null:
		return nil
	case Undef:
		return Undefined
	case StringLit:
		return t.V
	case Ref:
		return t.V
	}

	return Undefined
}

// tokenOf wraps v in the operand token that best describes it.
func tokenOf(v any, at int) Token {
	p := pos(at)

	switch v := v.(type) {
	case nil:
		return Null{p}
	case undefined:
		return Undef{p}
	case bool:
		return Bool{p, v}
	case float64:
		return Number{v, p}
	case string:
		return StringLit{v, p}
	}

	return Ref{v, p}
}

// FormatTokens renders toks as a space-separated list for diagnostics.
func FormatTokens(toks []Token) string {
	var sb strings.Builder

	for i, tok := range toks {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(tok.String())
	}

	return sb.String()
}
