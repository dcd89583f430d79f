package expr

import (
	"log/slog"
)

// evaluator reduces resolved tokens against one target and scope.
type evaluator struct {
	target any
	scope  any
	src    string
}

func (e *evaluator) illegal(at int, reason string) error {
	return ErrIllegalExpression.With(
		slog.String("expression", e.src),
		slog.Int("index", at),
		slog.String("reason", reason),
	)
}

func (e *evaluator) unrecognized(toks []Token, reason string) error {
	return ErrUnrecognizedExpression.With(
		slog.String("expression", e.src),
		slog.String("tokens", FormatTokens(toks)),
		slog.String("reason", reason),
	)
}

// value reduces toks to a single operand.
func (e *evaluator) value(toks []Token) (Token, error) {
	toks, err := e.groups(toks)
	if err != nil {
		return nil, err
	}

	return e.precedence(toks)
}

// groups runs the parenthesis pass followed by the bracket pass.
func (e *evaluator) groups(toks []Token) ([]Token, error) {
	toks, err := e.parens(toks)
	if err != nil {
		return nil, err
	}

	return e.brackets(toks)
}

// parens replaces every outermost parenthesized group with its value.
func (e *evaluator) parens(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	depth, open := 0, 0

	for i, tok := range toks {
		switch {
		case isBracket(tok, '('):
			if depth == 0 {
				open = i
			}

			depth++
		case isBracket(tok, ')'):
			if depth == 0 {
				return nil, e.illegal(tok.Pos(), "unbalanced ')'")
			}

			depth--
			if depth > 0 {
				continue
			}

			v, err := e.value(toks[open+1 : i])
			if err != nil {
				return nil, err
			}

			out = append(out, tokenOf(valueOf(v), toks[open].Pos()))
		case depth == 0:
			out = append(out, tok)
		}
	}

	if depth > 0 {
		return nil, e.illegal(toks[open].Pos(), "unbalanced '('")
	}

	return out, nil
}

// brackets repeatedly replaces the innermost computed access x[k] with the
// value of x at key k, until none is left. Leading access chains such as
// ['a'][0] have nothing to index and are kept for path normalization.
func (e *evaluator) brackets(toks []Token) ([]Token, error) {
	for {
		open, end := innermostAccess(toks)
		if open < 0 {
			return toks, nil
		}

		key, err := e.value(toks[open+1 : end])
		if err != nil {
			return nil, err
		}

		holder := toks[open-1]

		v, found, ok := lookup(valueOf(holder), valueOf(key))
		if !ok {
			return nil, ErrPathTraversal.With(
				slog.String("expression", e.src),
				slog.String("holder", ToString(valueOf(holder))),
				slog.String("key", ToString(valueOf(key))),
				slog.Int("index", holder.Pos()),
			)
		}

		if !found {
			v = Undefined
		}

		next := make([]Token, 0, len(toks)-(end-open+1))
		next = append(next, toks[:open-1]...)
		next = append(next, tokenOf(v, holder.Pos()))
		toks = append(next, toks[end+1:]...)
	}
}

// innermostAccess finds a '[' that directly follows an operand and whose
// matching ']' encloses no other '['.
func innermostAccess(toks []Token) (open, end int) {
	open = -1

	for i, tok := range toks {
		switch {
		case isBracket(tok, '['):
			open = -1
			if i > 0 && isOperand(toks[i-1]) {
				open = i
			}
		case isBracket(tok, ']') && open >= 0:
			return open, i
		}
	}

	return -1, -1
}

// path normalizes reduced tokens to a Path. An expression with no leading
// access chain is a single computed key; a chain [k1][k2] yields its keys;
// a chain followed by more tokens is read and combined with the rest into
// a single computed key.
func (e *evaluator) path(toks []Token) (Path, error) {
	toks, err := e.groups(toks)
	if err != nil {
		return nil, err
	}

	if len(toks) == 0 || !isBracket(toks[0], '[') {
		v, err := e.precedence(toks)
		if err != nil {
			return nil, err
		}

		return Path{valueOf(v)}, nil
	}

	var keys Path

	i := 0
	for i < len(toks) && isBracket(toks[i], '[') {
		end := closing(toks, i)
		if end < 0 {
			return nil, e.illegal(toks[i].Pos(), "unbalanced '['")
		}

		key, err := e.value(toks[i+1 : end])
		if err != nil {
			return nil, err
		}

		keys = append(keys, valueOf(key))
		i = end + 1
	}

	if i == len(toks) {
		return keys, nil
	}

	base, err := Read(e.target, keys, e.scope)
	if err != nil {
		return nil, err
	}

	rest := append([]Token{tokenOf(base, toks[0].Pos())}, toks[i:]...)

	rest, err = e.brackets(rest)
	if err != nil {
		return nil, err
	}

	v, err := e.precedence(rest)
	if err != nil {
		return nil, err
	}

	return Path{valueOf(v)}, nil
}

// closing returns the index of the ']' matching the '[' at open, or -1.
func closing(toks []Token, open int) int {
	depth := 0

	for i := open; i < len(toks); i++ {
		switch {
		case isBracket(toks[i], '['):
			depth++
		case isBracket(toks[i], ']'):
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
