package expr

// Resolve replaces every identifier in toks with its value, looked up in
// scope first and then in target. Names found in neither resolve to
// [Undefined]. A prefix sign in front of a plain identifier is folded into
// the resolved value as a number.
func Resolve(toks []Token, target, scope any) []Token {
	out := make([]Token, 0, len(toks))

	for i, tok := range toks {
		id, ok := tok.(Ident)
		if !ok {
			out = append(out, tok)

			continue
		}

		res := tokenOf(resolveName(id.Name, target, scope), id.Pos())

		n := len(out)
		accessed := i+1 < len(toks) && isBracket(toks[i+1], '[')

		if n > 0 && !accessed && isOperator(out[n-1], "+", "-") && opensOperand(out, n-1) {
			sign := out[n-1].(Operator)
			res = negate(sign, res)
			out = out[:n-1]
		}

		out = append(out, res)
	}

	return out
}

func resolveName(name string, target, scope any) any {
	if v, found, _ := lookup(scope, name); found {
		return v
	}

	if v, found, _ := lookup(target, name); found {
		return v
	}

	return Undefined
}

// negate applies a prefix + or - to an operand.
func negate(sign Operator, tok Token) Token {
	v := ToNumber(valueOf(tok))
	if sign.Op == "-" {
		v = -v
	}

	return Number{v, sign.pos}
}

// asPath rewrites a leading identifier into a computed key so that "a.b"
// addresses the path ["a", "b"] instead of reading a first.
func asPath(toks []Token) []Token {
	if len(toks) == 0 {
		return toks
	}

	id, ok := toks[0].(Ident)
	if !ok {
		return toks
	}

	out := make([]Token, 0, len(toks)+2)
	out = append(out,
		Bracket{id.pos, '['},
		StringLit{id.Name, id.pos},
		Bracket{id.pos, ']'},
	)

	return append(out, toks[1:]...)
}
