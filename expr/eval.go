package expr

import (
	"fmt"
)

type binaryFunc func(a, b any) any

var (
	multiplicative = map[string]binaryFunc{
		"*": func(a, b any) any { return arith("*", a, b) },
		"/": func(a, b any) any { return arith("/", a, b) },
		"%": func(a, b any) any { return arith("%", a, b) },
	}

	additive = map[string]binaryFunc{
		"+": add,
		"-": func(a, b any) any { return arith("-", a, b) },
	}

	relational = map[string]binaryFunc{
		">":  func(a, b any) any { return compare(">", a, b) },
		"<":  func(a, b any) any { return compare("<", a, b) },
		">=": func(a, b any) any { return compare(">=", a, b) },
		"<=": func(a, b any) any { return compare("<=", a, b) },
	}

	equality = map[string]binaryFunc{
		"==":  func(a, b any) any { return LooseEqual(a, b) },
		"!=":  func(a, b any) any { return !LooseEqual(a, b) },
		"===": func(a, b any) any { return StrictEqual(a, b) },
		"!==": func(a, b any) any { return !StrictEqual(a, b) },
	}

	logical = map[string]binaryFunc{
		"&&": func(a, b any) any {
			if !Truthy(a) {
				return a
			}

			return b
		},
		"||": func(a, b any) any {
			if Truthy(a) {
				return a
			}

			return b
		},
	}
)

// precedence reduces bracket-free tokens to one operand, applying each
// precedence tier in turn and stopping as soon as one token remains.
func (e *evaluator) precedence(toks []Token) (Token, error) {
	passes := []func([]Token) ([]Token, error){
		e.unary,
		e.binary(multiplicative),
		e.binary(additive),
		e.binary(relational),
		e.binary(equality),
		e.binary(logical),
		e.ternary,
	}

	for _, pass := range passes {
		if len(toks) == 1 && isOperand(toks[0]) {
			return toks[0], nil
		}

		var err error
		if toks, err = pass(toks); err != nil {
			return nil, err
		}
	}

	if len(toks) == 1 && isOperand(toks[0]) {
		return toks[0], nil
	}

	if len(toks) == 0 {
		return nil, e.unrecognized(toks, "empty expression")
	}

	return nil, e.unrecognized(toks, "tokens remain after evaluation")
}

// unary applies prefix operators right to left so that chains like !!a and
// -!a fold from the operand outward. '!' is always prefix; '+' and '-' are
// prefix only where no left operand precedes them.
func (e *evaluator) unary(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))

	for i := len(toks) - 1; i >= 0; i-- {
		op, ok := toks[i].(Operator)
		prefix := ok && (op.Op == "!" ||
			((op.Op == "+" || op.Op == "-") && opensOperand(toks, i)))

		if !prefix {
			out = append(out, toks[i])

			continue
		}

		last := len(out) - 1
		if last < 0 || !isOperand(out[last]) {
			return nil, e.unrecognized(toks, fmt.Sprintf("operator %s has no operand", op.Op))
		}

		if op.Op == "!" {
			out[last] = Bool{op.pos, !Truthy(valueOf(out[last]))}
		} else {
			out[last] = negate(op, out[last])
		}
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out, nil
}

// binary returns a left-associative pass over the operators in ops.
func (e *evaluator) binary(ops map[string]binaryFunc) func([]Token) ([]Token, error) {
	return func(toks []Token) ([]Token, error) {
		out := make([]Token, 0, len(toks))

		for i := 0; i < len(toks); i++ {
			op, ok := toks[i].(Operator)
			fn, match := ops[op.Op]

			if !ok || !match {
				out = append(out, toks[i])

				continue
			}

			last := len(out) - 1
			if last < 0 || !isOperand(out[last]) || i+1 >= len(toks) || !isOperand(toks[i+1]) {
				return nil, e.unrecognized(toks, fmt.Sprintf("operator %s needs two operands", op.Op))
			}

			left := out[last]
			out[last] = tokenOf(fn(valueOf(left), valueOf(toks[i+1])), left.Pos())
			i++
		}

		return out, nil
	}
}

// ternary reduces a single cond ? a : b window. Chained conditionals are
// rejected; nest them with parentheses instead.
func (e *evaluator) ternary(toks []Token) ([]Token, error) {
	count := 0

	for _, tok := range toks {
		if isOperator(tok, "?") {
			count++
		}
	}

	if count > 1 {
		return nil, e.unrecognized(toks, "chained conditional; use parentheses")
	}

	out := make([]Token, 0, len(toks))

	for i := 0; i < len(toks); i++ {
		if !isOperator(toks[i], "?") {
			out = append(out, toks[i])

			continue
		}

		last := len(out) - 1
		if last < 0 || i+3 >= len(toks) || !isOperand(out[last]) ||
			!isOperand(toks[i+1]) || !isOperator(toks[i+2], ":") ||
			!isOperand(toks[i+3]) {
			return nil, e.unrecognized(toks, "malformed conditional")
		}

		pick := toks[i+3]
		if Truthy(valueOf(out[last])) {
			pick = toks[i+1]
		}

		out[last] = tokenOf(valueOf(pick), out[last].Pos())
		i += 3
	}

	return out, nil
}
