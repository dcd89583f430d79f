// Package expr evaluates small JavaScript-like expressions against Go data.
//
// An expression is lexed into abstract tokens by [Lex], its identifiers are
// bound by [Resolve] (scope shadows target), parenthesized and computed
// access groups are collapsed, and the remaining operators are reduced by
// precedence: unary, multiplicative, additive, relational, equality,
// logical, and finally a single conditional.
//
//	v, err := expr.Evaluate(target, "a.value > 10 ? 'big' : 'small'", nil)
//
// The same pipeline addresses values by path. [GetValue] and [SetValue]
// treat a leading identifier as a key, so "a.b[0]" names the path
// ["a", "b", 0]; SetValue creates missing maps and slices along the way.
//
// Values follow loose dynamic typing: every Go numeric kind is a number,
// nil is null, and [Undefined] marks names and keys that do not exist.
// Programs compiled with [Compile] are cached by source and may be reused
// concurrently.
package expr
