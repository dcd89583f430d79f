// Package repl implements the interactive expression evaluator.
//
// Each line is evaluated against the session target and scope and the
// result is printed in a single-line form. Control commands (get, set,
// scope, target, help, clear, quit) are entered after pressing Esc or by
// prefixing the line with ':'. Completion candidates are the keys of the
// scope and target at the member-access chain under the cursor, ranked with
// fuzzy matching. History is persisted in the cache directory.
package repl
