// Package policy implements the static security check that every
// snippet must pass before the sandbox will run it.
//
// [Validate] parses the untrusted source as a plain script and walks
// the syntax tree enforcing a deny-by-pattern policy: denylisted
// identifiers, member access rooted at denylisted objects, nested
// constructor chains, module syntax, and unbounded while/do-while
// loops. Each hit becomes a [Violation]; a source is valid only when
// the walk finds none.
//
// The policy is a structural linter, not a verifier. It performs no
// type or data-flow analysis, and every newly discovered escape vector
// must be added as a new pattern. It is the first of two independent
// defense layers; the second is the lexical isolation of the sandbox
// runtime itself (see the sandbox package).
package policy
