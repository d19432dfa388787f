package policy

import (
	"regexp"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// ViolationKind categorizes why a construct was rejected.
type ViolationKind string

const (
	KindForbiddenIdentifier ViolationKind = "forbidden-identifier"
	KindForbiddenMember     ViolationKind = "forbidden-member-access"
	KindDisallowedConstruct ViolationKind = "disallowed-construct"
	KindParseFailure        ViolationKind = "parse-failure"
)

// Violation is a single reason a source snippet failed validation.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

// Verdict is the result of validating one snippet. Valid is true iff
// Violations is empty. Violations appear in pre-order discovery order
// and are not deduplicated.
type Verdict struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// forbiddenIdentifiers is the denylist of reflection and escape-hatch
// names: the dynamic-code constructor, ambient process/global objects,
// module bindings, deferred-timer schedulers, and eval. A match
// anywhere in the tree triggers a violation, including property
// positions.
var forbiddenIdentifiers = map[string]bool{
	"eval":         true,
	"Function":     true,
	"require":      true,
	"process":      true,
	"global":       true,
	"globalThis":   true,
	"module":       true,
	"exports":      true,
	"setTimeout":   true,
	"setInterval":  true,
	"setImmediate": true,
}

// moduleSyntax matches import/export keywords in statement position.
// It is consulted only after script-mode parsing fails: module syntax
// is invalid script code, so real declarations always land in the
// parse-failure branch, while the same text inside a string or
// template literal belongs to a snippet that parses clean and is never
// scanned.
var moduleSyntax = regexp.MustCompile(`(?m)^\s*(?:import|export)\b`)

// Validate inspects source and reports every disallowed construct it
// finds. It never panics; unparseable input yields a parse-failure
// violation.
func Validate(source string) Verdict {
	c := &checker{}

	// The wrapper makes top-level return and await legal to parse. It
	// introduces no identifiers of its own, so it cannot influence the
	// walk; the policy applies to the snippet exactly as submitted.
	wrapped := "(async function() {\n" + source + "\n});"
	program, err := parser.ParseFile(nil, "snippet.js", wrapped, 0)
	if err != nil {
		if moduleSyntax.MatchString(source) {
			c.add(KindDisallowedConstruct, "Import/export statements are not allowed")
		}
		c.add(KindParseFailure, "Parse failure: "+err.Error())
		return c.verdict()
	}

	walk(program, c.visit)
	return c.verdict()
}

type checker struct {
	violations []Violation
}

func (c *checker) add(kind ViolationKind, message string) {
	c.violations = append(c.violations, Violation{Kind: kind, Message: message})
}

func (c *checker) verdict() Verdict {
	return Verdict{Valid: len(c.violations) == 0, Violations: c.violations}
}

// visit applies every policy check to a single node. A node may
// trigger more than one violation; the identifier and member-access
// checks both fire on constructs like process.env.
func (c *checker) visit(node ast.Node) {
	switch n := node.(type) {
	case *ast.Identifier:
		name := n.Name.String()
		if forbiddenIdentifiers[name] {
			c.add(KindForbiddenIdentifier, "Forbidden identifier: "+name)
		}
	case *ast.DotExpression:
		c.checkMember(n.Left, n.Identifier.Name.String())
	case *ast.BracketExpression:
		if lit, ok := n.Member.(*ast.StringLiteral); ok {
			c.checkMember(n.Left, lit.Value.String())
		}
	case *ast.PropertyKeyed:
		// Non-computed object keys parse as string literals, so the
		// identifier check above never sees them.
		if lit, ok := n.Key.(*ast.StringLiteral); ok {
			name := lit.Value.String()
			if forbiddenIdentifiers[name] {
				c.add(KindForbiddenIdentifier, "Forbidden identifier: "+name)
			}
		}
	case *ast.WhileStatement:
		c.add(KindDisallowedConstruct, "While loops are not allowed")
	case *ast.DoWhileStatement:
		c.add(KindDisallowedConstruct, "Do-while loops are not allowed")
	}
}

// checkMember enforces the two member-access rules: access rooted at a
// denylisted object, and the {}.constructor.constructor chain used to
// reach a dynamic-code constructor without naming it.
func (c *checker) checkMember(object ast.Expression, property string) {
	if id, ok := object.(*ast.Identifier); ok {
		name := id.Name.String()
		if forbiddenIdentifiers[name] {
			c.add(KindForbiddenMember, "Access to forbidden object: "+name)
		}
	}
	if property == "constructor" && accessesConstructor(object) {
		c.add(KindDisallowedConstruct, "Nested constructor property access is not allowed")
	}
}

// accessesConstructor reports whether expr is itself a member access
// of a property named "constructor", in dot or bracket form.
func accessesConstructor(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.DotExpression:
		return e.Identifier.Name.String() == "constructor"
	case *ast.BracketExpression:
		lit, ok := e.Member.(*ast.StringLiteral)
		return ok && lit.Value.String() == "constructor"
	}
	return false
}
