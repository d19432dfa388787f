// Package sandbox runs policy-validated snippets in an isolated
// JavaScript runtime with access to nothing but a wrapped capability
// environment.
//
// [Evaluator] implements [code.Engine]. Each run gets a brand-new goja
// runtime carrying only the ECMAScript builtins; the submitted
// statements execute inside an async function whose single parameter
// is the capability environment, so a top-level return terminates the
// run and top-level await suspends it. There is no lexical path from
// the snippet to any host binding; this isolation is a second defense
// layer, independent of the policy validator.
//
// Every capability is exposed through a freshly allocated forwarding
// function (also reachable as its own "execute" property). Reflective
// stringification of the wrapper reveals only native-function text:
// the capability's implementation, and any secret captured in its
// closure, stay invisible to the snippet.
//
// All snippet-level outcomes collapse into a single display string:
// validation failures, returned values, and runtime errors alike. The
// consumer is an agent that reads text; it should never have to handle
// a structured failure channel.
package sandbox
