// Package catalog holds the caller-owned registry of capabilities that
// sandboxed code is allowed to invoke.
//
// A [Capability] pairs MCP-shaped metadata (name, description, parameter
// schema) with an invocation function. The [Catalog] preserves
// registration order, which is the iteration order seen by discovery.
//
// The core borrows the catalog for the duration of a single
// validate+execute call and never mutates it.
package catalog
