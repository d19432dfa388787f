package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Common errors for catalog operations.
var (
	ErrInvalidCapability = errors.New("invalid capability")
	ErrNotFound          = errors.New("capability not found")
)

// InvokeFunc is the function signature for capability implementations.
// Arguments arrive exactly as the sandboxed code passed them, exported
// to plain Go values (string, bool, int64/float64, map[string]any,
// []any). A returned error propagates into the sandbox as a thrown
// exception.
type InvokeFunc func(ctx context.Context, args ...any) (any, error)

// Capability describes one named tool exposed into the sandbox.
//
// Contract:
// - Ownership: caller-owned; the core borrows it per call and never mutates it.
// - Concurrency: Invoke must be safe for concurrent use across calls.
// - Context: Invoke must honor cancellation/deadlines.
type Capability struct {
	// Name is the unique key in the catalog and the property name the
	// sandboxed code uses to call the capability. Required.
	Name string

	// Title is an optional human-readable display name.
	Title string

	// Description is shown to agents during discovery.
	Description string

	// InputSchema is the declarative parameter schema. It is opaque to
	// the core: any value that marshals to a JSON Schema object is
	// accepted (map[string]any, *jsonschema.Schema, or a tagged struct).
	InputSchema any

	// Annotations carry optional MCP tool annotations.
	Annotations *mcp.ToolAnnotations

	// Invoke executes the capability. Required.
	Invoke InvokeFunc
}

// Tool returns the MCP-shaped metadata for the capability.
func (c Capability) Tool() mcp.Tool {
	return mcp.Tool{
		Name:        c.Name,
		Title:       c.Title,
		Description: c.Description,
		InputSchema: c.InputSchema,
		Annotations: c.Annotations,
	}
}

// Catalog is an ordered registry of capabilities. Iteration order is
// registration order; re-registering a name keeps its original slot.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Ownership: List and Names return caller-owned snapshots.
type Catalog struct {
	mu    sync.RWMutex
	order []string
	caps  map[string]Capability
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{caps: make(map[string]Capability)}
}

// Register adds a capability. A capability with the same name is
// replaced in place. Returns ErrInvalidCapability if the name is empty
// or Invoke is nil.
func (c *Catalog) Register(entry Capability) error {
	if entry.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCapability)
	}
	if entry.Invoke == nil {
		return fmt.Errorf("%w: %s has no invoke function", ErrInvalidCapability, entry.Name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.caps[entry.Name]; !exists {
		c.order = append(c.order, entry.Name)
	}
	c.caps[entry.Name] = entry
	return nil
}

// Get returns the capability registered under name.
func (c *Catalog) Get(name string) (Capability, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.caps[name]
	return entry, ok
}

// List returns all capabilities in registration order.
func (c *Catalog) List() []Capability {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Capability, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.caps[name])
	}
	return out
}

// Names returns the registered names in registration order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Len returns the number of registered capabilities.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
