package policy

import (
	"reflect"

	"github.com/dop251/goja/ast"
)

// walk performs a pre-order traversal of the syntax tree rooted at
// node, calling visit once for every node. Children are discovered
// reflectively from the node struct fields, so the traversal covers
// every construct the grammar can produce without enumerating node
// types; field declaration order gives the textual pre-order.
func walk(node ast.Node, visit func(ast.Node)) {
	w := &walker{visit: visit, seen: make(map[ast.Node]struct{})}
	w.walkNode(node)
}

type walker struct {
	visit func(ast.Node)
	seen  map[ast.Node]struct{}
}

// walkNode visits a node and descends into its children. Some parts of
// the tree are reachable twice (declaration lists alias statements in
// a function body), so each node is visited at most once.
func (w *walker) walkNode(node ast.Node) {
	if node == nil {
		return
	}
	if _, ok := w.seen[node]; ok {
		return
	}
	w.seen[node] = struct{}{}
	w.visit(node)

	v := reflect.ValueOf(node)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		w.walkFields(v)
	}
}

func (w *walker) walkFields(v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			continue
		}
		w.walkValue(v.Field(i))
	}
}

func (w *walker) walkValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		if n, ok := v.Interface().(ast.Node); ok {
			w.walkNode(n)
			return
		}
		w.walkValue(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		if n, ok := v.Interface().(ast.Node); ok {
			w.walkNode(n)
			return
		}
		w.walkValue(v.Elem())
	case reflect.Struct:
		// Embedded node values (e.g. the property identifier of a dot
		// expression) only implement ast.Node through their address.
		if v.CanAddr() {
			if n, ok := v.Addr().Interface().(ast.Node); ok {
				w.walkNode(n)
				return
			}
		}
		w.walkFields(v)
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			w.walkValue(v.Index(i))
		}
	}
}
