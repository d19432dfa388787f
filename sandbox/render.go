package sandbox

import (
	"encoding/json"
	"reflect"

	"github.com/dop251/goja"
)

// render converts a settled value into its display form: composite
// values serialize as two-space-indented JSON, everything else as its
// plain JavaScript string representation.
func render(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	exported := v.Export()
	if isComposite(exported) {
		if data, err := json.MarshalIndent(exported, "", "  "); err == nil {
			return string(data)
		}
	}
	return v.String()
}

// isComposite reports whether a value should render as structured JSON
// rather than a plain string.
func isComposite(v any) bool {
	switch v.(type) {
	case nil, string, bool, int64, float64, json.Number:
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	}
	return false
}
