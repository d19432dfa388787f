package discover

import (
	"encoding/json"
	"regexp"

	"github.com/jonwraymond/toolsandbox/catalog"
)

// Match is one catalog entry that matched a discovery query.
type Match struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
}

// Tools searches the catalog with a case-insensitive pattern built
// from query. A capability matches when the pattern hits its name, its
// description, or the JSON text of its rendered parameter schema; any
// hit includes the entry, in catalog iteration order.
//
// Discovery is best-effort: an invalid pattern or a schema that cannot
// be rendered returns an empty result rather than an error.
func Tools(query string, caps *catalog.Catalog) []Match {
	if caps == nil {
		return nil
	}
	pattern, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil
	}

	var out []Match
	for _, entry := range caps.List() {
		schema, err := catalog.RenderSchema(entry.InputSchema)
		if err != nil {
			return nil
		}
		text, err := json.Marshal(schema)
		if err != nil {
			return nil
		}
		if pattern.MatchString(entry.Name) ||
			pattern.MatchString(entry.Description) ||
			pattern.Match(text) {
			out = append(out, Match{
				Name:        entry.Name,
				Description: entry.Description,
				Schema:      schema,
			})
		}
	}
	return out
}
