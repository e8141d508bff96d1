package changelog

import "encoding/json"

// Kind classifies a single change.
type Kind string

const (
	Added    Kind = "added"
	Modified Kind = "modified"
	Deleted  Kind = "deleted"
)

// Change describes one difference between two documents.
type Change struct {
	// Kind is added, modified or deleted.
	Kind Kind `json:"type"`
	// Path is the dotted key path, empty for the document root.
	Path string `json:"path"`
	// OldValue is the previous value as JSON, unset for additions.
	OldValue json.RawMessage `json:"old_value,omitempty"`
	// NewValue is the new value as JSON, unset for deletions.
	NewValue json.RawMessage `json:"new_value,omitempty"`
}

// MissingItem is a template key absent from a configuration.
type MissingItem struct {
	Key   string          `json:"key"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
	// Type is the JSON kind of the template value (string, number, object...).
	Type string `json:"type"`
}
