package changelog

import (
	"encoding/json"

	"site-settings/core/jsontree"
)

// Diff returns the changes that turn original into current.
// A nil original means every member of current was added.
func Diff(original, current *jsontree.Value) []Change {
	if original == nil {
		original = &jsontree.Value{Kind: jsontree.Object}
	}
	if original.Kind != jsontree.Object || current == nil || current.Kind != jsontree.Object {
		if jsontree.Equal(original, current) {
			return nil
		}
		return []Change{{Kind: Modified, OldValue: raw(original), NewValue: raw(current)}}
	}
	return diffObjects(original, current, "")
}

func diffObjects(original, current *jsontree.Value, prefix string) []Change {
	var changes []Change

	for _, m := range current.Members {
		path := join(prefix, m.Key)
		old := original.Get(m.Key)

		switch {
		case old == nil:
			changes = append(changes, Change{Kind: Added, Path: path, NewValue: raw(m.Value)})
		case m.Value.Kind == jsontree.Object && old.Kind == jsontree.Object:
			changes = append(changes, diffObjects(old, m.Value, path)...)
		case !jsontree.Equal(old, m.Value):
			changes = append(changes, Change{Kind: Modified, Path: path, OldValue: raw(old), NewValue: raw(m.Value)})
		}
	}

	for _, m := range original.Members {
		if !current.Has(m.Key) {
			changes = append(changes, Change{Kind: Deleted, Path: join(prefix, m.Key), OldValue: raw(m.Value)})
		}
	}

	return changes
}

// Missing returns the template keys that current lacks.
func Missing(template, current *jsontree.Value) []MissingItem {
	if template == nil || template.Kind != jsontree.Object {
		return nil
	}
	if current == nil || current.Kind != jsontree.Object {
		current = &jsontree.Value{Kind: jsontree.Object}
	}
	return missing(template, current, "")
}

func missing(template, current *jsontree.Value, prefix string) []MissingItem {
	var items []MissingItem
	for _, m := range template.Members {
		path := join(prefix, m.Key)
		have := current.Get(m.Key)
		switch {
		case have == nil:
			items = append(items, MissingItem{Key: m.Key, Path: path, Value: raw(m.Value), Type: m.Value.Kind.String()})
		case m.Value.Kind == jsontree.Object && have.Kind == jsontree.Object:
			items = append(items, missing(m.Value, have, path)...)
		}
	}
	return items
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func raw(v *jsontree.Value) json.RawMessage {
	out, err := jsontree.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return out
}
