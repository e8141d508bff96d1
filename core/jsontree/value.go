package jsontree

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind is the type tag of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Value is a node of a JSON document. Only the field matching Kind is meaningful.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  json.Number
	Str     string
	Items   []*Value
	Members []Member
}

// Get returns the member value for key, or nil when v is not an object or lacks key.
func (v *Value) Get(key string) *Value {
	if v == nil || v.Kind != Object {
		return nil
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Has reports whether the object v has a member named key.
func (v *Value) Has(key string) bool {
	return v.Get(key) != nil
}

// ReplaceStrings returns a copy of v where every string value has each
// occurrence of old replaced by repl. Object keys and non-string scalars are
// left untouched.
func ReplaceStrings(v *Value, old, repl string) *Value {
	return Transform(v, func(s string) string {
		if old == "" {
			return s
		}
		return strings.ReplaceAll(s, old, repl)
	})
}

// Transform returns a copy of v with fn applied to every string value.
func Transform(v *Value, fn func(string) string) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case String:
		return &Value{Kind: String, Str: fn(v.Str)}
	case Array:
		items := make([]*Value, len(v.Items))
		for i, it := range v.Items {
			items[i] = Transform(it, fn)
		}
		return &Value{Kind: Array, Items: items}
	case Object:
		members := make([]Member, len(v.Members))
		for i, m := range v.Members {
			members[i] = Member{Key: m.Key, Value: Transform(m.Value, fn)}
		}
		return &Value{Kind: Object, Members: members}
	default:
		cp := *v
		return &cp
	}
}

// Equal reports whether a and b hold the same JSON value.
// Object member order is not significant; numbers compare numerically.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Null:
		return true
	case Bool:
		return a.Bool == b.Bool
	case Number:
		if a.Number == b.Number {
			return true
		}
		fa, errA := a.Number.Float64()
		fb, errB := b.Number.Float64()
		return errA == nil && errB == nil && fa == fb
	case String:
		return a.Str == b.Str
	case Array:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.Members) != len(b.Members) {
			return false
		}
		for _, m := range a.Members {
			other := b.Get(m.Key)
			if other == nil || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}
