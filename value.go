package cson

import "iter"

// Kind represents the variant held by a [Value].
type Kind int8

const (
	Null = Kind(iota)
	Boolean
	Number
	String
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		panic("Unknown Kind")
	}
}

// Value is one node of a parsed CSON document. Exactly one payload field is
// meaningful, selected by Kind. For a [Number], Str additionally holds the
// source text of the literal so callers that care about the exact decimal
// form can recover it.
type Value struct {
	Kind  Kind
	Str   string
	Num   float64
	Bool  bool
	Items []*Value
	Map   *Mapping
}

// Mapping is an ordered collection of key/value pairs. Keys are bare
// identifiers and are unique: setting a key that is already present
// replaces its value in place, so the last occurrence in a document wins
// while the key keeps its original position.
type Mapping struct {
	pairs []pair
	index map[string]int
}

type pair struct {
	key   string
	value *Value
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{index: map[string]int{}}
}

// Set binds key to value, preserving the position of an existing key.
func (m *Mapping) Set(key string, value *Value) {
	if i, ok := m.index[key]; ok {
		m.pairs[i].value = value
		return
	}
	m.index[key] = len(m.pairs)
	m.pairs = append(m.pairs, pair{key, value})
}

// Get returns the value bound to key, if any.
func (m *Mapping) Get(key string) (*Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.pairs[i].value, true
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.pairs)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.key
	}
	return keys
}

// All iterates over the entries in insertion order.
func (m *Mapping) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for _, p := range m.pairs {
			if !yield(p.key, p.value) {
				return
			}
		}
	}
}
