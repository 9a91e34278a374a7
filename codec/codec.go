// Package codec marshals Go values to the JSON shape Blockforge uses for
// levels and mod settings. Engine value types such as vectors, colors and
// transforms are written as lowercase property objects instead of their raw
// Go field names, so files stay readable by the game and by other tools.
//
// A Set holds the converters that perform the replacement. Values whose type
// has no converter anywhere beneath them are handed to encoding/json
// untouched, so ordinary structs keep their usual tags and behavior.
package codec

import (
	"reflect"
	"sort"
)

// Converter rewrites one Go type between its in-memory form and its JSON
// object form.
type Converter interface {
	// GoType reports the exact type this converter handles.
	GoType() reflect.Type

	// Encode turns a value of GoType into its wire shape. The result is
	// marshaled by encoding/json as-is, so nested engine values must
	// already be in their wire shape.
	Encode(v any) (any, error)

	// Decode rebuilds a value of GoType from a decoded JSON object.
	// Missing properties default to zero and unknown properties are
	// ignored, so files written by older or newer versions still load.
	Decode(obj map[string]any) (any, error)
}

// Set is a registry of converters keyed by Go type. Create one with NewSet.
//
// When a converter applies somewhere beneath a struct, the set walks the
// struct itself instead of delegating it. The walk flattens untagged
// embedded structs like encoding/json, unexported embedded struct types
// included. A property name promoted at two depths keeps the shallowest
// field and drops equal-depth duplicates; an unexported embedded field
// carrying its own json tag is omitted. Decoding fills every field a
// promoted name reaches and leaves a nil embedded pointer nil unless the
// document holds one of its properties.
//
// A Set is not safe for concurrent use. Like the rest of the editor surface
// it belongs to the host's main thread; register converters during mod
// initialization.
type Set struct {
	conv map[reflect.Type]Converter

	// memo caches which types can contain a converted value. Mutated
	// during Marshal and Unmarshal, reset whenever the set changes.
	memo map[reflect.Type]bool
}

// NewSet returns a set holding the given converters.
func NewSet(convs ...Converter) *Set {
	s := &Set{
		conv: make(map[reflect.Type]Converter),
		memo: make(map[reflect.Type]bool),
	}
	for _, c := range convs {
		s.Add(c)
	}
	return s
}

// Add registers a converter. It panics if the set already has a converter
// for the same type, since a silent override would change how every value
// of that type is written.
func (s *Set) Add(c Converter) {
	t := c.GoType()
	if _, exists := s.conv[t]; exists {
		panic("codec: converter already registered for " + t.String())
	}
	s.conv[t] = c
	clear(s.memo)
}

// Remove drops the converter for t and reports whether one was registered.
func (s *Set) Remove(t reflect.Type) bool {
	if _, ok := s.conv[t]; !ok {
		return false
	}
	delete(s.conv, t)
	clear(s.memo)
	return true
}

// Lookup returns the converter registered for t.
func (s *Set) Lookup(t reflect.Type) (Converter, bool) {
	c, ok := s.conv[t]
	return c, ok
}

// Types lists the registered types sorted by name.
func (s *Set) Types() []reflect.Type {
	out := make([]reflect.Type, 0, len(s.conv))
	for t := range s.conv {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Default holds the converters for the engine value types Blockforge levels
// and mod settings use. Mods may register their own converters on it.
var Default = NewSet(
	vector2Converter(),
	vector3Converter(),
	vector4Converter(),
	colorConverter(),
	rectangleConverter(),
	boundingBoxConverter(),
	rayConverter(),
	transformConverter(),
)

// Register adds a converter to the Default set.
func Register(c Converter) { Default.Add(c) }

// Marshal encodes v using the Default set.
func Marshal(v any) ([]byte, error) { return Default.Marshal(v) }

// MarshalIndent encodes v using the Default set with indentation.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return Default.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes data into v using the Default set.
func Unmarshal(data []byte, v any) error { return Default.Unmarshal(data, v) }
