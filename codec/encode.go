package codec

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshal encodes v, rewriting every value with a registered converter into
// its wire shape. Subtrees that cannot contain a converted type are handed
// to encoding/json untouched.
func (s *Set) Marshal(v any) ([]byte, error) {
	tree, err := s.encode(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// MarshalIndent is like Marshal with the indentation of json.MarshalIndent.
func (s *Set) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	tree, err := s.encode(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(tree, prefix, indent)
}

func (s *Set) encode(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	t := v.Type()
	if c, ok := s.conv[t]; ok {
		return c.Encode(v.Interface())
	}
	if !s.needsConversion(t) {
		return v.Interface(), nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return s.encode(v.Elem())
	case reflect.Struct:
		obj := &object{}
		if err := s.encodeStructFields(v, obj, 0); err != nil {
			return nil, err
		}
		return obj, nil
	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		return s.encodeList(v)
	case reflect.Array:
		return s.encodeList(v)
	case reflect.Map:
		return s.encodeMap(v)
	default:
		return v.Interface(), nil
	}
}

// encodeStructFields writes v's fields into obj, flattening untagged
// embedded structs the way encoding/json does. Embedded fields of
// unexported struct types still promote: reflect lets their exported fields
// through, only the embedded value itself is off limits. depth is the
// embedding level a field was found at, used to resolve name conflicts.
func (s *Set) encodeStructFields(v reflect.Value, obj *object, depth int) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, omitEmpty := parseTag(tag)
		fv := v.Field(i)
		if f.Anonymous && name == "" {
			ev := fv
			if ev.Kind() == reflect.Pointer {
				if ev.IsNil() {
					continue
				}
				ev = ev.Elem()
			}
			if ev.Kind() == reflect.Struct {
				if err := s.encodeStructFields(ev, obj, depth+1); err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if omitEmpty && isEmptyValue(fv) {
			continue
		}
		if name == "" {
			name = f.Name
		}
		enc, err := s.encode(fv)
		if err != nil {
			return err
		}
		obj.setAt(name, enc, depth)
	}
	return nil
}

func (s *Set) encodeList(v reflect.Value) (any, error) {
	out := make([]any, v.Len())
	for i := range out {
		enc, err := s.encode(v.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func (s *Set) encodeMap(v reflect.Value) (any, error) {
	if v.IsNil() {
		return nil, nil
	}
	keys := v.MapKeys()
	names := make([]string, len(keys))
	byName := make(map[string]reflect.Value, len(keys))
	for i, k := range keys {
		name, err := mapKeyString(k)
		if err != nil {
			return nil, err
		}
		names[i] = name
		byName[name] = v.MapIndex(k)
	}
	// encoding/json writes map entries sorted by key; keep that.
	sort.Strings(names)
	obj := &object{}
	for _, name := range names {
		enc, err := s.encode(byName[name])
		if err != nil {
			return nil, err
		}
		obj.set(name, enc)
	}
	return obj, nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		return string(b), err
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", fmt.Errorf("codec: unsupported map key type %s", k.Type())
}

var (
	jsonMarshalerType   = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
)

// needsConversion reports whether a value of type t can contain a registered
// type anywhere beneath it. Types that implement their own JSON encoding are
// treated as opaque and delegated to encoding/json.
func (s *Set) needsConversion(t reflect.Type) bool {
	if hit, ok := s.memo[t]; ok {
		return hit
	}
	// Provisional entry so recursive types terminate. Erring toward true
	// only costs the slow path, never correctness.
	s.memo[t] = true
	need := s.computeNeeds(t)
	s.memo[t] = need
	return need
}

func (s *Set) computeNeeds(t reflect.Type) bool {
	if _, ok := s.conv[t]; ok {
		return true
	}
	if selfEncoding(t) {
		return false
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
		return s.needsConversion(t.Elem())
	case reflect.Interface:
		// The dynamic type is only known at encode time.
		return true
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() && !f.Anonymous {
				continue
			}
			if f.Tag.Get("json") == "-" {
				continue
			}
			if s.needsConversion(f.Type) {
				return true
			}
		}
	}
	return false
}

func selfEncoding(t reflect.Type) bool {
	return t.Implements(jsonMarshalerType) ||
		reflect.PointerTo(t).Implements(jsonMarshalerType) ||
		t.Implements(jsonUnmarshalerType) ||
		reflect.PointerTo(t).Implements(jsonUnmarshalerType)
}

// object is a JSON object that keeps its properties in insertion order,
// unlike map[string]any which encoding/json writes alphabetically. Each
// property remembers the embedding depth that set it, so promoted name
// conflicts resolve like encoding/json: the shallowest field wins and
// equal-depth duplicates are dropped.
type object struct {
	keys   []string
	vals   []any
	depths []int
	dead   []bool
}

func (o *object) set(key string, val any) { o.setAt(key, val, 0) }

func (o *object) setAt(key string, val any, depth int) {
	for i, k := range o.keys {
		if k != key {
			continue
		}
		switch {
		case depth < o.depths[i]:
			o.vals[i] = val
			o.depths[i] = depth
			o.dead[i] = false
		case depth == o.depths[i]:
			o.dead[i] = true
		}
		return
	}
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, val)
	o.depths = append(o.depths, depth)
	o.dead = append(o.dead, false)
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for i, k := range o.keys {
		if o.dead[i] {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func parseTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
