package codec

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Unmarshal decodes data into v, rebuilding every value with a registered
// converter from its wire shape. v must be a non-nil pointer. Subtrees that
// cannot contain a converted type are decoded by encoding/json directly.
func (s *Set) Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("codec: unmarshal target must be a non-nil pointer, got %T", v)
	}
	return s.decode(data, rv.Elem())
}

func (s *Set) decode(data []byte, v reflect.Value) error {
	t := v.Type()
	if c, ok := s.conv[t]; ok {
		if isNull(data) {
			v.SetZero()
			return nil
		}
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("codec: decoding %s: %w", t, err)
		}
		out, err := c.Decode(obj)
		if err != nil {
			return fmt.Errorf("codec: decoding %s: %w", t, err)
		}
		ov := reflect.ValueOf(out)
		if !ov.IsValid() || ov.Type() != t {
			return fmt.Errorf("codec: converter for %s returned %T", t, out)
		}
		v.Set(ov)
		return nil
	}
	if !s.needsConversion(t) {
		return json.Unmarshal(data, v.Addr().Interface())
	}
	switch t.Kind() {
	case reflect.Pointer:
		if isNull(data) {
			v.SetZero()
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return s.decode(data, v.Elem())
	case reflect.Struct:
		return s.decodeStruct(data, v)
	case reflect.Slice:
		if isNull(data) {
			v.SetZero()
			return nil
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return fmt.Errorf("codec: decoding %s: %w", t, err)
		}
		out := reflect.MakeSlice(t, len(elems), len(elems))
		for i, e := range elems {
			if err := s.decode(e, out.Index(i)); err != nil {
				return err
			}
		}
		v.Set(out)
		return nil
	case reflect.Array:
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return fmt.Errorf("codec: decoding %s: %w", t, err)
		}
		n := v.Len()
		for i := 0; i < n && i < len(elems); i++ {
			if err := s.decode(elems[i], v.Index(i)); err != nil {
				return err
			}
		}
		for i := len(elems); i < n; i++ {
			v.Index(i).SetZero()
		}
		return nil
	case reflect.Map:
		if isNull(data) {
			v.SetZero()
			return nil
		}
		var elems map[string]json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return fmt.Errorf("codec: decoding %s: %w", t, err)
		}
		if v.IsNil() {
			v.Set(reflect.MakeMapWithSize(t, len(elems)))
		}
		for k, e := range elems {
			kv, err := decodeMapKey(t.Key(), k)
			if err != nil {
				return err
			}
			ev := reflect.New(t.Elem()).Elem()
			if err := s.decode(e, ev); err != nil {
				return err
			}
			v.SetMapIndex(kv, ev)
		}
		return nil
	default:
		return json.Unmarshal(data, v.Addr().Interface())
	}
}

func (s *Set) decodeStruct(data []byte, v reflect.Value) error {
	if isNull(data) {
		return nil
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("codec: decoding %s: %w", v.Type(), err)
	}
	return s.decodeStructFields(raw, v)
}

func (s *Set) decodeStructFields(raw map[string]json.RawMessage, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _ := parseTag(tag)
		fv := v.Field(i)
		if f.Anonymous && name == "" {
			ev := fv
			if ev.Kind() == reflect.Pointer && ev.Type().Elem().Kind() == reflect.Struct {
				if ev.IsNil() {
					// Allocate like encoding/json does: only when the
					// document holds one of the promoted fields, and never
					// through an unexported pointer.
					if !ev.CanSet() || !anyFieldPresent(raw, ev.Type().Elem(), map[reflect.Type]bool{}) {
						continue
					}
					ev.Set(reflect.New(ev.Type().Elem()))
				}
				ev = ev.Elem()
			}
			if ev.Kind() == reflect.Struct {
				if err := s.decodeStructFields(raw, ev); err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fragment, ok := lookupField(raw, name)
		if !ok {
			continue
		}
		if err := s.decode(fragment, fv); err != nil {
			return err
		}
	}
	return nil
}

// anyFieldPresent reports whether raw holds a property that would decode
// into some field of struct type t, following promoted embedded fields.
// seen breaks embedding cycles.
func anyFieldPresent(raw map[string]json.RawMessage, t reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _ := parseTag(tag)
		if f.Anonymous && name == "" {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if anyFieldPresent(raw, et, seen) {
					return true
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if _, ok := lookupField(raw, name); ok {
			return true
		}
	}
	return false
}

// lookupField prefers an exact property name and falls back to a
// case-insensitive match, the way encoding/json resolves fields.
func lookupField(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if frag, ok := raw[name]; ok {
		return frag, true
	}
	for k, frag := range raw {
		if strings.EqualFold(k, name) {
			return frag, true
		}
	}
	return nil, false
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func decodeMapKey(t reflect.Type, k string) (reflect.Value, error) {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		kv := reflect.New(t)
		if err := kv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(k)); err != nil {
			return reflect.Value{}, fmt.Errorf("codec: map key %q: %w", k, err)
		}
		return kv.Elem(), nil
	}
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(k).Convert(t), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("codec: map key %q: %w", k, err)
		}
		kv := reflect.New(t).Elem()
		kv.SetInt(n)
		return kv, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("codec: map key %q: %w", k, err)
		}
		kv := reflect.New(t).Elem()
		kv.SetUint(n)
		return kv, nil
	}
	return reflect.Value{}, fmt.Errorf("codec: unsupported map key type %s", t)
}

func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}
