package codec

import (
	"encoding/json"
	"fmt"
	"reflect"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// conv adapts a pair of typed functions to the Converter interface. Decode
// is forgiving, so the typed decoder returns no error.
type conv[T any] struct {
	enc func(T) any
	dec func(map[string]any) T
}

func (c conv[T]) GoType() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

func (c conv[T]) Encode(v any) (any, error) {
	tv, ok := v.(T)
	if !ok {
		return nil, fmt.Errorf("codec: expected %s, got %T", c.GoType(), v)
	}
	return c.enc(tv), nil
}

func (c conv[T]) Decode(obj map[string]any) (any, error) {
	return c.dec(obj), nil
}

// Wire shapes. Struct field order is the property order written to disk.

type vector2JSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type vector3JSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type vector4JSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

type colorJSON struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

type rectangleJSON struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

type boundingBoxJSON struct {
	Min vector3JSON `json:"min"`
	Max vector3JSON `json:"max"`
}

type rayJSON struct {
	Position  vector3JSON `json:"position"`
	Direction vector3JSON `json:"direction"`
}

type transformJSON struct {
	Translation vector3JSON `json:"translation"`
	Rotation    vector4JSON `json:"rotation"`
	Scale       vector3JSON `json:"scale"`
}

func vector2Converter() Converter {
	return conv[rl.Vector2]{
		enc: func(v rl.Vector2) any { return vector2JSON{X: v.X, Y: v.Y} },
		dec: func(obj map[string]any) rl.Vector2 {
			return rl.Vector2{X: num(obj, "x"), Y: num(obj, "y")}
		},
	}
}

func vector3Converter() Converter {
	return conv[rl.Vector3]{
		enc: func(v rl.Vector3) any { return wireVec3(v) },
		dec: func(obj map[string]any) rl.Vector3 {
			return rl.Vector3{X: num(obj, "x"), Y: num(obj, "y"), Z: num(obj, "z")}
		},
	}
}

// vector4Converter also serves rl.Quaternion, which is an alias of
// rl.Vector4.
func vector4Converter() Converter {
	return conv[rl.Vector4]{
		enc: func(v rl.Vector4) any { return wireVec4(v) },
		dec: func(obj map[string]any) rl.Vector4 { return vec4(obj) },
	}
}

func colorConverter() Converter {
	return conv[rl.Color]{
		enc: func(c rl.Color) any { return colorJSON{R: c.R, G: c.G, B: c.B, A: c.A} },
		dec: func(obj map[string]any) rl.Color {
			return rl.NewColor(channel(obj, "r"), channel(obj, "g"), channel(obj, "b"), channel(obj, "a"))
		},
	}
}

func rectangleConverter() Converter {
	return conv[rl.Rectangle]{
		enc: func(r rl.Rectangle) any {
			return rectangleJSON{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		},
		dec: func(obj map[string]any) rl.Rectangle {
			return rl.Rectangle{
				X:      num(obj, "x"),
				Y:      num(obj, "y"),
				Width:  num(obj, "width"),
				Height: num(obj, "height"),
			}
		},
	}
}

func boundingBoxConverter() Converter {
	return conv[rl.BoundingBox]{
		enc: func(b rl.BoundingBox) any {
			return boundingBoxJSON{Min: wireVec3(b.Min), Max: wireVec3(b.Max)}
		},
		dec: func(obj map[string]any) rl.BoundingBox {
			return rl.BoundingBox{Min: vec3(child(obj, "min")), Max: vec3(child(obj, "max"))}
		},
	}
}

func rayConverter() Converter {
	return conv[rl.Ray]{
		enc: func(r rl.Ray) any {
			return rayJSON{Position: wireVec3(r.Position), Direction: wireVec3(r.Direction)}
		},
		dec: func(obj map[string]any) rl.Ray {
			return rl.Ray{Position: vec3(child(obj, "position")), Direction: vec3(child(obj, "direction"))}
		},
	}
}

func transformConverter() Converter {
	return conv[rl.Transform]{
		enc: func(t rl.Transform) any {
			return transformJSON{
				Translation: wireVec3(t.Translation),
				Rotation:    wireVec4(t.Rotation),
				Scale:       wireVec3(t.Scale),
			}
		},
		dec: func(obj map[string]any) rl.Transform {
			return rl.Transform{
				Translation: vec3(child(obj, "translation")),
				Rotation:    vec4(child(obj, "rotation")),
				Scale:       vec3(child(obj, "scale")),
			}
		},
	}
}

func wireVec3(v rl.Vector3) vector3JSON {
	return vector3JSON{X: v.X, Y: v.Y, Z: v.Z}
}

func wireVec4(v rl.Vector4) vector4JSON {
	return vector4JSON{X: v.X, Y: v.Y, Z: v.Z, W: v.W}
}

// num reads a numeric property, tolerating missing or mistyped values.
func num(obj map[string]any, key string) float32 {
	switch n := obj[key].(type) {
	case float64:
		return float32(n)
	case json.Number:
		f, _ := n.Float64()
		return float32(f)
	}
	return 0
}

// channel reads a color channel clamped to its byte range.
func channel(obj map[string]any, key string) uint8 {
	f := num(obj, key)
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f)
}

func child(obj map[string]any, key string) map[string]any {
	m, _ := obj[key].(map[string]any)
	return m
}

func vec3(obj map[string]any) rl.Vector3 {
	return rl.Vector3{X: num(obj, "x"), Y: num(obj, "y"), Z: num(obj, "z")}
}

func vec4(obj map[string]any) rl.Vector4 {
	return rl.Vector4{X: num(obj, "x"), Y: num(obj, "y"), Z: num(obj, "z"), W: num(obj, "w")}
}
