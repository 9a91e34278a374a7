package codec

import (
	"encoding/json"
	"reflect"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/go-cmp/cmp"
)

type checkpoint struct {
	Name   string
	Origin rl.Vector3
	Tint   rl.Color
	Active bool
}

func TestMarshalKeepsFieldOrder(t *testing.T) {
	cp := checkpoint{
		Name:   "spawn",
		Origin: rl.NewVector3(1, 2, 3),
		Tint:   rl.NewColor(255, 128, 0, 255),
		Active: true,
	}

	got, err := Marshal(cp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"Name":"spawn","Origin":{"x":1,"y":2,"z":3},"Tint":{"r":255,"g":128,"b":0,"a":255},"Active":true}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	in := checkpoint{
		Name:   "exit",
		Origin: rl.NewVector3(-4.5, 0.25, 12),
		Tint:   rl.NewColor(10, 20, 30, 40),
		Active: true,
	}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out checkpoint
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMissingPropertiesDefault(t *testing.T) {
	var v rl.Vector3
	if err := Unmarshal([]byte(`{"x": 7}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := rl.NewVector3(7, 0, 0)
	if v != want {
		t.Errorf("got %+v, want %+v", v, want)
	}
}

func TestDecodeUnknownPropertiesIgnored(t *testing.T) {
	var v rl.Vector2
	if err := Unmarshal([]byte(`{"x":1,"y":2,"heading":99,"label":"old"}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v != rl.NewVector2(1, 2) {
		t.Errorf("got %+v, want {1 2}", v)
	}
}

func TestPlainValuesMatchStdlib(t *testing.T) {
	type plain struct {
		ID    int      `json:"id"`
		Tags  []string `json:"tags,omitempty"`
		Notes map[string]int
	}
	v := plain{ID: 3, Tags: []string{"a", "b"}, Notes: map[string]int{"z": 1, "a": 2}}

	got, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Marshal = %s, want stdlib output %s", got, want)
	}
}

func TestMarshalIndent(t *testing.T) {
	type settings struct {
		Anchor rl.Vector2 `json:"anchor"`
	}
	got, err := MarshalIndent(settings{Anchor: rl.NewVector2(3, 4)}, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	want := "{\n  \"anchor\": {\n    \"x\": 3,\n    \"y\": 4\n  }\n}"
	if string(got) != want {
		t.Errorf("MarshalIndent = %q, want %q", got, want)
	}
}

func TestSliceAndMapOfConverted(t *testing.T) {
	path := []rl.Vector2{rl.NewVector2(0, 0), rl.NewVector2(1, 1)}
	got, err := Marshal(path)
	if err != nil {
		t.Fatalf("Marshal slice: %v", err)
	}
	want := `[{"x":0,"y":0},{"x":1,"y":1}]`
	if string(got) != want {
		t.Errorf("Marshal slice = %s, want %s", got, want)
	}

	marks := map[string]rl.Vector2{"b": rl.NewVector2(2, 2), "a": rl.NewVector2(1, 1)}
	got, err = Marshal(marks)
	if err != nil {
		t.Fatalf("Marshal map: %v", err)
	}
	want = `{"a":{"x":1,"y":1},"b":{"x":2,"y":2}}`
	if string(got) != want {
		t.Errorf("Marshal map = %s, want %s", got, want)
	}

	var back map[string]rl.Vector2
	if err := Unmarshal(got, &back); err != nil {
		t.Fatalf("Unmarshal map: %v", err)
	}
	if diff := cmp.Diff(marks, back); diff != "" {
		t.Errorf("map round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerToConverted(t *testing.T) {
	type hint struct {
		At *rl.Vector3 `json:"at"`
	}

	got, err := Marshal(hint{})
	if err != nil {
		t.Fatalf("Marshal nil pointer: %v", err)
	}
	if string(got) != `{"at":null}` {
		t.Errorf("Marshal nil pointer = %s", got)
	}

	v := rl.NewVector3(9, 8, 7)
	got, err = Marshal(hint{At: &v})
	if err != nil {
		t.Fatalf("Marshal pointer: %v", err)
	}
	if string(got) != `{"at":{"x":9,"y":8,"z":7}}` {
		t.Errorf("Marshal pointer = %s", got)
	}

	var out hint
	if err := Unmarshal(got, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.At == nil || *out.At != v {
		t.Errorf("got %+v, want pointer to %+v", out.At, v)
	}
}

func TestAddRemoveChangesOutput(t *testing.T) {
	s := NewSet(vector3Converter())
	v := rl.NewVector3(1, 2, 3)

	got, err := s.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != `{"x":1,"y":2,"z":3}` {
		t.Errorf("converted output = %s", got)
	}

	if !s.Remove(reflect.TypeOf(rl.Vector3{})) {
		t.Fatal("Remove reported no converter registered")
	}
	got, err = s.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal after Remove: %v", err)
	}
	native, _ := json.Marshal(v)
	if string(got) != string(native) {
		t.Errorf("after Remove got %s, want stdlib output %s", got, native)
	}

	s.Add(vector3Converter())
	got, err = s.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal after re-Add: %v", err)
	}
	if string(got) != `{"x":1,"y":2,"z":3}` {
		t.Errorf("after re-Add got %s", got)
	}
}

func TestAddDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Add accepted a duplicate converter")
		}
	}()
	NewSet(vector3Converter(), vector3Converter())
}

func TestLookupAndTypes(t *testing.T) {
	if _, ok := Default.Lookup(reflect.TypeOf(rl.Vector3{})); !ok {
		t.Error("Default has no Vector3 converter")
	}
	if _, ok := Default.Lookup(reflect.TypeOf(struct{}{})); ok {
		t.Error("Lookup found a converter for an unregistered type")
	}

	types := Default.Types()
	if len(types) == 0 {
		t.Fatal("Types returned nothing")
	}
	for i := 1; i < len(types); i++ {
		if types[i-1].String() > types[i].String() {
			t.Errorf("Types not sorted: %s before %s", types[i-1], types[i])
		}
	}
}

type spawnPoint struct {
	Label string
	At    rl.Vector3
}

type spawnPointConverter struct{}

func (spawnPointConverter) GoType() reflect.Type { return reflect.TypeOf(spawnPoint{}) }

func (spawnPointConverter) Encode(v any) (any, error) {
	p := v.(spawnPoint)
	return struct {
		Label string      `json:"label"`
		At    vector3JSON `json:"at"`
	}{p.Label, wireVec3(p.At)}, nil
}

func (spawnPointConverter) Decode(obj map[string]any) (any, error) {
	label, _ := obj["label"].(string)
	return spawnPoint{Label: label, At: vec3(child(obj, "at"))}, nil
}

func TestCustomConverter(t *testing.T) {
	s := NewSet(vector3Converter(), spawnPointConverter{})
	in := spawnPoint{Label: "start", At: rl.NewVector3(5, 0, 5)}

	data, err := s.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"label":"start","at":{"x":5,"y":0,"z":5}}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var out spawnPoint
	if err := s.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalBadTarget(t *testing.T) {
	if err := Unmarshal([]byte(`{}`), checkpoint{}); err == nil {
		t.Error("Unmarshal accepted a non-pointer target")
	}
	var p *checkpoint
	if err := Unmarshal([]byte(`{}`), p); err == nil {
		t.Error("Unmarshal accepted a nil pointer target")
	}
}

func TestSelfEncodingTypesAreDelegated(t *testing.T) {
	raw := json.RawMessage(`{"keep":"verbatim"}`)
	type wrapper struct {
		Payload json.RawMessage `json:"payload"`
		Anchor  rl.Vector2      `json:"anchor"`
	}
	got, err := Marshal(wrapper{Payload: raw, Anchor: rl.NewVector2(1, 2)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"payload":{"keep":"verbatim"},"anchor":{"x":1,"y":2}}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestUnexportedEmbeddedFieldsPromote(t *testing.T) {
	type stats struct {
		HP     int        `json:"hp"`
		Anchor rl.Vector2 `json:"anchor"`
	}
	type enemy struct {
		stats
		Name string `json:"name"`
	}
	in := enemy{stats: stats{HP: 40, Anchor: rl.NewVector2(3, 4)}, Name: "grunt"}

	got, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"hp":40,"anchor":{"x":3,"y":4},"name":"grunt"}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	var out enemy
	if err := Unmarshal(got, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.HP != in.HP || out.Anchor != in.Anchor || out.Name != in.Name {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestPromotedNameConflicts(t *testing.T) {
	type base struct {
		Kind   string     `json:"kind"`
		Anchor rl.Vector2 `json:"anchor"`
	}

	// The shallower field wins whichever side of it the embedding sits on.
	type sprite struct {
		Kind string `json:"kind"`
		base
	}
	got, err := Marshal(sprite{Kind: "outer", base: base{Kind: "inner", Anchor: rl.NewVector2(1, 2)}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"kind":"outer","anchor":{"x":1,"y":2}}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	type decal struct {
		base
		Kind string `json:"kind"`
	}
	got, err = Marshal(decal{base: base{Kind: "inner", Anchor: rl.NewVector2(1, 2)}, Kind: "outer"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	// Equal-depth duplicates are dropped, like encoding/json.
	type idA struct {
		ID string `json:"id"`
	}
	type idB struct {
		ID string `json:"id"`
	}
	type badge struct {
		idA
		idB
		Anchor rl.Vector2 `json:"anchor"`
	}
	got, err = Marshal(badge{idA: idA{ID: "a"}, idB: idB{ID: "b"}, Anchor: rl.NewVector2(5, 6)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != `{"anchor":{"x":5,"y":6}}` {
		t.Errorf("Marshal = %s, want the ambiguous id dropped", got)
	}
}

func TestNilEmbeddedPointerStaysNil(t *testing.T) {
	type Glow struct {
		Tint rl.Color `json:"tint"`
	}
	type crate struct {
		*Glow
		Width float32 `json:"width"`
	}

	got, err := Marshal(crate{Width: 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != `{"width":3}` {
		t.Errorf("Marshal = %s, want the nil embedding omitted", got)
	}

	var out crate
	if err := Unmarshal(got, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Glow != nil {
		t.Errorf("Glow = %+v after decoding a document without its fields, want nil", out.Glow)
	}
	if out.Width != 3 {
		t.Errorf("Width = %v, want 3", out.Width)
	}

	var lit crate
	if err := Unmarshal([]byte(`{"width":3,"tint":{"r":9,"g":8,"b":7,"a":255}}`), &lit); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if lit.Glow == nil || lit.Glow.Tint != rl.NewColor(9, 8, 7, 255) {
		t.Errorf("Glow = %+v, want the promoted tint decoded", lit.Glow)
	}

	// A nil pointer embedding of an unexported type cannot be allocated
	// from outside; its properties are left alone instead of panicking.
	type glow struct {
		Tint rl.Color `json:"tint"`
	}
	type lamp struct {
		*glow
		Width float32 `json:"width"`
	}
	var l lamp
	if err := Unmarshal([]byte(`{"width":2,"tint":{"r":1,"g":2,"b":3,"a":4}}`), &l); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if l.glow != nil {
		t.Errorf("glow = %+v, want nil", l.glow)
	}
	if l.Width != 2 {
		t.Errorf("Width = %v, want 2", l.Width)
	}
}
