package sandbox

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/blockforge/modkit/editor"
	"github.com/blockforge/modkit/host"
)

func newTestHost(t *testing.T) (*Host, *[]host.Notice) {
	t.Helper()
	h := NewHost(NewWorld(), nil)
	var notices []host.Notice
	h.Bind(func(n host.Notice) { notices = append(notices, n) })
	return h, &notices
}

func kinds(notices []host.Notice) []host.NoticeKind {
	out := make([]host.NoticeKind, len(notices))
	for i, n := range notices {
		out[i] = n.Kind
	}
	return out
}

func TestHostOpenEditorNotices(t *testing.T) {
	h, notices := newTestHost(t)

	if h.Inspector() != nil {
		t.Error("Inspector should be nil before the editor opens")
	}

	h.OpenEditor()

	got := kinds(*notices)
	if len(got) != 2 || got[0] != host.NoticeSceneLoaded || got[1] != host.NoticeInspectorReady {
		t.Errorf("Expected scene.loaded then inspector.ready, got %v", got)
	}
	if (*notices)[0].Scene != SceneEditor {
		t.Errorf("Expected scene %q, got %q", SceneEditor, (*notices)[0].Scene)
	}
	if h.Inspector() == nil {
		t.Error("Inspector should be available once the editor is open")
	}

	// Opening twice posts nothing new.
	h.OpenEditor()
	if len(*notices) != 2 {
		t.Errorf("Expected 2 notices after double open, got %d", len(*notices))
	}
}

func TestHostCloseEditor(t *testing.T) {
	h, notices := newTestHost(t)
	h.OpenEditor()
	*notices = nil

	h.CloseEditor()

	got := kinds(*notices)
	if len(got) != 1 || got[0] != host.NoticeEditorClosed {
		t.Errorf("Expected editor.closed, got %v", got)
	}
	if h.Inspector() != nil {
		t.Error("Inspector should be nil after close")
	}

	h.CloseEditor()
	if len(*notices) != 1 {
		t.Error("Closing twice should post nothing new")
	}
}

func TestHostPlaytest(t *testing.T) {
	h, notices := newTestHost(t)

	// Playtest needs an open editor.
	h.StartPlaytest()
	if h.TestLevel() {
		t.Error("StartPlaytest without an open editor should be a no-op")
	}

	h.OpenEditor()
	*notices = nil

	h.StartPlaytest()
	if !h.TestLevel() {
		t.Error("TestLevel should report true during playtest")
	}
	if len(*notices) != 1 || (*notices)[0].Scene != editor.PlaytestScene {
		t.Errorf("Expected playtest scene notice, got %v", *notices)
	}

	h.EndPlaytest()
	if h.TestLevel() {
		t.Error("TestLevel should be false after EndPlaytest")
	}
	if len(*notices) != 2 || (*notices)[1].Scene != SceneEditor {
		t.Errorf("Expected editor scene notice, got %v", *notices)
	}
}

func TestHostBuiltinFolder(t *testing.T) {
	h, _ := newTestHost(t)

	folders := h.Folders()
	if len(folders) != 1 || folders[0].Name != "Blocks" {
		t.Fatalf("Expected the built-in Blocks folder, got %v", folders)
	}
	if len(folders[0].BlockIDs) != len(palette) {
		t.Errorf("Expected %d palette entries, got %d", len(palette), len(folders[0].BlockIDs))
	}
}

func TestGizmosCreateBlock(t *testing.T) {
	h, _ := newTestHost(t)
	anchor := rl.Vector3{X: 3, Y: 1, Z: -2}
	h.SetSpawnAnchor(anchor)

	if err := h.Gizmos().CreateBlock(BlockGrassCube); err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}

	if h.World().Len() != 1 {
		t.Fatalf("Expected 1 block in world, got %d", h.World().Len())
	}
	b := h.World().Blocks()[0]
	if b.Position() != anchor {
		t.Errorf("Expected block at spawn anchor %v, got %v", anchor, b.Position())
	}
	if items := h.Selection().Items(); len(items) != 1 || items[0] != host.Block(b) {
		t.Error("Created block should be selected")
	}
	if !h.gizmos.Active() {
		t.Error("Gizmo should be active after create")
	}

	if err := h.Gizmos().CreateBlock(12345); err == nil {
		t.Error("CreateBlock should surface unknown palette errors")
	}
}

func TestHostSelection(t *testing.T) {
	h, _ := newTestHost(t)
	a, _ := h.World().Spawn(BlockStoneCube)
	b, _ := h.World().Spawn(BlockGrassCube)

	h.Select(a)
	if !h.Selected(a) || h.Selected(b) {
		t.Error("Select should make a the only selected block")
	}

	h.ToggleSelect(b)
	if !h.Selected(a) || !h.Selected(b) {
		t.Error("ToggleSelect should add b")
	}

	h.ToggleSelect(a)
	if h.Selected(a) {
		t.Error("ToggleSelect should remove an already-selected block")
	}
	if !h.gizmos.Active() {
		t.Error("Gizmo should stay active while something is selected")
	}

	h.ToggleSelect(b)
	if h.gizmos.Active() {
		t.Error("Gizmo should deactivate when the selection empties")
	}

	h.Select(a)
	h.ToggleSelect(b)
	if n := h.DeleteSelected(); n != 2 {
		t.Errorf("Expected 2 deleted, got %d", n)
	}
	if h.World().Len() != 0 {
		t.Errorf("Expected empty world, got %d blocks", h.World().Len())
	}
}

func TestDeviceFlags(t *testing.T) {
	d := NewDevice("player1")
	if !d.MouseEnabled() || !d.KeyboardEnabled() {
		t.Error("Devices should start fully enabled")
	}

	d.SetMouseEnabled(false)
	d.SetKeyboardEnabled(false)
	if d.MouseEnabled() || d.KeyboardEnabled() {
		t.Error("Device flags should stick")
	}
	if d.Name() != "player1" {
		t.Errorf("Expected name player1, got %q", d.Name())
	}
}

// The full wiring: a session over the sandbox host, the way cmd/sandbox
// assembles it.
func TestHostSessionIntegration(t *testing.T) {
	h := NewHost(NewWorld(), nil)
	s, err := editor.NewSession(h)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer s.Close()
	h.Bind(s.Announce)

	var entered, tested, exited int
	s.EnteredEditor.Subscribe(func() { entered++ })
	s.EnteredTestMode.Subscribe(func() { tested++ })
	s.ExitedEditor.Subscribe(func() { exited++ })

	// Folder added before the editor opens waits in the queue.
	folder := editor.NewFolder("Mod Blocks").Blocks(BlockTeleportPad).Build()
	if err := s.AddCustomFolder(folder); err != nil {
		t.Fatalf("AddCustomFolder failed: %v", err)
	}
	if len(h.Folders()) != 1 {
		t.Fatal("Custom folder should not reach the inspector before the editor opens")
	}

	h.OpenEditor()
	s.Pump()

	if entered != 1 {
		t.Errorf("Expected EnteredEditor once, got %d", entered)
	}
	folders := h.Folders()
	if len(folders) != 2 || folders[1].Name != "Mod Blocks" {
		t.Errorf("Queued folder should flush on open, got %v", folders)
	}

	// Input blocking reaches the sandbox device.
	token := editor.NewToken("test")
	s.BlockMouse(token)
	if h.Device().MouseEnabled() {
		t.Error("BlockMouse should disable the device")
	}
	s.UnblockMouse(token)
	if !h.Device().MouseEnabled() {
		t.Error("UnblockMouse should restore the device")
	}

	// Block creation through the session lands in the world.
	h.SetSpawnAnchor(rl.Vector3{X: 5})
	pos := rl.Vector3{X: 1, Y: 0, Z: 1}
	b, err := s.CreateNewBlock(BlockTeleportPad, editor.Placement{Position: &pos, Deselect: true})
	if err != nil {
		t.Fatalf("CreateNewBlock failed: %v", err)
	}
	if b.Position() != pos {
		t.Errorf("Placement position not applied, got %v", b.Position())
	}
	if h.World().Len() != 1 {
		t.Errorf("Expected 1 block in world, got %d", h.World().Len())
	}
	if len(h.Selection().Items()) != 0 {
		t.Error("Deselect placement should leave nothing selected")
	}
	if h.gizmos.Active() {
		t.Error("Gizmo should be inactive after deselecting the only block")
	}

	// Playtest round trip.
	h.StartPlaytest()
	s.Pump()
	if tested != 1 {
		t.Errorf("Expected EnteredTestMode once, got %d", tested)
	}
	h.EndPlaytest()
	s.Pump()

	h.CloseEditor()
	s.Pump()
	if exited != 1 {
		t.Errorf("Expected ExitedEditor once, got %d", exited)
	}
}
