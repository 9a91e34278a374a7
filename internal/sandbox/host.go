package sandbox

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/blockforge/modkit/editor"
	"github.com/blockforge/modkit/host"
)

// SceneEditor is the scene name announced while the level editor is active.
const SceneEditor = "Editor"

var (
	_ host.Host        = (*Host)(nil)
	_ host.InputDevice = (*Device)(nil)
	_ host.Selection   = (*Selection)(nil)
	_ host.Gizmos      = (*Gizmos)(nil)
	_ host.Inspector   = (*Inspector)(nil)
	_ host.Block       = (*Block)(nil)
)

// Host adapts the sandbox world to the surface mods consume through a
// session. The editor loop mutates it on the main thread; the session reads
// it from Pump on the same thread.
type Host struct {
	world *World
	log   *slog.Logger

	devices   []*Device
	selection *Selection
	gizmos    *Gizmos
	inspector *Inspector

	editorOpen bool
	playtest   bool

	// spawnAnchor is where newly created blocks appear. The editor loop
	// keeps it a few units in front of the camera.
	spawnAnchor rl.Vector3

	announce func(host.Notice)
}

// NewHost wraps a world. The returned host has one input device, the
// built-in palette folder, and the editor closed.
func NewHost(w *World, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	h := &Host{
		world:     w,
		log:       log,
		selection: &Selection{},
		inspector: &Inspector{},
		devices:   []*Device{NewDevice("player1")},
	}
	h.gizmos = &Gizmos{host: h}
	h.inspector.AddFolder(builtinFolder())
	return h
}

func builtinFolder() host.Folder {
	f := host.Folder{Name: "Blocks"}
	for _, p := range palette {
		f.BlockIDs = append(f.BlockIDs, p.ID)
	}
	return f
}

// Bind points lifecycle notices at a session mailbox. Pass s.Announce.
func (h *Host) Bind(announce func(host.Notice)) { h.announce = announce }

func (h *Host) post(n host.Notice) {
	if h.announce != nil {
		h.announce(n)
	}
}

func (h *Host) Devices() []host.InputDevice {
	out := make([]host.InputDevice, len(h.devices))
	for i, d := range h.devices {
		out[i] = d
	}
	return out
}

func (h *Host) Selection() host.Selection { return h.selection }

func (h *Host) Gizmos() host.Gizmos { return h.gizmos }

// Inspector is nil until the editor opens, matching the readiness rules the
// session's folder queue is built around.
func (h *Host) Inspector() host.Inspector {
	if !h.editorOpen {
		return nil
	}
	return h.inspector
}

func (h *Host) TestLevel() bool { return h.playtest }

// Device returns the primary input device the editor loop polls.
func (h *Host) Device() *Device { return h.devices[0] }

// World returns the level under edit.
func (h *Host) World() *World { return h.world }

// Folders lists the inspector folders in applied order, editor open or not.
// The draw code uses this; mods go through the session instead.
func (h *Host) Folders() []host.Folder { return h.inspector.Folders() }

// SetSpawnAnchor moves the point where created blocks appear.
func (h *Host) SetSpawnAnchor(p rl.Vector3) { h.spawnAnchor = p }

// OpenEditor makes the inspector available and announces the editor scene.
// Opening twice is a no-op.
func (h *Host) OpenEditor() {
	if h.editorOpen {
		return
	}
	h.editorOpen = true
	h.post(host.Notice{Kind: host.NoticeSceneLoaded, Scene: SceneEditor})
	h.post(host.Notice{Kind: host.NoticeInspectorReady})
	h.log.Info("editor opened")
}

// CloseEditor tears the editing state down and announces it.
func (h *Host) CloseEditor() {
	if !h.editorOpen {
		return
	}
	h.editorOpen = false
	h.playtest = false
	h.DeselectAll()
	h.post(host.Notice{Kind: host.NoticeEditorClosed})
	h.log.Info("editor closed")
}

func (h *Host) EditorOpen() bool { return h.editorOpen }

// StartPlaytest flips the host into test-level mode and loads the playtest
// scene. The editing tools stay out of the way until EndPlaytest.
func (h *Host) StartPlaytest() {
	if h.playtest || !h.editorOpen {
		return
	}
	h.playtest = true
	h.DeselectAll()
	h.post(host.Notice{Kind: host.NoticeSceneLoaded, Scene: editor.PlaytestScene})
	h.log.Info("playtest started")
}

// EndPlaytest returns to the editor scene.
func (h *Host) EndPlaytest() {
	if !h.playtest {
		return
	}
	h.playtest = false
	h.post(host.Notice{Kind: host.NoticeSceneLoaded, Scene: SceneEditor})
	h.log.Info("playtest ended")
}

func (h *Host) Playtest() bool { return h.playtest }

// Select makes b the only selected block and shows the gizmo.
func (h *Host) Select(b *Block) {
	if b == nil {
		return
	}
	h.selection.blocks = []*Block{b}
	h.gizmos.active = true
}

// ToggleSelect adds b to the selection, or removes it when already selected.
func (h *Host) ToggleSelect(b *Block) {
	if b == nil {
		return
	}
	for i, cur := range h.selection.blocks {
		if cur == b {
			h.selection.RemoveAt(i)
			if len(h.selection.blocks) == 0 {
				h.gizmos.active = false
			}
			return
		}
	}
	h.selection.blocks = append(h.selection.blocks, b)
	h.gizmos.active = true
}

// DeselectAll clears the selection and hides the gizmo.
func (h *Host) DeselectAll() {
	h.selection.blocks = nil
	h.gizmos.active = false
}

// Selected reports whether b is in the current selection.
func (h *Host) Selected(b *Block) bool { return h.selection.Contains(b) }

// DeleteSelected removes every selected block from the world and returns how
// many went.
func (h *Host) DeleteSelected() int {
	n := len(h.selection.blocks)
	for _, b := range h.selection.blocks {
		h.world.Remove(b)
	}
	h.DeselectAll()
	return n
}

// Device is the mouse/keyboard pair for one player. The editor loop checks
// the flags before reading raylib input, which is how mod input blocking
// takes effect.
type Device struct {
	name     string
	mouse    bool
	keyboard bool
}

func NewDevice(name string) *Device {
	return &Device{name: name, mouse: true, keyboard: true}
}

func (d *Device) Name() string { return d.name }

func (d *Device) SetMouseEnabled(enabled bool)    { d.mouse = enabled }
func (d *Device) SetKeyboardEnabled(enabled bool) { d.keyboard = enabled }

func (d *Device) MouseEnabled() bool    { return d.mouse }
func (d *Device) KeyboardEnabled() bool { return d.keyboard }

// Selection is the ordered selection. The newest selected block is last,
// which is what CreateNewBlock relies on.
type Selection struct {
	blocks []*Block
}

func (s *Selection) Items() []host.Block {
	out := make([]host.Block, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = b
	}
	return out
}

func (s *Selection) RemoveAt(i int) {
	if i < 0 || i >= len(s.blocks) {
		return
	}
	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
}

// Blocks returns the selected blocks in order for drawing.
func (s *Selection) Blocks() []*Block { return s.blocks }

func (s *Selection) Contains(b *Block) bool {
	for _, cur := range s.blocks {
		if cur == b {
			return true
		}
	}
	return false
}

// Gizmos creates blocks and tracks whether the transform gizmo shows.
type Gizmos struct {
	host   *Host
	active bool
}

// CreateBlock spawns a palette block at the spawn anchor and appends it to
// the selection.
func (g *Gizmos) CreateBlock(paletteID int) error {
	b, err := g.host.world.Spawn(paletteID)
	if err != nil {
		return err
	}
	b.SetPosition(g.host.spawnAnchor)
	g.host.selection.blocks = append(g.host.selection.blocks, b)
	g.active = true
	return nil
}

// LeaveGizmoMode hides the transform gizmo.
func (g *Gizmos) LeaveGizmoMode() { g.active = false }

// Active reports whether the gizmo shows.
func (g *Gizmos) Active() bool { return g.active }

// Inspector holds the block folders shown in the palette panel.
type Inspector struct {
	folders []host.Folder
}

func (i *Inspector) AddFolder(f host.Folder) {
	i.folders = append(i.folders, f)
}

// Folders lists applied folders in order.
func (i *Inspector) Folders() []host.Folder { return i.folders }
