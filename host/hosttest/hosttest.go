// Package hosttest provides an in-memory Blockforge host for tests. Every
// surface records the calls it receives so tests can assert on side effects
// without a running game process.
package hosttest

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/blockforge/modkit/host"
)

var (
	_ host.Host        = (*Host)(nil)
	_ host.InputDevice = (*Device)(nil)
	_ host.Selection   = (*Selection)(nil)
	_ host.Gizmos      = (*Gizmos)(nil)
	_ host.Inspector   = (*Inspector)(nil)
	_ host.Block       = (*Block)(nil)
)

// Host is a fake game process. Fields are exported so tests can inspect and
// steer it directly.
type Host struct {
	Dev  []*Device
	Sel  *Selection
	Giz  *Gizmos
	Insp *Inspector

	// InspectorOpen controls whether Inspector() returns Insp or nil,
	// mirroring the host surface that only exists while the editor is open.
	InspectorOpen bool

	// Playtest is what TestLevel reports.
	Playtest bool
}

// New returns a host with one input device, an empty selection and a closed
// inspector.
func New() *Host {
	h := &Host{
		Sel:  &Selection{},
		Insp: &Inspector{},
	}
	h.Giz = &Gizmos{host: h}
	h.AddDevice("primary")
	return h
}

// AddDevice registers another input device with mouse and keyboard enabled.
func (h *Host) AddDevice(name string) *Device {
	d := &Device{name: name, Mouse: true, Keyboard: true}
	h.Dev = append(h.Dev, d)
	return d
}

func (h *Host) Devices() []host.InputDevice {
	out := make([]host.InputDevice, len(h.Dev))
	for i, d := range h.Dev {
		out[i] = d
	}
	return out
}

func (h *Host) Selection() host.Selection { return h.Sel }

func (h *Host) Gizmos() host.Gizmos { return h.Giz }

func (h *Host) Inspector() host.Inspector {
	if !h.InspectorOpen {
		return nil
	}
	return h.Insp
}

func (h *Host) TestLevel() bool { return h.Playtest }

// Device records input toggles.
type Device struct {
	name string

	Mouse    bool
	Keyboard bool

	// Call counts let tests verify toggles happen only on edge transitions.
	MouseCalls    int
	KeyboardCalls int
}

func (d *Device) Name() string { return d.name }

func (d *Device) SetMouseEnabled(enabled bool) {
	d.Mouse = enabled
	d.MouseCalls++
}

func (d *Device) SetKeyboardEnabled(enabled bool) {
	d.Keyboard = enabled
	d.KeyboardCalls++
}

// Selection holds the host's current block selection in order.
type Selection struct {
	Blocks []*Block
}

// Add appends a block to the selection.
func (s *Selection) Add(b *Block) { s.Blocks = append(s.Blocks, b) }

func (s *Selection) Items() []host.Block {
	out := make([]host.Block, len(s.Blocks))
	for i, b := range s.Blocks {
		out[i] = b
	}
	return out
}

func (s *Selection) RemoveAt(i int) {
	if i < 0 || i >= len(s.Blocks) {
		return
	}
	s.Blocks = append(s.Blocks[:i], s.Blocks[i+1:]...)
}

// Gizmos records block creation requests. On success a new block is created
// and appended to the selection, the way the game selects what it spawns.
type Gizmos struct {
	host *Host

	// CreateErr, when set, is returned by CreateBlock unmodified.
	CreateErr error

	// NoSelect suppresses auto-selecting created blocks.
	NoSelect bool

	// Created lists palette IDs of successfully created blocks in order.
	Created []int

	LeaveCalls int
}

func (g *Gizmos) CreateBlock(paletteID int) error {
	if g.CreateErr != nil {
		return g.CreateErr
	}
	g.Created = append(g.Created, paletteID)
	if !g.NoSelect {
		g.host.Sel.Add(NewBlock(paletteID))
	}
	return nil
}

func (g *Gizmos) LeaveGizmoMode() { g.LeaveCalls++ }

// Inspector records folders in the order they were applied.
type Inspector struct {
	Folders []host.Folder
}

func (i *Inspector) AddFolder(f host.Folder) {
	i.Folders = append(i.Folders, f)
}

// Block is a plain in-memory block.
type Block struct {
	ID  int
	Pos rl.Vector3
	Rot rl.Vector3
	Scl rl.Vector3
}

// NewBlock returns a block with the given palette ID and unit scale.
func NewBlock(paletteID int) *Block {
	return &Block{ID: paletteID, Scl: rl.NewVector3(1, 1, 1)}
}

func (b *Block) PaletteID() int { return b.ID }

func (b *Block) Position() rl.Vector3     { return b.Pos }
func (b *Block) SetPosition(p rl.Vector3) { b.Pos = p }

func (b *Block) Rotation() rl.Vector3     { return b.Rot }
func (b *Block) SetRotation(r rl.Vector3) { b.Rot = r }

func (b *Block) Scale() rl.Vector3     { return b.Scl }
func (b *Block) SetScale(s rl.Vector3) { b.Scl = s }
