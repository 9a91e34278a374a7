// Package host declares the surface of the Blockforge process that modkit
// consumes: lifecycle notices, input devices, the block selection, gizmo
// operations, and the inspector's folder list. The game implements these
// interfaces; mods never do. Implementations live in the game binary and,
// for tests, in the hosttest package.
package host

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Host aggregates everything the editor façade needs from the game.
type Host interface {
	// Devices returns every registered input route. The façade iterates
	// this list whenever an input subsystem is blocked or unblocked.
	Devices() []InputDevice

	// Selection returns the active block selection. Never nil.
	Selection() Selection

	// Gizmos returns the gizmo subsystem. Never nil.
	Gizmos() Gizmos

	// Inspector returns the editor inspector, or nil while no editor
	// session is open. It becomes non-nil before the inspector.ready
	// notice is posted and nil again after editor.closed.
	Inspector() Inspector

	// TestLevel reports whether the currently loaded level is a playtest
	// of an editor level rather than a regular level.
	TestLevel() bool
}

// InputDevice is one physical input route (a connected controller, or the
// shared mouse/keyboard pair). The game registers one per player.
type InputDevice interface {
	Name() string
	SetMouseEnabled(enabled bool)
	SetKeyboardEnabled(enabled bool)
}

// Selection is the ordered list of currently selected blocks. The newest
// selected block is last.
type Selection interface {
	// Items returns the selected blocks in selection order. Callers must
	// not mutate the returned slice.
	Items() []Block

	// RemoveAt removes the block at index i. The index must be valid;
	// the façade only passes indexes it found in Items.
	RemoveAt(i int)
}

// Gizmos is the subsystem that creates blocks and tracks gizmo mode.
type Gizmos interface {
	// CreateBlock creates a new block from the palette and adds it to the
	// active selection. The palette id is passed through unvalidated;
	// whatever error the game returns for an unknown id is surfaced to
	// the caller unchanged.
	CreateBlock(paletteID int) error

	// LeaveGizmoMode deactivates gizmo mode. Called by the façade when
	// the last selected block is deselected.
	LeaveGizmoMode()
}

// Inspector is the open editor's inspector panel.
type Inspector interface {
	// AddFolder appends a folder to the game's global folder list.
	AddFolder(f Folder)
}

// Block is one placed level block. Rotation is Euler angles in degrees,
// matching the engine convention.
type Block interface {
	// PaletteID identifies which palette entry the block was created from.
	PaletteID() int

	Position() rl.Vector3
	SetPosition(p rl.Vector3)

	Rotation() rl.Vector3
	SetRotation(r rl.Vector3)

	Scale() rl.Vector3
	SetScale(s rl.Vector3)
}
