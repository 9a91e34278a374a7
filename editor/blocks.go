package editor

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/blockforge/modkit/host"
)

// Placement adjusts a freshly created block. Nil fields keep whatever the
// game chose; rotation is Euler degrees.
type Placement struct {
	Position *rl.Vector3
	Rotation *rl.Vector3
	Scale    *rl.Vector3

	// Deselect drops the block from the selection after placing it, for
	// mods that spawn scenery rather than hand the block to the player.
	Deselect bool
}

// CreateNewBlock asks the game to spawn a palette block and returns it. The
// game selects what it spawns, so the result is the newest selected block
// with the placement applied. Errors from the game's own creation path are
// returned as-is.
func (s *Session) CreateNewBlock(paletteID int, place Placement) (host.Block, error) {
	if err := s.host.Gizmos().CreateBlock(paletteID); err != nil {
		return nil, err
	}
	items := s.host.Selection().Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("editor: block %d created but selection is empty", paletteID)
	}
	b := items[len(items)-1]
	if place.Position != nil {
		b.SetPosition(*place.Position)
	}
	if place.Rotation != nil {
		b.SetRotation(*place.Rotation)
	}
	if place.Scale != nil {
		b.SetScale(*place.Scale)
	}
	if place.Deselect {
		s.RemoveFromSelection(b)
	}
	return b, nil
}

// RemoveFromSelection drops one block from the current selection. Blocks
// that are not selected are left alone. Removing the last selected block
// also leaves gizmo mode, since the gizmos have nothing to attach to.
func (s *Session) RemoveFromSelection(b host.Block) {
	if b == nil {
		return
	}
	sel := s.host.Selection()
	items := sel.Items()
	for i, it := range items {
		if it == b {
			sel.RemoveAt(i)
			if len(items) == 1 {
				s.host.Gizmos().LeaveGizmoMode()
			}
			return
		}
	}
}

// SelectedBlocks returns the current selection in order. The slice is the
// caller's to keep; the game may hand out its own backing storage, so it is
// copied before it crosses the mod boundary.
func (s *Session) SelectedBlocks() []host.Block {
	items := s.host.Selection().Items()
	out := make([]host.Block, len(items))
	copy(out, items)
	return out
}

// ClearSelection empties the selection and leaves gizmo mode.
func (s *Session) ClearSelection() {
	sel := s.host.Selection()
	n := len(sel.Items())
	for i := n - 1; i >= 0; i-- {
		sel.RemoveAt(i)
	}
	if n > 0 {
		s.host.Gizmos().LeaveGizmoMode()
	}
}
