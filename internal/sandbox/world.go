package sandbox

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/blockforge/modkit/events"
)

// Block is one placed block. It satisfies host.Block, so mods hold and
// adjust blocks they created through the session.
type Block struct {
	uid       string
	paletteID int
	pos       rl.Vector3
	rot       rl.Vector3
	scale     rl.Vector3
}

// UID identifies the block instance within the running world.
func (b *Block) UID() string { return b.uid }

func (b *Block) PaletteID() int { return b.paletteID }

func (b *Block) Position() rl.Vector3     { return b.pos }
func (b *Block) SetPosition(p rl.Vector3) { b.pos = p }

// Rotation is Euler angles in degrees.
func (b *Block) Rotation() rl.Vector3     { return b.rot }
func (b *Block) SetRotation(r rl.Vector3) { b.rot = r }

func (b *Block) Scale() rl.Vector3     { return b.scale }
func (b *Block) SetScale(s rl.Vector3) { b.scale = s }

// Size is the block's world-space extent: palette size times scale.
func (b *Block) Size() rl.Vector3 {
	size := rl.Vector3{X: 1, Y: 1, Z: 1}
	if p, ok := PaletteEntryByID(b.paletteID); ok {
		size = p.Size
	}
	return rl.Vector3{X: size.X * b.scale.X, Y: size.Y * b.scale.Y, Z: size.Z * b.scale.Z}
}

// Bounds is the axis-aligned box around the block, used for mouse picking.
// Rotation is ignored; picking stays coarse on purpose.
func (b *Block) Bounds() rl.BoundingBox {
	half := rl.Vector3Scale(b.Size(), 0.5)
	return rl.BoundingBox{
		Min: rl.Vector3Subtract(b.pos, half),
		Max: rl.Vector3Add(b.pos, half),
	}
}

// World is the level under edit: placed blocks in creation order.
type World struct {
	blocks []*Block

	// BlockSpawned fires for every block added through Spawn. Loading a
	// level does not fire it.
	BlockSpawned events.SignalOf[*Block]
}

func NewWorld() *World { return &World{} }

// Blocks returns the live block list in creation order. Callers must not
// mutate it.
func (w *World) Blocks() []*Block { return w.blocks }

func (w *World) Len() int { return len(w.blocks) }

// Spawn places a new block of the given palette kind at the origin with unit
// scale. Unknown palette IDs fail; this is the error mods see from
// CreateNewBlock.
func (w *World) Spawn(paletteID int) (*Block, error) {
	entry, ok := PaletteEntryByID(paletteID)
	if !ok {
		return nil, fmt.Errorf("sandbox: no palette entry %d", paletteID)
	}
	b := &Block{
		uid:       uuid.NewString(),
		paletteID: entry.ID,
		scale:     rl.Vector3{X: 1, Y: 1, Z: 1},
	}
	w.blocks = append(w.blocks, b)
	w.BlockSpawned.Emit(b)
	return b, nil
}

// Remove deletes a block from the level. Blocks the world does not own are
// ignored.
func (w *World) Remove(b *Block) {
	for i, cur := range w.blocks {
		if cur == b {
			w.blocks = append(w.blocks[:i], w.blocks[i+1:]...)
			return
		}
	}
}

// Clear drops every block.
func (w *World) Clear() { w.blocks = nil }

// LevelFile is the on-disk shape of a level. It goes through the storage
// package, so engine vectors take their canonical JSON form.
type LevelFile struct {
	Name   string     `json:"name"`
	Blocks []BlockDef `json:"blocks"`
}

// BlockDef is one saved block.
type BlockDef struct {
	Palette  int        `json:"palette"`
	Position rl.Vector3 `json:"position"`
	Rotation rl.Vector3 `json:"rotation"`
	Scale    rl.Vector3 `json:"scale"`
}

// Snapshot captures the world for saving.
func (w *World) Snapshot(name string) LevelFile {
	lf := LevelFile{Name: name, Blocks: make([]BlockDef, 0, len(w.blocks))}
	for _, b := range w.blocks {
		lf.Blocks = append(lf.Blocks, BlockDef{
			Palette:  b.paletteID,
			Position: b.pos,
			Rotation: b.rot,
			Scale:    b.scale,
		})
	}
	return lf
}

// Restore replaces the world contents with a saved level and returns how
// many blocks were skipped because this build does not know their palette
// kind. A zero saved scale means an older file; it becomes unit scale.
func (w *World) Restore(lf LevelFile) int {
	w.blocks = nil
	skipped := 0
	for _, def := range lf.Blocks {
		if _, ok := PaletteEntryByID(def.Palette); !ok {
			skipped++
			continue
		}
		b := &Block{
			uid:       uuid.NewString(),
			paletteID: def.Palette,
			pos:       def.Position,
			rot:       def.Rotation,
			scale:     def.Scale,
		}
		if b.scale == (rl.Vector3{}) {
			b.scale = rl.Vector3{X: 1, Y: 1, Z: 1}
		}
		w.blocks = append(w.blocks, b)
	}
	return skipped
}
