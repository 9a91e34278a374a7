package sandbox

import rl "github.com/gen2brain/raylib-go/raylib"

// Palette IDs. Level files reference blocks by these, so they are stable
// across builds.
const (
	BlockStoneCube   = 1
	BlockGrassCube   = 2
	BlockWoodSlab    = 3
	BlockStonePillar = 4
	BlockGlassPane   = 5
	BlockPlatform    = 6
	BlockSpawnPad    = 7
	BlockGoalPad     = 8
	BlockLava        = 9
	BlockTeleportPad = 10
)

// PaletteEntry describes one block kind players can place.
type PaletteEntry struct {
	ID   int
	Name string
	Size rl.Vector3
	Tint rl.Color
}

// The built-in block palette. The inspector's default folder lists all of
// it; mods reference entries by ID in custom folders and CreateNewBlock.
var palette = []PaletteEntry{
	{ID: BlockStoneCube, Name: "Stone Cube", Size: rl.Vector3{X: 1, Y: 1, Z: 1}, Tint: rl.Gray},
	{ID: BlockGrassCube, Name: "Grass Cube", Size: rl.Vector3{X: 1, Y: 1, Z: 1}, Tint: rl.Lime},
	{ID: BlockWoodSlab, Name: "Wood Slab", Size: rl.Vector3{X: 1, Y: 0.5, Z: 1}, Tint: rl.Brown},
	{ID: BlockStonePillar, Name: "Stone Pillar", Size: rl.Vector3{X: 0.5, Y: 2, Z: 0.5}, Tint: rl.DarkGray},
	{ID: BlockGlassPane, Name: "Glass Pane", Size: rl.Vector3{X: 1, Y: 1, Z: 0.1}, Tint: rl.SkyBlue},
	{ID: BlockPlatform, Name: "Platform", Size: rl.Vector3{X: 3, Y: 0.25, Z: 3}, Tint: rl.Beige},
	{ID: BlockSpawnPad, Name: "Spawn Pad", Size: rl.Vector3{X: 1.5, Y: 0.1, Z: 1.5}, Tint: rl.Green},
	{ID: BlockGoalPad, Name: "Goal Pad", Size: rl.Vector3{X: 1.5, Y: 0.1, Z: 1.5}, Tint: rl.Gold},
	{ID: BlockLava, Name: "Lava Block", Size: rl.Vector3{X: 1, Y: 1, Z: 1}, Tint: rl.Orange},
	{ID: BlockTeleportPad, Name: "Teleport Pad", Size: rl.Vector3{X: 1.5, Y: 0.1, Z: 1.5}, Tint: rl.Purple},
}

var paletteByID map[int]PaletteEntry

func init() {
	paletteByID = make(map[int]PaletteEntry, len(palette))
	for _, p := range palette {
		paletteByID[p.ID] = p
	}
}

// Palette returns the built-in palette in display order.
func Palette() []PaletteEntry {
	out := make([]PaletteEntry, len(palette))
	copy(out, palette)
	return out
}

// PaletteEntryByID looks up a palette entry.
func PaletteEntryByID(id int) (PaletteEntry, bool) {
	p, ok := paletteByID[id]
	return p, ok
}
