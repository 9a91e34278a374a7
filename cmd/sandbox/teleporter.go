package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/blockforge/modkit/editor"
	"github.com/blockforge/modkit/host"
	"github.com/blockforge/modkit/internal/sandbox"
	"github.com/blockforge/modkit/mod"
	"github.com/blockforge/modkit/storage"
)

var teleporterInfo = mod.Info{
	ID:      "teleporter",
	Name:    "Teleporter Pads",
	Version: "1.2.0",
	Authors: []string{"sandbox"},
}

// teleporterSettings persists between runs through the mod's storage folder.
// The vector field goes through the engine-type converters on disk.
type teleporterSettings struct {
	PadCount int        `json:"padCount"`
	Spacing  float32    `json:"spacing"`
	Offset   rl.Vector3 `json:"offset"`
}

func defaultTeleporterSettings() teleporterSettings {
	return teleporterSettings{PadCount: 2, Spacing: 4, Offset: rl.Vector3{Y: 0.05}}
}

// teleporter places linked teleport pads. It is the sample mod: a custom
// folder, session events, settings persistence, and input blocking while its
// panel is open.
type teleporter struct {
	log      *slog.Logger
	session  *editor.Session
	store    *storage.Store
	settings teleporterSettings

	open   bool
	token  string
	placed int
}

func newTeleporter(log *slog.Logger) *teleporter {
	return &teleporter{log: log, token: editor.NewToken("teleporter-panel")}
}

func (t *teleporter) setup(s *editor.Session) error {
	t.session = s

	st, err := storage.NewStore(teleporterInfo)
	if err != nil {
		return err
	}
	t.store = st

	t.settings = defaultTeleporterSettings()
	if err := st.LoadJSON("settings", &t.settings); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	folder := editor.NewFolder("Teleporters").Blocks(sandbox.BlockTeleportPad).Build()
	if err := s.AddCustomFolder(folder); err != nil {
		return err
	}

	// The panel cannot stay up without the editor tools behind it.
	s.EnteredTestMode.Subscribe(t.closePanel)
	s.ExitedEditor.Subscribe(t.closePanel)
	s.LevelSaved.Subscribe(t.saveSettings)
	return nil
}

// drawPanel runs as an editor overlay every frame. The toggle key is polled
// here, past the device flags, so it keeps working while the mod itself
// holds the keyboard.
func (t *teleporter) drawPanel() {
	if rl.IsKeyPressed(rl.KeyT) {
		if t.open {
			t.closePanel()
		} else {
			t.openPanel()
		}
	}
	if !t.open {
		return
	}

	panel := rl.Rectangle{X: 16, Y: 48, Width: 240, Height: 190}
	rl.DrawRectangleRec(panel, rl.NewColor(18, 18, 24, 245))
	rl.DrawRectangleLinesEx(panel, 1, rl.NewColor(108, 99, 255, 255))
	rl.DrawText("Teleporter Pads", int32(panel.X)+10, int32(panel.Y)+8, 18, rl.White)

	x := panel.X + 10
	y := panel.Y + 38

	rl.DrawText("Pads", int32(x), int32(y)+4, 14, rl.LightGray)
	pads := gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: 130, Height: 18},
		"", fmt.Sprintf("%d", t.settings.PadCount), float32(t.settings.PadCount), 2, 6)
	t.settings.PadCount = int(pads + 0.5)
	y += 28

	rl.DrawText("Spacing", int32(x), int32(y)+4, 14, rl.LightGray)
	t.settings.Spacing = gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: 130, Height: 18},
		"", fmt.Sprintf("%.1f", t.settings.Spacing), t.settings.Spacing, 1, 10)
	y += 32

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 220, Height: 26}, "Place pad chain") {
		t.placePads()
	}
	y += 32

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 220, Height: 26}, "Save settings") {
		t.saveSettings()
	}
	y += 34

	rl.DrawText(fmt.Sprintf("Placed so far: %d   [T] close", t.placed), int32(x), int32(y), 13, rl.Gray)
}

func (t *teleporter) openPanel() {
	t.open = true
	t.session.BlockMouse(t.token)
	t.session.BlockKeyboard(t.token)
}

func (t *teleporter) closePanel() {
	if !t.open {
		return
	}
	t.open = false
	t.session.UnblockMouse(t.token)
	t.session.UnblockKeyboard(t.token)
	t.saveSettings()
}

// placePads spawns a chain of teleport pads. The first pad lands wherever
// the game's spawn anchor is; the rest follow along X at the configured
// spacing. Pads stay deselected so the player's selection is untouched.
func (t *teleporter) placePads() {
	var first host.Block
	for i := 0; i < t.settings.PadCount; i++ {
		place := editor.Placement{Deselect: true}
		if first != nil {
			pos := rl.Vector3Add(first.Position(), rl.Vector3{X: float32(i) * t.settings.Spacing})
			pos = rl.Vector3Add(pos, t.settings.Offset)
			place.Position = &pos
		}
		b, err := t.session.CreateNewBlock(sandbox.BlockTeleportPad, place)
		if err != nil {
			t.log.Error("pad creation failed", "err", err)
			return
		}
		if first == nil {
			first = b
		}
		t.placed++
	}
	t.log.Info("placed pad chain", "pads", t.settings.PadCount, "spacing", t.settings.Spacing)
}

func (t *teleporter) saveSettings() {
	if err := t.store.SaveJSON("settings", t.settings); err != nil {
		t.log.Error("saving settings failed", "err", err)
		return
	}
	t.log.Debug("settings saved")
}
