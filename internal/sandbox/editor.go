// Package sandbox is a small stand-in for the Blockforge level editor used
// to exercise modkit end to end: a block world, a host adapter that feeds a
// session, and a raylib window with a fly camera and the palette panel.
package sandbox

import (
	"fmt"
	"log/slog"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/blockforge/modkit/editor"
	"github.com/blockforge/modkit/host"
)

const (
	topBarH  = 36
	paletteW = 240
)

// Editor runs the sandbox window. Every session event fires from its Pump
// call at the top of the frame, so mod handlers run on the main thread.
type Editor struct {
	cfg     Config
	host    *Host
	session *editor.Session
	levels  *Levels
	log     *slog.Logger

	cam      flyCamera
	overlays []func()

	levelName string
	statusMsg string
	statusAt  float64
}

// flyCamera is a free camera: yaw/pitch in degrees plus a fly speed.
type flyCamera struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
}

func (c *flyCamera) directions() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	forward = rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	right = rl.Vector3{
		X: float32(math.Sin(yawRad)),
		Y: 0,
		Z: float32(-math.Cos(yawRad)),
	}
	return
}

func (c *flyCamera) raylib() rl.Camera3D {
	forward, _ := c.directions()
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, forward),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
}

// NewEditor wires the window loop to an already-bound host and session.
func NewEditor(cfg Config, h *Host, s *editor.Session, levels *Levels, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.Default()
	}
	e := &Editor{
		cfg:       cfg,
		host:      h,
		session:   s,
		levels:    levels,
		log:       log,
		levelName: cfg.Level,
	}
	h.World().BlockSpawned.Subscribe(func(b *Block) {
		if entry, ok := PaletteEntryByID(b.PaletteID()); ok {
			e.flash("+ " + entry.Name)
		}
	})
	return e
}

// AddOverlay registers a draw callback that runs after the editor UI each
// frame. Sample mods use it to draw their own panels.
func (e *Editor) AddOverlay(fn func()) {
	if fn != nil {
		e.overlays = append(e.overlays, fn)
	}
}

// Run opens the window, opens the editor on the host, and loops until the
// window closes. Blocks until then; call it from the main goroutine.
func (e *Editor) Run() error {
	rl.InitWindow(e.cfg.WindowWidth, e.cfg.WindowHeight, "Blockforge Sandbox")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyNull)
	initRayguiStyle()

	e.cam = flyCamera{
		Position:  rl.Vector3{X: 12, Y: 9, Z: 12},
		Yaw:       -135,
		Pitch:     -25,
		MoveSpeed: 10,
	}

	e.host.OpenEditor()
	if e.levels.Exists(e.levelName) {
		e.loadLevel()
	}

	for !rl.WindowShouldClose() {
		e.session.Pump()
		e.update(rl.GetFrameTime())
		e.draw()
	}

	// Let mods see the teardown before the window goes away.
	e.host.CloseEditor()
	e.session.Pump()
	return nil
}

func (e *Editor) update(dt float32) {
	forward, _ := e.cam.directions()
	e.host.SetSpawnAnchor(rl.Vector3Add(e.cam.Position, rl.Vector3Scale(forward, 6)))

	dev := e.host.Device()
	if dev.KeyboardEnabled() {
		e.handleKeys()
	}

	e.updateCamera(dt)

	if !e.host.Playtest() && dev.MouseEnabled() {
		e.handlePicking()
	}
}

func (e *Editor) handleKeys() {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyLeftSuper)

	if ctrl && rl.IsKeyPressed(rl.KeyS) {
		e.saveLevel()
		return
	}
	if ctrl && rl.IsKeyPressed(rl.KeyO) {
		e.loadLevel()
		return
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		if e.host.Playtest() {
			e.host.EndPlaytest()
		} else {
			e.host.StartPlaytest()
		}
		return
	}

	if e.host.Playtest() {
		return
	}
	if rl.IsKeyPressed(rl.KeyDelete) || (ctrl && rl.IsKeyPressed(rl.KeyBackspace)) {
		if n := e.host.DeleteSelected(); n > 0 {
			e.flash(fmt.Sprintf("Deleted %d block(s)", n))
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		e.host.DeselectAll()
	}
}

// updateCamera is right-click fly: drag to look, WASD to move, E/Q for
// up/down, Shift+scroll for speed.
func (e *Editor) updateCamera(dt float32) {
	dev := e.host.Device()
	if !dev.MouseEnabled() || !rl.IsMouseButtonDown(rl.MouseRightButton) {
		return
	}

	mouseDelta := rl.GetMouseDelta()
	e.cam.Yaw += mouseDelta.X * 0.1
	e.cam.Pitch -= mouseDelta.Y * 0.1
	if e.cam.Pitch > 89 {
		e.cam.Pitch = 89
	}
	if e.cam.Pitch < -89 {
		e.cam.Pitch = -89
	}

	if !dev.KeyboardEnabled() {
		return
	}

	forward, right := e.cam.directions()
	speed := e.cam.MoveSpeed * dt

	if rl.IsKeyDown(rl.KeyW) {
		e.cam.Position = rl.Vector3Add(e.cam.Position, rl.Vector3Scale(forward, speed))
	}
	if rl.IsKeyDown(rl.KeyS) {
		e.cam.Position = rl.Vector3Add(e.cam.Position, rl.Vector3Scale(forward, -speed))
	}
	if rl.IsKeyDown(rl.KeyA) {
		e.cam.Position = rl.Vector3Add(e.cam.Position, rl.Vector3Scale(right, speed))
	}
	if rl.IsKeyDown(rl.KeyD) {
		e.cam.Position = rl.Vector3Add(e.cam.Position, rl.Vector3Scale(right, -speed))
	}
	if rl.IsKeyDown(rl.KeyE) {
		e.cam.Position.Y += speed
	}
	if rl.IsKeyDown(rl.KeyQ) {
		e.cam.Position.Y -= speed
	}

	scroll := rl.GetMouseWheelMove()
	if scroll != 0 && (rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)) {
		e.cam.MoveSpeed += scroll * 2.0
		if e.cam.MoveSpeed < 1.0 {
			e.cam.MoveSpeed = 1.0
		}
		if e.cam.MoveSpeed > 100.0 {
			e.cam.MoveSpeed = 100.0
		}
	}
}

// handlePicking is left-click select: click a block to select it, shift
// toggles, empty space deselects.
func (e *Editor) handlePicking() {
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) || e.mouseInPanel() {
		return
	}

	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), e.cam.raylib())
	hit := e.pickBlock(ray)
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	switch {
	case hit == nil && !shift:
		e.host.DeselectAll()
	case hit != nil && shift:
		e.host.ToggleSelect(hit)
	case hit != nil:
		e.host.Select(hit)
	}
}

func (e *Editor) pickBlock(ray rl.Ray) *Block {
	var best *Block
	bestDist := float32(math.MaxFloat32)
	for _, b := range e.host.World().Blocks() {
		col := rl.GetRayCollisionBox(ray, b.Bounds())
		if col.Hit && col.Distance < bestDist {
			bestDist = col.Distance
			best = b
		}
	}
	return best
}

func (e *Editor) mouseInPanel() bool {
	m := rl.GetMousePosition()
	if m.Y <= topBarH {
		return true
	}
	return m.X >= float32(rl.GetScreenWidth()-paletteW)
}

func (e *Editor) saveLevel() {
	if err := e.levels.Save(e.levelName, e.host.World()); err != nil {
		e.flash(fmt.Sprintf("Save failed: %v", err))
		e.log.Error("level save failed", "level", e.levelName, "err", err)
		return
	}
	e.session.Announce(host.Notice{Kind: host.NoticeLevelSaved})
	e.flash("Level saved!")
	e.log.Info("level saved", "level", e.levelName, "blocks", e.host.World().Len())
}

func (e *Editor) loadLevel() {
	e.host.DeselectAll()
	skipped, err := e.levels.Load(e.levelName, e.host.World())
	if err != nil {
		e.flash(fmt.Sprintf("Load failed: %v", err))
		e.log.Error("level load failed", "level", e.levelName, "err", err)
		return
	}
	e.session.Announce(host.Notice{Kind: host.NoticeLevelLoaded})
	if skipped > 0 {
		e.flash(fmt.Sprintf("Level loaded, %d unknown block(s) skipped", skipped))
	} else {
		e.flash("Level loaded!")
	}
	e.log.Info("level loaded", "level", e.levelName, "blocks", e.host.World().Len(), "skipped", skipped)
}

func (e *Editor) flash(msg string) {
	e.statusMsg = msg
	e.statusAt = rl.GetTime()
}

func (e *Editor) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBgWorld)

	rl.BeginMode3D(e.cam.raylib())
	rl.DrawGrid(40, 1)
	for _, b := range e.host.World().Blocks() {
		entry, ok := PaletteEntryByID(b.PaletteID())
		if !ok {
			continue
		}
		rl.DrawCubeV(b.Position(), b.Size(), entry.Tint)
		if e.host.Selected(b) {
			rl.DrawCubeWiresV(b.Position(), b.Size(), colorAccentLight)
		}
	}
	if sel := e.host.selection.Blocks(); e.host.gizmos.Active() && len(sel) > 0 {
		drawGizmo(sel[len(sel)-1].Position())
	}
	rl.EndMode3D()

	e.drawTopBar()
	if !e.host.Playtest() {
		e.drawPalette()
	}
	for _, fn := range e.overlays {
		fn()
	}

	rl.EndDrawing()
}

// drawGizmo marks the newest selected block with world-axis lines.
func drawGizmo(center rl.Vector3) {
	rl.DrawLine3D(center, rl.Vector3Add(center, rl.Vector3{X: 2}), rl.Red)
	rl.DrawLine3D(center, rl.Vector3Add(center, rl.Vector3{Y: 2}), rl.Green)
	rl.DrawLine3D(center, rl.Vector3Add(center, rl.Vector3{Z: 2}), rl.Blue)
}

func (e *Editor) drawTopBar() {
	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), topBarH, colorBgDark)
	rl.DrawRectangle(0, topBarH-1, int32(rl.GetScreenWidth()), 1, colorBorder)

	if e.host.Playtest() {
		rl.DrawText("PLAYTEST", 12, 8, 22, rl.Orange)
		rl.DrawText("F5: Back to editor", 140, 11, 18, colorTextMuted)
	} else {
		rl.DrawText("EDITOR", 12, 8, 22, colorAccent)
		rl.DrawText("Ctrl+S: Save  |  Ctrl+O: Load  |  F5: Playtest  |  Del: Remove", 140, 11, 18, colorTextMuted)
	}

	level := fmt.Sprintf("Level: %s", e.levelName)
	rl.DrawText(level, int32(rl.GetScreenWidth())-rl.MeasureText(level, 18)-260, 11, 18, colorTextSecondary)

	speed := fmt.Sprintf("Speed: %.0f", e.cam.MoveSpeed)
	rl.DrawText(speed, int32(rl.GetScreenWidth())-rl.MeasureText(speed, 18)-12, 11, 18, colorTextMuted)

	// Status flash below the bar.
	if e.statusMsg != "" && rl.GetTime()-e.statusAt < 2.0 {
		w := rl.MeasureText(e.statusMsg, 16)
		rl.DrawText(e.statusMsg, (int32(rl.GetScreenWidth())-w)/2, topBarH+10, 16, colorAccentLight)
	}
}

// drawPalette renders the inspector folders down the right edge. Every
// folder the mods added shows up here next to the built-in one.
func (e *Editor) drawPalette() {
	x := int32(rl.GetScreenWidth() - paletteW)
	h := int32(rl.GetScreenHeight())

	rl.DrawRectangle(x, topBarH, paletteW, h-topBarH, colorBgPanel)
	rl.DrawRectangle(x, topBarH, 1, h-topBarH, colorBorder)

	y := int32(topBarH + 10)
	for _, f := range e.host.Folders() {
		y = e.drawFolder(f, x+12, y, 0)
	}
}

func (e *Editor) drawFolder(f host.Folder, x, y int32, depth int32) int32 {
	indent := depth * 14

	rl.DrawText(f.Name, x+indent, y, 16, colorAccentLight)
	y += 24

	for _, id := range f.BlockIDs {
		entry, ok := PaletteEntryByID(id)
		if !ok {
			rl.DrawText(fmt.Sprintf("? block %d", id), x+indent+4, y+4, 14, colorTextMuted)
			y += 28
			continue
		}
		bounds := rl.Rectangle{
			X:      float32(x + indent),
			Y:      float32(y),
			Width:  float32(paletteW - 24 - indent),
			Height: 24,
		}
		if gui.Button(bounds, entry.Name) {
			e.spawnFromPalette(entry.ID)
		}
		y += 28
	}

	for _, sub := range f.Folders {
		y = e.drawFolder(sub, x, y+2, depth+1)
	}
	return y + 8
}

// spawnFromPalette goes through the same gizmo path mods use, so a click in
// the panel behaves exactly like CreateNewBlock.
func (e *Editor) spawnFromPalette(paletteID int) {
	if !e.host.Device().MouseEnabled() {
		return
	}
	if err := e.host.gizmos.CreateBlock(paletteID); err != nil {
		e.flash(fmt.Sprintf("Create failed: %v", err))
	}
}
