// The Blockforge sandbox: a minimal stand-in for the full game that
// exercises modkit end to end. It assembles the block world, binds an editor
// session to it, runs every registered mod's setup, and opens the editor
// window. The bundled teleporter mod shows the whole mod surface in one
// place.
package main

import (
	"fmt"
	"os"

	"github.com/blockforge/modkit/editor"
	"github.com/blockforge/modkit/internal/sandbox"
	"github.com/blockforge/modkit/mod"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sandbox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := sandbox.LoadConfig()
	if err != nil {
		return err
	}
	log := cfg.Logger(os.Stderr)

	world := sandbox.NewWorld()
	h := sandbox.NewHost(world, log.With("side", "host"))

	session, err := editor.NewSession(h, editor.WithLogger(log.With("side", "session")))
	if err != nil {
		return err
	}
	defer session.Close()
	h.Bind(session.Announce)

	levels, err := sandbox.NewLevels()
	if err != nil {
		return err
	}

	ed := sandbox.NewEditor(cfg, h, session, levels, log)

	// Register and set up mods the way the real game does on boot.
	tp := newTeleporter(log.With("mod", teleporterInfo.ID))
	if err := mod.Register(teleporterInfo, tp.setup); err != nil {
		return err
	}
	for _, r := range mod.All() {
		if err := r.Setup(session); err != nil {
			log.Error("mod setup failed", "mod", r.Info.ID, "err", err)
			continue
		}
		log.Info("mod ready", "mod", r.Info.String())
	}
	ed.AddOverlay(tp.drawPanel)

	return ed.Run()
}
