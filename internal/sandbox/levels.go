package sandbox

import (
	"fmt"

	"github.com/blockforge/modkit/mod"
	"github.com/blockforge/modkit/storage"
)

// sandboxInfo identifies the sandbox itself for storage, so level files land
// under the same data root mod settings use.
var sandboxInfo = mod.Info{ID: "sandbox", Name: "Blockforge Sandbox", Version: "0.1.0"}

// Levels saves and loads sandbox levels.
type Levels struct {
	store *storage.Store
}

// NewLevels opens the sandbox's own storage folder.
func NewLevels() (*Levels, error) {
	st, err := storage.NewStore(sandboxInfo)
	if err != nil {
		return nil, fmt.Errorf("sandbox: opening level storage: %w", err)
	}
	return &Levels{store: st}, nil
}

// Save writes the world as a named level.
func (l *Levels) Save(name string, w *World) error {
	return l.store.SaveJSON(name, w.Snapshot(name))
}

// Load replaces the world contents with a named level and returns how many
// blocks were skipped for unknown palette kinds.
func (l *Levels) Load(name string, w *World) (int, error) {
	var lf LevelFile
	if err := l.store.LoadJSON(name, &lf); err != nil {
		return 0, err
	}
	return w.Restore(lf), nil
}

// Exists reports whether a level was saved under name.
func (l *Levels) Exists(name string) bool { return l.store.Exists(name) }
