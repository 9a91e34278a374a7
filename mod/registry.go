package mod

import (
	"fmt"
	"sort"

	"github.com/blockforge/modkit/editor"
)

// SetupFunc runs once when the host starts the mod, with the editor session
// the mod keeps for its lifetime.
type SetupFunc func(*editor.Session) error

// Registration pairs a mod's identity with its entry point.
type Registration struct {
	Info  Info
	Setup SetupFunc
}

var registry = map[string]Registration{}

// Register adds a mod to the process registry, usually from the mod
// package's init function. Invalid infos and duplicate IDs are rejected so
// one bad mod cannot displace another.
func Register(info Info, setup SetupFunc) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if setup == nil {
		return fmt.Errorf("mod: %q has no setup function", info.ID)
	}
	if _, exists := registry[info.ID]; exists {
		return fmt.Errorf("mod: %q already registered", info.ID)
	}
	registry[info.ID] = Registration{Info: info, Setup: setup}
	return nil
}

// Lookup returns the registration for id.
func Lookup(id string) (Registration, bool) {
	r, ok := registry[id]
	return r, ok
}

// All lists registrations sorted by ID.
func All() []Registration {
	out := make([]Registration, 0, len(registry))
	for _, r := range registry {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Info.ID < out[j].Info.ID })
	return out
}

// Reset clears the registry. Tests use it to start from a clean slate.
func Reset() {
	registry = map[string]Registration{}
}
