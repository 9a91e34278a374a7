// Package mod describes installed mods and keeps the process-wide registry
// the sandbox uses to find them.
package mod

import (
	"errors"
	"fmt"
)

// Info identifies a mod. The ID doubles as the mod's storage folder name,
// so it is restricted to characters every filesystem accepts.
type Info struct {
	ID      string
	Name    string
	Version string
	Authors []string
}

// Validate checks that the Info can be used as a registry key and a storage
// folder name.
func (i Info) Validate() error {
	if i.ID == "" {
		return errors.New("mod: id is empty")
	}
	if i.ID == "." || i.ID == ".." {
		return fmt.Errorf("mod: id %q is reserved", i.ID)
	}
	for _, r := range i.ID {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("mod: id %q contains %q, want lowercase letters, digits, '-', '_' or '.'", i.ID, string(r))
		}
	}
	return nil
}

// String renders the mod for logs, like "teleporter 1.2.0".
func (i Info) String() string {
	if i.Version == "" {
		return i.ID
	}
	return i.ID + " " + i.Version
}
