// newmod scaffolds a Blockforge mod: an HCL manifest plus a Go package that
// registers itself with the modkit registry on import.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/blockforge/modkit/mod"
)

const manifestTmpl = `mod "{{.ID}}" {
  name    = "{{.Name}}"
  version = "0.1.0"
}
`

const sourceTmpl = `// Package {{.Pkg}} is a Blockforge mod. Blank-import it from the game
// binary to register it.
package {{.Pkg}}

import (
	"github.com/blockforge/modkit/editor"
	"github.com/blockforge/modkit/mod"
)

var info = mod.Info{
	ID:      "{{.ID}}",
	Name:    "{{.Name}}",
	Version: "0.1.0",
}

func init() {
	if err := mod.Register(info, Setup); err != nil {
		panic(err)
	}
}

// Setup runs once on game boot, before the editor opens.
func Setup(s *editor.Session) error {
	// Subscribe to session events and add custom folders here.
	return nil
}
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run ./cmd/newmod <mod-id> [dir]\n")
		fmt.Fprintf(os.Stderr, "Example: go run ./cmd/newmod jetpack ./mods\n")
		os.Exit(1)
	}

	id := os.Args[1]
	dir := "mods"
	if len(os.Args) > 2 {
		dir = os.Args[2]
	}

	modDir, err := scaffold(id, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s\n", modDir)
	fmt.Printf("Mod \"%s\" scaffolded. Wire it into the game binary:\n\n", id)
	fmt.Printf("  import _ \"your/module/%s/%s\"\n", filepath.ToSlash(dir), id)
}

// scaffold writes the manifest and skeleton source for a new mod and returns
// the mod directory. The generated manifest is parsed back as a sanity
// check, so a template regression fails here instead of on game boot.
func scaffold(id, dir string) (string, error) {
	info := mod.Info{ID: id, Name: displayName(id), Version: "0.1.0"}
	if err := info.Validate(); err != nil {
		return "", err
	}

	modDir := filepath.Join(dir, id)
	if _, err := os.Stat(modDir); err == nil {
		return "", fmt.Errorf("%s already exists", modDir)
	}
	if err := os.MkdirAll(modDir, 0755); err != nil {
		return "", err
	}

	manifestPath := filepath.Join(modDir, "mod.hcl")
	if err := os.WriteFile(manifestPath, renderManifest(info), 0644); err != nil {
		return "", err
	}

	pkg := packageName(id)
	sourcePath := filepath.Join(modDir, pkg+".go")
	if err := os.WriteFile(sourcePath, renderSource(info, pkg), 0644); err != nil {
		return "", err
	}

	parsed, err := mod.LoadManifest(manifestPath)
	if err != nil {
		return "", fmt.Errorf("generated manifest does not parse: %w", err)
	}
	if parsed.ID != info.ID || parsed.Name != info.Name {
		return "", fmt.Errorf("generated manifest does not round-trip: got %v", parsed)
	}

	return modDir, nil
}

func renderManifest(info mod.Info) []byte {
	content := manifestTmpl
	content = strings.ReplaceAll(content, "{{.ID}}", info.ID)
	content = strings.ReplaceAll(content, "{{.Name}}", info.Name)
	return []byte(content)
}

func renderSource(info mod.Info, pkg string) []byte {
	content := sourceTmpl
	content = strings.ReplaceAll(content, "{{.Pkg}}", pkg)
	content = strings.ReplaceAll(content, "{{.ID}}", info.ID)
	content = strings.ReplaceAll(content, "{{.Name}}", info.Name)
	return []byte(content)
}

// displayName turns a mod id into a human name: "teleporter-pads" becomes
// "Teleporter Pads".
func displayName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	for i, w := range words {
		words[i] = string(unicode.ToUpper(rune(w[0]))) + w[1:]
	}
	return strings.Join(words, " ")
}

// packageName strips separators from a mod id to make a valid package name.
// IDs that start with a digit get a "mod" prefix.
func packageName(id string) string {
	var b strings.Builder
	for _, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "mod" + name
	}
	return name
}
