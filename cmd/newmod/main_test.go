package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blockforge/modkit/mod"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"teleporter", "Teleporter"},
		{"teleporter-pads", "Teleporter Pads"},
		{"big_block_pack", "Big Block Pack"},
		{"v2.extras", "V2 Extras"},
	}
	for _, c := range cases {
		if got := displayName(c.id); got != c.want {
			t.Errorf("displayName(%q) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestPackageName(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"teleporter", "teleporter"},
		{"teleporter-pads", "teleporterpads"},
		{"2fast", "mod2fast"},
		{"big_block.pack", "bigblockpack"},
	}
	for _, c := range cases {
		if got := packageName(c.id); got != c.want {
			t.Errorf("packageName(%q) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestScaffold(t *testing.T) {
	dir := t.TempDir()

	modDir, err := scaffold("jetpack-boost", dir)
	if err != nil {
		t.Fatalf("scaffold failed: %v", err)
	}
	if modDir != filepath.Join(dir, "jetpack-boost") {
		t.Errorf("Unexpected mod dir %q", modDir)
	}

	info, err := mod.LoadManifest(filepath.Join(modDir, "mod.hcl"))
	if err != nil {
		t.Fatalf("Generated manifest does not parse: %v", err)
	}
	if info.ID != "jetpack-boost" || info.Name != "Jetpack Boost" || info.Version != "0.1.0" {
		t.Errorf("Manifest round-trip mismatch: %+v", info)
	}

	source, err := os.ReadFile(filepath.Join(modDir, "jetpackboost.go"))
	if err != nil {
		t.Fatalf("Reading generated source failed: %v", err)
	}
	for _, want := range []string{
		"package jetpackboost",
		`ID:      "jetpack-boost"`,
		"mod.Register(info, Setup)",
		"func Setup(s *editor.Session) error",
	} {
		if !strings.Contains(string(source), want) {
			t.Errorf("Generated source missing %q", want)
		}
	}
}

func TestScaffoldRejectsBadID(t *testing.T) {
	if _, err := scaffold("Bad ID!", t.TempDir()); err == nil {
		t.Error("scaffold should reject invalid mod IDs")
	}
}

func TestScaffoldRefusesExisting(t *testing.T) {
	dir := t.TempDir()

	if _, err := scaffold("jetpack", dir); err != nil {
		t.Fatalf("First scaffold failed: %v", err)
	}
	if _, err := scaffold("jetpack", dir); err == nil {
		t.Error("scaffold should refuse to overwrite an existing mod")
	}
}
