package mod

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Manifest file layout:
//
//	mod "teleporter" {
//	  name    = "Teleporter Pads"
//	  version = "1.2.0"
//	  authors = ["ryn"]
//	}
type manifestRoot struct {
	Mod manifestBlock `hcl:"mod,block"`
}

type manifestBlock struct {
	ID      string   `hcl:"id,label"`
	Name    string   `hcl:"name"`
	Version string   `hcl:"version"`
	Authors []string `hcl:"authors,optional"`
}

// LoadManifest reads and validates a mod.hcl file.
func LoadManifest(path string) (Info, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Info{}, fmt.Errorf("mod: parsing manifest %s: %w", path, diags)
	}
	return decodeManifest(file.Body, path)
}

// ParseManifest decodes manifest source held in memory. The filename is only
// used in error messages.
func ParseManifest(src []byte, filename string) (Info, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Info{}, fmt.Errorf("mod: parsing manifest %s: %w", filename, diags)
	}
	return decodeManifest(file.Body, filename)
}

func decodeManifest(body hcl.Body, filename string) (Info, error) {
	var root manifestRoot
	diags := gohcl.DecodeBody(body, nil, &root)
	if diags.HasErrors() {
		return Info{}, fmt.Errorf("mod: decoding manifest %s: %w", filename, diags)
	}
	info := Info{
		ID:      root.Mod.ID,
		Name:    root.Mod.Name,
		Version: root.Mod.Version,
		Authors: root.Mod.Authors,
	}
	if err := info.Validate(); err != nil {
		return Info{}, err
	}
	return info, nil
}
