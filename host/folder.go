package host

// Folder is an immutable descriptor for a custom block folder in the editor
// inspector. Folders group palette entries; nesting is allowed. Descriptors
// are built with editor.FolderBuilder and applied to the game's global
// folder list once the inspector is available.
type Folder struct {
	Name     string
	BlockIDs []int
	Folders  []Folder
}

// Clone returns a deep copy. Applied descriptors must not alias builder
// slices that a mod could still mutate.
func (f Folder) Clone() Folder {
	out := Folder{Name: f.Name}
	if len(f.BlockIDs) > 0 {
		out.BlockIDs = make([]int, len(f.BlockIDs))
		copy(out.BlockIDs, f.BlockIDs)
	}
	if len(f.Folders) > 0 {
		out.Folders = make([]Folder, len(f.Folders))
		for i, sub := range f.Folders {
			out.Folders[i] = sub.Clone()
		}
	}
	return out
}
