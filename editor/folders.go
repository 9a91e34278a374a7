package editor

import (
	"errors"

	"github.com/blockforge/modkit/host"
)

// FolderBuilder assembles a custom palette folder. Build returns an
// immutable descriptor, so a builder can be reused or thrown away without
// affecting folders already handed to the session.
type FolderBuilder struct {
	f host.Folder
}

// NewFolder starts a folder with the given display name.
func NewFolder(name string) *FolderBuilder {
	return &FolderBuilder{f: host.Folder{Name: name}}
}

// Blocks appends palette IDs to the folder.
func (b *FolderBuilder) Blocks(paletteIDs ...int) *FolderBuilder {
	b.f.BlockIDs = append(b.f.BlockIDs, paletteIDs...)
	return b
}

// Folder nests a subfolder.
func (b *FolderBuilder) Folder(sub host.Folder) *FolderBuilder {
	b.f.Folders = append(b.f.Folders, sub.Clone())
	return b
}

// Build returns the finished descriptor.
func (b *FolderBuilder) Build() host.Folder {
	return b.f.Clone()
}

// AddCustomFolder shows a folder in the editor's palette. While the editor
// is open it appears immediately; otherwise it is queued and applied, in
// registration order, the next time the inspector becomes ready. Each call
// applies its folder exactly once.
func (s *Session) AddCustomFolder(f host.Folder) error {
	if f.Name == "" {
		return errors.New("editor: folder has no name")
	}
	f = f.Clone()
	if s.folderTarget != nil {
		s.folderTarget.AddFolder(f)
		s.log.Debug("applied custom folder", "folder", f.Name)
		return nil
	}
	s.pendingFolders = append(s.pendingFolders, f)
	s.log.Debug("queued custom folder", "folder", f.Name, "pending", len(s.pendingFolders))
	return nil
}

// PendingFolders reports how many folders wait for the editor to open.
func (s *Session) PendingFolders() int {
	return len(s.pendingFolders)
}

func (s *Session) flushFolders() {
	if s.folderTarget == nil || len(s.pendingFolders) == 0 {
		return
	}
	pending := s.pendingFolders
	s.pendingFolders = nil
	for _, f := range pending {
		s.folderTarget.AddFolder(f)
		s.log.Debug("applied custom folder", "folder", f.Name)
	}
}
