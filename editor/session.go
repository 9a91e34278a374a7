// Package editor is the mod-facing surface of the Blockforge level editor.
//
// A Session wraps the running game behind one object a mod holds for its
// lifetime. The host posts lifecycle notices into the session from wherever
// they originate; the game's main loop calls Pump once per frame, which
// turns those notices into the session's typed events in arrival order.
// Everything else on the session (input blocking, custom folders, block
// creation) must be called from the main thread, like the rest of the
// editor.
package editor

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/blockforge/modkit/events"
	"github.com/blockforge/modkit/host"
)

// PlaytestScene is the scene the game loads when the editor tests a level.
// A scene.loaded notice for it while the host reports an active test level
// means the player just entered test mode.
const PlaytestScene = "Playtest"

// Session is a mod's handle on the level editor. Create one per mod with
// NewSession and release it with Close.
//
// Announce may be called from any goroutine. Every other method and all
// event emissions belong to the main thread.
type Session struct {
	host host.Host
	log  *slog.Logger

	mu      sync.Mutex
	mailbox []host.Notice
	closed  bool

	mouseHolds    []string
	keyboardHolds []string

	folderTarget   host.Inspector
	pendingFolders []host.Folder

	// EnteredEditor fires when the editor inspector is ready, after any
	// queued custom folders have been applied.
	EnteredEditor events.Signal

	// ExitedEditor fires when the editor closes.
	ExitedEditor events.Signal

	// EnteredTestMode fires when the playtest scene loads for the level
	// being edited.
	EnteredTestMode events.Signal

	// LevelLoaded and LevelSaved mirror the host's level file activity.
	LevelLoaded events.Signal
	LevelSaved  events.Signal
}

// Option adjusts a Session at construction.
type Option func(*Session)

// WithLogger routes the session's logging somewhere other than
// slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSession wraps a host.
func NewSession(h host.Host, opts ...Option) (*Session, error) {
	if h == nil {
		return nil, errors.New("editor: host is nil")
	}
	s := &Session{host: h, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Announce queues a host notice for the next Pump. Safe from any goroutine.
// Notices posted after Close are dropped.
func (s *Session) Announce(n host.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.mailbox = append(s.mailbox, n)
}

// Pump drains queued notices in arrival order and emits the matching
// events. Call it from the main thread, once per frame. Notices announced
// while Pump runs are handled in the same call.
func (s *Session) Pump() {
	for {
		s.mu.Lock()
		batch := s.mailbox
		s.mailbox = nil
		s.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, n := range batch {
			s.dispatch(n)
		}
	}
}

func (s *Session) dispatch(n host.Notice) {
	switch n.Kind {
	case host.NoticeSceneLoaded:
		if n.Scene == PlaytestScene && s.host.TestLevel() {
			s.log.Debug("entered test mode", "scene", n.Scene)
			s.EnteredTestMode.Emit()
		}
	case host.NoticeInspectorReady:
		s.folderTarget = s.host.Inspector()
		s.flushFolders()
		s.log.Debug("editor opened")
		s.EnteredEditor.Emit()
	case host.NoticeEditorClosed:
		s.folderTarget = nil
		s.log.Debug("editor closed")
		s.ExitedEditor.Emit()
	case host.NoticeLevelLoaded:
		s.LevelLoaded.Emit()
	case host.NoticeLevelSaved:
		s.LevelSaved.Emit()
	default:
		s.log.Warn("dropping unknown notice", "kind", string(n.Kind))
	}
}

// EditorOpen reports whether the editor inspector is currently available.
func (s *Session) EditorOpen() bool {
	return s.folderTarget != nil
}

// Close releases the session: it re-enables any input the session was
// blocking, drops queued notices and folders, and clears all event
// subscriptions. Closing twice is harmless.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mailbox = nil
	s.mu.Unlock()

	if len(s.mouseHolds) > 0 {
		s.mouseHolds = nil
		s.setMouseEnabled(true)
	}
	if len(s.keyboardHolds) > 0 {
		s.keyboardHolds = nil
		s.setKeyboardEnabled(true)
	}
	s.folderTarget = nil
	s.pendingFolders = nil

	s.EnteredEditor.Clear()
	s.ExitedEditor.Clear()
	s.EnteredTestMode.Clear()
	s.LevelLoaded.Clear()
	s.LevelSaved.Clear()
}
