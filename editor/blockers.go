package editor

import "github.com/google/uuid"

// Input blocking is held by token. Several mods (or several features of one
// mod) can block the same device; input comes back only when the last
// holder releases it. Device toggles happen only when a list goes between
// empty and non-empty, so handing the host a token it already holds is
// free. Blocker calls on a closed session are no-ops: Close has already
// released every hold and must leave input enabled.

// NewToken returns a unique blocker token. The prefix keeps logs readable.
func NewToken(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}

// BlockMouse disables mouse input on every device until the token is
// released. Adding a token twice has no effect; empty tokens are ignored.
func (s *Session) BlockMouse(token string) {
	if s.closed {
		return
	}
	if addHold(&s.mouseHolds, token) && len(s.mouseHolds) == 1 {
		s.setMouseEnabled(false)
	}
}

// UnblockMouse releases a mouse hold. Unknown tokens are a no-op.
func (s *Session) UnblockMouse(token string) {
	if s.closed {
		return
	}
	if removeHold(&s.mouseHolds, token) && len(s.mouseHolds) == 0 {
		s.setMouseEnabled(true)
	}
}

// MouseBlocked reports whether any mouse hold is active.
func (s *Session) MouseBlocked() bool { return len(s.mouseHolds) > 0 }

// BlockKeyboard disables keyboard input on every device until the token is
// released. Adding a token twice has no effect; empty tokens are ignored.
func (s *Session) BlockKeyboard(token string) {
	if s.closed {
		return
	}
	if addHold(&s.keyboardHolds, token) && len(s.keyboardHolds) == 1 {
		s.setKeyboardEnabled(false)
	}
}

// UnblockKeyboard releases a keyboard hold. Unknown tokens are a no-op.
func (s *Session) UnblockKeyboard(token string) {
	if s.closed {
		return
	}
	if removeHold(&s.keyboardHolds, token) && len(s.keyboardHolds) == 0 {
		s.setKeyboardEnabled(true)
	}
}

// KeyboardBlocked reports whether any keyboard hold is active.
func (s *Session) KeyboardBlocked() bool { return len(s.keyboardHolds) > 0 }

func (s *Session) setMouseEnabled(enabled bool) {
	for _, d := range s.host.Devices() {
		d.SetMouseEnabled(enabled)
	}
	s.log.Debug("mouse input toggled", "enabled", enabled)
}

func (s *Session) setKeyboardEnabled(enabled bool) {
	for _, d := range s.host.Devices() {
		d.SetKeyboardEnabled(enabled)
	}
	s.log.Debug("keyboard input toggled", "enabled", enabled)
}

func addHold(holds *[]string, token string) bool {
	if token == "" {
		return false
	}
	for _, t := range *holds {
		if t == token {
			return false
		}
	}
	*holds = append(*holds, token)
	return true
}

func removeHold(holds *[]string, token string) bool {
	for i, t := range *holds {
		if t == token {
			*holds = append((*holds)[:i], (*holds)[i+1:]...)
			return true
		}
	}
	return false
}
