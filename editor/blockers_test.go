package editor

import (
	"strings"
	"testing"
)

func TestBlockMouseTogglesOnFirstHoldOnly(t *testing.T) {
	s, h := newTestSession(t)
	kb := h.Dev[0]
	pad := h.AddDevice("gamepad")

	s.BlockMouse("panel")
	if kb.Mouse || pad.Mouse {
		t.Error("mouse still enabled after first hold")
	}
	if kb.MouseCalls != 1 || pad.MouseCalls != 1 {
		t.Errorf("device calls = %d/%d after first hold, want 1/1", kb.MouseCalls, pad.MouseCalls)
	}

	s.BlockMouse("minimap")
	if kb.MouseCalls != 1 {
		t.Errorf("second hold touched the host, calls = %d", kb.MouseCalls)
	}

	s.UnblockMouse("panel")
	if kb.Mouse {
		t.Error("mouse re-enabled while a hold remains")
	}
	if kb.MouseCalls != 1 {
		t.Errorf("partial release touched the host, calls = %d", kb.MouseCalls)
	}

	s.UnblockMouse("minimap")
	if !kb.Mouse || !pad.Mouse {
		t.Error("mouse not re-enabled after the last release")
	}
	if kb.MouseCalls != 2 || pad.MouseCalls != 2 {
		t.Errorf("device calls = %d/%d after full release, want 2/2", kb.MouseCalls, pad.MouseCalls)
	}
}

func TestBlockTokensAreIdempotent(t *testing.T) {
	s, h := newTestSession(t)
	d := h.Dev[0]

	s.BlockMouse("panel")
	s.BlockMouse("panel")
	s.UnblockMouse("panel")

	if !d.Mouse {
		t.Error("mouse still blocked after releasing the only hold")
	}
	if s.MouseBlocked() {
		t.Error("MouseBlocked with no holds")
	}
}

func TestUnblockUnknownTokenIsNoOp(t *testing.T) {
	s, h := newTestSession(t)
	d := h.Dev[0]

	s.UnblockMouse("ghost")
	if d.MouseCalls != 0 {
		t.Errorf("releasing an unknown token touched the host, calls = %d", d.MouseCalls)
	}

	s.BlockKeyboard("chat")
	s.UnblockKeyboard("ghost")
	if !s.KeyboardBlocked() {
		t.Error("unknown token released someone else's hold")
	}
}

func TestMouseAndKeyboardHoldsAreIndependent(t *testing.T) {
	s, h := newTestSession(t)
	d := h.Dev[0]

	s.BlockKeyboard("chat")
	if !d.Mouse {
		t.Error("keyboard hold disabled the mouse")
	}
	if d.Keyboard {
		t.Error("keyboard still enabled under a hold")
	}
	if s.MouseBlocked() || !s.KeyboardBlocked() {
		t.Errorf("MouseBlocked=%v KeyboardBlocked=%v, want false/true", s.MouseBlocked(), s.KeyboardBlocked())
	}
}

func TestEmptyTokenIgnored(t *testing.T) {
	s, h := newTestSession(t)
	s.BlockMouse("")
	if s.MouseBlocked() || h.Dev[0].MouseCalls != 0 {
		t.Error("empty token created a hold")
	}
}

func TestBlockAfterCloseIsNoOp(t *testing.T) {
	s, h := newTestSession(t)
	d := h.Dev[0]
	s.Close()

	s.BlockMouse("panel")
	s.BlockKeyboard("panel")

	if !d.Mouse || !d.Keyboard {
		t.Error("closed session disabled input")
	}
	if d.MouseCalls != 0 || d.KeyboardCalls != 0 {
		t.Errorf("closed session touched the host, calls = %d/%d", d.MouseCalls, d.KeyboardCalls)
	}
	if s.MouseBlocked() || s.KeyboardBlocked() {
		t.Error("closed session recorded holds it can never release")
	}
}

func TestNewToken(t *testing.T) {
	a := NewToken("panel")
	b := NewToken("panel")
	if a == b {
		t.Error("tokens are not unique")
	}
	if !strings.HasPrefix(a, "panel-") {
		t.Errorf("token %q missing its prefix", a)
	}
	if NewToken("") == "" {
		t.Error("empty prefix produced an empty token")
	}
}
