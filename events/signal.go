// Package events provides small multicast signals used by the editor façade
// to re-publish host lifecycle notifications to mods.
package events

// Handle identifies one subscription. Function values cannot be compared in
// Go, so unsubscription goes through handles instead.
type Handle int

// Signal is a multicast event with no payload. Multiple subscribers receive
// each emission in subscribe order.
//
// Signals are not synchronized: they are owned by the session that exposes
// them and emitted on the host's main thread.
type Signal struct {
	subs []subscriber[struct{}]
	next Handle
}

// Subscribe adds a callback and returns a handle for later removal.
// A nil callback is ignored and returns an invalid handle.
func (s *Signal) Subscribe(fn func()) Handle {
	if fn == nil {
		return -1
	}
	s.next++
	s.subs = append(s.subs, subscriber[struct{}]{h: s.next, fn: func(struct{}) { fn() }})
	return s.next
}

// Unsubscribe removes the subscription with the given handle. Unknown
// handles are a no-op.
func (s *Signal) Unsubscribe(h Handle) {
	s.subs = removeHandle(s.subs, h)
}

// Emit calls every subscriber in subscribe order.
func (s *Signal) Emit() {
	// Iterate a snapshot so subscribers may unsubscribe during emission.
	for _, sub := range append([]subscriber[struct{}](nil), s.subs...) {
		sub.fn(struct{}{})
	}
}

// Clear drops all subscriptions.
func (s *Signal) Clear() {
	s.subs = nil
}

// Len returns the number of subscribers.
func (s *Signal) Len() int {
	return len(s.subs)
}

// SignalOf is a multicast event carrying one payload value.
type SignalOf[T any] struct {
	subs []subscriber[T]
	next Handle
}

func (s *SignalOf[T]) Subscribe(fn func(T)) Handle {
	if fn == nil {
		return -1
	}
	s.next++
	s.subs = append(s.subs, subscriber[T]{h: s.next, fn: fn})
	return s.next
}

func (s *SignalOf[T]) Unsubscribe(h Handle) {
	s.subs = removeHandle(s.subs, h)
}

func (s *SignalOf[T]) Emit(arg T) {
	for _, sub := range append([]subscriber[T](nil), s.subs...) {
		sub.fn(arg)
	}
}

func (s *SignalOf[T]) Clear() {
	s.subs = nil
}

func (s *SignalOf[T]) Len() int {
	return len(s.subs)
}

type subscriber[T any] struct {
	h  Handle
	fn func(T)
}

func removeHandle[T any](subs []subscriber[T], h Handle) []subscriber[T] {
	if h <= 0 {
		return subs
	}
	for i, sub := range subs {
		if sub.h == h {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}
