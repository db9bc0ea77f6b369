// Package reactive is the minimal signal runtime the compiler's generated
// code binds against. A signal owns its value and an ordered list of
// subscriber callbacks; Set and Update synchronously invoke every subscriber
// in registration order before returning. There is no deferred or batched
// notification and no cycle detection: a subscriber that writes back into
// its own signal will recurse.
package reactive

import (
	"sync"
)

// debugLog is set by SetDebugLog for tracing signal traffic.
var debugLog func(args ...any)

// SetDebugLog sets the debug logging function.
func SetDebugLog(fn func(args ...any)) {
	debugLog = fn
}

// Signal is a named observable mutable value. All methods are safe for
// concurrent use; subscriber callbacks run outside the value lock, on the
// goroutine that called Set or Update.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  []subscriber[T]
	next  int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// NewSignal creates a signal with an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores a new value and synchronously notifies every subscriber in
// registration order before returning.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	subs := append([]subscriber[T](nil), s.subs...)
	s.mu.Unlock()

	if debugLog != nil {
		debugLog("[Signal] Set notifying", len(subs), "subscribers")
	}
	for _, sub := range subs {
		sub.fn(value)
	}
}

// Update atomically reads, modifies and writes the value, then notifies
// subscribers like Set.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	value := s.value
	subs := append([]subscriber[T](nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(value)
	}
}

// Subscribe registers a callback invoked on every Set or Update. It returns
// an unsubscribe function. The callback is not invoked with the current
// value at registration time.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// Len returns the current subscriber count.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Derive returns a new signal holding fn applied to the source's current
// value.
//
// Known gap, kept deliberately: the derived signal is a one-shot snapshot.
// Later updates to the source are NOT forwarded; keeping multi-level derived
// values live would need a dependency-tracking scheduler this runtime does
// not have. Callers that need a live derived value must Subscribe to the
// source and Set the derived signal themselves.
func Derive[T, U any](s *Signal[T], fn func(T) U) *Signal[U] {
	return NewSignal(fn(s.Get()))
}
