// Package subject provides a minimal observable value cell: a single mutable
// value with synchronous subscriber fan-out. It is deliberately free of any
// UI-framework coupling; a binding layer reads Value once for its initial
// render and subscribes for updates, unsubscribing on teardown.
package subject

import "sync"

// Subscriber receives the new value on every Next call made while it is
// registered.
type Subscriber[T any] func(T)

// Subscription is the handle returned by Subscribe. Unsubscribe removes
// exactly that subscriber and is safe to call multiple times.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

type entry[T any] struct {
	id int
	fn Subscriber[T]
}

// Subject holds the current value and its subscribers. There is no buffering
// of missed notifications: a late subscriber only ever observes the value at
// subscription time (via Value) plus future Next calls.
type Subject[T any] struct {
	mu     sync.Mutex
	value  T
	nextID int
	subs   []entry[T]
}

func New[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

// Value returns the current snapshot.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Next replaces the held value and synchronously invokes every subscriber
// registered at the start of the call, in registration order. Subscribers
// added during a Next call are only invoked for subsequent calls.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	s.value = v
	snapshot := make([]entry[T], len(s.subs))
	copy(snapshot, s.subs)
	s.mu.Unlock()

	for _, e := range snapshot {
		e.fn(v)
	}
}

// Subscribe registers fn for future Next calls.
func (s *Subject[T]) Subscribe(fn Subscriber[T]) *Subscription {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, entry[T]{id: id, fn: fn})
	s.mu.Unlock()

	return &Subscription{cancel: func() { s.remove(id) }}
}

func (s *Subject[T]) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.subs {
		if e.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}
