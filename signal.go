package illumiterm

// Subscription is returned by every OnXxx method. Cancel is safe to call more
// than once.
type Subscription interface {
	Cancel()
}

type subscription struct {
	cancel func()
}

func (s *subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Signal is a list of handlers for one event kind. Handlers run in connection
// order. Not safe for concurrent use; signals live on the loop.
type Signal[T any] struct {
	handlers []signalHandler[T]
	nextID   int
}

type signalHandler[T any] struct {
	id int
	fn func(T) bool
}

// Connect adds a handler whose return value marks the event handled
func (s *Signal[T]) Connect(fn func(T) bool) Subscription {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, signalHandler[T]{id: id, fn: fn})
	return &subscription{cancel: func() { s.disconnect(id) }}
}

// Listen adds a handler that never consumes the event
func (s *Signal[T]) Listen(fn func(T)) Subscription {
	return s.Connect(func(v T) bool {
		fn(v)
		return false
	})
}

// Emit runs handlers until one returns true. Reports whether the event was
// handled.
func (s *Signal[T]) Emit(v T) bool {
	// Copy so handlers may cancel themselves while we iterate
	handlers := append([]signalHandler[T](nil), s.handlers...)
	for _, h := range handlers {
		if h.fn(v) {
			return true
		}
	}
	return false
}

// Len returns the number of connected handlers
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

func (s *Signal[T]) disconnect(id int) {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Subscriptions collects subscriptions so they can be cancelled together
type Subscriptions []Subscription

// Add appends sub
func (s *Subscriptions) Add(sub Subscription) {
	if sub != nil {
		*s = append(*s, sub)
	}
}

// Cancel cancels everything collected and empties the list
func (s *Subscriptions) Cancel() {
	for _, sub := range *s {
		sub.Cancel()
	}
	*s = nil
}
