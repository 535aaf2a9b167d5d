package internal

// Stream is a single-direction lookahead cursor over a sequence of items.
// Exhaustion is never an error; it yields the zero value and ok == false.
type Stream[T any] struct {
	items []T
	index int
}

// NewStream creates a stream over items. The slice is not copied.
func NewStream[T any](items []T) *Stream[T] {
	return &Stream[T]{items: items}
}

// HasNext returns true if at least one item remains.
func (s *Stream[T]) HasNext() bool {
	return s.index < len(s.items)
}

// Len returns the number of remaining items.
func (s *Stream[T]) Len() int {
	return len(s.items) - s.index
}

// Peek returns the head of the stream without consuming it.
func (s *Stream[T]) Peek() (item T, ok bool) {
	if !s.HasNext() {
		return
	}

	return s.items[s.index], true
}

// Consume removes and returns the head of the stream.
func (s *Stream[T]) Consume() (item T, ok bool) {
	item, ok = s.Peek()
	if ok {
		s.index++
	}
	return
}

// ConsumeWhile consumes the longest prefix for which pred holds.
func (s *Stream[T]) ConsumeWhile(pred func(item T) bool) (items []T) {
	start := s.index
	for s.HasNext() && pred(s.items[s.index]) {
		s.index++
	}

	if s.index > start {
		items = s.items[start:s.index]
	}

	return
}
