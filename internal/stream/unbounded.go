package stream

import (
	"context"
	"iter"
	"slices"
	"sync"
)

// Unbounded is an asynchronous stream connecting one producer to one
// consumer. Emit never blocks: a value is handed to the suspended consumer
// if there is one, otherwise buffered in order. Next returns buffered
// values in emission order and suspends while the stream is empty.
//
// The stream never closes. A consuming loop runs until its context is
// cancelled, which is the owner's concern, not the stream's.
//
// Emit is safe for concurrent use; emission order is the order in which
// emitters pass the internal lock. Next is meant for a single consumer.
// Concurrent Next calls are tolerated and resumed oldest-first, one value
// each, but only one logical consumer is supported.
type Unbounded[T any] struct {
	mu      sync.Mutex
	queue   []T
	waiters []chan T
}

func NewUnboundedStream[T any]() *Unbounded[T] {
	return &Unbounded[T]{}
}

// Emit hands value to the oldest suspended Next call, or buffers it when
// no consumer is waiting. It never blocks and never fails.
func (s *Unbounded[T]) Emit(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.waiters) > 0 {
		w := s.waiters[0]
		s.waiters = slices.Delete(s.waiters, 0, 1)
		w <- value // cap 1, drained by exactly one Next call
		return
	}
	s.queue = append(s.queue, value)
}

// Next returns the oldest pending value, suspending while the stream is
// empty. The only error is ctx's, when the surrounding task is torn down.
// A value emitted to a Next call that loses the race against cancellation
// is put back at the front of the queue, so nothing is lost or reordered.
func (s *Unbounded[T]) Next(ctx context.Context) (T, error) {
	s.mu.Lock()
	if len(s.queue) > 0 {
		value := s.queue[0]
		s.queue = slices.Delete(s.queue, 0, 1)
		s.mu.Unlock()
		return value, nil
	}
	w := make(chan T, 1)
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()

	select {
	case value := <-w:
		return value, nil
	case <-ctx.Done():
		s.mu.Lock()
		defer s.mu.Unlock()
		select {
		case value := <-w:
			// Emit won the race. Pass the value on to the next waiter,
			// or return it to the front of the queue: it is still the
			// oldest pending value and must be consumed first.
			if len(s.waiters) > 0 {
				next := s.waiters[0]
				s.waiters = slices.Delete(s.waiters, 0, 1)
				next <- value
			} else {
				s.queue = slices.Insert(s.queue, 0, value)
			}
		default:
			if i := slices.Index(s.waiters, w); i != -1 {
				s.waiters = slices.Delete(s.waiters, i, i+1)
			}
		}
		var zero T
		return zero, ctx.Err()
	}
}

// Values returns the stream as a lazy sequence: an unbounded, in-order,
// non-restartable iteration that suspends between elements until more
// values arrive. It is the loop form of repeated Next calls and stops only
// when ctx is cancelled.
func (s *Unbounded[T]) Values(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			value, err := s.Next(ctx)
			if err != nil {
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}

// Len reports the number of buffered values not yet consumed.
func (s *Unbounded[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
