package queue

import "iter"

// compactThreshold is the minimum number of consumed slots before the
// backing array is compacted.
const compactThreshold = 64

// Queue is a FIFO queue that avoids shifting on every Dequeue. It keeps a
// head cursor into the backing array and only reclaims the consumed prefix
// once it is large relative to the array.
//
// The zero value is an empty queue ready to use.
type Queue[T any] struct {
	items []T
	head  int
}

func New[T any]() *Queue[T] { return &Queue[T]{} }

// Enqueue adds v to the back of the queue.
func (q *Queue[T]) Enqueue(v T) {
	q.items = append(q.items, v)
}

// Dequeue removes and returns the front item. ok is false when the queue is empty.
func (q *Queue[T]) Dequeue() (v T, ok bool) {
	if q.Len() == 0 {
		return v, false
	}
	var zero T
	v = q.items[q.head]
	q.items[q.head] = zero
	q.head++
	q.compact()
	return v, true
}

// Peek returns the front item without removing it.
func (q *Queue[T]) Peek() (v T, ok bool) {
	if q.Len() == 0 {
		return v, false
	}
	return q.items[q.head], true
}

func (q *Queue[T]) Len() int { return len(q.items) - q.head }

func (q *Queue[T]) IsEmpty() bool { return q.Len() == 0 }

// All iterates from the oldest to the newest item. The sequence reads the
// queue at iteration time and may be ranged over any number of times.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range q.items[q.head:] {
			if !yield(v) {
				return
			}
		}
	}
}

// RemoveAt removes and returns the item at zero-based logical index i,
// counted from the front. RemoveAt(0) removes the same item as Dequeue.
//
// The live items are moved to the start of the backing array in a single
// pass, so this is O(n) in the queue length.
func (q *Queue[T]) RemoveAt(i int) (v T, ok bool) {
	if i < 0 || i >= q.Len() {
		return v, false
	}
	live := q.items[q.head:]
	v = live[i]
	n := copy(q.items, live[:i])
	n += copy(q.items[n:], live[i+1:])
	clear(q.items[n:])
	q.items = q.items[:n]
	q.head = 0
	return v, true
}

func (q *Queue[T]) compact() {
	if q.head == 0 {
		return
	}
	if q.Len() == 0 {
		clear(q.items)
		q.items = q.items[:0]
		q.head = 0
		return
	}
	if q.head >= compactThreshold && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
}
