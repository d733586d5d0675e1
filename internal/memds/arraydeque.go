package memds

import (
	"slices"
)

// thread unsafe array deque.
type ArrayDeque[T any] struct {
	elements []T
}

func NewArrayDeque[T any]() *ArrayDeque[T] {
	return &ArrayDeque[T]{}
}

// PushFront adds a value at the front of the deque.
func (q *ArrayDeque[T]) PushFront(value T) {
	q.elements = slices.Insert(q.elements, 0, value)
}

// PushBack adds a value at the back of the deque.
func (q *ArrayDeque[T]) PushBack(value T) {
	q.elements = append(q.elements, value)
}

// PopFront removes the first element of the deque and returns it.
// Second return parameter is true, unless the deque was empty and there was nothing to pop.
func (q *ArrayDeque[T]) PopFront() (value T, ok bool) {
	if len(q.elements) == 0 {
		return
	}
	elem := q.elements[0]
	copy(q.elements, q.elements[1:])
	q.elements = q.elements[:len(q.elements)-1]
	return elem, true
}

// PopBack removes the last element of the deque and returns it.
// Second return parameter is true, unless the deque was empty and there was nothing to pop.
func (q *ArrayDeque[T]) PopBack() (value T, ok bool) {
	if len(q.elements) == 0 {
		return
	}
	elem := q.elements[len(q.elements)-1]
	q.elements = q.elements[:len(q.elements)-1]
	return elem, true
}

// PeekFront returns the first element of the deque without removing it.
// Second return parameter is true, unless the deque was empty and there was nothing to peek.
func (q *ArrayDeque[T]) PeekFront() (value T, ok bool) {
	if len(q.elements) == 0 {
		return
	}
	return q.elements[0], true
}

// Empty returns true if the deque does not contain any elements.
func (q *ArrayDeque[T]) Empty() bool {
	return len(q.elements) == 0
}

// Size returns the number of elements within the deque.
func (q *ArrayDeque[T]) Size() int {
	return len(q.elements)
}

// Clear removes all elements from the deque.
func (q *ArrayDeque[T]) Clear() {
	q.elements = q.elements[:0]
}

// Values returns all elements in the deque (front to back).
func (q *ArrayDeque[T]) Values() []T {
	return slices.Clone(q.elements)
}
