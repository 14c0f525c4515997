// Package queue provides the priority queue used by the path search.
package queue

import (
	"container/heap"
	"fmt"
	"strings"
)

// MinHeap is a binary min-heap ordered by a caller supplied comparator.
// Push and Pop run in O(log n).
type MinHeap[T any] struct {
	items heapItems[T]
}

// NewMinHeap creates a heap ordered by less and initialized with items.
func NewMinHeap[T any](less func(a, b T) bool, items ...T) *MinHeap[T] {
	h := &MinHeap[T]{items: heapItems[T]{less: less}}
	h.items.values = append(h.items.values, items...)
	heap.Init(&h.items)
	return h
}

// Implements heap.Interface
type heapItems[T any] struct {
	values []T
	less   func(a, b T) bool
}

func (q heapItems[T]) Len() int           { return len(q.values) }
func (q heapItems[T]) Less(i, j int) bool { return q.less(q.values[i], q.values[j]) }
func (q heapItems[T]) Swap(i, j int)      { q.values[i], q.values[j] = q.values[j], q.values[i] }
func (q *heapItems[T]) Push(item any)     { q.values = append(q.values, item.(T)) }
func (q *heapItems[T]) Pop() any {
	old := q.values
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero // don't keep a reference to the popped item
	q.values = old[:n-1]
	return item
}

func (h *MinHeap[T]) Len() int    { return h.items.Len() }
func (h *MinHeap[T]) Push(item T) { heap.Push(&h.items, item) }

// Pop removes and returns the minimum. It panics on an empty heap.
func (h *MinHeap[T]) Pop() T { return heap.Pop(&h.items).(T) }

// Peek returns the minimum without removing it. It panics on an empty heap.
func (h *MinHeap[T]) Peek() T { return h.items.values[0] }

func (h *MinHeap[T]) PeekAt(index int) T {
	if index >= h.Len() {
		panic("index out of bounds")
	}
	return h.items.values[index]
}

// Reset removes all items but keeps the allocated storage.
func (h *MinHeap[T]) Reset() {
	var zero T
	for i := range h.items.values {
		h.items.values[i] = zero
	}
	h.items.values = h.items.values[:0]
}

func (h *MinHeap[T]) String() string {
	var sb strings.Builder
	for i := 0; i < h.Len(); i++ {
		sb.WriteString(fmt.Sprintf("%v: %v\n", i, h.PeekAt(i)))
	}
	return sb.String()
}
