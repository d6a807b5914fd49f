/*
 * MIT License
 *
 * Copyright (c) 2022-2024 Tochemey
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package queue provides the small ring-buffer building blocks the actor
// mailbox is assembled from.
package queue

// minLen is the smallest capacity the overflow queue starts at.
// Must be a power of 2 for bitwise modulus: x % n == x & (n - 1).
const minLen = 16

// Overflow is an unbounded, auto-growing ring buffer used as the fallback
// storage for a mailbox once its bounded ring is full.
//
// Overflow is NOT safe for concurrent use on its own: it has no internal
// locking. It is meant to be embedded in a structure (such as the actor
// package's mailbox) that already serializes access to it, the same way
// container/ring or container/list are used inside synchronized callers.
type Overflow[T any] struct {
	nodes []T
	head  int
	tail  int
	count int
}

// NewOverflow creates an empty Overflow queue.
func NewOverflow[T any]() *Overflow[T] {
	return &Overflow[T]{nodes: make([]T, minLen)}
}

// Push appends a value to the back of the queue, growing the backing
// array if necessary. It never fails.
func (q *Overflow[T]) Push(v T) {
	if q.count == len(q.nodes) {
		q.resize()
	}
	q.nodes[q.tail] = v
	q.tail = (q.tail + 1) & (len(q.nodes) - 1)
	q.count++
}

// Pop removes and returns the value at the front of the queue.
// The second return value is false if the queue was empty.
func (q *Overflow[T]) Pop() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	v := q.nodes[q.head]
	q.nodes[q.head] = zero
	q.head = (q.head + 1) & (len(q.nodes) - 1)
	q.count--
	if len(q.nodes) > minLen && (q.count<<2) == len(q.nodes) {
		q.resize()
	}
	return v, true
}

// Len returns the number of items currently queued.
func (q *Overflow[T]) Len() int {
	return q.count
}

func (q *Overflow[T]) resize() {
	size := q.count << 1
	if size < minLen {
		size = minLen
	}
	nodes := make([]T, size)
	if q.tail > q.head {
		copy(nodes, q.nodes[q.head:q.tail])
	} else {
		n := copy(nodes, q.nodes[q.head:])
		copy(nodes[n:], q.nodes[:q.tail])
	}
	q.head = 0
	q.tail = q.count
	q.nodes = nodes
}
