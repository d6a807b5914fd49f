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

package actor

import (
	"sync"

	gods "github.com/Workiva/go-datastructures/queue"

	"github.com/vincent212/actors/internal/queue"
)

// mailbox is a single-consumer, multi-producer queue with a bounded
// fast path and an unbounded overflow fallback. Push never blocks: once
// the bounded ring is full, messages spill into the overflow queue,
// which grows as needed. Pop drains the ring before ever looking at
// overflow, which keeps global FIFO order intact across the boundary:
// nothing enters overflow before the ring has seen every message that
// preceded it in Push order, and the ring only shrinks once a message
// starts landing in overflow, so the ring is always older than
// overflow.
//
// Both the ring and the overflow queue are touched only while holding
// mu, so neither the ring's own internal locking nor its blocking
// Put/Get calls can ever actually block: Push only calls ring.Put when
// it has just confirmed room, and Pop only calls ring.Get when it has
// just confirmed an item is present.
//
// head is a one-slot lookahead cache: since neither the ring buffer nor
// the overflow queue expose a non-destructive read of their front
// element, the mailbox pulls the next element out of whichever store
// holds it and holds it in head until something actually consumes it.
// That is what lets peek observe the front of the queue without
// disturbing it, and lets pop compute the spec's "last" flag (true iff
// the queue is empty immediately after this pop) without a second,
// racy length check outside the lock.
type mailbox struct {
	mu   sync.Mutex
	cond *sync.Cond

	capacity    int
	ring        *gods.RingBuffer
	overflow    *queue.Overflow[*Message]
	overflowing bool
	head        *Message

	disposed bool
}

func newMailbox(capacity int) *mailbox {
	if capacity <= 0 {
		capacity = DefaultMailboxCapacity
	}
	mb := &mailbox{
		capacity: capacity,
		ring:     gods.NewRingBuffer(uint64(capacity)),
		overflow: queue.NewOverflow[*Message](),
	}
	mb.cond = sync.NewCond(&mb.mu)
	return mb
}

// push enqueues msg. It never blocks and never fails except when the
// mailbox has been disposed.
func (mb *mailbox) push(msg *Message) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if mb.disposed {
		return ErrMailboxDisposed
	}

	if !mb.overflowing && mb.ring.Len() < uint64(mb.capacity) {
		if err := mb.ring.Put(msg); err != nil {
			return err
		}
	} else {
		mb.overflowing = true
		mb.overflow.Push(msg)
	}

	mb.cond.Signal()
	return nil
}

// fetchHead pulls the next element out of the ring, or failing that the
// overflow queue, into head. Must be called with mu held. A no-op if
// head is already populated or both stores are empty.
func (mb *mailbox) fetchHead() {
	if mb.head != nil {
		return
	}
	if mb.ring.Len() > 0 {
		item, err := mb.ring.Get()
		if err == nil {
			mb.head, _ = item.(*Message)
		}
	} else if mb.overflow.Len() > 0 {
		mb.head, _ = mb.overflow.Pop()
	}
	mb.settleOverflow()
}

// pop removes and returns the next message, blocking until one is
// available or the mailbox is disposed, in which case it returns
// (nil, false). The returned message's Last field is true iff the
// mailbox holds no further messages immediately after this pop, per
// the mailbox contract's end-of-batch signal.
func (mb *mailbox) pop() (*Message, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	for {
		mb.fetchHead()
		if mb.head != nil {
			msg := mb.head
			mb.head = nil
			mb.fetchHead()
			msg.Last = mb.head == nil
			return msg, true
		}
		if mb.disposed {
			return nil, false
		}
		mb.cond.Wait()
	}
}

// peek returns the next message pop would return, without removing it.
// Non-destructive per the mailbox contract; safe to call any number of
// times without affecting delivery order.
func (mb *mailbox) peek() (*Message, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.fetchHead()
	return mb.head, mb.head != nil
}

// settleOverflow drops back to preferring the ring once both stores
// have drained, so a mailbox that recovers from a burst does not stay
// pinned to the overflow path forever.
func (mb *mailbox) settleOverflow() {
	if mb.overflowing && mb.ring.Len() == 0 && mb.overflow.Len() == 0 {
		mb.overflowing = false
	}
}

// len returns a snapshot of the total number of queued messages,
// including one held in the peek lookahead slot if populated.
func (mb *mailbox) len() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	n := int(mb.ring.Len()) + mb.overflow.Len()
	if mb.head != nil {
		n++
	}
	return n
}

// isOverCapacity reports whether the mailbox has started spilling into
// the unbounded overflow queue, which callers can use as a backpressure
// signal even though push itself never blocks.
func (mb *mailbox) isOverCapacity() bool {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.overflowing
}

// dispose marks the mailbox closed and wakes any goroutine blocked in
// pop. Later pushes fail with ErrMailboxDisposed. Messages already
// queued are not removed: pop still returns them, and reports
// (nil, false) only once the mailbox is empty.
func (mb *mailbox) dispose() {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.disposed {
		return
	}
	mb.disposed = true
	mb.cond.Broadcast()
}
