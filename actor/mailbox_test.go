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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxFIFOWithinCapacity(t *testing.T) {
	mb := newMailbox(8)
	for i := 0; i < 5; i++ {
		require.NoError(t, mb.push(&Message{KindID: uint32(i)}))
	}
	assert.Equal(t, 5, mb.len())
	assert.False(t, mb.isOverCapacity())

	for i := 0; i < 5; i++ {
		msg, ok := mb.pop()
		require.True(t, ok)
		assert.Equal(t, uint32(i), msg.KindID)
	}
}

func TestMailboxOverflowPreservesFIFO(t *testing.T) {
	mb := newMailbox(4)
	const total = 50
	for i := 0; i < total; i++ {
		require.NoError(t, mb.push(&Message{KindID: uint32(i)}))
	}
	assert.True(t, mb.isOverCapacity())
	assert.Equal(t, total, mb.len())

	for i := 0; i < total; i++ {
		msg, ok := mb.pop()
		require.True(t, ok)
		assert.Equal(t, uint32(i), msg.KindID, "message %d out of order", i)
	}
	assert.Equal(t, 0, mb.len())
}

func TestMailboxSettlesBackToRingAfterDraining(t *testing.T) {
	mb := newMailbox(2)
	for i := 0; i < 10; i++ {
		require.NoError(t, mb.push(&Message{KindID: uint32(i)}))
	}
	require.True(t, mb.isOverCapacity())
	for i := 0; i < 10; i++ {
		_, ok := mb.pop()
		require.True(t, ok)
	}
	assert.False(t, mb.isOverCapacity())

	require.NoError(t, mb.push(&Message{KindID: 99}))
	msg, ok := mb.pop()
	require.True(t, ok)
	assert.Equal(t, uint32(99), msg.KindID)
}

func TestMailboxPushNeverBlocks(t *testing.T) {
	mb := newMailbox(1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = mb.push(&Message{KindID: uint32(i)})
		}
	}()
	select {
	case <-done:
	case <-timeoutChan(t):
		t.Fatal("push blocked past the deadline")
	}
}

func TestMailboxDisposeUnblocksPop(t *testing.T) {
	mb := newMailbox(4)
	var wg sync.WaitGroup
	wg.Add(1)
	var got bool
	go func() {
		defer wg.Done()
		_, got = mb.pop()
	}()
	mb.dispose()
	wg.Wait()
	assert.False(t, got)
}

func TestMailboxPushAfterDispose(t *testing.T) {
	mb := newMailbox(4)
	mb.dispose()
	err := mb.push(&Message{})
	assert.ErrorIs(t, err, ErrMailboxDisposed)
}

func TestMailboxPopSetsLastOnlyWhenQueueDrains(t *testing.T) {
	mb := newMailbox(8)
	require.NoError(t, mb.push(&Message{KindID: 0}))
	require.NoError(t, mb.push(&Message{KindID: 1}))
	require.NoError(t, mb.push(&Message{KindID: 2}))

	msg, ok := mb.pop()
	require.True(t, ok)
	assert.False(t, msg.Last, "queue still has messages behind this one")

	msg, ok = mb.pop()
	require.True(t, ok)
	assert.False(t, msg.Last)

	msg, ok = mb.pop()
	require.True(t, ok)
	assert.True(t, msg.Last, "this was the last queued message")
}

func TestMailboxPeekIsNonDestructive(t *testing.T) {
	mb := newMailbox(8)
	_, ok := mb.peek()
	assert.False(t, ok, "peek on an empty mailbox finds nothing")

	require.NoError(t, mb.push(&Message{KindID: 5}))
	require.NoError(t, mb.push(&Message{KindID: 6}))
	assert.Equal(t, 2, mb.len())

	peeked, ok := mb.peek()
	require.True(t, ok)
	assert.Equal(t, uint32(5), peeked.KindID)

	// Peeking again returns the same message and does not consume it.
	peeked, ok = mb.peek()
	require.True(t, ok)
	assert.Equal(t, uint32(5), peeked.KindID)
	assert.Equal(t, 2, mb.len())

	popped, ok := mb.pop()
	require.True(t, ok)
	assert.Equal(t, uint32(5), popped.KindID)

	peeked, ok = mb.peek()
	require.True(t, ok)
	assert.Equal(t, uint32(6), peeked.KindID)
}

func TestMailboxConcurrentProducers(t *testing.T) {
	mb := newMailbox(16)
	const producers = 8
	const perProducer = 200

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				require.NoError(t, mb.push(&Message{}))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, producers*perProducer, mb.len())
}
