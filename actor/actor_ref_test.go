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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullActorRefIsZeroValue(t *testing.T) {
	var ref ActorRef
	assert.True(t, ref.IsNull())
	assert.True(t, NullActorRef().IsNull())
}

func TestSendToNullRefIsNoop(t *testing.T) {
	ref := NullActorRef()
	err := ref.Send(context.Background(), testMsg{N: 1}, NullActorRef())
	assert.NoError(t, err)
}

func TestFastSendToNullRefReturnsErrNoTarget(t *testing.T) {
	ref := NullActorRef()
	_, err := ref.FastSend(context.Background(), testMsg{N: 1}, NullActorRef(), time.Second)
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestLocalActorRefDeliversToMailbox(t *testing.T) {
	a := NewActor("t")
	ref := LocalActorRef(a)
	require.True(t, ref.IsLocal())
	require.Equal(t, "t", ref.Name())

	require.NoError(t, ref.Send(context.Background(), testMsg{N: 5}, NullActorRef()))
	msg, ok := a.mailbox.pop()
	require.True(t, ok)
	assert.Equal(t, testMsg{N: 5}, msg.Payload)
}
