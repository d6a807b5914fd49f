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

import "time"

// Defaults governing mailbox sizing, registry liveness and fast_send
// timeouts. All are overridable through the functional options on
// Manager and the registry client.
const (
	// DefaultMailboxCapacity is the soft capacity of a new mailbox's
	// bounded ring before it starts spilling into the unbounded overflow
	// queue.
	DefaultMailboxCapacity = 1024

	// DefaultFastSendTimeout bounds how long FastSend waits for a reply
	// before returning ErrTimeout.
	DefaultFastSendTimeout = 3 * time.Second

	// HeartbeatInterval is how often a registered manager pings the
	// registry to prove liveness.
	HeartbeatInterval = 2 * time.Second

	// OfflineThreshold is how long the registry waits without a
	// heartbeat before marking a registration offline. It is a multiple
	// of HeartbeatInterval so that a couple of missed beats do not flap
	// an actor offline.
	OfflineThreshold = 6 * time.Second

	// ShutdownDrainTimeout bounds how long Manager.End waits for each
	// actor's dispatch loop to exit before logging it as not stopped and
	// moving on; End does not force the loop to stop.
	ShutdownDrainTimeout = 5 * time.Second
)
