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

// Package transport defines the boundary between the actor runtime and
// the concrete network transport. The runtime never imports a specific
// transport package directly: it depends only on Sender and Receiver,
// so the pub/sub-style socket library underneath (this module ships a
// NATS-backed implementation in transport/nats) can be swapped without
// touching the actor or registry packages.
package transport

import (
	"context"
	"time"

	"github.com/vincent212/actors/internal/wire"
)

// Sender delivers frames to a remote endpoint. Endpoints are opaque
// strings from the caller's point of view; a concrete Sender interprets
// them however its underlying transport addresses peers (a NATS
// subject, in the bundled implementation).
type Sender interface {
	// Send delivers a frame without waiting for a reply. Delivery is
	// best-effort: the network transport may drop it silently.
	Send(ctx context.Context, endpoint string, frame *wire.Frame) error
	// FastSend delivers a frame and blocks for a reply frame, up to
	// timeout. It returns ErrTimeout-wrapping error if no reply arrives
	// in time.
	FastSend(ctx context.Context, endpoint string, frame *wire.Frame, timeout time.Duration) (*wire.Frame, error)
	// Close releases the sender's underlying connection.
	Close() error
}

// FrameHandler processes one inbound frame. When the frame is a fast
// request (IsFast), returning a non-nil reply frame causes the receiver
// to send it back to the caller; returning nil answers nothing (the
// caller's FastSend will observe a timeout). For a non-fast frame the
// return value is ignored.
type FrameHandler func(frame *wire.Frame) *wire.Frame

// Receiver accepts inbound frames addressed to a local endpoint and
// hands each to a FrameHandler.
type Receiver interface {
	// Listen subscribes to endpoint and invokes handler for every frame
	// addressed to it until Close is called.
	Listen(ctx context.Context, endpoint string, handler FrameHandler) error
	// Close tears down every subscription registered through Listen.
	Close() error
}
