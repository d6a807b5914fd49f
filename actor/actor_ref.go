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
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vincent212/actors/internal/wire"
	"github.com/vincent212/actors/transport"
)

// refKind discriminates the three states an ActorRef can be in: a
// no-op sink, a pointer straight at a locally managed actor, or a
// handle addressing an actor owned by some other manager, reachable
// only through a transport.Sender.
type refKind int

const (
	refNull refKind = iota
	refLocal
	refRemote
)

// ActorRef is how every actor and every caller addresses an actor. Its
// zero value is a Null reference: a valid, always-safe sink that
// silently drops anything sent to it. This means a freshly-declared
// `var target ActorRef` or a lookup that came back empty can be used
// immediately without a nil check.
type ActorRef struct {
	kind refKind
	name string

	local *Actor

	endpoint string
	sender   transport.Sender
}

// NullActorRef returns the no-op reference. Equivalent to the zero
// value; provided for readability at call sites.
func NullActorRef() ActorRef { return ActorRef{kind: refNull} }

// LocalActorRef wraps a locally managed actor.
func LocalActorRef(a *Actor) ActorRef {
	return ActorRef{kind: refLocal, name: a.Name(), local: a}
}

// RemoteActorRef addresses an actor reachable at endpoint through
// sender. endpoint is opaque to this package; the bundled NATS
// transport treats it as a subject name.
func RemoteActorRef(name, endpoint string, sender transport.Sender) ActorRef {
	return ActorRef{kind: refRemote, name: name, endpoint: endpoint, sender: sender}
}

// IsNull reports whether this reference is the no-op sink.
func (r ActorRef) IsNull() bool { return r.kind == refNull }

// IsLocal reports whether this reference addresses an actor in this
// process.
func (r ActorRef) IsLocal() bool { return r.kind == refLocal }

// IsRemote reports whether this reference addresses an actor reachable
// only over the network.
func (r ActorRef) IsRemote() bool { return r.kind == refRemote }

// Name returns the addressed actor's name, or the empty string for a
// Null reference.
func (r ActorRef) Name() string { return r.name }

// Endpoint returns the transport endpoint of a remote reference, or the
// empty string otherwise.
func (r ActorRef) Endpoint() string { return r.endpoint }

// Send delivers payload asynchronously. Sending to a Null reference is
// a no-op that returns nil, so callers never need to guard a Send with
// an IsNull check. sender is attached to the delivered message so the
// receiving handler can Reply.
func (r ActorRef) Send(ctx context.Context, payload Payload, sender ActorRef) error {
	switch r.kind {
	case refNull:
		return nil
	case refLocal:
		return r.local.mailbox.push(newMessage(payload, sender, false))
	case refRemote:
		frame, err := r.encodeFrame(payload, sender, false, "")
		if err != nil {
			return err
		}
		if err := r.sender.Send(ctx, r.endpoint, frame); err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
		return nil
	default:
		return ErrPreconditionViolation
	}
}

// FastSend delivers payload and blocks for a reply, up to timeout.
// Sending to a Null reference returns ErrNoTarget immediately, since
// there is no possible reply.
func (r ActorRef) FastSend(ctx context.Context, payload Payload, sender ActorRef, timeout time.Duration) (*Message, error) {
	if timeout <= 0 {
		timeout = DefaultFastSendTimeout
	}

	switch r.kind {
	case refNull:
		return nil, ErrNoTarget
	case refLocal:
		msg := newMessage(payload, sender, true)
		msg.replySlot = make(chan *Message, 1)
		if err := r.local.mailbox.push(msg); err != nil {
			return nil, err
		}
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case resp := <-msg.replySlot:
			return resp, nil
		case <-timer.C:
			return nil, ErrTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	case refRemote:
		reqID := uuid.NewString()
		frame, err := r.encodeFrame(payload, sender, true, reqID)
		if err != nil {
			return nil, err
		}
		replyFrame, err := r.sender.FastSend(ctx, r.endpoint, frame, timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return frameToMessage(replyFrame, sender)
	default:
		return nil, ErrPreconditionViolation
	}
}

func (r ActorRef) encodeFrame(payload Payload, sender ActorRef, isFast bool, requestID string) (*wire.Frame, error) {
	data, err := wire.EncodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return &wire.Frame{
		Sender:      sender.Name(),
		Destination: r.name,
		KindID:      payload.Kind(),
		IsFast:      isFast,
		RequestID:   requestID,
		Payload:     data,
	}, nil
}

// frameToMessage converts an inbound wire frame into a Message whose
// Payload is left as the raw encoded bytes: this package has no way to
// know the concrete Go type behind an application kind id, so callers
// decode it themselves with wire.DecodePayload.
func frameToMessage(f *wire.Frame, sender ActorRef) (*Message, error) {
	return &Message{
		KindID:  f.KindID,
		Sender:  sender,
		IsFast:  f.IsFast,
		Payload: f.Payload,
	}, nil
}
