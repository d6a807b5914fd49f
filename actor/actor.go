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
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/vincent212/actors/internal/affinity"
	"github.com/vincent212/actors/internal/wire"
	"github.com/vincent212/actors/log"
)

// Handler processes one message dispatched to an actor. An error
// returned from a handler is logged and wrapped in ErrHandlerFailure;
// it never stops the dispatch loop, except when the message's KindID is
// wire.KindShutdown, which always stops the loop once the handler
// returns, whatever it returns.
type Handler func(a *Actor, msg *Message) error

// Actor is a single unit of sequential execution: one OS thread, one
// mailbox, one dispatch loop reading that mailbox in a strict pop,
// dispatch, release cycle. Nothing about an Actor's fields is safe for
// concurrent access from outside its own dispatch loop except through
// its ActorRef and the atomics used for observability.
type Actor struct {
	name string

	mailbox        *mailbox
	handlers       map[uint32]Handler
	defaultHandler Handler
	endHook        func(*Actor)

	affinityCPUs []int
	priority     int
	priorityType affinity.PriorityType

	logger log.Logger

	current *Message // set only while the dispatch loop is inside a handler

	messageCount atomic.Int64
	terminated   atomic.Bool
	started      chan struct{}
	stopped      chan struct{}
}

// ActorOption configures an Actor at construction time.
type ActorOption func(*Actor)

// WithHandler registers h to process messages of the given kind. Kind
// ids reserved for the wire protocol (see wire.IsReserved) may still be
// registered by application code that wants to observe Start/Shutdown/
// Timeout directly; the dispatch loop always delivers Shutdown as its
// last message regardless of whether a handler is registered for it.
func WithHandler(kind uint32, h Handler) ActorOption {
	return func(a *Actor) { a.handlers[kind] = h }
}

// WithDefaultHandler registers a fallback invoked for any message kind
// that has no specific handler registered.
func WithDefaultHandler(h Handler) ActorOption {
	return func(a *Actor) { a.defaultHandler = h }
}

// WithEndHook registers a function invoked once, after the dispatch
// loop has processed Shutdown and before the OS thread it owned is
// released.
func WithEndHook(hook func(*Actor)) ActorOption {
	return func(a *Actor) { a.endHook = hook }
}

// WithMailboxCapacity overrides the default soft capacity of the
// actor's bounded mailbox fast path.
func WithMailboxCapacity(capacity int) ActorOption {
	return func(a *Actor) { a.mailbox = newMailbox(capacity) }
}

// WithActorLogger attaches a logger used for handler-failure and
// lifecycle messages. Defaults to log.DefaultLogger.
func WithActorLogger(logger log.Logger) ActorOption {
	return func(a *Actor) { a.logger = logger }
}

// NewActor constructs an actor named name. It is not yet running: a
// Manager must Manage it to start its dispatch loop on a dedicated OS
// thread.
func NewActor(name string, opts ...ActorOption) *Actor {
	a := &Actor{
		name:     name,
		mailbox:  newMailbox(DefaultMailboxCapacity),
		handlers: make(map[uint32]Handler),
		logger:   log.DefaultLogger,
		started:  make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the actor's registered name.
func (a *Actor) Name() string { return a.name }

// Ref returns a local ActorRef pointing at this actor.
func (a *Actor) Ref() ActorRef { return LocalActorRef(a) }

// MessageCount returns the number of messages this actor has finished
// processing.
func (a *Actor) MessageCount() int64 { return a.messageCount.Load() }

// QueueLength returns a snapshot of the number of messages currently
// queued in the actor's mailbox.
func (a *Actor) QueueLength() int { return a.mailbox.len() }

// IsOverCapacity reports whether the actor's mailbox has spilled into
// its unbounded overflow queue.
func (a *Actor) IsOverCapacity() bool { return a.mailbox.isOverCapacity() }

// IsTerminated reports whether the dispatch loop has processed
// Shutdown and returned.
func (a *Actor) IsTerminated() bool { return a.terminated.Load() }

// Reply satisfies the fast_send that delivered msg, if any. It is safe
// to call at most meaningfully once per message; later calls are
// no-ops. Calling Reply for a message that was not a fast_send, or
// whose sender already received a reply or timed out, is a silent
// no-op: there is nothing left listening.
func (a *Actor) Reply(msg *Message, payload Payload) {
	if msg == nil || !msg.IsFast {
		return
	}
	msg.reply(newMessage(payload, a.Ref(), false))
}

// Terminate requests that the dispatch loop stop after finishing any
// message currently in flight, delivering Shutdown as the last message
// it will ever process. It is safe to call from any goroutine and any
// number of times.
func (a *Actor) Terminate() {
	_ = a.mailbox.push(newMessage(Shutdown{}, NullActorRef(), false))
}

// Stopped returns a channel closed once the dispatch loop has fully
// exited, including running the end hook.
func (a *Actor) Stopped() <-chan struct{} { return a.stopped }

// run is the dispatch loop body: lock to an OS thread, apply affinity
// and scheduling priority, deliver Start, then pop-dispatch-release
// until Shutdown, then run the end hook and release the thread. It is
// meant to be launched with `go a.run()` by a Manager and never called
// directly.
func (a *Actor) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(a.stopped)

	if len(a.affinityCPUs) > 0 {
		if err := affinity.SetAffinity(a.affinityCPUs); err != nil {
			a.logger.Warn(fmt.Errorf("actor %s: set affinity: %w", a.name, err))
		}
	}
	if a.priorityType != affinity.PriorityDefault {
		if err := affinity.SetPriority(a.priority, a.priorityType); err != nil {
			a.logger.Warn(fmt.Errorf("actor %s: set priority: %w", a.name, err))
		}
	}

	close(a.started)
	a.dispatch(newMessage(Start{}, NullActorRef(), false))

	for {
		msg, ok := a.mailbox.pop()
		if !ok {
			break
		}
		a.dispatch(msg)
		if msg.KindID == wire.KindShutdown {
			break
		}
	}

	a.terminated.Store(true)
	a.mailbox.dispose()
	if a.endHook != nil {
		a.endHook(a)
	}
}

// dispatch invokes the handler registered for msg's kind, falling back
// to the default handler, and finally to dropping the message with a
// logged warning if neither exists. A handler error is logged, never
// propagated: one failing message must never take down the actor's
// thread.
func (a *Actor) dispatch(msg *Message) {
	a.current = msg
	defer func() { a.current = nil }()

	h, ok := a.handlers[msg.KindID]
	if !ok {
		h = a.defaultHandler
	}
	if h == nil {
		a.logger.Warn(fmt.Errorf("actor %s: no handler for kind %d, dropping message", a.name, msg.KindID))
		a.messageCount.Add(1)
		return
	}

	if err := h(a, msg); err != nil {
		a.logger.Error(fmt.Errorf("actor %s: kind %d: %w: %v", a.name, msg.KindID, ErrHandlerFailure, err))
	}
	a.messageCount.Add(1)
}
