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
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/vincent212/actors/internal/affinity"
	"github.com/vincent212/actors/internal/wire"
	"github.com/vincent212/actors/internal/xsync"
	"github.com/vincent212/actors/log"
	"github.com/vincent212/actors/transport"
)

// Registrar is the subset of the registry client a Manager needs: it
// lets Manager stay ignorant of heartbeat scheduling and wire protocol
// details, which live in the registry package. Lookup is what backs
// GetActorByName's fallback to a remote actor once the local map comes
// up empty.
type Registrar interface {
	RegisterActor(ctx context.Context, name, endpoint string) error
	UnregisterActor(ctx context.Context, name string) error
	Lookup(ctx context.Context, name string, allowOffline bool, sender transport.Sender) (ActorRef, error)
}

// Manager owns a set of locally running actors: it starts their
// dispatch loops, tracks them by name, exposes them for lookup and
// observability, wires their mailboxes to a transport for remote
// delivery when configured, and drives orderly shutdown.
type Manager struct {
	logger log.Logger

	actors *xsync.Map[string, *Actor]

	localEndpointPrefix string
	sender              transport.Sender
	receiver            transport.Receiver
	registrar           Registrar

	shutdownTimeout time.Duration

	mu          sync.Mutex
	pending     []*Actor
	initialized bool
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithLogger overrides the manager's logger. Defaults to
// log.DefaultLogger.
func WithLogger(logger log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithTransport wires the manager to a concrete transport.Sender and
// transport.Receiver pair, and the endpoint prefix used to derive each
// managed actor's remote endpoint (endpoint = prefix + "." + name, or
// just name when prefix is empty).
// Without this, every actor Manage starts is reachable only through a
// LocalActorRef.
func WithTransport(prefix string, sender transport.Sender, receiver transport.Receiver) Option {
	return func(m *Manager) {
		m.localEndpointPrefix = prefix
		m.sender = sender
		m.receiver = receiver
	}
}

// WithRegistrar attaches a registry client used to register/unregister
// managed actors as they start and stop. Requires WithTransport to also
// be set, since a registered actor must be reachable.
func WithRegistrar(r Registrar) Option {
	return func(m *Manager) { m.registrar = r }
}

// WithShutdownTimeout bounds how long End waits for each actor's
// dispatch loop to drain and exit before giving up on it.
func WithShutdownTimeout(d time.Duration) Option {
	return func(m *Manager) { m.shutdownTimeout = d }
}

// NewManager constructs a Manager. It owns nothing until Manage is
// called.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		logger:          log.DefaultLogger,
		actors:          xsync.NewMap[string, *Actor](),
		shutdownTimeout: ShutdownDrainTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// endpointFor derives an actor's remote endpoint from the manager's
// prefix.
func (m *Manager) endpointFor(name string) string {
	if m.localEndpointPrefix == "" {
		return name
	}
	return m.localEndpointPrefix + "." + name
}

// Manage validates a and any requested CPU affinity (the affinity itself
// is applied later, on the actor's own thread), registers it
// with the transport receiver (if configured) so remote peers can
// reach it, and registers it with the registry (if configured). It
// returns ErrDuplicateName if an actor with this name is already
// managed.
//
// Manage does not by itself start a's dispatch loop. Before the
// manager's first Init call, every Managed actor is batched into a
// pending set; Init spawns all of them together. This lets a caller
// Manage several actors that need references to one another, wire
// those references into their handler closures, and only then let any
// of them begin processing messages. Once Init has run, Manage starts
// each newly managed actor's dispatch loop immediately, since there is
// no longer a batch to join.
func (m *Manager) Manage(ctx context.Context, a *Actor) (ActorRef, error) {
	if a == nil {
		return ActorRef{}, ErrPreconditionViolation
	}

	if _, exists := m.actors.Get(a.Name()); exists {
		return ActorRef{}, fmt.Errorf("%w: %s", ErrDuplicateName, a.Name())
	}

	if len(a.affinityCPUs) > 0 {
		online, err := affinity.OnlineCPUCount()
		if err != nil {
			m.logger.Warn(fmt.Errorf("actor %s: could not read online cpu count: %w", a.Name(), err))
		} else {
			for _, cpu := range a.affinityCPUs {
				if cpu < 0 || cpu >= online {
					return ActorRef{}, fmt.Errorf("%w: cpu %d not online (online=%d)", ErrBadAffinity, cpu, online)
				}
			}
		}
	}

	m.actors.Set(a.Name(), a)

	if m.receiver != nil {
		endpoint := m.endpointFor(a.Name())
		if err := m.receiver.Listen(ctx, endpoint, m.frameHandlerFor(a)); err != nil {
			m.logger.Warn(fmt.Errorf("actor %s: listen on %s: %w", a.Name(), endpoint, err))
		}
	}

	if m.registrar != nil {
		endpoint := m.endpointFor(a.Name())
		if err := m.registrar.RegisterActor(ctx, a.Name(), endpoint); err != nil {
			m.logger.Warn(fmt.Errorf("%w: actor %s: %v", ErrRegistrationFailed, a.Name(), err))
		}
	}

	m.mu.Lock()
	initialized := m.initialized
	if !initialized {
		m.pending = append(m.pending, a)
	}
	m.mu.Unlock()

	if initialized {
		go a.run()
		<-a.started
	}

	return a.Ref(), nil
}

// Init spawns the dispatch loop of every actor Managed since the last
// Init call, all together: each gets its own goroutine before Init
// waits on any of their started signals, so they come up concurrently
// rather than one after another. Actors Managed after Init has already
// run once start immediately from Manage instead, since there is
// nothing left to batch them with. Calling Init with nothing pending
// is a harmless no-op.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.initialized = true
	m.mu.Unlock()

	for _, a := range pending {
		go a.run()
	}
	for _, a := range pending {
		<-a.started
	}
	return nil
}

// frameHandlerFor builds the transport.FrameHandler that routes an
// inbound wire frame addressed to a into its mailbox. A fast frame
// blocks the transport's own goroutine (not the actor's dispatch
// thread) until the actor calls Reply or DefaultFastSendTimeout elapses,
// then returns the reply frame for the receiver to send back.
func (m *Manager) frameHandlerFor(a *Actor) transport.FrameHandler {
	return func(f *wire.Frame) *wire.Frame {
		sender := RemoteActorRef(f.Sender, f.Sender, m.sender)
		msg := &Message{
			KindID:  f.KindID,
			Sender:  sender,
			IsFast:  f.IsFast,
			Payload: f.Payload,
		}

		if !f.IsFast {
			if err := a.mailbox.push(msg); err != nil {
				m.logger.Warn(fmt.Errorf("actor %s: dropping inbound frame: %w", a.Name(), err))
			}
			return nil
		}

		msg.replySlot = make(chan *Message, 1)
		if err := a.mailbox.push(msg); err != nil {
			m.logger.Warn(fmt.Errorf("actor %s: dropping inbound fast frame: %w", a.Name(), err))
			return nil
		}

		timer := time.NewTimer(DefaultFastSendTimeout)
		defer timer.Stop()
		select {
		case resp := <-msg.replySlot:
			data, err := wire.EncodePayload(resp.Payload)
			if err != nil {
				m.logger.Warn(fmt.Errorf("actor %s: encoding fast reply: %w", a.Name(), err))
				return nil
			}
			return &wire.Frame{
				Sender:      a.Name(),
				Destination: f.Sender,
				KindID:      resp.KindID,
				RequestID:   f.RequestID,
				Payload:     data,
			}
		case <-timer.C:
			return nil
		}
	}
}

// GetActorByName resolves name to an ActorRef, checking this manager's
// own actors first. If name is not managed locally and a registrar is
// configured, it falls back to a registry lookup and returns a
// RemoteActorRef reachable through this manager's transport. It
// returns ErrActorNotFound if neither finds it, and whatever error the
// registrar returns (e.g. ErrActorOffline) if the lookup itself fails.
func (m *Manager) GetActorByName(ctx context.Context, name string) (ActorRef, error) {
	if a, ok := m.actors.Get(name); ok {
		return a.Ref(), nil
	}
	if m.registrar != nil {
		return m.registrar.Lookup(ctx, name, false, m.sender)
	}
	return ActorRef{}, fmt.Errorf("%w: %s", ErrActorNotFound, name)
}

// GetLocalActor returns the underlying *Actor for a managed name,
// mainly useful for tests that need to inspect state the ActorRef
// interface intentionally hides.
func (m *Manager) GetLocalActor(name string) (*Actor, bool) {
	return m.actors.Get(name)
}

// GetManagedNames returns the names of every currently managed actor.
func (m *Manager) GetManagedNames() []string {
	return m.actors.Keys()
}

// TotalQueueLength sums the queue length of every managed actor's
// mailbox, a coarse load signal for the whole manager.
func (m *Manager) TotalQueueLength() int {
	total := 0
	m.actors.Range(func(_ string, a *Actor) { total += a.QueueLength() })
	return total
}

// GetQueueLengths returns a snapshot of every managed actor's mailbox
// length, keyed by name.
func (m *Manager) GetQueueLengths() map[string]int {
	out := make(map[string]int, m.actors.Len())
	m.actors.Range(func(name string, a *Actor) { out[name] = a.QueueLength() })
	return out
}

// GetMessageCounts returns a snapshot of every managed actor's
// processed-message count, keyed by name.
func (m *Manager) GetMessageCounts() map[string]int64 {
	out := make(map[string]int64, m.actors.Len())
	m.actors.Range(func(name string, a *Actor) { out[name] = a.MessageCount() })
	return out
}

// End requests every managed actor to terminate, waits up to the
// manager's shutdown timeout for each dispatch loop to exit, and
// unregisters each from the registry if one is configured. actors is
// left empty after the first call, so a second call has no actors to
// stop, though it does close the receiver again. Every failure encountered along the way is logged
// and folded into the returned error rather than aborting the rest of
// the shutdown.
func (m *Manager) End(ctx context.Context) error {
	var err error

	names := m.actors.Keys()
	for _, name := range names {
		a, ok := m.actors.Get(name)
		if !ok {
			continue
		}
		a.Terminate()
	}

	for _, name := range names {
		a, ok := m.actors.Get(name)
		if !ok {
			continue
		}
		select {
		case <-a.Stopped():
		case <-time.After(m.shutdownTimeout):
			stopErr := fmt.Errorf("actor %s: did not stop within %s", name, m.shutdownTimeout)
			m.logger.Warn(stopErr)
			multierr.AppendInto(&err, stopErr)
		}
		if m.registrar != nil {
			if unregErr := m.registrar.UnregisterActor(ctx, name); unregErr != nil {
				wrapped := fmt.Errorf("actor %s: unregister: %w", name, unregErr)
				m.logger.Warn(wrapped)
				multierr.AppendInto(&err, wrapped)
			}
		}
		m.actors.Delete(name)
	}

	if m.receiver != nil {
		if closeErr := m.receiver.Close(); closeErr != nil {
			wrapped := fmt.Errorf("manager: closing receiver: %w", closeErr)
			m.logger.Warn(wrapped)
			multierr.AppendInto(&err, wrapped)
		}
	}

	return err
}
