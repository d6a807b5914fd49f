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

package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/vincent212/actors/actor"
	"github.com/vincent212/actors/log"
	"github.com/vincent212/actors/transport"
)

// Client is what a Manager uses to talk to the GlobalRegistry: register
// and unregister actors it owns, look actors up by name, and keep every
// registration alive with periodic heartbeats. It implements
// actor.Registrar so it can be handed straight to
// actor.WithRegistrar.
type Client struct {
	registry          actor.ActorRef
	managerID         string
	logger            log.Logger
	timeout           time.Duration
	heartbeatInterval time.Duration

	mu      sync.Mutex
	tracked map[string]struct{}

	running *atomic.Bool
	cancel  context.CancelFunc
}

// ClientOption configures a Client at construction time.
type ClientOption func(*Client)

// WithClientLogger overrides the client's logger.
func WithClientLogger(logger log.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithClientTimeout overrides the fast_send timeout used for every
// request the client makes to the registry.
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithClientHeartbeatInterval overrides how often the client pings the
// registry for its tracked actors. Defaults to actor.HeartbeatInterval;
// a server configured with a tighter WithOfflineThreshold needs a
// correspondingly tighter interval here, or its own sweep will mark a
// perfectly live manager offline before its first heartbeat lands.
func WithClientHeartbeatInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.heartbeatInterval = d }
}

// NewClient constructs a Client addressing the registry through
// registryRef, which may be a LocalActorRef (registry in the same
// process) or a RemoteActorRef.
func NewClient(registryRef actor.ActorRef, opts ...ClientOption) *Client {
	c := &Client{
		registry:          registryRef,
		managerID:         uuid.NewString(),
		logger:            log.DefaultLogger,
		timeout:           actor.DefaultFastSendTimeout,
		heartbeatInterval: actor.HeartbeatInterval,
		tracked:           make(map[string]struct{}),
		running:           atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins the client's heartbeat loop, which sends one heartbeat
// for this client's manager every heartbeatInterval while any actor is
// tracked.
func (c *Client) Start(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	hbCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	go c.heartbeatLoop(hbCtx)
}

// Stop halts the heartbeat loop. It does not unregister tracked actors;
// callers should call UnregisterActor for each first if that is wanted.
func (c *Client) Stop() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Client) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(c.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sendHeartbeats(ctx)
		}
	}
}

// sendHeartbeats fires a single Heartbeat for this client's managerID,
// not one per tracked actor: the registry's liveness model is per
// manager, so one request covers every actor this client has
// registered. Skipped entirely once nothing is tracked, so an idle
// manager does not keep pinging the registry for no reason.
func (c *Client) sendHeartbeats(ctx context.Context) {
	c.mu.Lock()
	n := len(c.tracked)
	c.mu.Unlock()
	if n == 0 {
		return
	}

	req := HeartbeatRequest{ManagerID: c.managerID, TimestampMs: time.Now().UnixMilli()}
	if _, err := c.registry.FastSend(ctx, req, actor.NullActorRef(), c.timeout); err != nil {
		c.logger.Warn(fmt.Errorf("registry client: heartbeat: %w", err))
	}
}

// RegisterActor registers name as reachable at endpoint and adds it to
// the tracked set the heartbeat loop keeps alive once Start has been
// called. Implements actor.Registrar.
func (c *Client) RegisterActor(ctx context.Context, name, endpoint string) error {
	req := RegisterActorRequest{Name: name, Endpoint: endpoint, ManagerID: c.managerID}
	resp, err := c.registry.FastSend(ctx, req, actor.NullActorRef(), c.timeout)
	if err != nil {
		return fmt.Errorf("%w: %v", actor.ErrRegistrationFailed, err)
	}

	res, err := payloadAs[RegisterActorResponse](resp.Payload)
	if err != nil {
		return fmt.Errorf("%w: %v", actor.ErrRegistrationFailed, err)
	}
	if !res.OK {
		return fmt.Errorf("%w: %s", actor.ErrRegistrationFailed, res.Reason)
	}

	c.mu.Lock()
	c.tracked[name] = struct{}{}
	c.mu.Unlock()
	return nil
}

// UnregisterActor removes name from the registry and from the tracked
// set. Implements actor.Registrar.
func (c *Client) UnregisterActor(ctx context.Context, name string) error {
	c.mu.Lock()
	delete(c.tracked, name)
	c.mu.Unlock()

	req := UnregisterActorRequest{Name: name, ManagerID: c.managerID}
	_, err := c.registry.FastSend(ctx, req, actor.NullActorRef(), c.timeout)
	if err != nil {
		return fmt.Errorf("registry client: unregister %s: %w", name, err)
	}
	return nil
}

// Lookup resolves name to a RemoteActorRef reachable through sender. It
// returns actor.ErrActorNotFound if the registry has never heard of
// name, and actor.ErrActorOffline if it has but the owning manager has
// missed its heartbeat window and allowOffline is false.
func (c *Client) Lookup(ctx context.Context, name string, allowOffline bool, sender transport.Sender) (actor.ActorRef, error) {
	req := LookupActorRequest{Name: name, AllowOffline: allowOffline}
	resp, err := c.registry.FastSend(ctx, req, actor.NullActorRef(), c.timeout)
	if err != nil {
		return actor.ActorRef{}, fmt.Errorf("registry client: lookup %s: %w", name, err)
	}

	res, err := payloadAs[LookupActorResponse](resp.Payload)
	if err != nil {
		return actor.ActorRef{}, err
	}
	if !res.Found {
		return actor.ActorRef{}, fmt.Errorf("%w: %s", actor.ErrActorNotFound, name)
	}
	if !res.Online && !allowOffline {
		return actor.ActorRef{}, fmt.Errorf("%w: %s", actor.ErrActorOffline, name)
	}
	return actor.RemoteActorRef(name, res.Endpoint, sender), nil
}
