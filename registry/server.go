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
	"time"

	"github.com/vincent212/actors/actor"
	"github.com/vincent212/actors/log"
)

// record is a registered actor: a name mapped to an endpoint and the
// manager that owns it. It carries no liveness state of its own —
// online-ness is a property of the owning manager, looked up in
// managers by managerID.
type record struct {
	endpoint  string
	managerID string
}

// managerLiveness tracks one manager's heartbeat state. A single entry
// here backs the online/offline status of every record owned by that
// manager, per the spec's manager-level (not actor-level) heartbeat
// model.
type managerLiveness struct {
	lastHeartbeat time.Time
	online        bool
}

// Server is the GlobalRegistry actor's application state: a name to
// endpoint table plus a manager-id to heartbeat table, with online/
// offline status for a record derived from its owning manager's
// heartbeat state rather than tracked per record.
type Server struct {
	logger            log.Logger
	offlineThreshold  time.Duration
	sweepInterval     time.Duration
	records           map[string]*record
	managers          map[string]*managerLiveness
	sweepTickerCancel context.CancelFunc
}

// ServerOption configures a Server at construction time.
type ServerOption func(*Server)

// WithServerLogger overrides the registry's logger.
func WithServerLogger(logger log.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// WithOfflineThreshold overrides how long the registry waits without a
// heartbeat before marking a registration offline.
func WithOfflineThreshold(d time.Duration) ServerOption {
	return func(s *Server) { s.offlineThreshold = d }
}

// WithSweepInterval overrides how often the registry checks every
// manager's heartbeat against the offline threshold. Must stay at or
// below the heartbeat interval a client is expected to use, or a
// manager can be marked offline before it ever gets a chance to send
// its first heartbeat.
func WithSweepInterval(d time.Duration) ServerOption {
	return func(s *Server) { s.sweepInterval = d }
}

// NewServer constructs registry application state. Call Start to turn
// it into a running, manageable actor.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		logger:           log.DefaultLogger,
		offlineThreshold: actor.OfflineThreshold,
		sweepInterval:    actor.HeartbeatInterval,
		records:          make(map[string]*record),
		managers:         make(map[string]*managerLiveness),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the GlobalRegistry actor around s, hands it to manager,
// and begins the periodic offline sweep. The returned ActorRef is the
// well-known registry endpoint other actors send requests to.
func (s *Server) Start(ctx context.Context, manager *actor.Manager) (actor.ActorRef, error) {
	a := actor.NewActor(WellKnownName,
		actor.WithHandler(RegisterActorRequest{}.Kind(), s.handleRegister),
		actor.WithHandler(UnregisterActorRequest{}.Kind(), s.handleUnregister),
		actor.WithHandler(LookupActorRequest{}.Kind(), s.handleLookup),
		actor.WithHandler(HeartbeatRequest{}.Kind(), s.handleHeartbeat),
		actor.WithHandler(actor.Timeout{}.Kind(), s.handleSweep),
		actor.WithActorLogger(s.logger),
	)

	ref, err := manager.Manage(ctx, a)
	if err != nil {
		return actor.ActorRef{}, err
	}
	if err := manager.Init(ctx); err != nil {
		return actor.ActorRef{}, err
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	s.sweepTickerCancel = cancel
	go s.runSweepTicker(sweepCtx, ref)

	return ref, nil
}

// Stop halts the offline sweep ticker. The actor itself is stopped
// through the owning Manager.
func (s *Server) Stop() {
	if s.sweepTickerCancel != nil {
		s.sweepTickerCancel()
	}
}

func (s *Server) runSweepTicker(ctx context.Context, self actor.ActorRef) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = self.Send(ctx, actor.Timeout{}, actor.NullActorRef())
		}
	}
}

// touch marks managerID's heartbeat as fresh, creating its liveness
// entry on first contact (a RegisterActor or a Heartbeat can each be a
// manager's first contact with the registry).
func (s *Server) touch(managerID string) {
	mgr, ok := s.managers[managerID]
	if !ok {
		mgr = &managerLiveness{}
		s.managers[managerID] = mgr
	}
	mgr.lastHeartbeat = time.Now()
	mgr.online = true
}

func (s *Server) isOnline(managerID string) bool {
	mgr, ok := s.managers[managerID]
	return ok && mgr.online
}

func (s *Server) handleRegister(a *actor.Actor, msg *actor.Message) error {
	req, err := payloadAs[RegisterActorRequest](msg.Payload)
	if err != nil {
		return err
	}

	if existing, ok := s.records[req.Name]; ok && existing.managerID != req.ManagerID && s.isOnline(existing.managerID) {
		a.Reply(msg, RegisterActorResponse{OK: false, Reason: "name already registered to another manager"})
		return nil
	}

	s.records[req.Name] = &record{endpoint: req.Endpoint, managerID: req.ManagerID}
	s.touch(req.ManagerID)
	a.Reply(msg, RegisterActorResponse{OK: true})
	return nil
}

func (s *Server) handleUnregister(a *actor.Actor, msg *actor.Message) error {
	req, err := payloadAs[UnregisterActorRequest](msg.Payload)
	if err != nil {
		return err
	}
	if rec, ok := s.records[req.Name]; ok && rec.managerID == req.ManagerID {
		delete(s.records, req.Name)
	}
	a.Reply(msg, UnregisterActorResponse{OK: true})
	return nil
}

func (s *Server) handleLookup(a *actor.Actor, msg *actor.Message) error {
	req, err := payloadAs[LookupActorRequest](msg.Payload)
	if err != nil {
		return err
	}

	rec, ok := s.records[req.Name]
	if !ok {
		a.Reply(msg, LookupActorResponse{Found: false})
		return nil
	}
	online := s.isOnline(rec.managerID)
	if !online && !req.AllowOffline {
		a.Reply(msg, LookupActorResponse{Found: true, Online: false})
		return nil
	}
	a.Reply(msg, LookupActorResponse{Found: true, Online: online, Endpoint: rec.endpoint})
	return nil
}

// handleHeartbeat refreshes the sending manager's liveness once,
// regardless of how many actors it owns: every record whose managerID
// matches becomes online again as a side effect of isOnline, with no
// per-actor bookkeeping needed here.
func (s *Server) handleHeartbeat(a *actor.Actor, msg *actor.Message) error {
	req, err := payloadAs[HeartbeatRequest](msg.Payload)
	if err != nil {
		return err
	}
	s.touch(req.ManagerID)
	a.Reply(msg, HeartbeatAck{})
	return nil
}

func (s *Server) handleSweep(_ *actor.Actor, _ *actor.Message) error {
	cutoff := time.Now().Add(-s.offlineThreshold)
	for _, mgr := range s.managers {
		if mgr.online && mgr.lastHeartbeat.Before(cutoff) {
			mgr.online = false
		}
	}
	return nil
}
