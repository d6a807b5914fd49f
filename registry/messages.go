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

// Package registry implements the well-known naming service every
// manager can register its local actors with, so a manager in one
// process can look up and reach an actor owned by another. The
// protocol runs entirely on the actor and wire packages: the registry
// itself is just another actor, addressed under the well-known name
// GlobalRegistry.
package registry

import "github.com/vincent212/actors/internal/wire"

// WellKnownName is the name every registry client expects to find the
// registry actor registered under.
const WellKnownName = "GlobalRegistry"

// RegisterActorRequest asks the registry to record name as reachable at
// endpoint, owned by the manager identified by ManagerID.
type RegisterActorRequest struct {
	Name      string
	Endpoint  string
	ManagerID string
}

// Kind implements actor.Payload.
func (RegisterActorRequest) Kind() uint32 { return wire.KindRegisterActor }

// RegisterActorResponse answers a RegisterActorRequest.
type RegisterActorResponse struct {
	OK     bool
	Reason string
}

// Kind implements actor.Payload. It reports which of the two outcomes
// this response carries, so a caller inspecting the wire frame alone
// (without decoding the payload) can tell a rejected registration from
// a successful one.
func (r RegisterActorResponse) Kind() uint32 {
	if r.OK {
		return wire.KindRegistrationOk
	}
	return wire.KindRegistrationFailed
}

// UnregisterActorRequest asks the registry to forget name.
type UnregisterActorRequest struct {
	Name      string
	ManagerID string
}

// Kind implements actor.Payload.
func (UnregisterActorRequest) Kind() uint32 { return wire.KindUnregisterActor }

// UnregisterActorResponse answers an UnregisterActorRequest.
type UnregisterActorResponse struct {
	OK bool
}

// Kind implements actor.Payload.
func (UnregisterActorResponse) Kind() uint32 { return wire.KindRegistrationOk }

// LookupActorRequest asks the registry for the endpoint currently
// registered under Name. When AllowOffline is true the registry answers
// with the last known endpoint even if the owning manager has missed
// its heartbeat window. When it is false, an offline name is answered
// with Found set, Online cleared and no endpoint.
type LookupActorRequest struct {
	Name         string
	AllowOffline bool
}

// Kind implements actor.Payload.
func (LookupActorRequest) Kind() uint32 { return wire.KindLookupActor }

// LookupActorResponse answers a LookupActorRequest.
type LookupActorResponse struct {
	Found    bool
	Online   bool
	Endpoint string
}

// Kind implements actor.Payload.
func (LookupActorResponse) Kind() uint32 { return wire.KindLookupResult }

// HeartbeatRequest is sent periodically once per manager, never per
// actor: a manager_id is either live or it isn't, and every actor that
// manager has registered rides on that single liveness signal (see
// Server.handleHeartbeat).
type HeartbeatRequest struct {
	ManagerID   string
	TimestampMs int64
}

// Kind implements actor.Payload.
func (HeartbeatRequest) Kind() uint32 { return wire.KindHeartbeat }

// HeartbeatAck answers a HeartbeatRequest.
type HeartbeatAck struct{}

// Kind implements actor.Payload.
func (HeartbeatAck) Kind() uint32 { return wire.KindHeartbeatAck }
