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

import "github.com/vincent212/actors/internal/wire"

// Payload is implemented by every concrete message type an actor can
// send or receive. Kind returns the fixed numeric kind id used to
// select a handler and, for messages that cross the wire, to tag the
// frame. Application kinds must stay outside wire.RegistryKindLow..High.
type Payload interface {
	Kind() uint32
}

// Start is delivered to an actor once, before any other message, when
// its dispatch loop begins running.
type Start struct{}

// Kind implements Payload.
func (Start) Kind() uint32 { return wire.KindStart }

// Shutdown is delivered to an actor to request an orderly stop. An
// actor that receives Shutdown should finish any in-flight work and
// return from its handler; the dispatch loop terminates once the
// handler returns.
type Shutdown struct{}

// Kind implements Payload.
func (Shutdown) Kind() uint32 { return wire.KindShutdown }

// Timeout is delivered when an actor-scheduled deadline elapses.
type Timeout struct{}

// Kind implements Payload.
func (Timeout) Kind() uint32 { return wire.KindTimeout }
