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

import "errors"

// Sentinel errors returned across the actor and registry packages.
// Callers should use errors.Is against these rather than comparing
// error strings.
var (
	ErrPreconditionViolation = errors.New("actor: precondition violation")
	ErrActorNotFound         = errors.New("actor: not found")
	ErrActorOffline          = errors.New("actor: offline")
	ErrRegistrationFailed    = errors.New("actor: registration failed")
	ErrTimeout               = errors.New("actor: timeout")
	ErrTransport             = errors.New("actor: transport error")
	ErrHandlerFailure        = errors.New("actor: handler failure")
	ErrNoTarget              = errors.New("actor: no target")
	ErrNotManaged            = errors.New("actor: not managed")
	ErrDuplicateName         = errors.New("actor: duplicate name")
	ErrBadAffinity           = errors.New("actor: invalid cpu affinity set")
	ErrMailboxDisposed       = errors.New("actor: mailbox disposed")
	ErrTerminated            = errors.New("actor: terminated")
)
