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

import "github.com/vincent212/actors/internal/affinity"

// WithAffinity pins the actor's dispatch loop to the given set of
// logical CPU ids once its OS thread starts. An empty set (the
// default) leaves the thread unpinned. Validity against the number of
// online CPUs is checked by Manager.Manage, not here; a failure to
// apply the pinning at runtime is logged and never fatal.
func WithAffinity(cpus ...int) ActorOption {
	return func(a *Actor) { a.affinityCPUs = cpus }
}

// WithPriority applies a real-time scheduling policy and priority to
// the actor's dispatch thread. priority must be in [1, 99]. As with
// WithAffinity, a failure to apply it at runtime is logged and never
// fatal.
func WithPriority(priority int, ptype affinity.PriorityType) ActorOption {
	return func(a *Actor) {
		a.priority = priority
		a.priorityType = ptype
	}
}
