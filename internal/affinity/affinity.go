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

// Package affinity applies OS-level CPU pinning and real-time scheduling
// to the calling OS thread. Callers must have already called
// runtime.LockOSThread so that the calling goroutine owns the thread
// being configured; every function here acts on "the calling thread",
// not the process.
package affinity

import (
	"errors"

	"github.com/shirou/gopsutil/v4/cpu"
)

// PriorityType selects the real-time scheduling class applied alongside
// a non-zero priority.
type PriorityType int

const (
	// PriorityDefault leaves the thread on the default (non-real-time)
	// scheduler; used when priority is 0.
	PriorityDefault PriorityType = iota
	// PriorityFIFO applies SCHED_FIFO.
	PriorityFIFO
	// PriorityRoundRobin applies SCHED_RR.
	PriorityRoundRobin
)

// ErrUnsupported is returned by SetAffinity/SetPriority on platforms
// that do not expose the underlying scheduling syscalls. Callers must
// treat it as non-fatal, per the manage() contract: affinity and
// priority failures are logged and never abort actor startup.
var ErrUnsupported = errors.New("affinity: not supported on this platform")

// OnlineCPUCount returns the number of logical CPUs online, used to
// validate affinity sets at Manager.Manage time.
func OnlineCPUCount() (int, error) {
	counts, err := cpu.Counts(true)
	if err != nil {
		return 0, err
	}
	return counts, nil
}
