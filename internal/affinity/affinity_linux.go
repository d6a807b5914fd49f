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

//go:build linux

package affinity

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// schedParam mirrors the kernel's struct sched_param, as expected by the
// sched_setscheduler(2) syscall.
type schedParam struct {
	Priority int32
}

// SetAffinity pins the calling OS thread to the given set of logical
// CPU ids. It must be called after runtime.LockOSThread from within the
// goroutine that owns the thread.
func SetAffinity(cpus []int) error {
	if len(cpus) == 0 {
		return nil
	}

	var set unix.CPUSet
	set.Zero()
	for _, id := range cpus {
		set.Set(id)
	}

	// pid 0 means "the calling thread" per sched_setaffinity(2), which
	// is what we want once the goroutine is locked to its OS thread.
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity: %w", err)
	}
	return nil
}

// SetPriority applies a real-time scheduling policy and priority to the
// calling OS thread. priority must be in [1, 99]; ptype selects FIFO or
// round-robin. Requires CAP_SYS_NICE (or root) on most systems.
func SetPriority(priority int, ptype PriorityType) error {
	var policy int
	switch ptype {
	case PriorityFIFO:
		policy = unix.SCHED_FIFO
	case PriorityRoundRobin:
		policy = unix.SCHED_RR
	default:
		return nil
	}

	param := schedParam{Priority: int32(priority)}
	if _, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, 0, uintptr(policy), uintptr(unsafe.Pointer(&param))); errno != 0 {
		return fmt.Errorf("affinity: sched_setscheduler: %w", errno)
	}
	return nil
}
