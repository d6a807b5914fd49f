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

package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vincent212/actors/internal/queue"
)

func TestOverflowFIFO(t *testing.T) {
	q := queue.NewOverflow[int]()
	for i := 0; i < 100; i++ {
		q.Push(i)
	}
	assert.Equal(t, 100, q.Len())
	for i := 0; i < 100; i++ {
		v, ok := q.Pop()
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 0, q.Len())
}

func TestOverflowPopEmpty(t *testing.T) {
	q := queue.NewOverflow[string]()
	v, ok := q.Pop()
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestOverflowGrowsPastInitialCapacity(t *testing.T) {
	q := queue.NewOverflow[int]()
	const n = 10_000
	for i := 0; i < n; i++ {
		q.Push(i)
	}
	assert.Equal(t, n, q.Len())
	for i := 0; i < n; i++ {
		v, ok := q.Pop()
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestOverflowInterleavedPushPop(t *testing.T) {
	q := queue.NewOverflow[int]()
	q.Push(1)
	q.Push(2)
	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	q.Push(3)
	q.Push(4)
	for _, want := range []int{2, 3, 4} {
		v, ok := q.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, v)
	}
}
