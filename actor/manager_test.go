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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincent212/actors/transport"
)

func TestManageAssignsUniqueNames(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	_, err := m.Manage(ctx, NewActor("dup"))
	require.NoError(t, err)
	require.NoError(t, m.Init(ctx))

	_, err = m.Manage(ctx, NewActor("dup"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	m.End(ctx)
}

func TestManageRejectsNilActor(t *testing.T) {
	m := NewManager()
	_, err := m.Manage(context.Background(), nil)
	assert.ErrorIs(t, err, ErrPreconditionViolation)
}

func TestManageRejectsOfflineCPU(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	_, err := m.Manage(ctx, NewActor("pinned", WithAffinity(1<<20)))
	assert.ErrorIs(t, err, ErrBadAffinity)
}

func TestGetActorByNameAndObservability(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	processed := make(chan struct{}, 1)
	a := NewActor("obs",
		WithHandler(testKind, func(a *Actor, msg *Message) error {
			processed <- struct{}{}
			return nil
		}),
	)

	ref, err := m.Manage(ctx, a)
	require.NoError(t, err)
	require.NoError(t, m.Init(ctx))

	found, err := m.GetActorByName(ctx, "obs")
	require.NoError(t, err)
	assert.Equal(t, ref.Name(), found.Name())

	_, err = m.GetActorByName(ctx, "missing")
	assert.ErrorIs(t, err, ErrActorNotFound)

	require.NoError(t, ref.Send(ctx, testMsg{N: 1}, NullActorRef()))
	select {
	case <-processed:
	case <-timeoutChan(t):
		t.Fatal("message not processed")
	}

	assert.Contains(t, m.GetManagedNames(), "obs")
	counts := m.GetMessageCounts()
	assert.GreaterOrEqual(t, counts["obs"], int64(1))

	m.End(ctx)
	assert.Empty(t, m.GetManagedNames())
}

func TestEndStopsEveryActor(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	names := []string{"a1", "a2", "a3"}
	refs := make(map[string]*Actor, len(names))
	for _, name := range names {
		a := NewActor(name)
		_, err := m.Manage(ctx, a)
		require.NoError(t, err)
		got, _ := m.GetLocalActor(name)
		refs[name] = got
	}
	require.NoError(t, m.Init(ctx))

	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	m.End(shutdownCtx)

	for _, name := range names {
		select {
		case <-refs[name].Stopped():
		case <-time.After(time.Second):
			t.Fatalf("actor %s did not stop", name)
		}
	}
}

// TestManageBeforeInitDoesNotStartDispatchLoop verifies that Manage
// alone never spawns a's thread: the actor stays unstarted (its Ref
// can be handed to other not-yet-started actors for wiring) until Init
// runs.
func TestManageBeforeInitDoesNotStartDispatchLoop(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	processed := make(chan struct{}, 1)
	a := NewActor("late",
		WithHandler(testKind, func(a *Actor, msg *Message) error {
			processed <- struct{}{}
			return nil
		}),
	)

	ref, err := m.Manage(ctx, a)
	require.NoError(t, err)
	require.NoError(t, ref.Send(ctx, testMsg{N: 1}, NullActorRef()))

	select {
	case <-processed:
		t.Fatal("message processed before Init spawned the dispatch loop")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, m.Init(ctx))
	select {
	case <-processed:
	case <-timeoutChan(t):
		t.Fatal("message never processed after Init")
	}

	m.End(ctx)
}

// TestManageAfterInitStartsImmediately verifies that once a manager has
// been Init'd, later Manage calls start their actor's dispatch loop
// right away rather than joining a batch that will never be flushed
// again.
func TestManageAfterInitStartsImmediately(t *testing.T) {
	m := NewManager()
	ctx := context.Background()
	require.NoError(t, m.Init(ctx))

	processed := make(chan struct{}, 1)
	a := NewActor("dynamic",
		WithHandler(testKind, func(a *Actor, msg *Message) error {
			processed <- struct{}{}
			return nil
		}),
	)

	ref, err := m.Manage(ctx, a)
	require.NoError(t, err)
	require.NoError(t, ref.Send(ctx, testMsg{N: 1}, NullActorRef()))

	select {
	case <-processed:
	case <-timeoutChan(t):
		t.Fatal("dynamically managed actor never processed its message")
	}

	m.End(ctx)
}

// TestManageBatchWiresPeersBeforeEitherStarts is the scenario Init
// exists for: two actors are Managed, each captures the other's Ref in
// a Start handler closure, and only Init lets either one begin running.
func TestManageBatchWiresPeersBeforeEitherStarts(t *testing.T) {
	m := NewManager()
	ctx := context.Background()
	done := make(chan int, 1)

	var bRef ActorRef
	a := NewActor("a",
		WithHandler((Start{}).Kind(), func(a *Actor, msg *Message) error {
			return bRef.Send(ctx, testMsg{N: 1}, a.Ref())
		}),
	)
	aRef, err := m.Manage(ctx, a)
	require.NoError(t, err)

	b := NewActor("b",
		WithHandler(testKind, func(a *Actor, msg *Message) error {
			req := msg.Payload.(testMsg)
			done <- req.N
			return nil
		}),
	)
	bRef, err = m.Manage(ctx, b)
	require.NoError(t, err)
	_ = aRef

	require.NoError(t, m.Init(ctx))

	select {
	case n := <-done:
		assert.Equal(t, 1, n)
	case <-timeoutChan(t):
		t.Fatal("peer wiring set up before Init never delivered")
	}

	m.End(ctx)
}

type fakeRegistrar struct {
	ref ActorRef
	err error
}

func (f *fakeRegistrar) RegisterActor(context.Context, string, string) error { return nil }
func (f *fakeRegistrar) UnregisterActor(context.Context, string) error       { return nil }

func (f *fakeRegistrar) Lookup(_ context.Context, _ string, _ bool, _ transport.Sender) (ActorRef, error) {
	if f.err != nil {
		return ActorRef{}, f.err
	}
	return f.ref, nil
}

// TestGetActorByNameFallsBackToRegistrar verifies that a name not
// managed locally is resolved through the configured Registrar instead
// of failing outright.
func TestGetActorByNameFallsBackToRegistrar(t *testing.T) {
	ctx := context.Background()
	remote := RemoteActorRef("Remote", "remote.endpoint", nil)
	m := NewManager(WithRegistrar(&fakeRegistrar{ref: remote}))

	found, err := m.GetActorByName(ctx, "Remote")
	require.NoError(t, err)
	assert.Equal(t, "Remote", found.Name())
}

// TestGetActorByNameWithoutRegistrarFails verifies the not-found error
// when nothing local matches and there is no registrar to fall back to.
func TestGetActorByNameWithoutRegistrarFails(t *testing.T) {
	m := NewManager()
	_, err := m.GetActorByName(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrActorNotFound)
}
