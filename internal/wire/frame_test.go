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

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincent212/actors/internal/wire"
)

func TestFrameRoundTrip(t *testing.T) {
	f := &wire.Frame{
		Sender:      "Ping",
		Destination: "Pong",
		KindID:      100,
		IsFast:      true,
		RequestID:   "abc-123",
		Payload:     []byte("hello"),
	}

	data, err := wire.Encode(f)
	require.NoError(t, err)

	got, err := wire.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestPayloadRoundTrip(t *testing.T) {
	type payload struct {
		N    int
		Name string
	}
	in := payload{N: 7, Name: "seven"}

	data, err := wire.EncodePayload(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, wire.DecodePayload(data, &out))
	assert.Equal(t, in, out)
}

func TestIsReserved(t *testing.T) {
	cases := map[uint32]bool{
		wire.KindStart:            true,
		wire.KindShutdown:         true,
		wire.KindTimeout:          true,
		wire.KindRegisterActor:    true,
		wire.KindHeartbeatAck:     true,
		wire.RegistryKindLow:      true,
		wire.RegistryKindHigh:     true,
		0:                         false,
		1:                         false,
		100:                       false,
		wire.RegistryKindHigh + 1: false,
	}
	for kind, want := range cases {
		assert.Equal(t, want, wire.IsReserved(kind), "kind %d", kind)
	}
}
