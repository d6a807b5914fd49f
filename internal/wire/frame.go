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

// Package wire defines the transport-agnostic frame that crosses the
// network between two actor runtimes, and the fixed kind ids reserved
// for control and registry messages. The frame format and the kind ids
// are part of the external wire contract: they must not drift between
// peers, whatever concrete transport carries them.
package wire

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Reserved, wire-stable message kind ids. These numbers cross the
// network and must never be renumbered.
const (
	KindShutdown uint32 = 5
	KindStart    uint32 = 6
	KindTimeout  uint32 = 8

	KindRegisterActor      uint32 = 900
	KindUnregisterActor    uint32 = 901
	KindRegistrationOk     uint32 = 902
	KindRegistrationFailed uint32 = 903
	KindLookupActor        uint32 = 904
	KindLookupResult       uint32 = 905
	KindHeartbeat          uint32 = 906
	KindHeartbeatAck       uint32 = 907
)

// RegistryKindLow and RegistryKindHigh bound the reserved registry
// protocol range. Application message kinds must fall outside it.
const (
	RegistryKindLow  uint32 = 900
	RegistryKindHigh uint32 = 999
)

// IsReserved reports whether kind falls in a range the wire protocol
// reserves for control or registry traffic.
func IsReserved(kind uint32) bool {
	switch kind {
	case KindShutdown, KindStart, KindTimeout:
		return true
	}
	return kind >= RegistryKindLow && kind <= RegistryKindHigh
}

// Frame is the transport-agnostic representation of one remote message,
// as described by the wire protocol: sender name (or empty), destination
// actor name, message kind id, is-fast flag, an optional request id used
// to match a fast-send reply to its request, and the kind-specific
// payload, opaquely encoded.
type Frame struct {
	Sender      string
	Destination string
	KindID      uint32
	IsFast      bool
	RequestID   string
	Payload     []byte
}

// Encode serializes a Frame for transmission. gob is used rather than a
// schema codec because the payload itself is already an opaque byte
// slice encoded by the caller; only the envelope needs a stable,
// self-describing encoding for this reference transport.
func Encode(f *Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(f); err != nil {
		return nil, fmt.Errorf("wire: encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a byte slice produced by Encode back into a Frame.
func Decode(data []byte) (*Frame, error) {
	var f Frame
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
		return nil, fmt.Errorf("wire: decode frame: %w", err)
	}
	return &f, nil
}

// EncodePayload gob-encodes an arbitrary payload value for embedding in
// a Frame. Application message kinds may use any encoding they choose
// as long as sender and receiver agree; this helper backs the registry
// protocol payloads and the bundled examples.
func EncodePayload(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("wire: encode payload: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePayload decodes a payload previously produced by EncodePayload
// into v, which must be a pointer.
func DecodePayload(data []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("wire: decode payload: %w", err)
	}
	return nil
}
