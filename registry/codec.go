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

package registry

import (
	"fmt"

	"github.com/vincent212/actors/internal/wire"
)

// payloadAs recovers a typed registry payload from a Message.Payload.
// A message that never left the process carries the concrete Go value
// directly; one that arrived over the wire carries it as gob-encoded
// bytes, since the actor and transport packages never know the
// registry's concrete payload types.
func payloadAs[T any](payload any) (T, error) {
	var zero T
	switch v := payload.(type) {
	case T:
		return v, nil
	case []byte:
		var out T
		if err := wire.DecodePayload(v, &out); err != nil {
			return zero, fmt.Errorf("registry: decode payload: %w", err)
		}
		return out, nil
	default:
		return zero, fmt.Errorf("registry: unexpected payload type %T", payload)
	}
}
