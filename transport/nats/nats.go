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

// Package nats implements transport.Sender and transport.Receiver on top
// of NATS core pub/sub. It plays the role the original runtime gave to
// ZeroMQ: async sends are plain publishes, and fast_send is a NATS
// request whose reply subject NATS manages for us, so no manual
// correlation table is needed on the sending side.
package nats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	gonats "github.com/nats-io/nats.go"

	"github.com/vincent212/actors/internal/wire"
	"github.com/vincent212/actors/log"
	"github.com/vincent212/actors/transport"
)

// Config configures the NATS-backed transport.
type Config struct {
	// URL is the NATS server URL, e.g. "nats://127.0.0.1:4222".
	URL string
	// ConnectRetries bounds the number of connection attempts made by
	// Connect before it gives up. Zero means use a sane default.
	ConnectRetries int
	Logger         log.Logger
}

// Transport is a combined transport.Sender and transport.Receiver backed
// by a single NATS connection.
type Transport struct {
	conn   *gonats.Conn
	logger log.Logger

	mu   sync.Mutex
	subs []*gonats.Subscription
}

var (
	_ transport.Sender   = (*Transport)(nil)
	_ transport.Receiver = (*Transport)(nil)
)

// Connect dials the configured NATS server, retrying with backoff. The
// retry policy mirrors how the rest of this codebase treats transport
// bring-up as recoverable rather than fatal.
func Connect(cfg Config) (*Transport, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger
	}

	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = 5
	}

	var conn *gonats.Conn
	retrier := retry.NewRetrier(retries, 100*time.Millisecond, 2*time.Second)
	err := retrier.Run(func() error {
		c, dialErr := gonats.Connect(cfg.URL, gonats.MaxReconnects(-1))
		if dialErr != nil {
			logger.Warn(fmt.Errorf("nats: connect attempt failed: %w", dialErr))
			return dialErr
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("nats: could not connect to %s: %w", cfg.URL, err)
	}

	return &Transport{conn: conn, logger: logger}, nil
}

// Send publishes frame to endpoint without waiting for a reply.
func (t *Transport) Send(_ context.Context, endpoint string, frame *wire.Frame) error {
	data, err := wire.Encode(frame)
	if err != nil {
		return err
	}
	if err := t.conn.Publish(endpoint, data); err != nil {
		return fmt.Errorf("nats: publish to %s: %w", endpoint, err)
	}
	return nil
}

// FastSend issues a NATS request to endpoint and waits up to timeout for
// a reply frame.
func (t *Transport) FastSend(ctx context.Context, endpoint string, frame *wire.Frame, timeout time.Duration) (*wire.Frame, error) {
	data, err := wire.Encode(frame)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply, err := t.conn.RequestWithContext(ctx, endpoint, data)
	if err != nil {
		if err == gonats.ErrTimeout || err == context.DeadlineExceeded {
			return nil, fmt.Errorf("nats: fast_send to %s: %w", endpoint, err)
		}
		return nil, fmt.Errorf("nats: fast_send to %s: %w", endpoint, err)
	}

	return wire.Decode(reply.Data)
}

// Listen subscribes to endpoint. Every inbound NATS message is decoded
// into a Frame and handed to handler; if the message carries a reply
// subject (it was sent via FastSend/Request) and handler returns a
// non-nil frame, that frame is published back on the reply subject.
func (t *Transport) Listen(_ context.Context, endpoint string, handler transport.FrameHandler) error {
	sub, err := t.conn.Subscribe(endpoint, func(msg *gonats.Msg) {
		frame, decodeErr := wire.Decode(msg.Data)
		if decodeErr != nil {
			t.logger.Warn(fmt.Errorf("nats: dropping malformed frame on %s: %w", endpoint, decodeErr))
			return
		}

		reply := handler(frame)
		if reply == nil || msg.Reply == "" {
			return
		}

		data, encodeErr := wire.Encode(reply)
		if encodeErr != nil {
			t.logger.Warn(fmt.Errorf("nats: encoding reply on %s: %w", endpoint, encodeErr))
			return
		}
		if respErr := msg.Respond(data); respErr != nil {
			t.logger.Warn(fmt.Errorf("nats: responding on %s: %w", endpoint, respErr))
		}
	})
	if err != nil {
		return fmt.Errorf("nats: subscribe to %s: %w", endpoint, err)
	}

	t.mu.Lock()
	t.subs = append(t.subs, sub)
	t.mu.Unlock()
	return nil
}

// Close unsubscribes every listener and drains the connection.
func (t *Transport) Close() error {
	t.mu.Lock()
	subs := t.subs
	t.subs = nil
	t.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Unsubscribe()
	}
	return t.conn.Drain()
}
