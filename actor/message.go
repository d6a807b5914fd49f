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

// Message is the unit an actor's mailbox carries and its dispatch loop
// hands to a Handler. KindID selects the handler; Sender identifies who
// to Reply to for a fast_send. Last is set by the mailbox on pop and is
// true iff the mailbox held no further messages immediately after this
// one was removed, letting a handler trigger end-of-batch work (e.g. a
// flush) without extra coordination. It says nothing about Shutdown;
// dispatch loop exit is driven by KindID == wire.KindShutdown instead.
type Message struct {
	KindID  uint32
	Sender  ActorRef
	IsFast  bool
	Last    bool
	Payload any

	// replySlot is non-nil for a fast message awaiting a reply,
	// whether the sender was a local goroutine blocked in
	// ActorRef.FastSend or a remote peer whose transport goroutine is
	// blocked inside a Receiver callback. Reply() writes to it exactly
	// once; nothing else touches it, so it needs no lock of its own.
	replySlot chan *Message
}

func newMessage(payload Payload, sender ActorRef, isFast bool) *Message {
	return &Message{
		KindID:  payload.Kind(),
		Sender:  sender,
		IsFast:  isFast,
		Payload: payload,
	}
}

// reply satisfies a pending fast_send by delivering resp on the
// message's reply slot. It is a no-op if the message was not a fast
// message, or if a reply was already sent. The slot is buffered with
// capacity 1, so this never blocks the actor's dispatch loop.
func (m *Message) reply(resp *Message) bool {
	if m.replySlot == nil {
		return false
	}
	select {
	case m.replySlot <- resp:
		return true
	default:
		return false
	}
}
