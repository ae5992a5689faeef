// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncclient

import (
	"fmt"

	"github.com/MKhiriev/go-sync-client/models"
)

// Handler receives client events.
type Handler func(models.Event)

// Subscription identifies a registered handler. The zero value refers to no
// handler and is safe to pass to Off.
type Subscription struct {
	name models.EventName
	id   uint64
}

// Name returns the event name the subscription listens to.
func (s Subscription) Name() models.EventName {
	return s.name
}

type subscriber struct {
	id      uint64
	handler Handler
}

// On registers h for name. Handlers for the same name run in registration
// order. name is either a lifecycle event, "message" for every inbound
// envelope, or an inbound envelope type.
func (c *Client) On(name models.EventName, h Handler) (Subscription, error) {
	if name == "" || h == nil {
		return Subscription{}, fmt.Errorf("%w: event name and handler are required", ErrInvalidArgument)
	}

	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextSubID++
	c.subs[name] = append(c.subs[name], subscriber{id: c.nextSubID, handler: h})
	return Subscription{name: name, id: c.nextSubID}, nil
}

// Off removes the handler behind sub. Removing an unknown or already removed
// subscription is a no-op.
func (c *Client) Off(sub Subscription) {
	if sub.id == 0 {
		return
	}

	c.subMu.Lock()
	defer c.subMu.Unlock()

	list := c.subs[sub.name]
	for i, s := range list {
		if s.id == sub.id {
			next := make([]subscriber, 0, len(list)-1)
			next = append(next, list[:i]...)
			c.subs[sub.name] = append(next, list[i+1:]...)
			if len(c.subs[sub.name]) == 0 {
				delete(c.subs, sub.name)
			}
			return
		}
	}
}

// emitCurrent queues and delivers events raised by the transport of
// generation gen. They are dropped once that transport has been retired.
func (c *Client) emitCurrent(gen uint64, events ...models.Event) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.queueLocked(events...)
	c.mu.Unlock()
	c.flush()
}

func (c *Client) queueLocked(events ...models.Event) {
	c.pending = append(c.pending, events...)
}

// flush delivers queued events in order. Only one caller drains at a time;
// events queued meanwhile, including from inside a handler, are delivered by
// the active drainer after the current handler returns. It must be called
// without c.mu held so that handlers can call back into the client.
func (c *Client) flush() {
	c.mu.Lock()
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true
	for len(c.pending) > 0 {
		ev := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()

		c.deliver(ev)

		c.mu.Lock()
	}
	c.pending = nil
	c.draining = false
	c.mu.Unlock()
}

func (c *Client) deliver(ev models.Event) {
	c.subMu.RLock()
	list := c.subs[ev.Name]
	c.subMu.RUnlock()

	for _, s := range list {
		c.invoke(s.handler, ev)
	}
}

func (c *Client) invoke(h Handler, ev models.Event) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Str("func", "Client.invoke").
				Str("event", string(ev.Name)).
				Interface("panic", r).
				Msg("event handler panicked")
		}
	}()
	h(ev)
}
