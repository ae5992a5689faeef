// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncclient

import (
	"errors"

	"github.com/MKhiriev/go-sync-client/internal/router"
	"github.com/MKhiriev/go-sync-client/internal/utils"
	"github.com/MKhiriev/go-sync-client/models"
)

// handleMessage decodes a frame, applies it to the cache and notifies the
// subscribers of its type followed by the catch-all message subscribers.
// Frames that cannot be decoded are reported as error events and dropped.
func (c *Client) handleMessage(gen uint64, data []byte) {
	c.mu.Lock()
	if gen != c.gen || c.status != models.StateConnected {
		c.mu.Unlock()
		return
	}
	c.lastActivity = c.scheduler.Now()
	c.mu.Unlock()

	env, err := router.Decode(data)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "Client.handleMessage").Int("size", len(data)).Msg("dropping malformed frame")
		c.metrics.MalformedFrame()
		c.emitCurrent(gen, models.Event{Name: models.EventError, Err: err})
		return
	}

	if env.Type == models.TypeIdentity {
		c.applyIdentity(env)
	}

	res, err := c.router.Dispatch(env)
	c.metrics.FrameReceived(res.Category.String())
	c.metrics.CacheEntries(c.cache.Len())
	events := make([]models.Event, 0, 3)
	if err != nil {
		events = append(events, models.Event{Name: models.EventError, Err: err, Envelope: &env})
		if errors.Is(err, router.ErrMalformedPayload) {
			c.emitCurrent(gen, events...)
			return
		}
	}

	if res.Known {
		events = append(events, models.Event{Name: models.EventName(env.Type), Envelope: &env})
	}
	events = append(events, models.Event{Name: models.EventMessage, Envelope: &env})
	c.emitCurrent(gen, events...)
}

// applyIdentity stores a server-assigned token for later reconnects.
func (c *Client) applyIdentity(env models.Envelope) {
	var identity models.IdentityPayload
	if err := env.DecodePayload(&identity); err != nil || identity.Token == "" {
		c.logger.Warn().Err(err).Str("func", "Client.applyIdentity").Msg("ignoring identity without token")
		return
	}

	c.mu.Lock()
	c.token = identity.Token
	c.mu.Unlock()

	log := c.logger.Info().Str("func", "Client.applyIdentity")
	if subject, err := utils.ParseTokenSubject(identity.Token); err == nil {
		log = log.Str("subject", subject)
	}
	log.Msg("identity assigned by server")
}
