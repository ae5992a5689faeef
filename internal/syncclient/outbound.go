// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-sync-client/models"
)

// Send builds an envelope of envelopeType around payload and writes it to
// the connection. While not connected the envelope is dropped with a warning
// and ErrNotConnected is returned; nothing is queued.
func (c *Client) Send(envelopeType string, payload any) error {
	if envelopeType == "" {
		return fmt.Errorf("%w: envelope type is required", ErrInvalidArgument)
	}

	env, err := models.NewEnvelope(envelopeType, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return c.sendEnvelope(env)
}

func (c *Client) sendEnvelope(env models.Envelope) error {
	c.mu.Lock()
	tr := c.transport
	if c.status != models.StateConnected || tr == nil {
		status := c.status
		c.mu.Unlock()

		c.logger.Warn().Str("func", "Client.sendEnvelope").
			Str("type", env.Type).
			Str("state", string(status)).
			Msg("dropping outbound envelope, not connected")
		c.metrics.SendDropped()
		return ErrNotConnected
	}
	c.lastActivity = c.scheduler.Now()
	c.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("error encoding envelope: %w", err)
	}
	if err = tr.Send(data); err != nil {
		c.logger.Warn().Err(err).Str("func", "Client.sendEnvelope").Str("type", env.Type).Msg("send failed")
		return fmt.Errorf("error sending %s: %w", env.Type, err)
	}

	c.metrics.FrameSent(env.Type)
	return nil
}

// UpdateState merges partial into the local state and mirrors the full new
// state to the server. The local update is kept even when the envelope
// cannot be sent.
func (c *Client) UpdateState(ctx context.Context, partial models.ClientState) (models.ClientState, error) {
	next, err := c.state.Update(ctx, partial)
	if err != nil {
		return models.ClientState{}, err
	}
	return next, c.Send(models.TypeClientState, next)
}

// RecordInteraction applies the optimistic effect of action on subjectID and
// reports the interaction to the server. The local effect is never rolled
// back; the next full sync reconciles it.
func (c *Client) RecordInteraction(ctx context.Context, subjectID, action string, data map[string]any) (models.Interaction, error) {
	interaction, err := c.state.RecordInteraction(ctx, subjectID, action, data)
	if err != nil {
		return models.Interaction{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return interaction, c.Send(models.TypeInteraction, interaction)
}

// RequestFullSync asks the server for a full sync.
func (c *Client) RequestFullSync() error {
	return c.sendEnvelope(models.Envelope{Type: models.TypeRequestFullSync})
}
