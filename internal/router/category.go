// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import "github.com/MKhiriev/go-sync-client/models"

// Category selects which cache operation an inbound envelope type triggers.
type Category int

const (
	// CategoryUnknown is the fallback bucket: no cache effect, delivered only
	// to the catch-all message subscription.
	CategoryUnknown Category = iota
	// CategoryInitialSync sets every entry (snapshot on connect).
	CategoryInitialSync
	// CategoryPeriodicSync merges every entry (incremental delta).
	CategoryPeriodicSync
	// CategoryFullSync invalidates the whole cache, then sets every entry.
	CategoryFullSync
	// CategoryTargeted invalidates each key, or merges when a value is given.
	CategoryTargeted
	// CategorySuggestion merges every entry and never invalidates.
	CategorySuggestion
	// CategoryControl is a known type with no cache effect.
	CategoryControl
)

func (c Category) String() string {
	switch c {
	case CategoryInitialSync:
		return "initial_sync"
	case CategoryPeriodicSync:
		return "periodic_sync"
	case CategoryFullSync:
		return "full_sync"
	case CategoryTargeted:
		return "targeted"
	case CategorySuggestion:
		return "suggestion"
	case CategoryControl:
		return "control"
	default:
		return "unknown"
	}
}

// DefaultTable maps the inbound envelope types of the sync protocol to
// their categories.
func DefaultTable() map[string]Category {
	return map[string]Category{
		models.TypeInitialSync:   CategoryInitialSync,
		models.TypePeriodicSync:  CategoryPeriodicSync,
		models.TypeFullSync:      CategoryFullSync,
		models.TypeEntityEvent:   CategoryTargeted,
		models.TypeStatusChanged: CategoryTargeted,
		models.TypeSuggestion:    CategorySuggestion,
		models.TypeHeartbeatAck:  CategoryControl,
		models.TypeIdentity:      CategoryControl,
	}
}
