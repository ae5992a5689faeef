package models

import (
	"maps"
	"slices"
	"time"
)

// ClientState is the small optimistic local record owned by the sync client.
// It changes only through explicit local calls and is mirrored to the server
// with outbound envelopes.
type ClientState struct {
	// Selections maps a UI scope (e.g. "client", "framework") to the
	// currently selected identifier.
	Selections map[string]string `json:"selections,omitempty"`

	// ActiveWorkflows lists in-flight workflow identifiers.
	ActiveWorkflows []string `json:"active_workflows,omitempty"`

	// ActiveSubjects is the optimistic set maintained by RecordInteraction.
	ActiveSubjects []string `json:"active_subjects,omitempty"`

	// Preferences holds free-form user preferences.
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Clone returns a deep-enough copy so that callers cannot mutate the store's
// internal maps and slices.
func (s ClientState) Clone() ClientState {
	return ClientState{
		Selections:      maps.Clone(s.Selections),
		ActiveWorkflows: slices.Clone(s.ActiveWorkflows),
		ActiveSubjects:  slices.Clone(s.ActiveSubjects),
		Preferences:     maps.Clone(s.Preferences),
	}
}

// Interaction is the outbound body of an interaction envelope.
type Interaction struct {
	ID        string         `json:"id"`
	SubjectID string         `json:"subject_id"`
	Action    string         `json:"action"`
	Data      map[string]any `json:"data,omitempty"`
	At        time.Time      `json:"at"`
}
