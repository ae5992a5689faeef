package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  CacheKey
		want string
	}{
		{name: "strings", key: Key("tasks", "a"), want: `["tasks","a"]`},
		{name: "int", key: Key("tasks", 42), want: `["tasks",42]`},
		{name: "whole float", key: Key("tasks", float64(42)), want: `["tasks",42]`},
		{name: "fraction", key: Key("v", 1.5), want: `["v",1.5]`},
		{name: "json number", key: Key("tasks", json.Number("42")), want: `["tasks",42]`},
		{name: "empty", key: Key(), want: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
}

func TestCacheKey_DecodedMatchesLiteral(t *testing.T) {
	var decoded CacheKey
	require.NoError(t, json.Unmarshal([]byte(`["tasks",7,"notes"]`), &decoded))

	assert.Equal(t, Key("tasks", 7, "notes").String(), decoded.String())
}

func TestCacheKey_Path(t *testing.T) {
	assert.Equal(t, "tasks/7/notes", Key("tasks", float64(7), "notes").Path())
}

func TestCacheKey_Valid(t *testing.T) {
	tests := []struct {
		name string
		key  CacheKey
		want bool
	}{
		{name: "strings and numbers", key: Key("tasks", 7, float64(1), json.Number("3"), uint8(2)), want: true},
		{name: "empty", key: Key(), want: false},
		{name: "nil", key: nil, want: false},
		{name: "bool segment", key: Key("tasks", true), want: false},
		{name: "null segment", key: Key("tasks", nil), want: false},
		{name: "object segment", key: Key("tasks", map[string]any{"id": 1}), want: false},
		{name: "array segment", key: Key("tasks", []any{1}), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Valid())
		})
	}
}

func TestEnvelope(t *testing.T) {
	env, err := NewEnvelope(TypeHeartbeat, HeartbeatPayload{TS: 5})
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"heartbeat","payload":{"ts":5}}`, string(data))

	bare, err := NewEnvelope(TypeRequestFullSync, nil)
	require.NoError(t, err)
	data, err = json.Marshal(bare)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"request_full_sync"}`, string(data))

	var p HeartbeatPayload
	require.NoError(t, bare.DecodePayload(&p))
	assert.Zero(t, p.TS)
}

func TestClientState_Clone(t *testing.T) {
	orig := ClientState{Selections: map[string]string{"a": "1"}, ActiveSubjects: []string{"x"}}
	c := orig.Clone()
	c.Selections["a"] = "2"
	c.ActiveSubjects[0] = "y"

	assert.Equal(t, "1", orig.Selections["a"])
	assert.Equal(t, "x", orig.ActiveSubjects[0])
}
