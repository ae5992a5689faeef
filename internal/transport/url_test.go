// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		path   string
		token  string
		want   string
	}{
		{
			name:   "https selects wss",
			origin: "https://app.example.com",
			want:   "wss://app.example.com/ws",
		},
		{
			name:   "http selects ws",
			origin: "http://localhost:3000",
			want:   "ws://localhost:3000/ws",
		},
		{
			name:   "token in query",
			origin: "https://app.example.com",
			token:  "a b",
			want:   "wss://app.example.com/ws?token=a+b",
		},
		{
			name:   "custom path without slash",
			origin: "http://localhost",
			path:   "realtime",
			want:   "ws://localhost/realtime",
		},
		{
			name:   "origin path and query dropped",
			origin: "https://app.example.com/dashboard?tab=1#x",
			want:   "wss://app.example.com/ws",
		},
		{
			name:   "ws origin kept",
			origin: "ws://127.0.0.1:8080",
			path:   "/socket",
			want:   "ws://127.0.0.1:8080/socket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.origin, tt.path, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildURL_Invalid(t *testing.T) {
	for _, origin := range []string{"", "app.example.com", "ftp://app.example.com", "://bad"} {
		t.Run(origin, func(t *testing.T) {
			_, err := BuildURL(origin, "", "")
			assert.ErrorIs(t, err, ErrInvalidOrigin)
		})
	}
}
