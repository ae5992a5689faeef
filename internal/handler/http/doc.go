// Package http implements the status endpoint of the sync client.
//
// It exposes the connection status, the local client state, a trigger for a
// full sync and the Prometheus metrics of the process. Requests pass through
// trace-id and access-logging middleware before reaching the handlers.
package http
