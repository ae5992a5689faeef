// Package client is the composition root of the sync client process.
//
// It builds the single shared sync connection together with its cache,
// local state store, stale refresh worker and status server, runs them until
// the process is signalled and tears them down in reverse order.
package client
