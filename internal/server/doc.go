// Package server runs the status HTTP server of the sync client and shuts
// it down gracefully.
package server
