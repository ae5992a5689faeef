package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrClientStateNotFound is returned when no snapshot has been saved.
	ErrClientStateNotFound = errors.New("client state was not found")

	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT/UPDATE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrEncodingState is returned when the snapshot cannot be
	// (un)marshalled.
	ErrEncodingState = errors.New("failed to encode client state")
)
