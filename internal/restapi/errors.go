package restapi

import "errors"

var (
	ErrEmptyAddress        = errors.New("empty api address")
	ErrInvalidAddress      = errors.New("invalid api address")
	ErrInvalidKey          = errors.New("invalid cache key")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("resource not found")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrDecodeResponse      = errors.New("cannot decode response body")
)
