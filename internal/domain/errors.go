package domain

import "errors"

var (
	// ErrBadURL is returned when a product URL carries no recoverable item number
	ErrBadURL = errors.New("url has no item number")

	// ErrTransport is returned on timeouts, connection errors and non-success statuses
	ErrTransport = errors.New("upstream request failed")

	// ErrDecode is returned when an upstream body is not valid structured data
	ErrDecode = errors.New("upstream response not decodable")

	// ErrNoUsableData is returned when a source responded but mapping produced no usable record
	ErrNoUsableData = errors.New("no usable data from source")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
