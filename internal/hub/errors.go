package hub

import "errors"

// Domain-specific errors for hub client operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrAlreadyConnected is returned by Connect when the client already
	// owns a live connection. At most one connection per instance.
	ErrAlreadyConnected = errors.New("hub: already connected")

	// ErrNotConnected is returned when sending without a live connection.
	ErrNotConnected = errors.New("hub: not connected")

	// ErrConnectionFailed is returned when the transport cannot be opened.
	ErrConnectionFailed = errors.New("hub: connection failed")
)
