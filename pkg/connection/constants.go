package connection

import (
	"errors"
	"time"
)

const (
	// RequestIDLength is the size of the generated per-request log
	// correlation id.
	RequestIDLength = 16
	// DefaultTimeout bounds one buffered HTTP exchange.
	DefaultTimeout = 30 * time.Second
)

var (
	ErrNoBaseURL = errors.New("connection: base url not set")
	// ErrIdleTimeout reports that a live stream delivered no bytes, not
	// even a heartbeat, for the configured idle interval. It is terminal
	// for the stream.
	ErrIdleTimeout = errors.New("connection: stream idle timeout")
)
