package connection

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// idleReader closes a live stream that delivers no bytes for the configured
// interval. Server heartbeats count as bytes, so a healthy feed resets the
// watchdog even when no change arrives.
type idleReader struct {
	body    io.ReadCloser
	timeout time.Duration
	timer   *time.Timer

	mu       sync.Mutex
	timedOut bool
}

func newIdleReader(body io.ReadCloser, timeout time.Duration) *idleReader {
	r := &idleReader{
		body:    body,
		timeout: timeout,
	}
	r.timer = time.AfterFunc(timeout, r.expire)
	return r
}

// expire closes the body, which unblocks any pending Read with an error
// that Read then maps to ErrIdleTimeout.
func (r *idleReader) expire() {
	r.mu.Lock()
	r.timedOut = true
	r.mu.Unlock()
	r.body.Close()
}

func (r *idleReader) Read(p []byte) (int, error) {
	n, err := r.body.Read(p)
	if err != nil {
		r.mu.Lock()
		timedOut := r.timedOut
		r.mu.Unlock()
		if timedOut {
			return n, fmt.Errorf("%w: no bytes for %s", ErrIdleTimeout, r.timeout)
		}
		return n, err
	}
	r.timer.Reset(r.timeout)
	return n, nil
}

func (r *idleReader) Close() error {
	r.timer.Stop()
	return r.body.Close()
}
