package feed

import (
	"errors"
	"fmt"
)

var (
	// ErrFeedClosed is returned by Next after Close has been called.
	ErrFeedClosed = errors.New("feed: already closed")
	// ErrNoDoc is returned by ScanDoc when the event carries no document.
	ErrNoDoc = errors.New("feed: event has no embedded document")
	// ErrModeNotLive is returned when a live Feed is requested for a
	// buffered mode, or an aggregate decode for a live mode.
	ErrModeNotLive = errors.New("feed: mode mismatch for requested result shape")
)

// DecodeError reports a fragment that failed to parse. On Continuous and
// EventSource feeds it is scoped to the offending fragment and the feed
// remains open; on Normal and LongPoll there is no later fragment to recover
// with, so it is terminal for the single result.
type DecodeError struct {
	Mode     Mode
	Fragment string
	Err      error

	// terminal marks failures no later fragment can recover from, such as
	// a malformed aggregate body or unrecognizable stream framing.
	terminal bool
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("feed: decoding %s fragment %q: %v", e.Mode, e.Fragment, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

const maxFragment = 256

// fragment trims long offending input for error reporting.
func fragment(s string) string {
	if len(s) > maxFragment {
		return s[:maxFragment] + "..."
	}
	return s
}
