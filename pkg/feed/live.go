package feed

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// Feed is a pull-based iterator over a live (Continuous or EventSource)
// changes stream. Events are produced only when the consumer asks for them;
// the decoder never reads ahead past the current in-progress event, so an
// infinite feed consumes bounded memory.
//
// A Feed never terminates on its own. Iteration ends when the transport
// closes: explicit Close, request context cancellation, idle timeout, or
// server shutdown. That termination surfaces as a terminal error from Next.
type Feed struct {
	mode Mode
	body io.ReadCloser
	r    *bufio.Reader

	mu      sync.Mutex
	closed  bool
	err     error
	lastSeq string

	sse sseState
}

// NewFeed wraps an open response body in a Feed. The mode must be Continuous
// or EventSource; buffered modes go through DecodeResults instead.
func NewFeed(mode Mode, body io.ReadCloser) (*Feed, error) {
	if !mode.Live() {
		return nil, ErrModeNotLive
	}
	return &Feed{
		mode: mode,
		body: body,
		r:    bufio.NewReader(body),
	}, nil
}

// Next blocks until the next change event arrives and returns it.
//
// A *DecodeError return is scoped to one malformed fragment: the feed
// remains open and the following call resumes with the next fragment. Any
// other error is terminal. After the server ends the feed (continuous feeds
// close with a final last_seq object once the timeout elapses) Next returns
// io.EOF and LastSeq reports the final token.
func (f *Feed) Next() (*ChangeEvent, error) {
	f.mu.Lock()
	closed, terminal := f.closed, f.err
	f.mu.Unlock()

	if closed {
		return nil, ErrFeedClosed
	}
	if terminal != nil {
		return nil, terminal
	}

	var (
		ev  *ChangeEvent
		err error
	)
	switch f.mode {
	case EventSource:
		ev, err = f.nextEventSource()
	default:
		ev, err = f.nextContinuous()
	}

	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) && !de.terminal {
			// Fail-per-event: the sequence stays open for later fragments.
			return nil, err
		}
		f.mu.Lock()
		f.err = err
		f.mu.Unlock()
		return nil, err
	}
	return ev, nil
}

// Close closes the underlying transport and halts all further reads. No
// background work survives it. Close is idempotent.
func (f *Feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()
	return f.body.Close()
}

// LastSeq returns the final sequence token the server reported when it ended
// the feed, or "" while the feed is still open.
func (f *Feed) LastSeq() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSeq
}

// readLine returns the next line, including its terminator when present.
// A final unterminated line before EOF is still delivered; the EOF surfaces
// on the following call.
func (f *Feed) readLine() (string, error) {
	line, err := f.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}
