package feed

import (
	"encoding/json"
	"io"
)

// DecodeResults buffers the whole body and parses it as the aggregate result
// of a Normal or LongPoll call. The server's framing for these two modes is
// bounded, so full accumulation is the intended behavior, not a shortcut:
// no partial result is ever produced, and a malformed body is a terminal
// failure of the single result.
func DecodeResults(mode Mode, r io.Reader) (*ChangesResults, error) {
	if mode.Live() {
		return nil, ErrModeNotLive
	}

	body, err := io.ReadAll(r)
	if err != nil {
		// Transport failure during accumulation propagates unchanged.
		return nil, err
	}

	var results ChangesResults
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &DecodeError{Mode: mode, Fragment: fragment(string(body)), Err: err, terminal: true}
	}

	return &results, nil
}
