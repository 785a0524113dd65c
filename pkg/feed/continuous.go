package feed

import (
	"encoding/json"
	"io"
	"strings"
)

// continuousFrame is one line of a continuous feed: either a change event or
// the final last_seq object the server emits before closing the connection.
type continuousFrame struct {
	ChangeEvent
	LastSeq *string `json:"last_seq"`
}

// nextContinuous decodes the next newline-framed JSON object. The server
// sends one object per line with no enclosing array and no separating
// commas; blank lines are heartbeats. One event may span several chunks and
// one chunk may carry several events, so framing works on the buffered
// unconsumed tail rather than on any single read.
func (f *Feed) nextContinuous() (*ChangeEvent, error) {
	for {
		line, err := f.readLine()
		if err != nil {
			return nil, err
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			// heartbeat
			continue
		}

		var frame continuousFrame
		if err := json.Unmarshal([]byte(line), &frame); err != nil {
			return nil, &DecodeError{Mode: Continuous, Fragment: fragment(line), Err: err}
		}

		if frame.LastSeq != nil {
			f.mu.Lock()
			f.lastSeq = *frame.LastSeq
			f.mu.Unlock()
			return nil, io.EOF
		}

		ev := frame.ChangeEvent
		return &ev, nil
	}
}
