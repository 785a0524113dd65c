package feed

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

var errUnknownField = errors.New("line is not an event-stream field")

// sseState accumulates the data and id lines of the in-progress event.
type sseState struct {
	id        string
	dataLines []string
}

// nextEventSource decodes text/event-stream framing: events are separated by
// blank lines and carry data: and id: lines. The server labels no event:
// field, so any field other than data, id and the ignorable event/retry pair
// means the body is not an event stream at all, which is terminal.
func (f *Feed) nextEventSource() (*ChangeEvent, error) {
	for {
		line, err := f.readLine()
		if err != nil {
			if err == io.EOF {
				// Flush a final event missing its trailing separator.
				if ev, ferr := f.flushSSE(); ev != nil || ferr != nil {
					return ev, ferr
				}
			}
			return nil, err
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if line == "" {
			if ev, ferr := f.flushSSE(); ev != nil || ferr != nil {
				return ev, ferr
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			// comment, used as heartbeat
			continue
		}

		field, value, found := strings.Cut(line, ":")
		if !found {
			return nil, &DecodeError{
				Mode:     EventSource,
				Fragment: fragment(line),
				Err:      errUnknownField,
				terminal: true,
			}
		}
		// The event-stream format allows one optional space after the colon.
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "data":
			f.sse.dataLines = append(f.sse.dataLines, value)
		case "id":
			f.sse.id = value
		case "event", "retry":
			// valid event-stream fields this feed never uses
		default:
			return nil, &DecodeError{
				Mode:     EventSource,
				Fragment: fragment(line),
				Err:      errUnknownField,
				terminal: true,
			}
		}
	}
}

// flushSSE converts the accumulated event into a ChangeEvent and resets the
// accumulator. It returns (nil, nil) when nothing was accumulated, as for
// consecutive blank lines.
func (f *Feed) flushSSE() (*ChangeEvent, error) {
	id := f.sse.id
	data := strings.Join(f.sse.dataLines, "\n")
	hadData := len(f.sse.dataLines) > 0
	f.sse = sseState{}

	if !hadData && id == "" {
		return nil, nil
	}

	var ev ChangeEvent
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		return nil, &DecodeError{Mode: EventSource, Fragment: fragment(data), Err: err}
	}
	// The server carries the sequence token as the event id; it wins over
	// anything embedded in the data payload.
	if id != "" {
		ev.Seq = id
	}
	return &ev, nil
}
