// Package feed decodes the change feed of a FeatherDB database.
//
// The server exposes one logical changes endpoint whose wire framing differs
// by delivery mode: Normal and LongPoll return a single buffered JSON object,
// Continuous returns newline-separated JSON objects with no enclosing array,
// and EventSource returns text/event-stream framing. This package converts
// all four into either one ChangesResults aggregate (DecodeResults) or a
// pull-based lazy sequence of ChangeEvent values (Feed).
package feed

import "fmt"

// Mode selects the delivery mode of one changes call.
type Mode int

const (
	// Normal returns all changes since the given sequence token in one
	// buffered response.
	Normal Mode = iota
	// LongPoll behaves like Normal but the server holds the request open
	// until at least one change is available.
	LongPoll
	// Continuous holds the connection open indefinitely and delivers one
	// JSON object per line as changes occur.
	Continuous
	// EventSource holds the connection open indefinitely and delivers
	// changes in text/event-stream framing.
	EventSource
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case LongPoll:
		return "longpoll"
	case Continuous:
		return "continuous"
	case EventSource:
		return "eventsource"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Live reports whether the mode delivers an unbounded incremental stream
// rather than a single buffered aggregate.
func (m Mode) Live() bool {
	return m == Continuous || m == EventSource
}
