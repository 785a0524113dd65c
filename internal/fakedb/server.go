// Package fakedb provides a fake FeatherDB HTTP server for testing.
//
// It serves a small in-memory document store plus a scripted changes feed in
// all four delivery modes, so feed consumers can be exercised end to end
// without a real server. Events are appended with Emit and replayed to every
// feed request according to the requested framing.
package fakedb

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/featherdb/featherdb.go/pkg/feed"
)

// Server is a fake FeatherDB node backed by httptest.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	docs   map[string]json.RawMessage
	events []feed.ChangeEvent
	wakeup chan struct{}
}

// New starts a fake server for one database with the given name.
func New(dbName string) *Server {
	s := &Server{
		docs:   make(map[string]json.RawMessage),
		wakeup: make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/"+dbName+"/_changes", s.handleChanges)
	mux.HandleFunc("/"+dbName+"/", s.handleDoc)
	s.Server = httptest.NewServer(mux)
	return s
}

// Emit appends one change event to the feed and wakes any live feed
// request waiting for changes.
func (s *Server) Emit(ev feed.ChangeEvent) {
	s.mu.Lock()
	ev.Seq = fmt.Sprint(len(s.events) + 1)
	s.events = append(s.events, ev)
	close(s.wakeup)
	s.wakeup = make(chan struct{})
	s.mu.Unlock()
}

// PutDoc stores a raw document body served by GET requests.
func (s *Server) PutDoc(id string, body json.RawMessage) {
	s.mu.Lock()
	s.docs[id] = body
	s.mu.Unlock()
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	id := parts[len(parts)-1]

	s.mu.Lock()
	body, ok := s.docs[id]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"not_found","reason":"missing"}`)
		return
	}
	w.Write(body)
}

func (s *Server) snapshot() []feed.ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]feed.ChangeEvent(nil), s.events...)
}

func (s *Server) handleChanges(w http.ResponseWriter, r *http.Request) {
	events := s.snapshot()

	switch r.URL.Query().Get("feed") {
	case "", "normal", "longpoll":
		lastSeq := "0"
		if len(events) > 0 {
			lastSeq = events[len(events)-1].Seq
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results":  events,
			"last_seq": lastSeq,
			"pending":  0,
		})

	case "continuous":
		flusher := w.(http.Flusher)
		enc := json.NewEncoder(w)
		sent := 0
		for {
			for _, ev := range events[sent:] {
				enc.Encode(ev)
			}
			sent = len(events)
			flusher.Flush()

			s.mu.Lock()
			wakeup := s.wakeup
			s.mu.Unlock()
			select {
			case <-r.Context().Done():
				return
			case <-wakeup:
				events = s.snapshot()
			}
		}

	case "eventsource":
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		sent := 0
		for {
			for _, ev := range events[sent:] {
				data, _ := json.Marshal(ev)
				fmt.Fprintf(w, "data: %s\nid: %s\n\n", data, ev.Seq)
			}
			sent = len(events)
			flusher.Flush()

			s.mu.Lock()
			wakeup := s.wakeup
			s.mu.Unlock()
			select {
			case <-r.Context().Done():
				return
			case <-wakeup:
				events = s.snapshot()
			}
		}

	default:
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"bad_request","reason":"unknown feed mode"}`)
	}
}
