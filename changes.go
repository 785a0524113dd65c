package featherdb

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/featherdb/featherdb.go/pkg/feed"
	"github.com/featherdb/featherdb.go/pkg/param"
)

// ChangesOptions configures one changes call. The value is used once and
// never mutated by the client. Zero values are absent: they contribute
// nothing to the query string, so the server applies its own defaults.
type ChangesOptions struct {
	// Feed selects the delivery mode.
	Feed feed.Mode
	// Since resumes the feed after the given sequence token. The saved
	// token of a previous call or "now" are the usual values.
	Since string
	// DocIDs restricts the feed to the given documents. Setting it
	// implies the document-id filter.
	DocIDs []string
	// Filter names a server-side filter. The document-id filter requires
	// DocIDs, and the view filter requires View.
	Filter string
	// View restricts the feed to documents matched by a view. Implies the
	// view filter.
	View string
	// Style selects how many revision descriptors each event carries.
	Style string
	// Limit caps the number of events delivered.
	Limit int
	// Heartbeat asks the server to emit a no-op newline at the given
	// interval to keep a live connection alive.
	Heartbeat time.Duration
	// Timeout tells the server to end the feed after this long without a
	// change.
	Timeout time.Duration
	// SeqInterval lets the server skip sequence tokens on all but every
	// n-th event to cheapen the feed.
	SeqInterval int
	// Conflicts includes conflicting revisions in events.
	Conflicts bool
	// IncludeDocs embeds the document body in each event.
	IncludeDocs bool
	// Attachments embeds attachment bodies when IncludeDocs is set.
	Attachments bool
	// AttEncodingInfo adds attachment encoding details when Attachments
	// is set.
	AttEncodingInfo bool
	// Descending delivers the feed in reverse sequence order.
	Descending bool
}

const (
	docIDsFilter = "_doc_ids"
	viewFilter   = "_view"
)

var changesEncoder = param.NewEncoder(map[string]param.Kind{
	"feed":              param.Raw,
	"since":             param.Raw,
	"doc_ids":           param.JSON,
	"filter":            param.Raw,
	"view":              param.Raw,
	"style":             param.Raw,
	"limit":             param.Raw,
	"heartbeat":         param.Raw,
	"timeout":           param.Raw,
	"seq_interval":      param.Raw,
	"conflicts":         param.Raw,
	"include_docs":      param.Raw,
	"attachments":       param.Raw,
	"att_encoding_info": param.Raw,
	"descending":        param.Raw,
})

// validate rejects invalid option combinations before any request is
// issued.
func (o ChangesOptions) validate() error {
	if o.Filter == docIDsFilter && len(o.DocIDs) == 0 {
		return fmt.Errorf("%w: filter %s requires DocIDs", ErrInvalidOptions, docIDsFilter)
	}
	if o.Filter == viewFilter && o.View == "" {
		return fmt.Errorf("%w: filter %s requires View", ErrInvalidOptions, viewFilter)
	}
	if o.View != "" && o.Filter != "" && o.Filter != viewFilter {
		return fmt.Errorf("%w: View conflicts with filter %q", ErrInvalidOptions, o.Filter)
	}
	if len(o.DocIDs) > 0 && o.Filter != "" && o.Filter != docIDsFilter {
		return fmt.Errorf("%w: DocIDs conflict with filter %q", ErrInvalidOptions, o.Filter)
	}
	return nil
}

func (o ChangesOptions) values() param.Values {
	values := param.Values{"feed": o.Feed.String()}
	if o.Since != "" {
		values["since"] = o.Since
	}
	if len(o.DocIDs) > 0 {
		values["doc_ids"] = o.DocIDs
		values["filter"] = docIDsFilter
	}
	if o.View != "" {
		values["view"] = o.View
		values["filter"] = viewFilter
	}
	if o.Filter != "" {
		values["filter"] = o.Filter
	}
	if o.Style != "" {
		values["style"] = o.Style
	}
	if o.Limit > 0 {
		values["limit"] = o.Limit
	}
	if o.Heartbeat > 0 {
		values["heartbeat"] = o.Heartbeat.Milliseconds()
	}
	if o.Timeout > 0 {
		values["timeout"] = o.Timeout.Milliseconds()
	}
	if o.SeqInterval > 0 {
		values["seq_interval"] = o.SeqInterval
	}
	if o.Conflicts {
		values["conflicts"] = true
	}
	if o.IncludeDocs {
		values["include_docs"] = true
	}
	if o.Attachments {
		values["attachments"] = true
	}
	if o.AttEncodingInfo {
		values["att_encoding_info"] = true
	}
	if o.Descending {
		values["descending"] = true
	}
	return values
}

func (db *DB) changesPath(opts ChangesOptions) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	query, err := changesEncoder.Encode(opts.values())
	if err != nil {
		return "", err
	}
	return withQuery(db.path("_changes"), query), nil
}

// Changes issues one bounded changes call and returns the aggregate result.
// The mode must be Normal or LongPoll; live modes go through LiveChanges.
func (db *DB) Changes(ctx context.Context, opts ChangesOptions) (*feed.ChangesResults, error) {
	if opts.Feed.Live() {
		return nil, fmt.Errorf("%w: mode %s requires LiveChanges", ErrInvalidOptions, opts.Feed)
	}

	path, err := db.changesPath(opts)
	if err != nil {
		return nil, err
	}

	body, err := db.client.conn.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return feed.DecodeResults(opts.Feed, bytes.NewReader(body))
}

// LiveChanges opens an unbounded changes stream and returns its lazy event
// sequence. The mode must be Continuous or EventSource. The feed runs until
// the caller closes it, ctx is cancelled, or the transport closes; callers
// must Close the feed when done.
func (db *DB) LiveChanges(ctx context.Context, opts ChangesOptions) (*feed.Feed, error) {
	if !opts.Feed.Live() {
		return nil, fmt.Errorf("%w: mode %s requires Changes", ErrInvalidOptions, opts.Feed)
	}

	path, err := db.changesPath(opts)
	if err != nil {
		return nil, err
	}

	stream, err := db.client.conn.OpenStream(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return feed.NewFeed(opts.Feed, stream)
}
