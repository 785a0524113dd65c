package feed

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
)

// Change names one revision of a document touched by a change.
type Change struct {
	Rev string `json:"rev"`
}

// ChangeEvent is one entry of the change feed. The decoder constructs one
// per frame and hands it to the consumer immediately; it retains nothing
// after emission.
type ChangeEvent struct {
	// Seq is the opaque sequence token of this change. Tokens are strictly
	// increasing in delivery order within one session.
	Seq string `json:"seq"`
	// ID is the id of the changed document. The same id may recur across
	// events; later events supersede earlier ones and no deduplication is
	// performed.
	ID string `json:"id"`
	// Changes lists the revision descriptors of the change, in order.
	Changes []Change `json:"changes"`
	// Deleted is set when the change is a deletion.
	Deleted bool `json:"deleted,omitempty"`
	// Doc holds the document body when include_docs was requested.
	Doc json.RawMessage `json:"doc,omitempty"`
}

// ScanDoc decodes the embedded document body into dest, which may be a map
// or a struct tagged with `json` field tags. It returns an error when the
// event carries no document.
func (e *ChangeEvent) ScanDoc(dest any) error {
	if len(e.Doc) == 0 {
		return ErrNoDoc
	}

	var raw map[string]any
	if err := json.Unmarshal(e.Doc, &raw); err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  dest,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// ChangesResults is the aggregate result of a Normal or LongPoll call.
// LastSeq and Pending are defined only for these two modes; live modes
// deliver events through Feed instead and never populate an aggregate.
type ChangesResults struct {
	Results []ChangeEvent `json:"results"`
	LastSeq string        `json:"last_seq"`
	Pending int64         `json:"pending"`
}
