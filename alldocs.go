package featherdb

import (
	"context"
	"encoding/json"

	"github.com/featherdb/featherdb.go/pkg/param"
)

// AllDocsOptions filters and shapes an _all_docs call. Zero values are
// absent: they contribute nothing to the query string.
type AllDocsOptions struct {
	Key         string
	Keys        []string
	StartKey    string
	EndKey      string
	Limit       int
	Skip        int
	Descending  bool
	IncludeDocs bool
}

var allDocsEncoder = param.NewEncoder(map[string]param.Kind{
	"key":          param.JSON,
	"keys":         param.JSON,
	"startkey":     param.JSON,
	"endkey":       param.JSON,
	"limit":        param.Raw,
	"skip":         param.Raw,
	"descending":   param.Raw,
	"include_docs": param.Raw,
})

func (o AllDocsOptions) values() param.Values {
	values := param.Values{}
	if o.Key != "" {
		values["key"] = o.Key
	}
	if len(o.Keys) > 0 {
		values["keys"] = o.Keys
	}
	if o.StartKey != "" {
		values["startkey"] = o.StartKey
	}
	if o.EndKey != "" {
		values["endkey"] = o.EndKey
	}
	if o.Limit > 0 {
		values["limit"] = o.Limit
	}
	if o.Skip > 0 {
		values["skip"] = o.Skip
	}
	if o.Descending {
		values["descending"] = true
	}
	if o.IncludeDocs {
		values["include_docs"] = true
	}
	return values
}

// AllDocsRow is one row of an _all_docs result.
type AllDocsRow struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value struct {
		Rev string `json:"rev"`
	} `json:"value"`
	Doc json.RawMessage `json:"doc,omitempty"`
}

// AllDocsResult is the body of GET /{db}/_all_docs.
type AllDocsResult struct {
	TotalRows int64        `json:"total_rows"`
	Offset    int64        `json:"offset"`
	Rows      []AllDocsRow `json:"rows"`
}

// AllDocs lists the documents of the database.
func (db *DB) AllDocs(ctx context.Context, opts AllDocsOptions) (*AllDocsResult, error) {
	query, err := allDocsEncoder.Encode(opts.values())
	if err != nil {
		return nil, err
	}

	body, err := db.client.conn.Fetch(ctx, withQuery(db.path("_all_docs"), query))
	if err != nil {
		return nil, err
	}
	var result AllDocsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
