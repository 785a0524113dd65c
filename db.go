package featherdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/featherdb/featherdb.go/pkg/param"
)

// DB is a handle on one database of a server.
type DB struct {
	client *Client
	name   string
}

// Name returns the database name.
func (db *DB) Name() string {
	return db.name
}

func (db *DB) path(parts ...string) string {
	p := "/" + url.PathEscape(db.name)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// DBInfo is the body of GET /{db}.
type DBInfo struct {
	Name      string `json:"db_name"`
	DocCount  int64  `json:"doc_count"`
	DelCount  int64  `json:"doc_del_count"`
	UpdateSeq string `json:"update_seq"`
	Sizes     struct {
		Active   int64 `json:"active"`
		External int64 `json:"external"`
		File     int64 `json:"file"`
	} `json:"sizes"`
}

// Info fetches database statistics.
func (db *DB) Info(ctx context.Context) (*DBInfo, error) {
	body, err := db.client.conn.Fetch(ctx, db.path())
	if err != nil {
		return nil, err
	}
	var info DBInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DocMeta is the server's acknowledgement of one document write.
type DocMeta struct {
	OK  bool   `json:"ok"`
	ID  string `json:"id"`
	Rev string `json:"rev"`
}

// Get fetches the document with the given id and unmarshals it into dest.
func (db *DB) Get(ctx context.Context, docID string, dest any) error {
	body, err := db.client.conn.Fetch(ctx, db.path(docID))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

// Put writes doc under the given id. Updating an existing document requires
// the doc to carry its current _rev.
func (db *DB) Put(ctx context.Context, docID string, doc any) (*DocMeta, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	respBody, err := db.client.conn.Do(ctx, http.MethodPut, db.path(docID), body)
	if err != nil {
		return nil, err
	}
	return decodeDocMeta(respBody)
}

// CreateDoc writes a new document. When doc carries no _id a fresh UUID is
// generated client side, so the call stays an idempotent PUT.
func (db *DB) CreateDoc(ctx context.Context, doc any) (*DocMeta, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	docID, _ := fields["_id"].(string)
	if docID == "" {
		docID = uuid.NewString()
		delete(fields, "_id")
	}
	return db.Put(ctx, docID, fields)
}

var revEncoder = param.NewEncoder(map[string]param.Kind{
	"rev": param.Raw,
})

// Delete removes the document at the given revision.
func (db *DB) Delete(ctx context.Context, docID, rev string) (*DocMeta, error) {
	if rev == "" {
		return nil, ErrMissingRev
	}
	query, err := revEncoder.Encode(param.Values{"rev": rev})
	if err != nil {
		return nil, err
	}
	body, err := db.client.conn.Do(ctx, http.MethodDelete, withQuery(db.path(docID), query), nil)
	if err != nil {
		return nil, err
	}
	return decodeDocMeta(body)
}

// BulkDocs writes docs in one request and returns one DocMeta per document,
// in input order.
func (db *DB) BulkDocs(ctx context.Context, docs []any) ([]DocMeta, error) {
	body, err := json.Marshal(map[string]any{"docs": docs})
	if err != nil {
		return nil, err
	}
	respBody, err := db.client.conn.Post(ctx, db.path("_bulk_docs"), body)
	if err != nil {
		return nil, err
	}
	var metas []DocMeta
	if err := json.Unmarshal(respBody, &metas); err != nil {
		return nil, err
	}
	return metas, nil
}

// Compact triggers compaction of the database. The server runs it in the
// background; the call returns as soon as it is scheduled.
func (db *DB) Compact(ctx context.Context) error {
	_, err := db.client.conn.Post(ctx, db.path("_compact"), nil)
	return err
}

// PurgeResult is the body of POST /{db}/_purge.
type PurgeResult struct {
	PurgeSeq string              `json:"purge_seq"`
	Purged   map[string][]string `json:"purged"`
}

// Purge permanently removes the given revisions, mapping document id to the
// revisions to purge.
func (db *DB) Purge(ctx context.Context, revs map[string][]string) (*PurgeResult, error) {
	body, err := json.Marshal(revs)
	if err != nil {
		return nil, err
	}
	respBody, err := db.client.conn.Post(ctx, db.path("_purge"), body)
	if err != nil {
		return nil, err
	}
	var result PurgeResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ShardMap maps each shard range to the nodes holding its replicas.
type ShardMap struct {
	Shards map[string][]string `json:"shards"`
}

// Shards fetches the shard map of the database.
func (db *DB) Shards(ctx context.Context) (*ShardMap, error) {
	body, err := db.client.conn.Fetch(ctx, db.path("_shards"))
	if err != nil {
		return nil, err
	}
	var shards ShardMap
	if err := json.Unmarshal(body, &shards); err != nil {
		return nil, err
	}
	return &shards, nil
}

func decodeDocMeta(body []byte) (*DocMeta, error) {
	var meta DocMeta
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
