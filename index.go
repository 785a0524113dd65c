package featherdb

import (
	"context"
	"encoding/json"
	"net/http"
)

// Index describes one query index.
type Index struct {
	DesignDoc string         `json:"ddoc,omitempty"`
	Name      string         `json:"name,omitempty"`
	Type      string         `json:"type,omitempty"`
	Def       map[string]any `json:"def,omitempty"`
}

// CreateIndex creates a query index over the given fields.
func (db *DB) CreateIndex(ctx context.Context, name string, fields []string) (*Index, error) {
	body, err := json.Marshal(map[string]any{
		"name":  name,
		"index": map[string]any{"fields": fields},
	})
	if err != nil {
		return nil, err
	}
	respBody, err := db.client.conn.Post(ctx, db.path("_index"), body)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Result string `json:"result"`
		ID     string `json:"id"`
		Name   string `json:"name"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &Index{DesignDoc: resp.ID, Name: resp.Name, Type: "json"}, nil
}

// DeleteIndex removes the named index from the given design document.
func (db *DB) DeleteIndex(ctx context.Context, designDoc, name string) error {
	_, err := db.client.conn.Do(ctx, http.MethodDelete,
		db.path("_index", designDoc, "json", name), nil)
	return err
}

// Indexes lists the indexes of the database.
func (db *DB) Indexes(ctx context.Context) ([]Index, error) {
	body, err := db.client.conn.Fetch(ctx, db.path("_index"))
	if err != nil {
		return nil, err
	}
	var resp struct {
		Indexes []Index `json:"indexes"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return resp.Indexes, nil
}

// Find runs a declarative selector query and returns the matching documents.
func (db *DB) Find(ctx context.Context, query any) ([]json.RawMessage, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	respBody, err := db.client.conn.Post(ctx, db.path("_find"), body)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Docs []json.RawMessage `json:"docs"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return resp.Docs, nil
}
