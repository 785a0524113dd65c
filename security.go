package featherdb

import (
	"context"
	"encoding/json"
	"net/http"
)

// Members names the users and roles of one security role class.
type Members struct {
	Names []string `json:"names,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Security is the security document of a database.
type Security struct {
	Admins  Members `json:"admins"`
	Members Members `json:"members"`
}

// Security fetches the security document.
func (db *DB) Security(ctx context.Context) (*Security, error) {
	body, err := db.client.conn.Fetch(ctx, db.path("_security"))
	if err != nil {
		return nil, err
	}
	var sec Security
	if err := json.Unmarshal(body, &sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

// SetSecurity replaces the security document.
func (db *DB) SetSecurity(ctx context.Context, sec *Security) error {
	body, err := json.Marshal(sec)
	if err != nil {
		return err
	}
	_, err = db.client.conn.Do(ctx, http.MethodPut, db.path("_security"), body)
	return err
}
