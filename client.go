package featherdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/featherdb/featherdb.go/pkg/connection"
	"github.com/featherdb/featherdb.go/pkg/param"
)

// Client is a handle on one FeatherDB server.
type Client struct {
	conn *connection.HTTPConnection
}

// New builds a Client from cfg.
func New(cfg *connection.Config) *Client {
	return &Client{conn: connection.New(cfg)}
}

// FromEndpointURLString connects to the server at the given URL, lifting any
// embedded credentials into basic auth.
func FromEndpointURLString(endpoint string) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidOptions, u.Scheme)
	}
	return New(connection.NewConfig(u)), nil
}

// DB returns a handle on the named database. No request is issued.
func (c *Client) DB(name string) *DB {
	return &DB{client: c, name: name}
}

// ServerInfo is the body of GET /.
type ServerInfo struct {
	Name    string `json:"couchdb"`
	Version string `json:"version"`
	UUID    string `json:"uuid"`
}

// Version fetches the server banner.
func (c *Client) Version(ctx context.Context) (*ServerInfo, error) {
	body, err := c.conn.Fetch(ctx, "/")
	if err != nil {
		return nil, err
	}
	var info ServerInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// AllDBs lists the databases on the server.
func (c *Client) AllDBs(ctx context.Context) ([]string, error) {
	body, err := c.conn.Fetch(ctx, "/_all_dbs")
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// DBExists reports whether the named database exists.
func (c *Client) DBExists(ctx context.Context, name string) (bool, error) {
	_, err := c.conn.Do(ctx, http.MethodHead, "/"+url.PathEscape(name), nil)
	if err != nil {
		if errors.Is(err, &connection.HTTPError{StatusCode: http.StatusNotFound}) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateDB creates the named database.
func (c *Client) CreateDB(ctx context.Context, name string) error {
	_, err := c.conn.Do(ctx, http.MethodPut, "/"+url.PathEscape(name), nil)
	return err
}

// DestroyDB deletes the named database and all of its documents.
func (c *Client) DestroyDB(ctx context.Context, name string) error {
	_, err := c.conn.Do(ctx, http.MethodDelete, "/"+url.PathEscape(name), nil)
	return err
}

var uuidsEncoder = param.NewEncoder(map[string]param.Kind{
	"count": param.Raw,
})

// UUIDs asks the server for count fresh unique identifiers.
func (c *Client) UUIDs(ctx context.Context, count int) ([]string, error) {
	values := param.Values{}
	if count > 0 {
		values["count"] = count
	}
	query, err := uuidsEncoder.Encode(values)
	if err != nil {
		return nil, err
	}

	body, err := c.conn.Fetch(ctx, withQuery("/_uuids", query))
	if err != nil {
		return nil, err
	}
	var resp struct {
		UUIDs []string `json:"uuids"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return resp.UUIDs, nil
}

// withQuery appends an encoded query string to a path, omitting the "?"
// when the query is empty.
func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
