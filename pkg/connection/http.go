package connection

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/featherdb/featherdb.go/internal/rand"
	"github.com/featherdb/featherdb.go/pkg/logger"
)

// HTTPConnection is the request/response gateway. It performs the actual
// HTTP exchanges and hands callers either a fully buffered body or an open
// chunk stream; it never retries and propagates failures unchanged.
type HTTPConnection struct {
	baseURL     string
	username    string
	password    string
	httpClient  *http.Client
	streamer    *http.Client
	idleTimeout time.Duration
	logger      logger.Logger
}

// New builds an HTTPConnection from cfg.
func New(cfg *Config) *HTTPConnection {
	buffered := cfg.HTTPClient
	if buffered == nil {
		buffered = &http.Client{Timeout: DefaultTimeout}
	}

	// Streams reuse the transport but must not inherit the buffered
	// timeout: a live feed is meant to stay open indefinitely.
	streamer := &http.Client{Transport: buffered.Transport}

	return &HTTPConnection{
		baseURL:     cfg.BaseURL,
		username:    cfg.Username,
		password:    cfg.Password,
		httpClient:  buffered,
		streamer:    streamer,
		idleTimeout: cfg.IdleTimeout,
		logger:      cfg.Logger,
	}
}

// Fetch issues a GET for path and returns the buffered response body.
func (c *HTTPConnection) Fetch(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST for path with a JSON body and returns the buffered
// response body.
func (c *HTTPConnection) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Do issues one buffered exchange. A non-success status is returned as an
// *HTTPError carrying the server's error and reason fields.
func (c *HTTPConnection) Do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp.StatusCode, method, path, respBody)
	}
	return respBody, nil
}

// OpenStream issues one exchange and returns the response body as an open
// chunk stream. When an idle timeout is configured the returned body closes
// itself after that long without bytes, and reads report ErrIdleTimeout.
// The caller owns the stream and must close it.
func (c *HTTPConnection) OpenStream(ctx context.Context, method, path string, body []byte) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.streamer.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, newHTTPError(resp.StatusCode, method, path, respBody)
	}

	if c.idleTimeout > 0 {
		return newIdleReader(resp.Body, c.idleTimeout), nil
	}
	return resp.Body, nil
}

func (c *HTTPConnection) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, ErrNoBaseURL
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	requestID := rand.NewRequestID(RequestIDLength)
	req.Header.Set("X-Request-ID", requestID)
	if c.logger != nil {
		c.logger.Debug("request", "id", requestID, "method", method, "path", path)
	}

	return req, nil
}
