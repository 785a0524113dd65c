package connection

import (
	"encoding/json"
	"fmt"
)

// HTTPError is a non-success response from the server. Err and Reason carry
// the server's own error fields when the body held them.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Method     string `json:"-"`
	Path       string `json:"-"`
	Err        string `json:"error,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (e *HTTPError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("connection: %s %s: status %d: %s: %s",
			e.Method, e.Path, e.StatusCode, e.Err, e.Reason)
	}
	return fmt.Sprintf("connection: %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

// newHTTPError builds an HTTPError from a response body, tolerating bodies
// that are not the server's JSON error shape.
func newHTTPError(statusCode int, method, path string, body []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Method:     method,
		Path:       path,
	}
	if len(body) > 0 {
		_ = json.Unmarshal(body, httpErr)
	}
	return httpErr
}
