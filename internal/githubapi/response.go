package githubapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Response is the envelope of a successful request.
//
// Data holds the decoded JSON value, or the raw text when the body was SARIF
// or could not be decoded. Raw always holds the body as received.
type Response struct {
	StatusCode int
	Data       any
	Raw        string
	Header     http.Header
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal([]byte(r.Raw), v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// IsList reports whether the body decoded to a JSON array.
func (r *Response) IsList() bool {
	_, ok := r.Data.([]any)
	return ok
}

// HasNextPage reports whether the Link header advertises a "next" relation.
func (r *Response) HasNextPage() bool {
	if r == nil || r.Header == nil {
		return false
	}
	return strings.Contains(strings.Join(r.Header.Values("Link"), ","), `rel="next"`)
}
