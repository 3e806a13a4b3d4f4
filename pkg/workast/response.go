package workast

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Response is the result of a successful API call.
type Response struct {
	StatusCode int
	Header     http.Header
	// Body holds the JSON payload; it is nil when the reply had no content.
	Body json.RawMessage
}

// NoContent reports whether the API replied with an empty body.
func (r *Response) NoContent() bool { return len(r.Body) == 0 }

// Decode unmarshals the JSON payload into v.
func (r *Response) Decode(v any) error {
	if r.NoContent() {
		return errors.New("decode response: no content")
	}
	return json.Unmarshal(r.Body, v)
}

// Map decodes an object payload.
func (r *Response) Map() (map[string]any, error) {
	var m map[string]any
	if err := r.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
