package workast

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error types carried by HTTPError.Type when the API did not name one.
const (
	TypeRequestError        = "RequestError"
	TypeRequestTimeoutError = "RequestTimeoutError"
	TypeResponseError       = "ResponseError"
)

const errMissingURLParams = "Missing URL params"

// InvalidParameterError reports a caller-side contract violation. It is
// returned before any network activity and is never retried.
type InvalidParameterError struct {
	Message string
}

func (e *InvalidParameterError) Error() string { return e.Message }

func invalidParam(msg string) error { return &InvalidParameterError{Message: msg} }

// HTTPError reports a failure that happened during or after dispatching a
// request: a non-2xx response, a client-side timeout or a transport error.
type HTTPError struct {
	Message string
	// Type is the API error name when the response carried one, otherwise
	// one of TypeResponseError, TypeRequestTimeoutError or TypeRequestError.
	Type string
	// StatusCode is zero when no HTTP response was received.
	StatusCode int
	// Body is the raw response body of a non-2xx reply.
	Body []byte
	Err  error
}

func (e *HTTPError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Type, e.Message, e.StatusCode)
	}
	return e.Type + ": " + e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

// newResponseError reads the API's error shapes, {"error":{"name":..,
// "message":..}} and {"message":..}. Each field is decoded on its own so a
// malformed sibling does not hide the others.
func newResponseError(status int, body []byte) *HTTPError {
	herr := &HTTPError{
		Message:    fmt.Sprintf("Request failed with status code %d", status),
		Type:       TypeResponseError,
		StatusCode: status,
		Body:       body,
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return herr
	}
	// "error" may be a plain string; only the object form carries fields.
	var detail map[string]json.RawMessage
	_ = json.Unmarshal(top["error"], &detail)

	if msg, ok := stringField(detail["message"]); ok {
		herr.Message = msg
	} else if msg, ok := stringField(top["message"]); ok {
		herr.Message = msg
	}
	if name, ok := stringField(detail["name"]); ok {
		herr.Type = name
	}
	return herr
}

// stringField decodes raw as a JSON string. Missing, null and non-string
// values report false.
func stringField(raw json.RawMessage) (string, bool) {
	var s *string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil || s == nil {
		return "", false
	}
	return *s, true
}

func newTimeoutError(timeoutMS int64, err error) *HTTPError {
	return &HTTPError{
		Message: fmt.Sprintf("Request timed out after %d ms", timeoutMS),
		Type:    TypeRequestTimeoutError,
		Err:     err,
	}
}

func newRequestError(err error) *HTTPError {
	return &HTTPError{Message: err.Error(), Type: TypeRequestError, Err: err}
}

// IsInvalidParameter reports whether err is, or wraps, an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ip *InvalidParameterError
	return errors.As(err, &ip)
}

// AsHTTPError extracts the HTTPError from err's chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an HTTPError for a 404 response.
func IsNotFound(err error) bool {
	herr, ok := AsHTTPError(err)
	return ok && herr.StatusCode == http.StatusNotFound
}
