package workast

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

var placeholderRE = regexp.MustCompile(`\{\w+\}`)

// MethodSpec describes one REST endpoint: an HTTP verb and a path template
// with ordered placeholders such as "/task/{id}/activity".
type MethodSpec struct {
	Method string
	Path   string
}

// Method is a MethodSpec compiled against a Client.
type Method struct {
	client       *Client
	spec         MethodSpec
	placeholders int
}

// Generate compiles spec into a callable Method bound to c.
func (c *Client) Generate(spec MethodSpec) *Method {
	return &Method{
		client:       c,
		spec:         spec,
		placeholders: len(placeholderRE.FindAllStringIndex(spec.Path, -1)),
	}
}

// Spec returns the descriptor m was generated from.
func (m *Method) Spec() MethodSpec { return m.spec }

// CallOption adjusts the request a generated method sends. Method, path,
// query and body are owned by the generator and cannot be changed here.
type CallOption func(*RequestOptions)

// WithImpersonateTeam acts on behalf of team via the W-TEAM-ID header.
func WithImpersonateTeam(team string) CallOption {
	return func(o *RequestOptions) { o.Impersonate.Team = team }
}

// WithImpersonateUser acts on behalf of user via the W-USER-ID header.
func WithImpersonateUser(user string) CallOption {
	return func(o *RequestOptions) { o.Impersonate.User = user }
}

// WithProgress receives upload and download progress events. Upload events
// come from the transport's writer goroutine and can interleave with
// download events, for instance when the API answers before the upload
// ends; fn is never entered concurrently, but it must not assume it runs
// on the caller's goroutine or that no event follows the call's return.
func WithProgress(fn func(ProgressEvent)) CallOption {
	return func(o *RequestOptions) { o.OnProgress = fn }
}

// WithRequestTimeout overrides the client timeout for one call.
func WithRequestTimeout(d time.Duration) CallOption {
	return func(o *RequestOptions) { o.Timeout = d }
}

// WithRequestMaxRetries overrides the client retry count for one call.
func WithRequestMaxRetries(n int) CallOption {
	return func(o *RequestOptions) { o.MaxRetries = &n }
}

// WithRequestBaseURL sends one call to a different base URL.
func WithRequestBaseURL(base string) CallOption {
	return func(o *RequestOptions) { o.BaseURL = base }
}

// WithRequestOptions starts from a full description. Its method, path,
// query and body are still replaced by the generated values.
func WithRequestOptions(ro RequestOptions) CallOption {
	return func(o *RequestOptions) { *o = ro }
}

// Resolve builds the request description a call would send, without sending
// it. It fails with "Missing URL params" when fewer path params than
// placeholders are given.
func (m *Method) Resolve(pathParams []string, payload Params, opts ...CallOption) (RequestOptions, error) {
	if len(pathParams) < m.placeholders {
		return RequestOptions{}, invalidParam(errMissingURLParams)
	}

	i := 0
	path := placeholderRE.ReplaceAllStringFunc(m.spec.Path, func(string) string {
		v := url.PathEscape(pathParams[i])
		i++
		return v
	})

	var ro RequestOptions
	for _, o := range opts {
		o(&ro)
	}
	ro.Method = m.spec.Method
	ro.Path = path
	ro.route = m.spec.Path
	if m.spec.Method == http.MethodGet || m.spec.Method == http.MethodHead {
		ro.Query, ro.Body = payload, nil
	} else {
		ro.Query, ro.Body = nil, payload
	}
	return ro, nil
}

// Call fills the path template from pathParams, sends payload as the query
// (GET, HEAD) or body (other verbs) and applies opts.
func (m *Method) Call(ctx context.Context, pathParams []string, payload Params, opts ...CallOption) (*Response, error) {
	ro, err := m.Resolve(pathParams, payload, opts...)
	if err != nil {
		return nil, err
	}
	return m.client.APICall(ctx, ro)
}
