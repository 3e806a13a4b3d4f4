package workast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 32 << 20

// retryStatuses are the response codes worth another attempt.
var retryStatuses = map[int]bool{
	http.StatusRequestTimeout:        true,
	http.StatusRequestEntityTooLarge: true,
	http.StatusTooManyRequests:       true,
	http.StatusInternalServerError:   true,
	http.StatusBadGateway:            true,
	http.StatusServiceUnavailable:    true,
	http.StatusGatewayTimeout:        true,
	521:                              true,
	522:                              true,
	524:                              true,
}

// prepared is a validated, fully resolved request.
type prepared struct {
	method     string
	path       string
	route      string
	url        string
	header     http.Header
	body       *payload
	timeout    time.Duration
	maxRetries int
	onProgress func(ProgressEvent)
}

// APICall performs one API request described by opts.
//
// The description is resolved against the client configuration and then
// validated in a fixed order (base URL, timeout, max retries, method, path,
// query, body). The first violation is returned as an *InvalidParameterError
// without touching the network. Failures after dispatch are returned as
// *HTTPError; retryable ones are retried up to MaxRetries times.
func (c *Client) APICall(ctx context.Context, opts RequestOptions) (*Response, error) {
	p, err := c.prepare(opts)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, p)
}

func (c *Client) prepare(opts RequestOptions) (*prepared, error) {
	base := opts.BaseURL
	if base == "" {
		base = c.cfg.APIBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = c.cfg.Timeout
	}
	maxRetries := c.cfg.MaxRetries
	if opts.MaxRetries != nil {
		maxRetries = *opts.MaxRetries
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	path := opts.Path
	if path == "" {
		path = "/"
	}
	query := opts.Query
	if query == nil {
		query = Params{}
	}
	body := opts.Body
	if body == nil {
		body = Params{}
	}

	if !isNonEmpty(trimBaseURL(base)) {
		return nil, invalidParam("Base URL must be a non-empty string.")
	}
	if !isWholeMillis(timeout) {
		return nil, invalidParam("Timeout must be an integer greater than zero.")
	}
	if maxRetries < 0 {
		return nil, invalidParam("Max retries must be an integer greater than or equal to zero.")
	}
	if !isAllowedMethod(method) {
		return nil, invalidParam("Method must be one of " + strings.Join(AllowedMethods, ", ") + ".")
	}
	queryFields, err := flattenParams(query)
	if err != nil {
		return nil, invalidParam("Query must be an object.")
	}
	pl, err := buildPayload(method, body)
	if err != nil {
		return nil, err
	}

	u := normalizeURL(base, path)
	if q := encodeQuery(queryFields); q != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		u += sep + q
	}

	h := make(http.Header)
	h.Set("Accept", DefaultContentType)
	h.Set("Authorization", AuthenticationScheme+" "+c.cfg.Token)
	h.Set("User-Agent", "workast-sdk-go/"+Version)
	if opts.Impersonate.Team != "" {
		h.Set(ImpersonateTeamHeader, opts.Impersonate.Team)
	}
	if opts.Impersonate.User != "" {
		h.Set(ImpersonateUserHeader, opts.Impersonate.User)
	}
	if pl != nil {
		h.Set("Content-Type", pl.contentType)
	}

	route := opts.route
	if route == "" {
		route = "raw"
	}
	return &prepared{
		method:     method,
		path:       path,
		route:      route,
		url:        u,
		header:     h,
		body:       pl,
		timeout:    timeout,
		maxRetries: maxRetries,
		onProgress: serializeProgress(opts.OnProgress),
	}, nil
}

func (c *Client) execute(ctx context.Context, p *prepared) (*Response, error) {
	reqID := uuid.NewString()
	log := c.logger.With(
		zap.String("request_id", reqID),
		zap.String("method", p.method),
		zap.String("path", p.path),
	)
	start := time.Now()

	var (
		resp    *Response
		attempt int
		status  int
	)
	op := func() error {
		attempt++
		log.Debug("workast request", zap.Int("attempt", attempt))
		r, retry, err := c.attempt(ctx, p, reqID)
		if err != nil {
			if herr, ok := AsHTTPError(err); ok {
				status = herr.StatusCode
			}
			if !retry {
				return backoff.Permanent(err)
			}
			return err
		}
		resp, status = r, r.StatusCode
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.metrics.retried(p.method, p.route)
		log.Warn("retrying request",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(p.maxRetries)), ctx)
	err := backoff.RetryNotify(op, b, notify)
	c.metrics.observe(p.method, p.route, status, time.Since(start))

	if err != nil {
		// The back-off loop reports context errors unwrapped.
		if _, ok := AsHTTPError(err); !ok {
			err = newRequestError(err)
		}
		log.Debug("workast request failed", zap.Int("attempts", attempt), zap.Error(err))
		return nil, err
	}
	log.Debug("workast response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

// attempt performs a single HTTP exchange and reports whether a failure is
// worth retrying.
func (c *Client) attempt(ctx context.Context, p *prepared, reqID string) (*Response, bool, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, false, newRequestError(err)
		}
	}

	actx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var body io.Reader
	if p.body != nil {
		body = bytes.NewReader(p.body.data)
		if p.body.multipart && p.onProgress != nil {
			body = newProgressReader(body, ProgressUpload, int64(len(p.body.data)), p.onProgress)
		}
	}
	req, err := http.NewRequestWithContext(actx, p.method, p.url, body)
	if err != nil {
		return nil, false, newRequestError(err)
	}
	if p.body != nil {
		req.ContentLength = int64(len(p.body.data))
	}
	req.Header = p.header.Clone()
	req.Header.Set("X-Request-ID", reqID)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportRetryable(ctx), transportError(ctx, actx, p, err)
	}
	defer res.Body.Close()

	var rd io.Reader = res.Body
	if p.onProgress != nil {
		rd = newProgressReader(rd, ProgressDownload, res.ContentLength, p.onProgress)
	}
	data, err := io.ReadAll(io.LimitReader(rd, maxResponseBytes))
	if err != nil {
		return nil, transportRetryable(ctx), transportError(ctx, actx, p, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, retryStatuses[res.StatusCode], newResponseError(res.StatusCode, data)
	}
	out := &Response{StatusCode: res.StatusCode, Header: res.Header}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, false, nil
	}
	if !json.Valid(data) {
		return nil, false, &HTTPError{
			Message:    "invalid JSON response",
			Type:       TypeRequestError,
			StatusCode: res.StatusCode,
			Body:       data,
		}
	}
	out.Body = json.RawMessage(data)
	return out, false, nil
}

// serializeProgress guards fn so upload events from the transport's writer
// goroutine never run concurrently with download events.
func serializeProgress(fn func(ProgressEvent)) func(ProgressEvent) {
	if fn == nil {
		return nil
	}
	var mu sync.Mutex
	return func(ev ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		fn(ev)
	}
}

// transportRetryable reports whether a transport failure may be retried;
// a cancelled or expired caller context never is.
func transportRetryable(ctx context.Context) bool {
	return ctx.Err() == nil
}

func transportError(ctx, actx context.Context, p *prepared, err error) error {
	if ctx.Err() == nil && errors.Is(actx.Err(), context.DeadlineExceeded) {
		return newTimeoutError(p.timeout.Milliseconds(), err)
	}
	return newRequestError(err)
}
