// Package apitest runs an in-process fake of the Workast REST API for tests.
// It records every request it receives and answers with scripted replies.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Request is a recorded inbound request.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
	// JSON is the decoded body of application/json requests.
	JSON map[string]any
	// Form and Files hold the parts of multipart/form-data requests.
	Form  map[string]string
	Files map[string]File
}

// File is an uploaded multipart file part.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Reply scripts one response.
type Reply struct {
	Status int
	// JSON is encoded as the response body; nil sends no body.
	JSON any
	// Raw, when set, is written verbatim instead of JSON.
	Raw         string
	ContentType string
	Delay       time.Duration
}

// Server is a fake Workast API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	replies  map[string][]Reply
	logger   *zap.Logger
}

// New starts a fake API and closes it when t finishes. Requests without a
// bearer token get a 401; unscripted routes echo their method and path.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{replies: make(map[string][]Reply), logger: zap.NewNop()}
	r := gin.New()
	r.Use(s.record(), requireBearer())
	r.NoRoute(s.reply)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// On queues replies for method and path. Each request consumes one reply;
// the last reply repeats.
func (s *Server) On(method, path string, replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.replies[key] = append(s.replies[key], replies...)
}

// Requests returns a copy of everything recorded so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request. It panics when none was recorded.
func (s *Server) Last() Request {
	reqs := s.Requests()
	return reqs[len(reqs)-1]
}

// Count returns how many requests were recorded.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// record captures the request before any handler runs.
func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		rec := Request{
			Method:   c.Request.Method,
			Path:     c.Request.URL.Path,
			RawQuery: c.Request.URL.RawQuery,
			Header:   c.Request.Header.Clone(),
			Body:     body,
		}
		mediaType, params, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
		switch {
		case mediaType == "application/json":
			_ = json.Unmarshal(body, &rec.JSON)
		case strings.HasPrefix(mediaType, "multipart/"):
			rec.Form, rec.Files = parseMultipart(body, params["boundary"])
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()
		s.logger.Debug("fake api request", zap.String("method", rec.Method), zap.String("path", rec.Path))

		c.Next()
	}
}

func parseMultipart(body []byte, boundary string) (map[string]string, map[string]File) {
	form := make(map[string]string)
	files := make(map[string]File)
	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		data, _ := io.ReadAll(part)
		if part.FileName() != "" {
			files[part.FormName()] = File{
				Filename:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			}
			continue
		}
		form[part.FormName()] = string(data)
	}
	return form, files
}

func requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"name": "Unauthorized", "message": "missing bearer token"},
			})
			return
		}
		c.Next()
	}
}

func (s *Server) next(key string) (Reply, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.replies[key]
	if len(queue) == 0 {
		return Reply{}, false
	}
	r := queue[0]
	if len(queue) > 1 {
		s.replies[key] = queue[1:]
	}
	return r, true
}

func (s *Server) reply(c *gin.Context) {
	r, ok := s.next(c.Request.Method + " " + c.Request.URL.Path)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"method": c.Request.Method, "path": c.Request.URL.Path})
		return
	}

	if r.Delay > 0 {
		select {
		case <-time.After(r.Delay):
		case <-c.Request.Context().Done():
			return
		}
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	switch {
	case r.Raw != "":
		ct := r.ContentType
		if ct == "" {
			ct = "text/plain; charset=utf-8"
		}
		c.Data(status, ct, []byte(r.Raw))
	case r.JSON != nil:
		c.JSON(status, r.JSON)
	default:
		c.Status(status)
	}
}
