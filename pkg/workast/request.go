package workast

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"
)

// Params is a key-value mapping used for query strings and request bodies.
// Values may be scalars, slices or nested maps; nested values are encoded in
// bracket notation when they cannot be sent as JSON.
type Params map[string]any

// Impersonate selects the team and/or user a request acts on behalf of.
type Impersonate struct {
	Team string
	User string
}

// RequestOptions describes one API call. Zero values fall back to the client
// configuration (BaseURL, Timeout, MaxRetries) or to GET, "/" and empty
// query and body.
type RequestOptions struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries *int
	Method     string
	Path       string
	Query      Params
	// Body is sent as JSON unless it holds a "file" entry, in which case it
	// is sent as multipart/form-data.
	Body        Params
	Impersonate Impersonate
	// OnProgress calls are serialized but not confined to the caller's
	// goroutine; upload events may still arrive after APICall returns.
	OnProgress func(ProgressEvent)

	// route labels metrics; generated methods set it to their path template.
	route string
}

// Direction of a progress event.
const (
	ProgressUpload   = "upload"
	ProgressDownload = "download"
)

// ProgressEvent reports transfer progress of a request or response body.
type ProgressEvent struct {
	Direction        string
	LengthComputable bool
	Loaded           int64
	// Total and Percent are only meaningful when LengthComputable is true.
	Total   int64
	Percent float64
}

// File is an upload attached to a multipart body under the "file" field.
//
// A Reader that is a *bytes.Reader, *strings.Reader or *io.SectionReader is
// read from its start on every call and left unmoved, so such a File can be
// sent any number of times. Any other Reader is drained by the first call
// that sends it.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// FileFromPath opens path for upload. The content is read into memory, so
// the returned File can be sent repeatedly.
func FileFromPath(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	name := filepath.Base(path)
	return &File{
		Name:        name,
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		Reader:      bytes.NewReader(data),
	}, nil
}

// Int returns a pointer to n, for RequestOptions.MaxRetries.
func Int(n int) *int { return &n }
