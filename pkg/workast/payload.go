package workast

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

const fileField = "file"

// payload is an encoded request body, buffered so every retry resends it whole.
type payload struct {
	data        []byte
	contentType string
	multipart   bool
}

// buildPayload encodes body as multipart/form-data when it carries a file
// and as JSON otherwise. GET and HEAD requests with an empty body send none.
func buildPayload(method string, body Params) (*payload, error) {
	if f, ok := body[fileField]; ok && f != nil {
		return buildMultipart(body, f)
	}
	if len(body) == 0 && (method == "GET" || method == "HEAD") {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, invalidParam("Body must be an object.")
	}
	return &payload{data: data, contentType: DefaultContentType}, nil
}

func buildMultipart(body Params, file any) (*payload, error) {
	upload, ok := asFile(file)
	if !ok {
		return nil, invalidParam("Body must be an object.")
	}

	rest := make(Params, len(body)-1)
	for k, v := range body {
		if k != fileField {
			rest[k] = v
		}
	}
	fields, err := flattenParams(rest)
	if err != nil {
		return nil, invalidParam("Body must be an object.")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, invalidParam("Body must be an object.")
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+escapeQuotes(upload.Name)+`"`)
	ct := upload.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, invalidParam("Body must be an object.")
	}
	if _, err := io.Copy(part, uploadReader(upload.Reader)); err != nil {
		return nil, invalidParam("File could not be read: " + err.Error())
	}
	if err := w.Close(); err != nil {
		return nil, invalidParam("Body must be an object.")
	}
	return &payload{data: buf.Bytes(), contentType: w.FormDataContentType(), multipart: true}, nil
}

// sizedReaderAt is implemented by *bytes.Reader, *strings.Reader and
// *io.SectionReader.
type sizedReaderAt interface {
	io.ReaderAt
	Size() int64
}

// uploadReader reads in-memory content from offset zero without moving the
// caller's reader, so the same File can be sent again. Other readers are
// consumed.
func uploadReader(r io.Reader) io.Reader {
	if ra, ok := r.(sizedReaderAt); ok {
		return io.NewSectionReader(ra, 0, ra.Size())
	}
	return r
}

// asFile accepts *File, File, io.Reader and []byte as upload content.
func asFile(v any) (*File, bool) {
	switch t := v.(type) {
	case *File:
		if t == nil || t.Reader == nil {
			return nil, false
		}
		f := *t
		if f.Name == "" {
			f.Name = fileField
		}
		return &f, true
	case File:
		return asFile(&t)
	case []byte:
		return &File{Name: fileField, Reader: bytes.NewReader(t)}, true
	case io.Reader:
		return &File{Name: fileField, Reader: t}, true
	}
	return nil, false
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// progressReader reports every read to fn.
type progressReader struct {
	r         io.Reader
	direction string
	total     int64
	loaded    int64
	fn        func(ProgressEvent)
}

func newProgressReader(r io.Reader, direction string, total int64, fn func(ProgressEvent)) *progressReader {
	return &progressReader{r: r, direction: direction, total: total, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		ev := ProgressEvent{Direction: p.direction, Loaded: p.loaded}
		if p.total > 0 {
			ev.LengthComputable = true
			ev.Total = p.total
			ev.Percent = float64(p.loaded) / float64(p.total) * 100
		}
		p.fn(ev)
	}
	return n, err
}
