package testutil

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
)

// request collects what the options contribute before either transport
// builds the real *http.Request.
type request struct {
	header http.Header
	body   []byte
	err    error
}

// RequestOption shapes a test request.
type RequestOption func(*request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *request) { r.header.Set(key, value) }
}

// WithBearer authenticates the request with a catalog token.
func WithBearer(token string) RequestOption {
	return WithHeader(echo.HeaderAuthorization, "Bearer "+token)
}

// WithRawJSON sends body unchanged as application/json, malformed or not.
func WithRawJSON(body string) RequestOption {
	return func(r *request) {
		r.header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		r.body = []byte(body)
	}
}

// WithJSONBody marshals body and sends it as application/json.
func WithJSONBody(body any) RequestOption {
	return func(r *request) {
		data, err := json.Marshal(body)
		if err != nil {
			r.err = err
			return
		}
		r.header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		r.body = data
	}
}

// Upload is a multipart/form-data body with a single file part.
type Upload struct {
	Field    string
	Filename string
	Content  []byte
}

// WithUpload sends u as a multipart form.
func WithUpload(u Upload) RequestOption {
	return func(r *request) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile(u.Field, u.Filename)
		if err == nil {
			_, err = part.Write(u.Content)
		}
		if err == nil {
			err = w.Close()
		}
		if err != nil {
			r.err = err
			return
		}
		r.header.Set(echo.HeaderContentType, w.FormDataContentType())
		r.body = buf.Bytes()
	}
}

func buildRequest(opts []RequestOption) *request {
	r := &request{header: http.Header{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
