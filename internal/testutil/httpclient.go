package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"
)

// HTTPClient drives the catalog API, in process through an http.Handler or
// over the network when baseURL is set.
type HTTPClient struct {
	handler http.Handler
	baseURL string
	remote  *http.Client
}

// HTTPResponse is what a test sees of a response from either transport.
type HTTPResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// NewHTTPClient serves requests with handler.
func NewHTTPClient(handler http.Handler) *HTTPClient {
	return &HTTPClient{handler: handler}
}

// NewExternalHTTPClient sends requests to a running server at baseURL.
func NewExternalHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		remote:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IsExternal reports whether requests leave the process.
func (c *HTTPClient) IsExternal() bool { return c.baseURL != "" }

// Request performs method on path with the given options applied.
func (c *HTTPClient) Request(method, path string, opts ...RequestOption) *HTTPResponse {
	r := buildRequest(opts)
	if r.err != nil {
		return &HTTPResponse{Body: []byte(r.err.Error())}
	}

	if !c.IsExternal() {
		req := httptest.NewRequest(method, path, bytes.NewReader(r.body))
		req.Header = r.header
		rec := httptest.NewRecorder()
		c.handler.ServeHTTP(rec, req)
		return &HTTPResponse{StatusCode: rec.Code, Body: rec.Body.Bytes(), Headers: rec.Header()}
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(r.body))
	if err != nil {
		return &HTTPResponse{Body: []byte(err.Error())}
	}
	req.Header = r.header
	resp, err := c.remote.Do(req)
	if err != nil {
		return &HTTPResponse{Body: []byte(err.Error())}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return &HTTPResponse{StatusCode: resp.StatusCode, Body: body, Headers: resp.Header}
}

func (c *HTTPClient) GET(path string, opts ...RequestOption) *HTTPResponse {
	return c.Request(http.MethodGet, path, opts...)
}

func (c *HTTPClient) POST(path string, opts ...RequestOption) *HTTPResponse {
	return c.Request(http.MethodPost, path, opts...)
}

func (c *HTTPClient) PUT(path string, opts ...RequestOption) *HTTPResponse {
	return c.Request(http.MethodPut, path, opts...)
}

func (c *HTTPClient) DELETE(path string, opts ...RequestOption) *HTTPResponse {
	return c.Request(http.MethodDelete, path, opts...)
}

// Create POSTs body to path, expects 201 and returns the new id.
func (c *HTTPClient) Create(path string, body any, opts ...RequestOption) (string, error) {
	resp := c.POST(path, append([]RequestOption{WithJSONBody(body)}, opts...)...)
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(resp.String()))
	}
	return resp.ID(), nil
}

// JSON decodes the body into v.
func (r *HTTPResponse) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

func (r *HTTPResponse) String() string {
	return string(r.Body)
}

// ID is the "id" field of a JSON object body.
func (r *HTTPResponse) ID() string {
	var body struct {
		ID string `json:"id"`
	}
	_ = r.JSON(&body)
	return body.ID
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ErrorCode is error.code of an error body.
func (r *HTTPResponse) ErrorCode() string {
	var e errorEnvelope
	_ = r.JSON(&e)
	return e.Error.Code
}

// ErrorMessage is error.message of an error body.
func (r *HTTPResponse) ErrorMessage() string {
	var e errorEnvelope
	_ = r.JSON(&e)
	return e.Error.Message
}
