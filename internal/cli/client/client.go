// Package client is the atlasctl REST client.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/version"
	"github.com/emergent-company/atlas/pkg/paging"
)

// APIError is a non-2xx response of the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ServerInfo is the body of GET /api/v1/info.
type ServerInfo struct {
	Name           string       `json:"name"`
	Build          version.Info `json:"build"`
	APIVersion     string       `json:"apiVersion"`
	StorageEnabled bool         `json:"storageEnabled"`
	AuthEnabled    bool         `json:"authEnabled"`
}

// ListOptions are the paging parameters of list calls.
type ListOptions struct {
	Page   int
	Size   int
	Search string
	Sort   string
}

func (o ListOptions) params() map[string]string {
	p := map[string]string{"page": strconv.Itoa(o.Page)}
	if o.Size > 0 {
		p["size"] = strconv.Itoa(o.Size)
	}
	if o.Search != "" {
		p["search"] = o.Search
	}
	if o.Sort != "" {
		p["sort"] = o.Sort
	}
	return p
}

type Client struct {
	http *resty.Client
}

// New creates a client for the server at baseURL. token, when set, is sent
// as a bearer token.
func New(baseURL, token string, debug bool) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetDebug(debug).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func apiError(resp *resty.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode()}
	if eb, ok := resp.Error().(*errorBody); ok && eb != nil {
		apiErr.Code = eb.Error.Code
		apiErr.Message = eb.Error.Message
	}
	return apiErr
}

func list[T any](ctx context.Context, c *Client, path string, opts ListOptions) (*paging.Page[T], error) {
	var page paging.Page[T]
	req := c.http.R().SetContext(ctx).SetError(&errorBody{}).SetQueryParams(opts.params()).SetResult(&page)
	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &page, nil
}

func (c *Client) Algorithms(ctx context.Context, opts ListOptions) (*paging.Page[catalog.Algorithm], error) {
	return list[catalog.Algorithm](ctx, c, "/api/v1/algorithms", opts)
}

func (c *Client) Algorithm(ctx context.Context, id string) (*catalog.Algorithm, error) {
	var a catalog.Algorithm
	if err := c.do(ctx, http.MethodGet, "/api/v1/algorithms/"+id, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) DeleteAlgorithm(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/algorithms/"+id, nil, nil)
}

func (c *Client) SoftwarePlatforms(ctx context.Context, opts ListOptions) (*paging.Page[catalog.SoftwarePlatform], error) {
	return list[catalog.SoftwarePlatform](ctx, c, "/api/v1/software-platforms", opts)
}

func (c *Client) Info(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.do(ctx, http.MethodGet, "/api/v1/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Create POSTs body and returns the id of the created (or, for de-duplicated
// types, the existing) entity.
func (c *Client) Create(ctx context.Context, path string, body any) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("POST %s: response has no id", path)
	}
	return created.ID, nil
}

// Post sends body and discards the response, as for link and tag calls.
func (c *Client) Post(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodPost, path, body, nil)
}
