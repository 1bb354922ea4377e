package paging

import (
	"net/url"
	"strconv"
)

// Page is the list response envelope.
type Page[T any] struct {
	Content []T   `json:"content"`
	Page    Meta  `json:"page"`
	Links   Links `json:"_links"`
}

// Meta describes the returned page.
type Meta struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// Links are navigation hrefs relative to the server root.
type Links struct {
	Self  string `json:"self"`
	First string `json:"first"`
	Last  string `json:"last"`
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
}

// New builds a page for items out of total matching rows.
func New[T any](items []T, total int, req Request) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = (total + req.Size - 1) / req.Size
	}
	return Page[T]{
		Content: items,
		Page: Meta{
			Size:          req.Size,
			TotalElements: total,
			TotalPages:    pages,
			Number:        req.Page,
		},
	}
}

// Map converts the content of a page, keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[U]{Content: out, Page: p.Page, Links: p.Links}
}

// WithLinks fills the navigation links from the request URL.
func (p Page[T]) WithLinks(u *url.URL) Page[T] {
	href := func(n int) string {
		q := u.Query()
		q.Set("page", strconv.Itoa(n))
		q.Set("size", strconv.Itoa(p.Page.Size))
		return u.Path + "?" + q.Encode()
	}

	last := p.Page.TotalPages - 1
	if last < 0 {
		last = 0
	}
	p.Links = Links{
		Self:  href(p.Page.Number),
		First: href(0),
		Last:  href(last),
	}
	if p.Page.Number < last {
		p.Links.Next = href(p.Page.Number + 1)
	}
	if p.Page.Number > 0 {
		prev := p.Page.Number - 1
		if prev > last {
			prev = last
		}
		p.Links.Prev = href(prev)
	}
	return p
}
