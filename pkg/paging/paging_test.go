package paging

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/pkg/apperror"
)

var testSortable = Sortable{"name": "name", "createdAt": "created_at"}

func TestParseValues_Defaults(t *testing.T) {
	p := NewParser(50, 500)

	req, err := p.ParseValues(url.Values{}, testSortable)
	require.NoError(t, err)

	assert.Equal(t, 0, req.Page)
	assert.Equal(t, 50, req.Size)
	assert.Empty(t, req.Sort)
	assert.Empty(t, req.Search)
}

func TestParseValues(t *testing.T) {
	p := NewParser(50, 500)

	req, err := p.ParseValues(url.Values{
		"page":   {"3"},
		"size":   {"20"},
		"sort":   {"name,desc", "createdAt"},
		"search": {"  grover "},
	}, testSortable)
	require.NoError(t, err)

	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 20, req.Size)
	assert.Equal(t, 60, req.Offset())
	assert.Equal(t, []Order{{Column: "name", Desc: true}, {Column: "created_at"}}, req.Sort)
	assert.Equal(t, "grover", req.Search)
}

func TestParseValues_SizeIsCapped(t *testing.T) {
	p := NewParser(50, 500)

	req, err := p.ParseValues(url.Values{"size": {"10000"}}, testSortable)
	require.NoError(t, err)
	assert.Equal(t, 500, req.Size)
}

func TestParseValues_Invalid(t *testing.T) {
	p := NewParser(50, 500)

	tests := []struct {
		name   string
		values url.Values
	}{
		{"negative page", url.Values{"page": {"-1"}}},
		{"non numeric page", url.Values{"page": {"abc"}}},
		{"zero size", url.Values{"size": {"0"}}},
		{"page overflows offset", url.Values{"page": {"9223372036854775807"}, "size": {"50"}}},
		{"page past int32 offset", url.Values{"page": {"42949673"}}},
		{"unknown sort field", url.Values{"sort": {"password"}}},
		{"bad direction", url.Values{"sort": {"name,sideways"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseValues(tt.values, testSortable)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrBadRequest)
		})
	}
}

func TestParseValues_LargestPage(t *testing.T) {
	p := NewParser(50, 500)

	req, err := p.ParseValues(url.Values{"page": {"42949672"}}, testSortable)
	require.NoError(t, err)
	assert.Equal(t, 2147483600, req.Offset())
}

func TestLike(t *testing.T) {
	assert.Equal(t, "%shor%", Like("shor"))
	assert.Equal(t, `%100\%\_x%`, Like("100%_x"))
}

func TestNewPage(t *testing.T) {
	req := Request{Page: 1, Size: 2}
	p := New([]string{"c", "d"}, 5, req)

	assert.Equal(t, Meta{Size: 2, TotalElements: 5, TotalPages: 3, Number: 1}, p.Page)
	assert.Equal(t, []string{"c", "d"}, p.Content)
}

func TestNewPage_EmptyContentIsNotNull(t *testing.T) {
	p := New[string](nil, 0, Request{Size: 10})

	assert.NotNil(t, p.Content)
	assert.Equal(t, 0, p.Page.TotalPages)
}

func TestWithLinks(t *testing.T) {
	u, _ := url.Parse("/api/v1/algorithms?search=qft&page=1&size=2")
	p := New([]int{1, 2}, 5, Request{Page: 1, Size: 2}).WithLinks(u)

	assert.Equal(t, "/api/v1/algorithms?page=1&search=qft&size=2", p.Links.Self)
	assert.Equal(t, "/api/v1/algorithms?page=0&search=qft&size=2", p.Links.First)
	assert.Equal(t, "/api/v1/algorithms?page=2&search=qft&size=2", p.Links.Last)
	assert.Equal(t, "/api/v1/algorithms?page=2&search=qft&size=2", p.Links.Next)
	assert.Equal(t, "/api/v1/algorithms?page=0&search=qft&size=2", p.Links.Prev)
}

func TestWithLinks_SinglePage(t *testing.T) {
	u, _ := url.Parse("/api/v1/tags")
	p := New([]int{1}, 1, Request{Page: 0, Size: 50}).WithLinks(u)

	assert.Empty(t, p.Links.Next)
	assert.Empty(t, p.Links.Prev)
	assert.Equal(t, p.Links.First, p.Links.Last)
}

func TestMap(t *testing.T) {
	p := New([]int{1, 2}, 2, Request{Size: 10})
	out := Map(p, func(v int) string { return string(rune('a' + v)) })

	assert.Equal(t, []string{"b", "c"}, out.Content)
	assert.Equal(t, p.Page, out.Page)
}
