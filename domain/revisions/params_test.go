package revisions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/pkg/apperror"
)

func contextWithParam(value string) echo.Context {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("revisionNumber")
	c.SetParamValues(value)
	return c
}

func TestParamNumber(t *testing.T) {
	n, err := ParamNumber(contextWithParam("42"), "revisionNumber")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := ParamNumber(contextWithParam(raw), "revisionNumber")
		assert.ErrorIs(t, err, apperror.ErrBadRequest, "value %q", raw)
	}
}

func TestToSummary(t *testing.T) {
	rev := Revision{Number: 7, Type: TypeMod, EntityID: "x", Snapshot: []byte(`{"name":"Grover"}`)}
	s := rev.ToSummary()
	assert.Equal(t, int64(7), s.Number)
	assert.Equal(t, TypeMod, s.Type)
}
