package catalog

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LinkFunc links or unlinks the entity in the path (id) and another entity.
type LinkFunc func(ctx context.Context, id, otherID string) error

// LinkHandler binds {"id": ...} and links it to the entity in the path.
func LinkHandler(fn LinkFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := ParamID(c, "id")
		if err != nil {
			return err
		}
		otherID, err := BindLink(c)
		if err != nil {
			return err
		}
		if err := fn(c.Request().Context(), id, otherID); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// UnlinkHandler removes the link between the entity in the path and the one named by param.
func UnlinkHandler(fn LinkFunc, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, otherID, err := ParamPair(c, param)
		if err != nil {
			return err
		}
		if err := fn(c.Request().Context(), id, otherID); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// ParamPair reads the "id" path parameter and a second uuid parameter.
func ParamPair(c echo.Context, param string) (string, string, error) {
	id, err := ParamID(c, "id")
	if err != nil {
		return "", "", err
	}
	otherID, err := ParamID(c, param)
	if err != nil {
		return "", "", err
	}
	return id, otherID, nil
}
