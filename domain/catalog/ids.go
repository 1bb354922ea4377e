package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/pkg/apperror"
)

// ParamID reads a uuid path parameter.
func ParamID(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if err := ValidateID(name, id); err != nil {
		return "", err
	}
	return id, nil
}

// ValidateID rejects values that are not uuids before they reach a query.
func ValidateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewBadRequest(fmt.Sprintf("%s must be a valid UUID, got %q", field, id))
	}
	return nil
}

// Bind decodes the request body.
func Bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body").WithInternal(err)
	}
	return nil
}
