package properties

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for compute resource properties and property types
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new property handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

// ListTypes returns property types
// @Summary      List compute resource property types
// @Tags         compute-resource-property-types
// @Produce      json
// @Param        page query int false "Page number (0-based)"
// @Param        size query int false "Page size"
// @Param        sort query string false "Sort field and direction, e.g. name,desc"
// @Param        search query string false "Case-insensitive name filter"
// @Success      200 {object} paging.Page[catalog.ComputeResourcePropertyType]
// @Failure      400 {object} apperror.Error "Invalid paging parameters"
// @Router       /api/v1/compute-resource-property-types [get]
func (h *Handler) ListTypes(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.PropertyTypeSort)
	if err != nil {
		return err
	}
	page, err := h.svc.ListTypes(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

// GetType returns one property type
// @Summary      Get compute resource property type
// @Tags         compute-resource-property-types
// @Produce      json
// @Param        id path string true "Property type ID (UUID)"
// @Success      200 {object} catalog.ComputeResourcePropertyType
// @Failure      404 {object} apperror.Error "Property type not found"
// @Router       /api/v1/compute-resource-property-types/{id} [get]
func (h *Handler) GetType(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.svc.GetType(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// CreateType creates a property type
// @Summary      Create compute resource property type
// @Tags         compute-resource-property-types
// @Accept       json
// @Produce      json
// @Param        request body PropertyTypeRequest true "Property type"
// @Success      201 {object} catalog.ComputeResourcePropertyType
// @Failure      400 {object} apperror.Error "Invalid request body"
// @Router       /api/v1/compute-resource-property-types [post]
func (h *Handler) CreateType(c echo.Context) error {
	var req PropertyTypeRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	t, err := h.svc.CreateType(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateType updates a property type
// @Summary      Update compute resource property type
// @Tags         compute-resource-property-types
// @Accept       json
// @Produce      json
// @Param        id path string true "Property type ID (UUID)"
// @Param        request body PropertyTypeRequest true "Property type"
// @Success      200 {object} catalog.ComputeResourcePropertyType
// @Failure      400 {object} apperror.Error "Invalid request body"
// @Failure      404 {object} apperror.Error "Property type not found"
// @Router       /api/v1/compute-resource-property-types/{id} [put]
func (h *Handler) UpdateType(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req PropertyTypeRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	t, err := h.svc.UpdateType(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteType deletes an unused property type
// @Summary      Delete compute resource property type
// @Tags         compute-resource-property-types
// @Param        id path string true "Property type ID (UUID)"
// @Success      204
// @Failure      400 {object} apperror.Error "Property type still in use"
// @Failure      404 {object} apperror.Error "Property type not found"
// @Router       /api/v1/compute-resource-property-types/{id} [delete]
func (h *Handler) DeleteType(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteType(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ownerFunc builds the owner from the :id path parameter.
type ownerFunc func(id string) Owner

// ListFor returns the properties of the owner addressed by :id.
// @Summary      List compute resource properties of an owner
// @Tags         compute-resource-properties
// @Produce      json
// @Param        id path string true "Algorithm, implementation or compute resource ID (UUID)"
// @Success      200 {object} paging.Page[catalog.ComputeResourceProperty]
// @Failure      404 {object} apperror.Error "Owner not found"
// @Router       /api/v1/algorithms/{id}/compute-resource-properties [get]
// @Router       /api/v1/implementations/{id}/compute-resource-properties [get]
// @Router       /api/v1/compute-resources/{id}/compute-resource-properties [get]
func (h *Handler) ListFor(owner ownerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID, err := catalog.ParamID(c, "id")
		if err != nil {
			return err
		}
		req, err := h.pager.Parse(c, catalog.PropertySort)
		if err != nil {
			return err
		}
		page, err := h.svc.ListByOwner(c.Request().Context(), owner(ownerID), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
	}
}

// GetFor returns one property of the owner.
func (h *Handler) GetFor(owner ownerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID, propID, err := ids(c)
		if err != nil {
			return err
		}
		p, err := h.svc.GetForOwner(c.Request().Context(), owner(ownerID), propID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, p)
	}
}

// AddFor creates a property, or moves an existing one, onto the owner.
// @Summary      Add compute resource property to an owner
// @Description  The type is referenced by id or created from name and datatype. The value must match the datatype.
// @Tags         compute-resource-properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Owner ID (UUID)"
// @Param        request body PropertyRequest true "Property"
// @Success      201 {object} catalog.ComputeResourceProperty
// @Failure      400 {object} apperror.Error "Value does not match the property type"
// @Failure      404 {object} apperror.Error "Owner, type or custom id not found"
// @Router       /api/v1/algorithms/{id}/compute-resource-properties [post]
func (h *Handler) AddFor(owner ownerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID, err := catalog.ParamID(c, "id")
		if err != nil {
			return err
		}
		var req PropertyRequest
		if err := catalog.Bind(c, &req); err != nil {
			return err
		}
		p, err := h.svc.AddToOwner(c.Request().Context(), owner(ownerID), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, p)
	}
}

// UpdateFor updates a property of the owner.
func (h *Handler) UpdateFor(owner ownerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID, propID, err := ids(c)
		if err != nil {
			return err
		}
		var req PropertyRequest
		if err := catalog.Bind(c, &req); err != nil {
			return err
		}
		p, err := h.svc.UpdateForOwner(c.Request().Context(), owner(ownerID), propID, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, p)
	}
}

// DeleteFor deletes a property of the owner.
func (h *Handler) DeleteFor(owner ownerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID, propID, err := ids(c)
		if err != nil {
			return err
		}
		if err := h.svc.DeleteForOwner(c.Request().Context(), owner(ownerID), propID); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func ids(c echo.Context) (string, string, error) {
	ownerID, err := catalog.ParamID(c, "id")
	if err != nil {
		return "", "", err
	}
	propID, err := catalog.ParamID(c, "propertyId")
	if err != nil {
		return "", "", err
	}
	return ownerID, propID, nil
}
