package tags

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for tags
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new tag handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

// List returns tags
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Param        search query string false "Filter on value or category"
// @Success      200 {object} paging.Page[catalog.Tag]
// @Router       /api/v1/tags [get]
func (h *Handler) List(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.TagSort)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

// Get returns a tag by value
// @Summary      Get tag
// @Tags         tags
// @Produce      json
// @Param        value path string true "Tag value"
// @Success      200 {object} catalog.Tag
// @Failure      404 {object} apperror.Error "Tag not found"
// @Router       /api/v1/tags/{value} [get]
func (h *Handler) Get(c echo.Context) error {
	t, err := h.svc.Get(c.Request().Context(), c.Param("value"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Create creates a tag
// @Summary      Create tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        request body TagRequest true "Tag"
// @Success      201 {object} catalog.Tag
// @Failure      400 {object} apperror.Error "Invalid or duplicate value"
// @Router       /api/v1/tags [post]
func (h *Handler) Create(c echo.Context) error {
	var req TagRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	t, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// Delete deletes a tag and its links
// @Summary      Delete tag
// @Tags         tags
// @Param        value path string true "Tag value"
// @Success      204
// @Failure      404 {object} apperror.Error "Tag not found"
// @Router       /api/v1/tags/{value} [delete]
func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("value")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Algorithms(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.AlgorithmSort)
	if err != nil {
		return err
	}
	page, err := h.svc.Algorithms(c.Request().Context(), c.Param("value"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

func (h *Handler) Implementations(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.ImplementationSort)
	if err != nil {
		return err
	}
	page, err := h.svc.Implementations(c.Request().Context(), c.Param("value"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}
