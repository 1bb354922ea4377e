package publications

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for publications
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new publication handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

// List returns publications
// @Summary      List publications
// @Tags         publications
// @Produce      json
// @Param        page query int false "Page number (0-based)"
// @Param        size query int false "Page size"
// @Param        sort query string false "Sort, e.g. title,asc"
// @Param        search query string false "Filter on title or DOI"
// @Success      200 {object} paging.Page[catalog.Publication]
// @Router       /api/v1/publications [get]
func (h *Handler) List(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.PublicationSort)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

// Get returns a publication
// @Summary      Get publication
// @Tags         publications
// @Produce      json
// @Param        id path string true "Publication ID (UUID)"
// @Success      200 {object} catalog.Publication
// @Failure      404 {object} apperror.Error "Publication not found"
// @Router       /api/v1/publications/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create creates a publication
// @Summary      Create publication
// @Tags         publications
// @Accept       json
// @Produce      json
// @Param        request body PublicationRequest true "Publication"
// @Success      201 {object} catalog.Publication
// @Failure      400 {object} apperror.Error "Invalid request body"
// @Router       /api/v1/publications [post]
func (h *Handler) Create(c echo.Context) error {
	var req PublicationRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update updates a publication
// @Summary      Update publication
// @Tags         publications
// @Accept       json
// @Produce      json
// @Param        id path string true "Publication ID (UUID)"
// @Param        request body PublicationRequest true "Publication"
// @Success      200 {object} catalog.Publication
// @Failure      404 {object} apperror.Error "Publication not found"
// @Router       /api/v1/publications/{id} [put]
func (h *Handler) Update(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req PublicationRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete deletes a publication
// @Summary      Delete publication
// @Description  Unlinks algorithms and implementations and removes the publication's discussion topics
// @Tags         publications
// @Param        id path string true "Publication ID (UUID)"
// @Success      204
// @Failure      404 {object} apperror.Error "Publication not found"
// @Router       /api/v1/publications/{id} [delete]
func (h *Handler) Delete(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Algorithms lists the algorithms linked to a publication
// @Summary      List algorithms of a publication
// @Tags         publications
// @Produce      json
// @Param        id path string true "Publication ID (UUID)"
// @Success      200 {object} paging.Page[catalog.Algorithm]
// @Failure      404 {object} apperror.Error "Publication not found"
// @Router       /api/v1/publications/{id}/algorithms [get]
func (h *Handler) Algorithms(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.AlgorithmSort)
	if err != nil {
		return err
	}
	page, err := h.svc.Algorithms(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

// Implementations lists the implementations linked to a publication
// @Summary      List implementations of a publication
// @Tags         publications
// @Produce      json
// @Param        id path string true "Publication ID (UUID)"
// @Success      200 {object} paging.Page[catalog.Implementation]
// @Failure      404 {object} apperror.Error "Publication not found"
// @Router       /api/v1/publications/{id}/implementations [get]
func (h *Handler) Implementations(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.ImplementationSort)
	if err != nil {
		return err
	}
	page, err := h.svc.Implementations(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}
