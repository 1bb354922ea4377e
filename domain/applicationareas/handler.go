package applicationareas

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for application areas
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new application area handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

func (h *Handler) List(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.ApplicationAreaSort)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Create(c echo.Context) error {
	var req ApplicationAreaRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	a, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req ApplicationAreaRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	a, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

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

// RegisterRoutes registers application area routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/application-areas")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/algorithms", h.Algorithms)
}
