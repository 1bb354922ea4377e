package problemtypes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for problem types
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new problem type handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

func (h *Handler) List(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.ProblemTypeSort)
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
	pt, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pt)
}

func (h *Handler) Create(c echo.Context) error {
	var req ProblemTypeRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	pt, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pt)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req ProblemTypeRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	pt, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pt)
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

// ParentList returns the chain from a problem type up to its root
// @Summary      Get problem type ancestors
// @Description  Returns the problem type first, then each parent up to the root
// @Tags         problem-types
// @Produce      json
// @Param        id path string true "Problem type ID (UUID)"
// @Success      200 {array} catalog.ProblemType
// @Failure      404 {object} apperror.Error "Problem type not found"
// @Router       /api/v1/problem-types/{id}/problem-type-parent-tree [get]
func (h *Handler) ParentList(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	chain, err := h.svc.ParentList(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chain)
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
