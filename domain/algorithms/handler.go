package algorithms

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/revisions"
	"github.com/emergent-company/atlas/domain/tags"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for algorithms
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new algorithm handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

// List returns algorithms
// @Summary      List algorithms
// @Tags         algorithms
// @Produce      json
// @Param        page query int false "Page number (0-based)"
// @Param        size query int false "Page size"
// @Param        sort query string false "Sort, e.g. name,asc"
// @Param        search query string false "Filter on name or acronym"
// @Success      200 {object} paging.Page[catalog.Algorithm]
// @Failure      400 {object} apperror.Error "Invalid paging or sort"
// @Router       /api/v1/algorithms [get]
func (h *Handler) List(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.AlgorithmSort)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

// Get returns an algorithm
// @Summary      Get algorithm
// @Tags         algorithms
// @Produce      json
// @Param        id path string true "Algorithm ID (UUID)"
// @Success      200 {object} catalog.Algorithm
// @Failure      404 {object} apperror.Error "Algorithm not found"
// @Router       /api/v1/algorithms/{id} [get]
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

// Create creates an algorithm
// @Summary      Create algorithm
// @Description  nisqReady, quantumComputationModel and speedUp are only kept for QUANTUM and HYBRID algorithms
// @Tags         algorithms
// @Accept       json
// @Produce      json
// @Param        request body AlgorithmRequest true "Algorithm"
// @Success      201 {object} catalog.Algorithm
// @Failure      400 {object} apperror.Error "Invalid request body"
// @Router       /api/v1/algorithms [post]
func (h *Handler) Create(c echo.Context) error {
	var req AlgorithmRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	a, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// Update updates an algorithm
// @Summary      Update algorithm
// @Tags         algorithms
// @Accept       json
// @Produce      json
// @Param        id path string true "Algorithm ID (UUID)"
// @Param        request body AlgorithmRequest true "Algorithm"
// @Success      200 {object} catalog.Algorithm
// @Failure      404 {object} apperror.Error "Algorithm not found"
// @Router       /api/v1/algorithms/{id} [put]
func (h *Handler) Update(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req AlgorithmRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	a, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Delete deletes an algorithm
// @Summary      Delete algorithm
// @Description  Deletes implementations, properties, algorithm and pattern relations and discussion topics.
// @Description  Publications, problem types, application areas and tags are only unlinked.
// @Tags         algorithms
// @Param        id path string true "Algorithm ID (UUID)"
// @Success      204
// @Failure      404 {object} apperror.Error "Algorithm not found"
// @Router       /api/v1/algorithms/{id} [delete]
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

// listOf serves a paginated list of entities linked to the algorithm.
func listOf[T any](h *Handler, sortable paging.Sortable, fn func(ctx context.Context, id string, req paging.Request) (paging.Page[T], error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := catalog.ParamID(c, "id")
		if err != nil {
			return err
		}
		req, err := h.pager.Parse(c, sortable)
		if err != nil {
			return err
		}
		page, err := fn(c.Request().Context(), id, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
	}
}

// linkedOne serves a single entity linked to the algorithm, or 404 when not linked.
func linkedOne[T any](param string, fn func(ctx context.Context, id, otherID string) (*T, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, otherID, err := catalog.ParamPair(c, param)
		if err != nil {
			return err
		}
		v, err := fn(c.Request().Context(), id, otherID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, v)
	}
}

func (h *Handler) AddTag(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req tags.TagRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	if _, err := h.svc.AddTag(c.Request().Context(), id, req); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RemoveTag(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.RemoveTag(c.Request().Context(), id, c.Param("value")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Revision returns one recorded state of the algorithm
// @Summary      Get algorithm revision
// @Tags         algorithms
// @Produce      json
// @Param        id path string true "Algorithm ID (UUID)"
// @Param        revisionNumber path int true "Revision number"
// @Success      200 {object} revisions.Revision
// @Failure      404 {object} apperror.Error "Algorithm or revision not found"
// @Router       /api/v1/algorithms/{id}/revisions/{revisionNumber} [get]
func (h *Handler) Revision(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	number, err := revisions.ParamNumber(c, "revisionNumber")
	if err != nil {
		return err
	}
	rev, err := h.svc.Revision(c.Request().Context(), id, number)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rev)
}
