package patternrelations

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for pattern relations and their types
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new pattern relation handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

func (h *Handler) ListTypes(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.RelationTypeSort)
	if err != nil {
		return err
	}
	page, err := h.svc.ListTypes(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

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

func (h *Handler) CreateType(c echo.Context) error {
	var req PatternRelationTypeRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	t, created, err := h.svc.CreateType(c.Request().Context(), req)
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(http.StatusOK, t)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateType(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req PatternRelationTypeRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	t, err := h.svc.UpdateType(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

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

// scoped reads the algorithm id for algorithm-scoped routes. Global routes have no algorithm.
type scoped bool

func (s scoped) algorithm(c echo.Context) (string, error) {
	if !s {
		return "", nil
	}
	return catalog.ParamID(c, "id")
}

func (s scoped) relation(c echo.Context) (string, string, error) {
	algorithmID, err := s.algorithm(c)
	if err != nil {
		return "", "", err
	}
	param := "id"
	if s {
		param = "relationId"
	}
	id, err := catalog.ParamID(c, param)
	if err != nil {
		return "", "", err
	}
	return algorithmID, id, nil
}

// List returns pattern relations
// @Summary      List pattern relations
// @Tags         pattern-relations
// @Produce      json
// @Param        id path string false "Algorithm ID (UUID), algorithm-scoped route only"
// @Success      200 {object} paging.Page[catalog.PatternRelation]
// @Router       /api/v1/pattern-relations [get]
// @Router       /api/v1/algorithms/{id}/pattern-relations [get]
func (h *Handler) List(s scoped) echo.HandlerFunc {
	return func(c echo.Context) error {
		algorithmID, err := s.algorithm(c)
		if err != nil {
			return err
		}
		req, err := h.pager.Parse(c, catalog.PatternRelationSort)
		if err != nil {
			return err
		}
		page, err := h.svc.List(c.Request().Context(), algorithmID, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
	}
}

func (h *Handler) Get(s scoped) echo.HandlerFunc {
	return func(c echo.Context) error {
		algorithmID, id, err := s.relation(c)
		if err != nil {
			return err
		}
		rel, err := h.svc.Get(c.Request().Context(), algorithmID, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rel)
	}
}

func (h *Handler) Create(s scoped) echo.HandlerFunc {
	return func(c echo.Context) error {
		algorithmID, err := s.algorithm(c)
		if err != nil {
			return err
		}
		var req PatternRelationRequest
		if err := catalog.Bind(c, &req); err != nil {
			return err
		}
		if s {
			if err := CheckAlgorithm(algorithmID, req); err != nil {
				return err
			}
		}
		rel, err := h.svc.Create(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, rel)
	}
}

func (h *Handler) Update(s scoped) echo.HandlerFunc {
	return func(c echo.Context) error {
		algorithmID, id, err := s.relation(c)
		if err != nil {
			return err
		}
		var req PatternRelationRequest
		if err := catalog.Bind(c, &req); err != nil {
			return err
		}
		if s {
			if err := CheckAlgorithm(algorithmID, req); err != nil {
				return err
			}
		}
		rel, err := h.svc.Update(c.Request().Context(), algorithmID, id, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rel)
	}
}

func (h *Handler) Delete(s scoped) echo.HandlerFunc {
	return func(c echo.Context) error {
		algorithmID, id, err := s.relation(c)
		if err != nil {
			return err
		}
		if err := h.svc.Delete(c.Request().Context(), algorithmID, id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
