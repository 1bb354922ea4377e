package algorithmrelations

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for algorithm relations and relation types
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new algorithm relation handler
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

// CreateType creates an algorithm relation type
// @Summary      Create algorithm relation type
// @Description  Creating a name that already exists returns the existing type with 200
// @Tags         algorithm-relation-types
// @Accept       json
// @Produce      json
// @Param        request body RelationTypeRequest true "Relation type"
// @Success      201 {object} catalog.AlgorithmRelationType "Created"
// @Success      200 {object} catalog.AlgorithmRelationType "Existing type with the same name"
// @Failure      400 {object} apperror.Error "Invalid request body"
// @Router       /api/v1/algorithm-relation-types [post]
func (h *Handler) CreateType(c echo.Context) error {
	var req RelationTypeRequest
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
	var req RelationTypeRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	t, err := h.svc.UpdateType(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteType deletes an unused relation type
// @Summary      Delete algorithm relation type
// @Tags         algorithm-relation-types
// @Param        id path string true "Relation type ID (UUID)"
// @Success      204
// @Failure      400 {object} apperror.Error "Relation type still in use"
// @Failure      404 {object} apperror.Error "Relation type not found"
// @Router       /api/v1/algorithm-relation-types/{id} [delete]
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

// List returns the relations an algorithm takes part in
// @Summary      List algorithm relations
// @Description  Includes relations where the algorithm is the source or the target
// @Tags         algorithm-relations
// @Produce      json
// @Param        id path string true "Algorithm ID (UUID)"
// @Success      200 {object} paging.Page[catalog.AlgorithmRelation]
// @Failure      404 {object} apperror.Error "Algorithm not found"
// @Router       /api/v1/algorithms/{id}/algorithm-relations [get]
func (h *Handler) List(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.AlgorithmRelSort)
	if err != nil {
		return err
	}
	page, err := h.svc.ListByAlgorithm(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

func (h *Handler) Get(c echo.Context) error {
	id, relID, err := ids(c)
	if err != nil {
		return err
	}
	rel, err := h.svc.Get(c.Request().Context(), id, relID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rel)
}

// Create relates the algorithm to another algorithm
// @Summary      Create algorithm relation
// @Description  The path algorithm must be the source or the target. The type is given by id or by name.
// @Tags         algorithm-relations
// @Accept       json
// @Produce      json
// @Param        id path string true "Algorithm ID (UUID)"
// @Param        request body RelationRequest true "Relation"
// @Success      201 {object} catalog.AlgorithmRelation
// @Failure      400 {object} apperror.Error "Path algorithm not part of the relation"
// @Failure      404 {object} apperror.Error "Algorithm or relation type not found"
// @Router       /api/v1/algorithms/{id}/algorithm-relations [post]
func (h *Handler) Create(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req RelationRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	rel, err := h.svc.Create(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rel)
}

func (h *Handler) Update(c echo.Context) error {
	id, relID, err := ids(c)
	if err != nil {
		return err
	}
	var req RelationRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	rel, err := h.svc.Update(c.Request().Context(), id, relID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rel)
}

func (h *Handler) Delete(c echo.Context) error {
	id, relID, err := ids(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, relID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func ids(c echo.Context) (string, string, error) {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return "", "", err
	}
	relID, err := catalog.ParamID(c, "relationId")
	if err != nil {
		return "", "", err
	}
	return id, relID, nil
}
