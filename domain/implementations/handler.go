package implementations

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/revisions"
	"github.com/emergent-company/atlas/domain/tags"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for implementations
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new implementation handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

// route describes where the implementation id lives: /implementations/:id,
// or /algorithms/:id/implementations/:implementationId under an algorithm.
type route struct {
	underAlgorithm bool
}

var (
	global = route{}
	scoped = route{underAlgorithm: true}
)

func (r route) ids(c echo.Context) (algorithmID, id string, err error) {
	if !r.underAlgorithm {
		id, err = catalog.ParamID(c, "id")
		return "", id, err
	}
	return catalog.ParamPair(c, "implementationId")
}

// List returns implementations
// @Summary      List implementations
// @Description  Under an algorithm only that algorithm's implementations are listed
// @Tags         implementations
// @Produce      json
// @Param        page query int false "Page number (0-based)"
// @Param        size query int false "Page size"
// @Param        sort query string false "Sort, e.g. name,asc"
// @Param        search query string false "Filter on name, description or technology"
// @Success      200 {object} paging.Page[catalog.Implementation]
// @Failure      404 {object} apperror.Error "Algorithm not found"
// @Router       /api/v1/implementations [get]
// @Router       /api/v1/algorithms/{id}/implementations [get]
func (h *Handler) List(r route) echo.HandlerFunc {
	return func(c echo.Context) error {
		algorithmID := ""
		if r.underAlgorithm {
			var err error
			if algorithmID, err = catalog.ParamID(c, "id"); err != nil {
				return err
			}
		}
		req, err := h.pager.Parse(c, catalog.ImplementationSort)
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

func (h *Handler) Get(r route) echo.HandlerFunc {
	return func(c echo.Context) error {
		algorithmID, id, err := r.ids(c)
		if err != nil {
			return err
		}
		impl, err := h.svc.Get(c.Request().Context(), algorithmID, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, impl)
	}
}

// Create creates an implementation of the algorithm in the path
// @Summary      Create implementation
// @Tags         implementations
// @Accept       json
// @Produce      json
// @Param        id path string true "Algorithm ID (UUID)"
// @Param        request body ImplementationRequest true "Implementation"
// @Success      201 {object} catalog.Implementation
// @Failure      400 {object} apperror.Error "Invalid request body"
// @Failure      404 {object} apperror.Error "Algorithm not found"
// @Router       /api/v1/algorithms/{id}/implementations [post]
func (h *Handler) Create(c echo.Context) error {
	algorithmID, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req ImplementationRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	impl, err := h.svc.Create(c.Request().Context(), algorithmID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, impl)
}

func (h *Handler) Update(r route) echo.HandlerFunc {
	return func(c echo.Context) error {
		algorithmID, id, err := r.ids(c)
		if err != nil {
			return err
		}
		var req ImplementationRequest
		if err := catalog.Bind(c, &req); err != nil {
			return err
		}
		impl, err := h.svc.Update(c.Request().Context(), algorithmID, id, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, impl)
	}
}

// Delete deletes an implementation
// @Summary      Delete implementation
// @Description  Deletes the implementation's properties, files and discussion topics and unlinks
// @Description  its software platforms, publications and tags
// @Tags         implementations
// @Param        id path string true "Implementation ID (UUID)"
// @Success      204
// @Failure      404 {object} apperror.Error "Implementation not found"
// @Router       /api/v1/implementations/{id} [delete]
func (h *Handler) Delete(r route) echo.HandlerFunc {
	return func(c echo.Context) error {
		algorithmID, id, err := r.ids(c)
		if err != nil {
			return err
		}
		if err := h.svc.Delete(c.Request().Context(), algorithmID, id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func (h *Handler) SoftwarePlatforms(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.SoftwarePlatformSort)
	if err != nil {
		return err
	}
	page, err := h.svc.SoftwarePlatforms(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

func (h *Handler) SoftwarePlatform(c echo.Context) error {
	id, platformID, err := catalog.ParamPair(c, "softwarePlatformId")
	if err != nil {
		return err
	}
	sp, err := h.svc.SoftwarePlatform(c.Request().Context(), id, platformID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *Handler) Publications(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.PublicationSort)
	if err != nil {
		return err
	}
	page, err := h.svc.Publications(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

func (h *Handler) Publication(c echo.Context) error {
	id, publicationID, err := catalog.ParamPair(c, "publicationId")
	if err != nil {
		return err
	}
	p, err := h.svc.Publication(c.Request().Context(), id, publicationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Tags(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.TagSort)
	if err != nil {
		return err
	}
	page, err := h.svc.Tags(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

// AddTag tags the implementation
// @Summary      Tag implementation
// @Description  The tag is created when no tag with the value exists
// @Tags         implementations
// @Accept       json
// @Param        id path string true "Implementation ID (UUID)"
// @Param        request body tags.TagRequest true "Tag"
// @Success      204
// @Failure      400 {object} apperror.Error "Already tagged"
// @Failure      404 {object} apperror.Error "Implementation not found"
// @Router       /api/v1/implementations/{id}/tags [post]
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

func (h *Handler) Revisions(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, revisions.Sort)
	if err != nil {
		return err
	}
	page, err := h.svc.Revisions(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

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
