package softwareplatforms

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for software platforms
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new software platform handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

// List returns software platforms
// @Summary      List software platforms
// @Description  search matches platform names case-insensitively
// @Tags         software-platforms
// @Produce      json
// @Param        page query int false "Page number (0-based)"
// @Param        size query int false "Page size"
// @Param        sort query string false "Sort, e.g. name,asc"
// @Param        search query string false "Name filter"
// @Success      200 {object} paging.Page[catalog.SoftwarePlatform]
// @Router       /api/v1/software-platforms [get]
func (h *Handler) List(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.SoftwarePlatformSort)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

// Get returns a software platform
// @Summary      Get software platform
// @Tags         software-platforms
// @Produce      json
// @Param        id path string true "Software platform ID (UUID)"
// @Success      200 {object} catalog.SoftwarePlatform
// @Failure      404 {object} apperror.Error "Software platform not found"
// @Router       /api/v1/software-platforms/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	sp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sp)
}

// Create creates a software platform
// @Summary      Create software platform
// @Tags         software-platforms
// @Accept       json
// @Produce      json
// @Param        request body SoftwarePlatformRequest true "Software platform"
// @Success      201 {object} catalog.SoftwarePlatform
// @Failure      400 {object} apperror.Error "Invalid request body"
// @Router       /api/v1/software-platforms [post]
func (h *Handler) Create(c echo.Context) error {
	var req SoftwarePlatformRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	sp, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sp)
}

// Update updates a software platform
// @Summary      Update software platform
// @Tags         software-platforms
// @Accept       json
// @Produce      json
// @Param        id path string true "Software platform ID (UUID)"
// @Param        request body SoftwarePlatformRequest true "Software platform"
// @Success      200 {object} catalog.SoftwarePlatform
// @Failure      404 {object} apperror.Error "Software platform not found"
// @Router       /api/v1/software-platforms/{id} [put]
func (h *Handler) Update(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req SoftwarePlatformRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	sp, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sp)
}

// Delete deletes a software platform
// @Summary      Delete software platform
// @Tags         software-platforms
// @Param        id path string true "Software platform ID (UUID)"
// @Success      204
// @Failure      404 {object} apperror.Error "Software platform not found"
// @Router       /api/v1/software-platforms/{id} [delete]
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

func (h *Handler) CloudServices(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.CloudServiceSort)
	if err != nil {
		return err
	}
	page, err := h.svc.CloudServices(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

func (h *Handler) ComputeResources(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.ComputeResourceSort)
	if err != nil {
		return err
	}
	page, err := h.svc.ComputeResources(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

func (h *Handler) CloudService(c echo.Context) error {
	id, serviceID, err := catalog.ParamPair(c, "cloudServiceId")
	if err != nil {
		return err
	}
	cs, err := h.svc.CloudService(c.Request().Context(), id, serviceID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) ComputeResource(c echo.Context) error {
	id, resourceID, err := catalog.ParamPair(c, "computeResourceId")
	if err != nil {
		return err
	}
	cr, err := h.svc.ComputeResource(c.Request().Context(), id, resourceID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cr)
}
