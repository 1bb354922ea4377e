package cloudservices

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for cloud services
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new cloud service handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

// List returns cloud services
// @Summary      List cloud services
// @Tags         cloud-services
// @Produce      json
// @Param        search query string false "Filter on name or provider"
// @Success      200 {object} paging.Page[catalog.CloudService]
// @Router       /api/v1/cloud-services [get]
func (h *Handler) List(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.CloudServiceSort)
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
	cs, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) Create(c echo.Context) error {
	var req CloudServiceRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	cs, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cs)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req CloudServiceRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	cs, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cs)
}

// Delete deletes a cloud service
// @Summary      Delete cloud service
// @Description  Unlinks software platforms and compute resources first
// @Tags         cloud-services
// @Param        id path string true "Cloud service ID (UUID)"
// @Success      204
// @Failure      404 {object} apperror.Error "Cloud service not found"
// @Router       /api/v1/cloud-services/{id} [delete]
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

func (h *Handler) ComputeResource(c echo.Context) error {
	id, resourceID, err := pair(c)
	if err != nil {
		return err
	}
	cr, err := h.svc.ComputeResource(c.Request().Context(), id, resourceID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cr)
}

// LinkComputeResource links a compute resource to a cloud service
// @Summary      Link compute resource
// @Tags         cloud-services
// @Accept       json
// @Param        id path string true "Cloud service ID (UUID)"
// @Param        request body catalog.LinkRequest true "Compute resource reference"
// @Success      204
// @Failure      400 {object} apperror.Error "Already linked"
// @Failure      404 {object} apperror.Error "Cloud service or compute resource not found"
// @Router       /api/v1/cloud-services/{id}/compute-resources [post]
func (h *Handler) LinkComputeResource(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	resourceID, err := catalog.BindLink(c)
	if err != nil {
		return err
	}
	if err := h.svc.LinkComputeResource(c.Request().Context(), id, resourceID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UnlinkComputeResource(c echo.Context) error {
	id, resourceID, err := pair(c)
	if err != nil {
		return err
	}
	if err := h.svc.UnlinkComputeResource(c.Request().Context(), id, resourceID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pair(c echo.Context) (string, string, error) {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return "", "", err
	}
	resourceID, err := catalog.ParamID(c, "computeResourceId")
	if err != nil {
		return "", "", err
	}
	return id, resourceID, nil
}

// RegisterRoutes registers cloud service routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/cloud-services")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/software-platforms", h.SoftwarePlatforms)
	g.GET("/:id/compute-resources", h.ComputeResources)
	g.POST("/:id/compute-resources", h.LinkComputeResource)
	g.GET("/:id/compute-resources/:computeResourceId", h.ComputeResource)
	g.DELETE("/:id/compute-resources/:computeResourceId", h.UnlinkComputeResource)
}
