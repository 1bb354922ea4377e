package sdks

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for SDKs
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new SDK handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

// List returns SDKs
// @Summary      List SDKs
// @Tags         sdks
// @Produce      json
// @Param        search query string false "Filter on name"
// @Success      200 {object} paging.Page[catalog.Sdk]
// @Router       /api/v1/sdks [get]
func (h *Handler) List(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.SdkSort)
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
	sdk, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sdk)
}

// Create creates an SDK
// @Summary      Create SDK
// @Tags         sdks
// @Accept       json
// @Produce      json
// @Param        request body SdkRequest true "SDK"
// @Success      201 {object} catalog.Sdk
// @Failure      400 {object} apperror.Error "Invalid or duplicate name"
// @Router       /api/v1/sdks [post]
func (h *Handler) Create(c echo.Context) error {
	var req SdkRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	sdk, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sdk)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req SdkRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	sdk, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sdk)
}

// Delete deletes an SDK
// @Summary      Delete SDK
// @Description  Clears the SDK from implementations and unlinks its compute resources
// @Tags         sdks
// @Param        id path string true "SDK ID (UUID)"
// @Success      204
// @Failure      404 {object} apperror.Error "SDK not found"
// @Router       /api/v1/sdks/{id} [delete]
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

// RegisterRoutes registers SDK routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/sdks")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/compute-resources", h.ComputeResources)
	g.POST("/:id/compute-resources", h.LinkComputeResource)
	g.GET("/:id/compute-resources/:computeResourceId", h.ComputeResource)
	g.DELETE("/:id/compute-resources/:computeResourceId", h.UnlinkComputeResource)
	g.GET("/:id/implementations", h.Implementations)
}
