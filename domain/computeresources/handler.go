package computeresources

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for compute resources
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new compute resource handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

func (h *Handler) List(c echo.Context) error {
	req, err := h.pager.Parse(c, catalog.ComputeResourceSort)
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
	cr, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cr)
}

func (h *Handler) Create(c echo.Context) error {
	var req ComputeResourceRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	cr, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cr)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req ComputeResourceRequest
	if err := catalog.Bind(c, &req); err != nil {
		return err
	}
	cr, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cr)
}

// Delete deletes a compute resource
// @Summary      Delete compute resource
// @Description  Fails while the resource is linked to a software platform or cloud service
// @Tags         compute-resources
// @Param        id path string true "Compute resource ID (UUID)"
// @Success      204
// @Failure      400 {object} apperror.Error "Compute resource still linked"
// @Failure      404 {object} apperror.Error "Compute resource not found"
// @Router       /api/v1/compute-resources/{id} [delete]
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

func (h *Handler) Sdks(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.SdkSort)
	if err != nil {
		return err
	}
	page, err := h.svc.Sdks(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

// RegisterRoutes registers compute resource routes. Property routes are
// registered by the properties package.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/compute-resources")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/software-platforms", h.SoftwarePlatforms)
	g.GET("/:id/cloud-services", h.CloudServices)
	g.GET("/:id/sdks", h.Sdks)
}
