package softwareplatforms

import (
	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
)

// RegisterRoutes registers software platform routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/software-platforms")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	g.GET("/:id/implementations", h.Implementations)

	g.GET("/:id/cloud-services", h.CloudServices)
	g.POST("/:id/cloud-services", catalog.LinkHandler(h.svc.LinkCloudService))
	g.GET("/:id/cloud-services/:cloudServiceId", h.CloudService)
	g.DELETE("/:id/cloud-services/:cloudServiceId", catalog.UnlinkHandler(h.svc.UnlinkCloudService, "cloudServiceId"))

	g.GET("/:id/compute-resources", h.ComputeResources)
	g.POST("/:id/compute-resources", catalog.LinkHandler(h.svc.LinkComputeResource))
	g.GET("/:id/compute-resources/:computeResourceId", h.ComputeResource)
	g.DELETE("/:id/compute-resources/:computeResourceId", catalog.UnlinkHandler(h.svc.UnlinkComputeResource, "computeResourceId"))
}
