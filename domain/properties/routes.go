package properties

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers property type routes and the owner-scoped property routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	types := e.Group("/api/v1/compute-resource-property-types")
	types.GET("", h.ListTypes)
	types.POST("", h.CreateType)
	types.GET("/:id", h.GetType)
	types.PUT("/:id", h.UpdateType)
	types.DELETE("/:id", h.DeleteType)

	owners := map[string]ownerFunc{
		"/api/v1/algorithms":        AlgorithmOwner,
		"/api/v1/implementations":   ImplementationOwner,
		"/api/v1/compute-resources": ComputeResourceOwner,
	}
	for prefix, owner := range owners {
		g := e.Group(prefix + "/:id/compute-resource-properties")
		g.GET("", h.ListFor(owner))
		g.POST("", h.AddFor(owner))
		g.GET("/:propertyId", h.GetFor(owner))
		g.PUT("/:propertyId", h.UpdateFor(owner))
		g.DELETE("/:propertyId", h.DeleteFor(owner))
	}
}
