package algorithmrelations

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers relation type routes and the algorithm-scoped relation routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	types := e.Group("/api/v1/algorithm-relation-types")
	types.GET("", h.ListTypes)
	types.POST("", h.CreateType)
	types.GET("/:id", h.GetType)
	types.PUT("/:id", h.UpdateType)
	types.DELETE("/:id", h.DeleteType)

	g := e.Group("/api/v1/algorithms/:id/algorithm-relations")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:relationId", h.Get)
	g.PUT("/:relationId", h.Update)
	g.DELETE("/:relationId", h.Delete)
}
