package problemtypes

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers problem type routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/problem-types")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/problem-type-parent-tree", h.ParentList)
	g.GET("/:id/algorithms", h.Algorithms)
}
