package publications

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers publication routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/publications")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/algorithms", h.Algorithms)
	g.GET("/:id/implementations", h.Implementations)
}
