package tags

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers tag routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/tags")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:value", h.Get)
	g.DELETE("/:value", h.Delete)
	g.GET("/:value/algorithms", h.Algorithms)
	g.GET("/:value/implementations", h.Implementations)
}
