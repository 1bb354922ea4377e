package files

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers implementation file routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/implementations/:id/files")
	g.GET("", h.List)
	g.POST("", h.Upload)
	g.GET("/:fileId", h.Get)
	g.GET("/:fileId/content", h.Content)
	g.DELETE("/:fileId", h.Delete)
}
