package patternrelations

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers pattern relation type routes, the global pattern
// relation routes and the algorithm-scoped ones
func RegisterRoutes(e *echo.Echo, h *Handler) {
	types := e.Group("/api/v1/pattern-relation-types")
	types.GET("", h.ListTypes)
	types.POST("", h.CreateType)
	types.GET("/:id", h.GetType)
	types.PUT("/:id", h.UpdateType)
	types.DELETE("/:id", h.DeleteType)

	global := e.Group("/api/v1/pattern-relations")
	global.GET("", h.List(false))
	global.POST("", h.Create(false))
	global.GET("/:id", h.Get(false))
	global.PUT("/:id", h.Update(false))
	global.DELETE("/:id", h.Delete(false))

	alg := e.Group("/api/v1/algorithms/:id/pattern-relations")
	alg.GET("", h.List(true))
	alg.POST("", h.Create(true))
	alg.GET("/:relationId", h.Get(true))
	alg.PUT("/:relationId", h.Update(true))
	alg.DELETE("/:relationId", h.Delete(true))
}
