package implementations

import (
	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
)

// RegisterRoutes registers implementation routes, globally and under their algorithm
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/implementations")
	g.GET("", h.List(global))
	g.GET("/:id", h.Get(global))
	g.PUT("/:id", h.Update(global))
	g.DELETE("/:id", h.Delete(global))

	g.GET("/:id/software-platforms", h.SoftwarePlatforms)
	g.POST("/:id/software-platforms", catalog.LinkHandler(h.svc.LinkSoftwarePlatform))
	g.GET("/:id/software-platforms/:softwarePlatformId", h.SoftwarePlatform)
	g.DELETE("/:id/software-platforms/:softwarePlatformId", catalog.UnlinkHandler(h.svc.UnlinkSoftwarePlatform, "softwarePlatformId"))

	g.GET("/:id/publications", h.Publications)
	g.POST("/:id/publications", catalog.LinkHandler(h.svc.LinkPublication))
	g.GET("/:id/publications/:publicationId", h.Publication)
	g.DELETE("/:id/publications/:publicationId", catalog.UnlinkHandler(h.svc.UnlinkPublication, "publicationId"))

	g.GET("/:id/tags", h.Tags)
	g.POST("/:id/tags", h.AddTag)
	g.DELETE("/:id/tags/:value", h.RemoveTag)

	g.GET("/:id/revisions", h.Revisions)
	g.GET("/:id/revisions/:revisionNumber", h.Revision)

	a := e.Group("/api/v1/algorithms/:id/implementations")
	a.GET("", h.List(scoped))
	a.POST("", h.Create)
	a.GET("/:implementationId", h.Get(scoped))
	a.PUT("/:implementationId", h.Update(scoped))
	a.DELETE("/:implementationId", h.Delete(scoped))
}
