package algorithms

import (
	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/revisions"
)

// RegisterRoutes registers algorithm routes. Implementations, relations,
// properties and discussions of an algorithm are routed by their own packages.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/algorithms")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	linkPublication, unlinkPublication := h.svc.connector(catalog.AlgorithmPublications)
	g.GET("/:id/publications", listOf(h, catalog.PublicationSort, h.svc.Publications))
	g.POST("/:id/publications", catalog.LinkHandler(linkPublication))
	g.GET("/:id/publications/:publicationId", linkedOne("publicationId", h.svc.Publication))
	g.DELETE("/:id/publications/:publicationId", catalog.UnlinkHandler(unlinkPublication, "publicationId"))

	linkProblemType, unlinkProblemType := h.svc.connector(catalog.AlgorithmProblemTypes)
	g.GET("/:id/problem-types", listOf(h, catalog.ProblemTypeSort, h.svc.ProblemTypes))
	g.POST("/:id/problem-types", catalog.LinkHandler(linkProblemType))
	g.GET("/:id/problem-types/:problemTypeId", linkedOne("problemTypeId", h.svc.ProblemType))
	g.DELETE("/:id/problem-types/:problemTypeId", catalog.UnlinkHandler(unlinkProblemType, "problemTypeId"))

	linkArea, unlinkArea := h.svc.connector(catalog.AlgorithmApplicationAreas)
	g.GET("/:id/application-areas", listOf(h, catalog.ApplicationAreaSort, h.svc.ApplicationAreas))
	g.POST("/:id/application-areas", catalog.LinkHandler(linkArea))
	g.GET("/:id/application-areas/:applicationAreaId", linkedOne("applicationAreaId", h.svc.ApplicationArea))
	g.DELETE("/:id/application-areas/:applicationAreaId", catalog.UnlinkHandler(unlinkArea, "applicationAreaId"))

	g.GET("/:id/tags", listOf(h, catalog.TagSort, h.svc.Tags))
	g.POST("/:id/tags", h.AddTag)
	g.DELETE("/:id/tags/:value", h.RemoveTag)

	g.GET("/:id/revisions", listOf(h, revisions.Sort, h.svc.Revisions))
	g.GET("/:id/revisions/:revisionNumber", h.Revision)
}
