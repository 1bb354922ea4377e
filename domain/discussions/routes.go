package discussions

import (
	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
)

// RegisterRoutes registers the global topic routes and the topic routes of
// algorithms, implementations and publications
func RegisterRoutes(e *echo.Echo, h *Handler) {
	register(e.Group("/api/v1/discussion-topics"), h, global)

	scoped := map[string]catalog.ArtifactKind{
		"/api/v1/algorithms":      catalog.ArtifactAlgorithm,
		"/api/v1/implementations": catalog.ArtifactImplementation,
		"/api/v1/publications":    catalog.ArtifactPublication,
	}
	for prefix, kind := range scoped {
		register(e.Group(prefix+"/:id/discussion-topics"), h, artifactScope(kind))
	}
}

func register(g *echo.Group, h *Handler, s scope) {
	topic := "/:" + s.topicParam
	comments := topic + "/discussion-comments"

	g.GET("", h.ListTopics(s))
	g.POST("", h.CreateTopic(s))
	g.GET(topic, h.GetTopic(s))
	g.PUT(topic, h.UpdateTopic(s))
	g.DELETE(topic, h.DeleteTopic(s))

	g.GET(comments, h.ListComments(s))
	g.POST(comments, h.CreateComment(s))
	g.GET(comments+"/:commentId", h.GetComment(s))
	g.PUT(comments+"/:commentId", h.UpdateComment(s))
	g.DELETE(comments+"/:commentId", h.DeleteComment(s))
}
