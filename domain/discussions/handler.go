package discussions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for discussion topics and comments
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new discussion handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

// scope says how a route group addresses its artifact and topic.
type scope struct {
	kind       catalog.ArtifactKind // empty for the global routes
	topicParam string
}

var global = scope{topicParam: "id"}

func artifactScope(kind catalog.ArtifactKind) scope {
	return scope{kind: kind, topicParam: "topicId"}
}

func (s scope) artifact(c echo.Context) (*Artifact, error) {
	if s.kind == "" {
		return nil, nil
	}
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return nil, err
	}
	return &Artifact{Kind: s.kind, ID: id}, nil
}

func (s scope) topic(c echo.Context) (*Artifact, string, error) {
	a, err := s.artifact(c)
	if err != nil {
		return nil, "", err
	}
	topicID, err := catalog.ParamID(c, s.topicParam)
	if err != nil {
		return nil, "", err
	}
	return a, topicID, nil
}

// ListTopics lists discussion topics
// @Summary      List discussion topics
// @Tags         discussions
// @Produce      json
// @Success      200 {object} paging.Page[catalog.DiscussionTopic]
// @Failure      404 {object} apperror.Error "Knowledge artifact not found"
// @Router       /api/v1/discussion-topics [get]
// @Router       /api/v1/algorithms/{id}/discussion-topics [get]
// @Router       /api/v1/implementations/{id}/discussion-topics [get]
// @Router       /api/v1/publications/{id}/discussion-topics [get]
func (h *Handler) ListTopics(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, err := s.artifact(c)
		if err != nil {
			return err
		}
		req, err := h.pager.Parse(c, catalog.TopicSort)
		if err != nil {
			return err
		}
		page, err := h.svc.ListTopics(c.Request().Context(), a, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
	}
}

// CreateTopic opens a discussion topic
// @Summary      Create discussion topic
// @Description  Status defaults to OPEN and date to the current time
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Param        request body TopicRequest true "Topic"
// @Success      201 {object} catalog.DiscussionTopic
// @Failure      400 {object} apperror.Error "Invalid request body"
// @Failure      404 {object} apperror.Error "Knowledge artifact not found"
// @Router       /api/v1/discussion-topics [post]
func (h *Handler) CreateTopic(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, err := s.artifact(c)
		if err != nil {
			return err
		}
		var req TopicRequest
		if err := catalog.Bind(c, &req); err != nil {
			return err
		}
		t, err := h.svc.CreateTopic(c.Request().Context(), a, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, t)
	}
}

func (h *Handler) GetTopic(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, topicID, err := s.topic(c)
		if err != nil {
			return err
		}
		t, err := h.svc.GetTopic(c.Request().Context(), a, topicID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, t)
	}
}

func (h *Handler) UpdateTopic(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, topicID, err := s.topic(c)
		if err != nil {
			return err
		}
		var req TopicRequest
		if err := catalog.Bind(c, &req); err != nil {
			return err
		}
		t, err := h.svc.UpdateTopic(c.Request().Context(), a, topicID, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, t)
	}
}

// DeleteTopic deletes a topic with its comments
// @Summary      Delete discussion topic
// @Tags         discussions
// @Success      204
// @Failure      404 {object} apperror.Error "Topic not found or not linked to the artifact"
// @Router       /api/v1/discussion-topics/{id} [delete]
func (h *Handler) DeleteTopic(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, topicID, err := s.topic(c)
		if err != nil {
			return err
		}
		if err := h.svc.DeleteTopic(c.Request().Context(), a, topicID); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func (h *Handler) ListComments(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, topicID, err := s.topic(c)
		if err != nil {
			return err
		}
		req, err := h.pager.Parse(c, catalog.CommentSort)
		if err != nil {
			return err
		}
		page, err := h.svc.ListComments(c.Request().Context(), a, topicID, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
	}
}

// CreateComment adds a comment to a topic
// @Summary      Create discussion comment
// @Description  replyTo must reference a comment of the same topic
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Param        request body CommentRequest true "Comment"
// @Success      201 {object} catalog.DiscussionComment
// @Failure      404 {object} apperror.Error "Topic or replied comment not found"
// @Router       /api/v1/discussion-topics/{id}/discussion-comments [post]
func (h *Handler) CreateComment(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, topicID, err := s.topic(c)
		if err != nil {
			return err
		}
		var req CommentRequest
		if err := catalog.Bind(c, &req); err != nil {
			return err
		}
		cm, err := h.svc.CreateComment(c.Request().Context(), a, topicID, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, cm)
	}
}

func (h *Handler) GetComment(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, topicID, err := s.topic(c)
		if err != nil {
			return err
		}
		commentID, err := catalog.ParamID(c, "commentId")
		if err != nil {
			return err
		}
		cm, err := h.svc.GetComment(c.Request().Context(), a, topicID, commentID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, cm)
	}
}

func (h *Handler) UpdateComment(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, topicID, err := s.topic(c)
		if err != nil {
			return err
		}
		commentID, err := catalog.ParamID(c, "commentId")
		if err != nil {
			return err
		}
		var req CommentRequest
		if err := catalog.Bind(c, &req); err != nil {
			return err
		}
		cm, err := h.svc.UpdateComment(c.Request().Context(), a, topicID, commentID, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, cm)
	}
}

func (h *Handler) DeleteComment(s scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, topicID, err := s.topic(c)
		if err != nil {
			return err
		}
		commentID, err := catalog.ParamID(c, "commentId")
		if err != nil {
			return err
		}
		if err := h.svc.DeleteComment(c.Request().Context(), a, topicID, commentID); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
