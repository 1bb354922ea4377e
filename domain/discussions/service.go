package discussions

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/database"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Service handles business logic for discussions. Methods taking an *Artifact
// are scoped to that artifact when it is non-nil.
type Service struct {
	db   bun.IDB
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new discussion service
func NewService(db bun.IDB, repo *Repository, log *slog.Logger) *Service {
	return &Service{db: db, repo: repo, log: log.With(logger.Scope("discussions.svc"))}
}

// requireArtifact checks that the scoped artifact exists with the expected kind.
func requireArtifact(ctx context.Context, db bun.IDB, a *Artifact) error {
	if a == nil {
		return nil
	}
	switch a.Kind {
	case catalog.ArtifactAlgorithm:
		return catalog.RequireAlgorithm(ctx, db, a.ID)
	case catalog.ArtifactImplementation:
		return catalog.RequireImplementation(ctx, db, a.ID)
	case catalog.ArtifactPublication:
		return catalog.RequirePublication(ctx, db, a.ID)
	}
	return catalog.RequireArtifact(ctx, db, a.ID)
}

// topic loads a topic and checks it belongs to the scoped artifact.
func (s *Service) topic(ctx context.Context, db bun.IDB, a *Artifact, id string) (*catalog.DiscussionTopic, error) {
	if err := requireArtifact(ctx, db, a); err != nil {
		return nil, err
	}
	t, err := s.repo.GetTopic(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if a != nil && t.KnowledgeArtifactID != a.ID {
		return nil, apperror.NewNotLinked("DiscussionTopic", id, a.label(), a.ID)
	}
	return t, nil
}

func (s *Service) ListTopics(ctx context.Context, a *Artifact, req paging.Request) (paging.Page[catalog.DiscussionTopic], error) {
	if err := requireArtifact(ctx, s.db, a); err != nil {
		return paging.Page[catalog.DiscussionTopic]{}, err
	}
	artifactID := ""
	if a != nil {
		artifactID = a.ID
	}
	return s.repo.ListTopics(ctx, artifactID, req)
}

func (s *Service) GetTopic(ctx context.Context, a *Artifact, id string) (*catalog.DiscussionTopic, error) {
	return s.topic(ctx, s.db, a, id)
}

// CreateTopic opens a topic. Without a scope the body names the artifact.
func (s *Service) CreateTopic(ctx context.Context, a *Artifact, req TopicRequest) (*catalog.DiscussionTopic, error) {
	t := &catalog.DiscussionTopic{}
	if err := applyTopic(t, req); err != nil {
		return nil, err
	}

	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if a != nil {
			if err := requireArtifact(ctx, tx, a); err != nil {
				return err
			}
			t.KnowledgeArtifactID = a.ID
		} else {
			if err := catalog.ValidateID("knowledgeArtifactId", req.KnowledgeArtifactID); err != nil {
				return err
			}
			if err := catalog.RequireArtifact(ctx, tx, req.KnowledgeArtifactID); err != nil {
				return err
			}
			t.KnowledgeArtifactID = req.KnowledgeArtifactID
		}
		return s.repo.InsertTopic(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("discussion topic created", slog.String("id", t.ID), slog.String("artifact_id", t.KnowledgeArtifactID))
	return t, nil
}

func (s *Service) UpdateTopic(ctx context.Context, a *Artifact, id string, req TopicRequest) (*catalog.DiscussionTopic, error) {
	var t *catalog.DiscussionTopic
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		var err error
		if t, err = s.topic(ctx, tx, a, id); err != nil {
			return err
		}
		if err := applyTopic(t, req); err != nil {
			return err
		}
		return s.repo.UpdateTopic(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTopic removes a topic and its comments.
func (s *Service) DeleteTopic(ctx context.Context, a *Artifact, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := s.topic(ctx, tx, a, id); err != nil {
			return err
		}
		if err := s.repo.DeleteTopic(ctx, tx, id); err != nil {
			return err
		}
		metrics.Deleted("discussion_topic", 1)
		return nil
	})
}

// --- Comments ---

// comment loads a comment and checks it is in the topic.
func (s *Service) comment(ctx context.Context, db bun.IDB, topicID, id string) (*catalog.DiscussionComment, error) {
	c, err := s.repo.GetComment(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NewNotFound("DiscussionComment", id)
	}
	if c.DiscussionTopicID != topicID {
		return nil, apperror.NewNotLinked("DiscussionComment", id, "DiscussionTopic", topicID)
	}
	return c, nil
}

func (s *Service) ListComments(ctx context.Context, a *Artifact, topicID string, req paging.Request) (paging.Page[catalog.DiscussionComment], error) {
	if _, err := s.topic(ctx, s.db, a, topicID); err != nil {
		return paging.Page[catalog.DiscussionComment]{}, err
	}
	return s.repo.ListComments(ctx, topicID, req)
}

func (s *Service) GetComment(ctx context.Context, a *Artifact, topicID, id string) (*catalog.DiscussionComment, error) {
	if _, err := s.topic(ctx, s.db, a, topicID); err != nil {
		return nil, err
	}
	return s.comment(ctx, s.db, topicID, id)
}

func (s *Service) CreateComment(ctx context.Context, a *Artifact, topicID string, req CommentRequest) (*catalog.DiscussionComment, error) {
	c := &catalog.DiscussionComment{DiscussionTopicID: topicID}
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := s.topic(ctx, tx, a, topicID); err != nil {
			return err
		}
		if err := s.applyComment(ctx, tx, c, req); err != nil {
			return err
		}
		return s.repo.InsertComment(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateComment(ctx context.Context, a *Artifact, topicID, id string, req CommentRequest) (*catalog.DiscussionComment, error) {
	var c *catalog.DiscussionComment
	err := database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := s.topic(ctx, tx, a, topicID); err != nil {
			return err
		}
		var err error
		if c, err = s.comment(ctx, tx, topicID, id); err != nil {
			return err
		}
		if err := s.applyComment(ctx, tx, c, req); err != nil {
			return err
		}
		return s.repo.UpdateComment(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteComment(ctx context.Context, a *Artifact, topicID, id string) error {
	return database.InTx(ctx, s.db, func(tx bun.IDB) error {
		if _, err := s.topic(ctx, tx, a, topicID); err != nil {
			return err
		}
		if _, err := s.comment(ctx, tx, topicID, id); err != nil {
			return err
		}
		if err := s.repo.DeleteComment(ctx, tx, id); err != nil {
			return err
		}
		metrics.Deleted("discussion_comment", 1)
		return nil
	})
}

func applyTopic(t *catalog.DiscussionTopic, req TopicRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return apperror.NewValidation("title", "title is required")
	}
	status := req.Status
	if status == "" {
		status = catalog.TopicOpen
	}
	if !status.Valid() {
		return apperror.NewValidation("status", "status must be OPEN or CLOSED")
	}

	t.Title = title
	t.Description = req.Description
	t.Status = status
	switch {
	case req.Date != nil:
		t.Date = *req.Date
	case t.Date.IsZero():
		t.Date = time.Now()
	}
	return nil
}

func (s *Service) applyComment(ctx context.Context, tx bun.IDB, c *catalog.DiscussionComment, req CommentRequest) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return apperror.NewValidation("text", "text is required")
	}
	if req.ReplyTo != nil {
		if err := catalog.ValidateID("replyTo", *req.ReplyTo); err != nil {
			return err
		}
		if c.ID != "" && *req.ReplyTo == c.ID {
			return apperror.NewValidation("replyTo", "a comment cannot reply to itself")
		}
		if _, err := s.comment(ctx, tx, c.DiscussionTopicID, *req.ReplyTo); err != nil {
			return err
		}
	}

	c.Text = text
	c.ReplyToID = req.ReplyTo
	switch {
	case req.Date != nil:
		c.Date = *req.Date
	case c.Date.IsZero():
		c.Date = time.Now()
	}
	return nil
}
