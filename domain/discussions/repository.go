package discussions

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Repository handles database operations for discussion topics and comments
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new discussion repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("discussions.repo")),
	}
}

// ListTopics returns topics, limited to one artifact when artifactID is set.
func (r *Repository) ListTopics(ctx context.Context, artifactID string, req paging.Request) (paging.Page[catalog.DiscussionTopic], error) {
	scopes := []catalog.Scope{catalog.Search("dt", req.Search, "title", "description")}
	if artifactID != "" {
		scopes = append(scopes, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("dt.knowledge_artifact_id = ?", artifactID)
		})
	}
	page, err := catalog.List[catalog.DiscussionTopic](ctx, r.db, req, "dt", "id", scopes...)
	if err != nil {
		r.log.Error("failed to list topics", logger.Error(err), slog.String("artifact_id", artifactID))
	}
	return page, err
}

func (r *Repository) GetTopic(ctx context.Context, db bun.IDB, id string) (*catalog.DiscussionTopic, error) {
	t := &catalog.DiscussionTopic{}
	if err := catalog.Get(ctx, db, t, "DiscussionTopic", id); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Repository) InsertTopic(ctx context.Context, db bun.IDB, t *catalog.DiscussionTopic) error {
	if _, err := db.NewInsert().Model(t).Returning("*").Exec(ctx); err != nil {
		r.log.Error("failed to create topic", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) UpdateTopic(ctx context.Context, db bun.IDB, t *catalog.DiscussionTopic) error {
	_, err := db.NewUpdate().Model(t).
		Column("title", "description", "status", "date").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update topic", logger.Error(err), slog.String("id", t.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteTopic removes a topic with all of its comments.
func (r *Repository) DeleteTopic(ctx context.Context, db bun.IDB, id string) error {
	return r.deleteTopics(ctx, db, "id", id)
}

// DeleteByArtifact removes every topic of an artifact with their comments.
func (r *Repository) DeleteByArtifact(ctx context.Context, db bun.IDB, artifactID string) error {
	return r.deleteTopics(ctx, db, "knowledge_artifact_id", artifactID)
}

func (r *Repository) deleteTopics(ctx context.Context, db bun.IDB, col, id string) error {
	topics := db.NewSelect().Model((*catalog.DiscussionTopic)(nil)).Column("id").Where("? = ?", bun.Ident(col), id)

	_, err := db.NewUpdate().Model((*catalog.DiscussionComment)(nil)).
		Set("reply_to_id = NULL").
		Where("discussion_topic_id IN (?)", topics).
		Where("reply_to_id IS NOT NULL").
		Exec(ctx)
	if err == nil {
		_, err = db.NewDelete().Model((*catalog.DiscussionComment)(nil)).
			Where("discussion_topic_id IN (?)", topics).
			Exec(ctx)
	}
	if err == nil {
		_, err = db.NewDelete().Model((*catalog.DiscussionTopic)(nil)).
			Where("? = ?", bun.Ident(col), id).
			Exec(ctx)
	}
	if err != nil {
		r.log.Error("failed to delete topics", logger.Error(err), slog.String(col, id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// --- Comments ---

func (r *Repository) ListComments(ctx context.Context, topicID string, req paging.Request) (paging.Page[catalog.DiscussionComment], error) {
	page, err := catalog.List[catalog.DiscussionComment](ctx, r.db, req, "dc", "id",
		catalog.Search("dc", req.Search, "text"),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("dc.discussion_topic_id = ?", topicID)
		})
	if err != nil {
		r.log.Error("failed to list comments", logger.Error(err), slog.String("topic_id", topicID))
	}
	return page, err
}

// GetComment returns (nil, nil) when the comment does not exist.
func (r *Repository) GetComment(ctx context.Context, db bun.IDB, id string) (*catalog.DiscussionComment, error) {
	c := &catalog.DiscussionComment{}
	err := db.NewSelect().Model(c).Where("dc.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get comment", logger.Error(err), slog.String("id", id))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return c, nil
}

func (r *Repository) InsertComment(ctx context.Context, db bun.IDB, c *catalog.DiscussionComment) error {
	if _, err := db.NewInsert().Model(c).Returning("*").Exec(ctx); err != nil {
		r.log.Error("failed to create comment", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

func (r *Repository) UpdateComment(ctx context.Context, db bun.IDB, c *catalog.DiscussionComment) error {
	_, err := db.NewUpdate().Model(c).
		Column("text", "reply_to_id", "date").
		Set("updated_at = now()").
		WherePK().
		Returning("updated_at").
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to update comment", logger.Error(err), slog.String("id", c.ID))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteComment removes a comment. Replies to it lose their reply_to reference.
func (r *Repository) DeleteComment(ctx context.Context, db bun.IDB, id string) error {
	_, err := db.NewUpdate().Model((*catalog.DiscussionComment)(nil)).
		Set("reply_to_id = NULL").
		Where("reply_to_id = ?", id).
		Exec(ctx)
	if err == nil {
		_, err = db.NewDelete().Model((*catalog.DiscussionComment)(nil)).Where("id = ?", id).Exec(ctx)
	}
	if err != nil {
		r.log.Error("failed to delete comment", logger.Error(err), slog.String("id", id))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}
