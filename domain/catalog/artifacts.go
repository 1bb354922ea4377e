package catalog

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/pkg/apperror"
)

// CreateArtifact inserts the knowledge artifact row that an algorithm,
// implementation or publication shares its id with.
func CreateArtifact(ctx context.Context, db bun.IDB, kind ArtifactKind) (string, error) {
	a := &KnowledgeArtifact{Kind: kind}
	if _, err := db.NewInsert().Model(a).Returning("id").Exec(ctx); err != nil {
		return "", apperror.ErrDatabase.WithInternal(err)
	}
	return a.ID, nil
}

// TouchArtifact bumps updated_at on the artifact.
func TouchArtifact(ctx context.Context, db bun.IDB, id string) error {
	_, err := db.NewUpdate().Model((*KnowledgeArtifact)(nil)).
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteArtifact removes the artifact row. The owning row must be gone first.
func DeleteArtifact(ctx context.Context, db bun.IDB, id string) error {
	_, err := db.NewDelete().Model((*KnowledgeArtifact)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}
