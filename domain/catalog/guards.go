package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/pkg/apperror"
)

// Exists reports whether a row of model's table has the given key.
func Exists(ctx context.Context, db bun.IDB, model any, keyColumn, id string) (bool, error) {
	ok, err := db.NewSelect().Model(model).Where("? = ?", bun.Ident(keyColumn), id).Exists(ctx)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	return ok, nil
}

// RequireExists returns `<label> with ID "<id>" does not exist` when the row is missing.
func RequireExists(ctx context.Context, db bun.IDB, model any, label, id string) error {
	ok, err := Exists(ctx, db, model, "id", id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewNotFound(label, id)
	}
	return nil
}

// Typed guards used across packages.

func RequireAlgorithm(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*Algorithm)(nil), "Algorithm", id)
}

func RequireImplementation(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*Implementation)(nil), "Implementation", id)
}

func RequirePublication(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*Publication)(nil), "Publication", id)
}

func RequireProblemType(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*ProblemType)(nil), "ProblemType", id)
}

func RequireApplicationArea(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*ApplicationArea)(nil), "ApplicationArea", id)
}

func RequireSoftwarePlatform(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*SoftwarePlatform)(nil), "SoftwarePlatform", id)
}

func RequireCloudService(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*CloudService)(nil), "CloudService", id)
}

func RequireComputeResource(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*ComputeResource)(nil), "ComputeResource", id)
}

func RequireSdk(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*Sdk)(nil), "Sdk", id)
}

// RequireArtifact checks a knowledge artifact of any kind.
func RequireArtifact(ctx context.Context, db bun.IDB, id string) error {
	return RequireExists(ctx, db, (*KnowledgeArtifact)(nil), "KnowledgeArtifact", id)
}

// Get loads model by primary key, mapping a missing row to a not-found error.
func Get(ctx context.Context, db bun.IDB, model any, label, id string) error {
	err := db.NewSelect().Model(model).Where("? = ?", bun.Ident("id"), id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NewNotFound(label, id)
		}
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}
