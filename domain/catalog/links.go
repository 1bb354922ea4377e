package catalog

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/pgutils"
)

// LinkTable is a many-to-many association table. Left and Right are the two
// key columns; the labels name the entities in error messages.
type LinkTable struct {
	Table      string
	Left       string
	Right      string
	LeftLabel  string
	RightLabel string
}

var (
	AlgorithmPublications = LinkTable{
		Table: "atlas.algorithm_publications", Left: "algorithm_id", Right: "publication_id",
		LeftLabel: "Algorithm", RightLabel: "Publication",
	}
	AlgorithmProblemTypes = LinkTable{
		Table: "atlas.algorithm_problem_types", Left: "algorithm_id", Right: "problem_type_id",
		LeftLabel: "Algorithm", RightLabel: "ProblemType",
	}
	AlgorithmApplicationAreas = LinkTable{
		Table: "atlas.algorithm_application_areas", Left: "algorithm_id", Right: "application_area_id",
		LeftLabel: "Algorithm", RightLabel: "ApplicationArea",
	}
	AlgorithmTags = LinkTable{
		Table: "atlas.algorithm_tags", Left: "algorithm_id", Right: "tag_value",
		LeftLabel: "Algorithm", RightLabel: "Tag",
	}
	ImplementationPublications = LinkTable{
		Table: "atlas.implementation_publications", Left: "implementation_id", Right: "publication_id",
		LeftLabel: "Implementation", RightLabel: "Publication",
	}
	ImplementationSoftwarePlatforms = LinkTable{
		Table: "atlas.implementation_software_platforms", Left: "implementation_id", Right: "software_platform_id",
		LeftLabel: "Implementation", RightLabel: "SoftwarePlatform",
	}
	ImplementationTags = LinkTable{
		Table: "atlas.implementation_tags", Left: "implementation_id", Right: "tag_value",
		LeftLabel: "Implementation", RightLabel: "Tag",
	}
	SoftwarePlatformCloudServices = LinkTable{
		Table: "atlas.software_platform_cloud_services", Left: "software_platform_id", Right: "cloud_service_id",
		LeftLabel: "SoftwarePlatform", RightLabel: "CloudService",
	}
	SoftwarePlatformComputeResources = LinkTable{
		Table: "atlas.software_platform_compute_resources", Left: "software_platform_id", Right: "compute_resource_id",
		LeftLabel: "SoftwarePlatform", RightLabel: "ComputeResource",
	}
	CloudServiceComputeResources = LinkTable{
		Table: "atlas.cloud_service_compute_resources", Left: "cloud_service_id", Right: "compute_resource_id",
		LeftLabel: "CloudService", RightLabel: "ComputeResource",
	}
	SdkComputeResources = LinkTable{
		Table: "atlas.sdk_compute_resources", Left: "sdk_id", Right: "compute_resource_id",
		LeftLabel: "Sdk", RightLabel: "ComputeResource",
	}
)

// Link inserts the pair. Linking an already linked pair is a consistency error.
func (l LinkTable) Link(ctx context.Context, db bun.IDB, leftID, rightID string) error {
	res, err := db.NewRaw("INSERT INTO ? (?, ?) VALUES (?, ?) ON CONFLICT DO NOTHING",
		bun.Ident(l.Table), bun.Ident(l.Left), bun.Ident(l.Right), leftID, rightID).
		Exec(ctx)
	if err != nil {
		if pgutils.IsForeignKeyViolation(err) {
			return apperror.ErrNotFound.WithMessage(fmt.Sprintf("%s or %s does not exist", l.LeftLabel, l.RightLabel)).WithInternal(err)
		}
		return apperror.ErrDatabase.WithInternal(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewConsistency(fmt.Sprintf("%s with ID %q is already linked to %s with ID %q",
			l.RightLabel, rightID, l.LeftLabel, leftID))
	}
	return nil
}

// Unlink removes the pair. Unlinking a pair that is not linked is a not-found error.
func (l LinkTable) Unlink(ctx context.Context, db bun.IDB, leftID, rightID string) error {
	res, err := db.NewRaw("DELETE FROM ? WHERE ? = ? AND ? = ?",
		bun.Ident(l.Table), bun.Ident(l.Left), leftID, bun.Ident(l.Right), rightID).
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotLinked(l.RightLabel, rightID, l.LeftLabel, leftID)
	}
	return nil
}

// IsLinked reports whether the pair exists.
func (l LinkTable) IsLinked(ctx context.Context, db bun.IDB, leftID, rightID string) (bool, error) {
	var exists bool
	err := db.NewRaw("SELECT EXISTS (SELECT 1 FROM ? WHERE ? = ? AND ? = ?)",
		bun.Ident(l.Table), bun.Ident(l.Left), leftID, bun.Ident(l.Right), rightID).
		Scan(ctx, &exists)
	if err != nil {
		return false, apperror.ErrDatabase.WithInternal(err)
	}
	return exists, nil
}

// RequireLinked returns a not-found error unless the pair is linked.
func (l LinkTable) RequireLinked(ctx context.Context, db bun.IDB, leftID, rightID string) error {
	ok, err := l.IsLinked(ctx, db, leftID, rightID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewNotLinked(l.RightLabel, rightID, l.LeftLabel, leftID)
	}
	return nil
}

// DeleteByLeft removes every pair of the left entity.
func (l LinkTable) DeleteByLeft(ctx context.Context, db bun.IDB, leftID string) error {
	return l.deleteBy(ctx, db, l.Left, leftID)
}

// DeleteByRight removes every pair of the right entity.
func (l LinkTable) DeleteByRight(ctx context.Context, db bun.IDB, rightID string) error {
	return l.deleteBy(ctx, db, l.Right, rightID)
}

func (l LinkTable) deleteBy(ctx context.Context, db bun.IDB, col, id string) error {
	_, err := db.NewRaw("DELETE FROM ? WHERE ? = ?", bun.Ident(l.Table), bun.Ident(col), id).Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// CountByLeft counts the pairs of the left entity.
func (l LinkTable) CountByLeft(ctx context.Context, db bun.IDB, leftID string) (int, error) {
	return l.countBy(ctx, db, l.Left, leftID)
}

// CountByRight counts the pairs of the right entity.
func (l LinkTable) CountByRight(ctx context.Context, db bun.IDB, rightID string) (int, error) {
	return l.countBy(ctx, db, l.Right, rightID)
}

func (l LinkTable) countBy(ctx context.Context, db bun.IDB, col, id string) (int, error) {
	var n int
	err := db.NewRaw("SELECT count(*) FROM ? WHERE ? = ?", bun.Ident(l.Table), bun.Ident(col), id).Scan(ctx, &n)
	if err != nil {
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	return n, nil
}

// RightsOf restricts q, selecting right-side rows aliased as alias with key
// column key, to those linked to leftID.
func (l LinkTable) RightsOf(q *bun.SelectQuery, alias, key, leftID string) *bun.SelectQuery {
	return q.Join("JOIN ? AS lnk ON lnk.? = ?", bun.Ident(l.Table), bun.Ident(l.Right), bun.Ident(alias+"."+key)).
		Where("lnk.? = ?", bun.Ident(l.Left), leftID)
}

// LeftsOf restricts q, selecting left-side rows, to those linked to rightID.
func (l LinkTable) LeftsOf(q *bun.SelectQuery, alias, key, rightID string) *bun.SelectQuery {
	return q.Join("JOIN ? AS lnk ON lnk.? = ?", bun.Ident(l.Table), bun.Ident(l.Left), bun.Ident(alias+"."+key)).
		Where("lnk.? = ?", bun.Ident(l.Right), rightID)
}
