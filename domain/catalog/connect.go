package catalog

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/pkg/metrics"
)

type guard func(ctx context.Context, db bun.IDB, id string) error

// guards by entity label. Tags have none: they are created on link.
var guards = map[string]guard{
	"Algorithm":        RequireAlgorithm,
	"Implementation":   RequireImplementation,
	"Publication":      RequirePublication,
	"ProblemType":      RequireProblemType,
	"ApplicationArea":  RequireApplicationArea,
	"SoftwarePlatform": RequireSoftwarePlatform,
	"CloudService":     RequireCloudService,
	"ComputeResource":  RequireComputeResource,
	"Sdk":              RequireSdk,
}

func (l LinkTable) requireBoth(ctx context.Context, db bun.IDB, leftID, rightID string) error {
	if g, ok := guards[l.LeftLabel]; ok {
		if err := g(ctx, db, leftID); err != nil {
			return err
		}
	}
	if g, ok := guards[l.RightLabel]; ok {
		if err := g(ctx, db, rightID); err != nil {
			return err
		}
	}
	return nil
}

// Connect links two existing entities. Missing entities are reported by label.
func (l LinkTable) Connect(ctx context.Context, db bun.IDB, leftID, rightID string) error {
	if err := l.requireBoth(ctx, db, leftID, rightID); err != nil {
		return err
	}
	if err := l.Link(ctx, db, leftID, rightID); err != nil {
		return err
	}
	metrics.LinkChanges.WithLabelValues(l.Table, "link").Inc()
	return nil
}

// Disconnect unlinks two existing entities.
func (l LinkTable) Disconnect(ctx context.Context, db bun.IDB, leftID, rightID string) error {
	if err := l.requireBoth(ctx, db, leftID, rightID); err != nil {
		return err
	}
	if err := l.Unlink(ctx, db, leftID, rightID); err != nil {
		return err
	}
	metrics.LinkChanges.WithLabelValues(l.Table, "unlink").Inc()
	return nil
}

// Linked checks both entities exist and are linked.
func (l LinkTable) Linked(ctx context.Context, db bun.IDB, leftID, rightID string) error {
	if err := l.requireBoth(ctx, db, leftID, rightID); err != nil {
		return err
	}
	return l.RequireLinked(ctx, db, leftID, rightID)
}

// LinkRequest is the body of link endpoints
type LinkRequest struct {
	ID string `json:"id"`
}

// BindLink decodes a LinkRequest and returns its validated id.
func BindLink(c echo.Context) (string, error) {
	var req LinkRequest
	if err := Bind(c, &req); err != nil {
		return "", err
	}
	if err := ValidateID("id", req.ID); err != nil {
		return "", err
	}
	return req.ID, nil
}
