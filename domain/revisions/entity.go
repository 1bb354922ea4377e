package revisions

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// EntityType is the kind of entity whose history is recorded.
type EntityType string

const (
	EntityAlgorithm      EntityType = "algorithm"
	EntityImplementation EntityType = "implementation"
)

// Type is the change that produced a revision.
type Type string

const (
	TypeAdd Type = "ADD"
	TypeMod Type = "MOD"
	TypeDel Type = "DEL"
)

// Revision is one recorded state of an entity.
type Revision struct {
	bun.BaseModel `bun:"table:atlas.revisions,alias:rev"`

	Number     int64           `bun:"revision_number,pk,autoincrement" json:"revisionNumber"`
	EntityType EntityType      `bun:"entity_type,notnull" json:"entityType"`
	EntityID   string          `bun:"entity_id,notnull,type:uuid" json:"entityId"`
	Type       Type            `bun:"revision_type,notnull" json:"revisionType"`
	Snapshot   json.RawMessage `bun:"snapshot,type:jsonb,notnull" json:"snapshot"`
	CreatedAt  time.Time       `bun:"created_at,notnull,default:now()" json:"revisionInstant"`
}

// Summary is the list form of a revision, without the snapshot.
type Summary struct {
	Number    int64     `json:"revisionNumber"`
	Type      Type      `json:"revisionType"`
	CreatedAt time.Time `json:"revisionInstant"`
}

// ToSummary converts a revision to its list form.
func (r Revision) ToSummary() Summary {
	return Summary{Number: r.Number, Type: r.Type, CreatedAt: r.CreatedAt}
}
