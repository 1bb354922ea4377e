package discussions

import (
	"time"

	"github.com/emergent-company/atlas/domain/catalog"
)

// TopicRequest is the body for creating or updating a discussion topic
type TopicRequest struct {
	KnowledgeArtifactID string              `json:"knowledgeArtifactId,omitempty"`
	Title               string              `json:"title"`
	Description         string              `json:"description,omitempty"`
	Status              catalog.TopicStatus `json:"status,omitempty"`
	Date                *time.Time          `json:"date,omitempty"`
}

// CommentRequest is the body for creating or updating a discussion comment
type CommentRequest struct {
	Text    string     `json:"text"`
	ReplyTo *string    `json:"replyTo,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
}

// Artifact is the knowledge artifact a topic route is scoped to.
type Artifact struct {
	Kind catalog.ArtifactKind
	ID   string
}

func (a Artifact) label() string {
	switch a.Kind {
	case catalog.ArtifactAlgorithm:
		return "Algorithm"
	case catalog.ArtifactImplementation:
		return "Implementation"
	case catalog.ArtifactPublication:
		return "Publication"
	}
	return "KnowledgeArtifact"
}
