package discussions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestApplyTopic_Defaults(t *testing.T) {
	topic := &catalog.DiscussionTopic{}
	before := time.Now()

	require.NoError(t, applyTopic(topic, TopicRequest{Title: "  Grover speedup  "}))

	assert.Equal(t, "Grover speedup", topic.Title)
	assert.Equal(t, catalog.TopicOpen, topic.Status)
	assert.False(t, topic.Date.Before(before))
}

func TestApplyTopic_KeepsDateOnUpdate(t *testing.T) {
	date := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	topic := &catalog.DiscussionTopic{Date: date}

	require.NoError(t, applyTopic(topic, TopicRequest{Title: "t", Status: catalog.TopicClosed}))

	assert.Equal(t, date, topic.Date)
	assert.Equal(t, catalog.TopicClosed, topic.Status)
}

func TestApplyTopic_Invalid(t *testing.T) {
	assert.ErrorIs(t, applyTopic(&catalog.DiscussionTopic{}, TopicRequest{Title: " "}), apperror.ErrValidation)
	assert.ErrorIs(t, applyTopic(&catalog.DiscussionTopic{}, TopicRequest{Title: "t", Status: "ARCHIVED"}), apperror.ErrValidation)
}

func TestArtifactLabel(t *testing.T) {
	assert.Equal(t, "Algorithm", Artifact{Kind: catalog.ArtifactAlgorithm}.label())
	assert.Equal(t, "Publication", Artifact{Kind: catalog.ArtifactPublication}.label())
	assert.Equal(t, "KnowledgeArtifact", Artifact{}.label())
}
