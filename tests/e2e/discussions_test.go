package e2e

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/testutil"
)

type DiscussionsSuite struct {
	catalogSuite
}

func TestDiscussionsSuite(t *testing.T) {
	s := new(DiscussionsSuite)
	s.SetDBSuffix("discussions")
	suite.Run(t, s)
}

func (s *DiscussionsSuite) TestTopicOnAlgorithm() {
	alg := s.quantumAlgorithm("Shor")
	base := "/api/v1/algorithms/" + alg + "/discussion-topics"

	resp := s.Client.POST(base, testutil.WithJSONBody(map[string]any{"title": "Circuit depth"}))
	s.requireStatus(resp, http.StatusCreated)

	var topic catalog.DiscussionTopic
	s.Require().NoError(resp.JSON(&topic))
	s.Equal(alg, topic.KnowledgeArtifactID)
	s.Equal(catalog.TopicStatus("OPEN"), topic.Status)
	s.False(topic.Date.IsZero())

	resp = s.Client.PUT(base+"/"+topic.ID, testutil.WithJSONBody(map[string]any{
		"title":  "Circuit depth",
		"status": "CLOSED",
	}))
	s.requireStatus(resp, http.StatusOK)
	s.Contains(resp.String(), `"status":"CLOSED"`)

	global := page[catalog.DiscussionTopic](&s.catalogSuite, "/api/v1/discussion-topics")
	s.Require().Len(global.Content, 1)

	other := s.quantumAlgorithm("Grover")
	s.Equal(http.StatusNotFound, s.Client.GET("/api/v1/algorithms/"+other+"/discussion-topics/"+topic.ID).StatusCode)
}

func (s *DiscussionsSuite) TestGlobalTopicNeedsArtifact() {
	resp := s.Client.POST("/api/v1/discussion-topics", testutil.WithJSONBody(map[string]any{
		"title":               "Orphan",
		"knowledgeArtifactId": uuid.NewString(),
	}))
	s.Equal(http.StatusNotFound, resp.StatusCode)

	pub := s.publication("Quantum supremacy using a programmable superconducting processor")
	resp = s.Client.POST("/api/v1/discussion-topics", testutil.WithJSONBody(map[string]any{
		"title":               "Reproducibility",
		"knowledgeArtifactId": pub,
	}))
	s.requireStatus(resp, http.StatusCreated)

	topics := page[catalog.DiscussionTopic](&s.catalogSuite, "/api/v1/publications/"+pub+"/discussion-topics")
	s.Len(topics.Content, 1)

	resp = s.Client.POST("/api/v1/discussion-topics", testutil.WithJSONBody(map[string]any{
		"title":               "Bad status",
		"knowledgeArtifactId": pub,
		"status":              "PENDING",
	}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *DiscussionsSuite) TestCommentsAndReplies() {
	alg := s.quantumAlgorithm("HHL")
	impl := s.implementation(alg, "hhl-qiskit")
	base := "/api/v1/implementations/" + impl + "/discussion-topics"

	topicID := s.MustCreate(base, map[string]any{"title": "Numerical stability"})
	comments := base + "/" + topicID + "/discussion-comments"

	first := s.MustCreate(comments, map[string]any{"text": "Condition number matters"})
	resp := s.Client.POST(comments, testutil.WithJSONBody(map[string]any{
		"text":    "Agreed",
		"replyTo": first,
	}))
	s.requireStatus(resp, http.StatusCreated)

	var reply catalog.DiscussionComment
	s.Require().NoError(resp.JSON(&reply))
	s.Require().NotNil(reply.ReplyToID)
	s.Equal(first, *reply.ReplyToID)

	resp = s.Client.PUT(comments+"/"+first, testutil.WithJSONBody(map[string]any{
		"text":    "Self",
		"replyTo": first,
	}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.Client.POST(comments, testutil.WithJSONBody(map[string]any{"text": "  "}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	list := page[catalog.DiscussionComment](&s.catalogSuite, comments)
	s.Len(list.Content, 2)

	s.requireStatus(s.Client.DELETE(base+"/"+topicID), http.StatusNoContent)
	s.Equal(http.StatusNotFound, s.Client.GET("/api/v1/discussion-topics/"+topicID).StatusCode)
}

func (s *DiscussionsSuite) TestDeletingArtifactRemovesTopics() {
	alg := s.quantumAlgorithm("Simon")
	topicID := s.MustCreate("/api/v1/algorithms/"+alg+"/discussion-topics", map[string]any{"title": "Oracle"})

	s.requireStatus(s.Client.DELETE("/api/v1/algorithms/"+alg), http.StatusNoContent)
	s.Equal(http.StatusNotFound, s.Client.GET("/api/v1/discussion-topics/"+topicID).StatusCode)
}
