package e2e

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/revisions"
	"github.com/emergent-company/atlas/internal/testutil"
)

type AlgorithmsSuite struct {
	catalogSuite
}

func TestAlgorithmsSuite(t *testing.T) {
	s := new(AlgorithmsSuite)
	s.SetDBSuffix("algorithms")
	suite.Run(t, s)
}

func (s *AlgorithmsSuite) TestCreateAndGet() {
	id := s.quantumAlgorithm("Shor")

	resp := s.Client.GET("/api/v1/algorithms/" + id)
	s.requireStatus(resp, http.StatusOK)

	var a catalog.Algorithm
	s.Require().NoError(resp.JSON(&a))
	s.Equal("Shor", a.Name)
	s.Equal(catalog.ComputationModel("QUANTUM"), a.ComputationModel)
	s.Equal(catalog.QuantumComputationModel("GATE_BASED"), a.QuantumComputationModel)
	s.Require().NotNil(a.NisqReady)
	s.True(*a.NisqReady)
}

func (s *AlgorithmsSuite) TestCreateClassicDropsQuantumFields() {
	resp := s.Client.POST("/api/v1/algorithms", testutil.WithJSONBody(map[string]any{
		"name":                    "Quicksort",
		"computationModel":        "CLASSIC",
		"quantumComputationModel": "GATE_BASED",
		"speedUp":                 "none",
	}))
	s.requireStatus(resp, http.StatusCreated)

	var a catalog.Algorithm
	s.Require().NoError(resp.JSON(&a))
	s.Empty(a.QuantumComputationModel)
	s.Empty(a.SpeedUp)
	s.Nil(a.NisqReady)
}

func (s *AlgorithmsSuite) TestCreateValidation() {
	resp := s.Client.POST("/api/v1/algorithms", testutil.WithJSONBody(map[string]any{
		"name":             "  ",
		"computationModel": "QUANTUM",
	}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.Client.POST("/api/v1/algorithms", testutil.WithJSONBody(map[string]any{
		"name":             "Grover",
		"computationModel": "ANALOG",
	}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *AlgorithmsSuite) TestGetUnknownAndMalformed() {
	resp := s.Client.GET("/api/v1/algorithms/" + uuid.NewString())
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.Client.GET("/api/v1/algorithms/not-a-uuid")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *AlgorithmsSuite) TestUpdateSwitchesToClassic() {
	id := s.quantumAlgorithm("VQE")

	resp := s.Client.PUT("/api/v1/algorithms/"+id, testutil.WithJSONBody(map[string]any{
		"name":             "VQE (classical part)",
		"computationModel": "CLASSIC",
	}))
	s.requireStatus(resp, http.StatusOK)

	var a catalog.Algorithm
	s.Require().NoError(resp.JSON(&a))
	s.Equal(id, a.ID)
	s.Equal("VQE (classical part)", a.Name)
	s.Empty(a.QuantumComputationModel)
}

func (s *AlgorithmsSuite) TestListPaging() {
	for _, name := range []string{"A1", "A2", "A3"} {
		s.classicAlgorithm(name)
	}

	p := page[catalog.Algorithm](&s.catalogSuite, "/api/v1/algorithms?size=2&sort=name,desc")
	s.Len(p.Content, 2)
	s.Equal(3, p.Page.TotalElements)
	s.Equal(2, p.Page.TotalPages)
	s.Equal("A3", p.Content[0].Name)
	s.NotEmpty(p.Links.Next)
	s.Empty(p.Links.Prev)

	p = page[catalog.Algorithm](&s.catalogSuite, "/api/v1/algorithms?search=a2")
	s.Require().Len(p.Content, 1)
	s.Equal("A2", p.Content[0].Name)

	resp := s.Client.GET("/api/v1/algorithms?sort=nope")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *AlgorithmsSuite) TestPublicationLinks() {
	alg := s.quantumAlgorithm("Grover")
	pub := s.publication("A fast quantum mechanical algorithm for database search")

	s.link("/api/v1/algorithms/"+alg+"/publications", pub)

	resp := s.Client.POST("/api/v1/algorithms/"+alg+"/publications",
		testutil.WithJSONBody(map[string]string{"id": pub}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(resp.ErrorMessage(), "already linked")

	p := page[catalog.Publication](&s.catalogSuite, "/api/v1/algorithms/"+alg+"/publications")
	s.Require().Len(p.Content, 1)
	s.Equal(pub, p.Content[0].ID)

	resp = s.Client.GET("/api/v1/algorithms/" + alg + "/publications/" + pub)
	s.Equal(http.StatusOK, resp.StatusCode)

	algs := page[catalog.Algorithm](&s.catalogSuite, "/api/v1/publications/"+pub+"/algorithms")
	s.Require().Len(algs.Content, 1)
	s.Equal(alg, algs.Content[0].ID)

	resp = s.Client.DELETE("/api/v1/algorithms/" + alg + "/publications/" + pub)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.Client.DELETE("/api/v1/algorithms/" + alg + "/publications/" + pub)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.Client.POST("/api/v1/algorithms/"+alg+"/publications",
		testutil.WithJSONBody(map[string]string{"id": uuid.NewString()}))
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *AlgorithmsSuite) TestProblemTypeAndApplicationAreaLinks() {
	alg := s.quantumAlgorithm("QAOA")
	pt := s.MustCreate("/api/v1/problem-types", map[string]any{"name": "Optimization"})
	area := s.MustCreate("/api/v1/application-areas", map[string]any{"name": "Logistics"})

	s.link("/api/v1/algorithms/"+alg+"/problem-types", pt)
	s.link("/api/v1/algorithms/"+alg+"/application-areas", area)

	pts := page[catalog.ProblemType](&s.catalogSuite, "/api/v1/algorithms/"+alg+"/problem-types")
	s.Len(pts.Content, 1)
	areas := page[catalog.ApplicationArea](&s.catalogSuite, "/api/v1/algorithms/"+alg+"/application-areas")
	s.Len(areas.Content, 1)

	resp := s.Client.DELETE("/api/v1/application-areas/" + area)
	s.requireStatus(resp, http.StatusNoContent)

	areas = page[catalog.ApplicationArea](&s.catalogSuite, "/api/v1/algorithms/"+alg+"/application-areas")
	s.Empty(areas.Content)
}

func (s *AlgorithmsSuite) TestTags() {
	alg := s.quantumAlgorithm("Deutsch-Jozsa")

	resp := s.Client.POST("/api/v1/algorithms/"+alg+"/tags",
		testutil.WithJSONBody(map[string]string{"value": "oracle", "category": "technique"}))
	s.requireStatus(resp, http.StatusNoContent)

	tags := page[catalog.Tag](&s.catalogSuite, "/api/v1/algorithms/"+alg+"/tags")
	s.Require().Len(tags.Content, 1)
	s.Equal("oracle", tags.Content[0].Value)

	algs := page[catalog.Algorithm](&s.catalogSuite, "/api/v1/tags/oracle/algorithms")
	s.Require().Len(algs.Content, 1)
	s.Equal(alg, algs.Content[0].ID)

	resp = s.Client.DELETE("/api/v1/algorithms/" + alg + "/tags/oracle")
	s.requireStatus(resp, http.StatusNoContent)

	tags = page[catalog.Tag](&s.catalogSuite, "/api/v1/algorithms/"+alg+"/tags")
	s.Empty(tags.Content)

	resp = s.Client.GET("/api/v1/tags/oracle")
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *AlgorithmsSuite) TestDeleteCascades() {
	alg := s.quantumAlgorithm("Shor")
	other := s.quantumAlgorithm("QFT")
	impl := s.implementation(alg, "shor-qiskit")
	pub := s.publication("Polynomial-time algorithms for prime factorization")
	s.link("/api/v1/algorithms/"+alg+"/publications", pub)

	resp := s.Client.POST("/api/v1/algorithms/"+alg+"/algorithm-relations", testutil.WithJSONBody(map[string]any{
		"sourceAlgorithmId": alg,
		"targetAlgorithmId": other,
		"algoRelationType":  map[string]string{"name": "uses"},
	}))
	s.requireStatus(resp, http.StatusCreated)

	resp = s.Client.POST("/api/v1/algorithms/"+alg+"/compute-resource-properties", testutil.WithJSONBody(map[string]any{
		"value": "20",
		"type":  map[string]string{"name": "qubits", "datatype": "INTEGER"},
	}))
	s.requireStatus(resp, http.StatusCreated)

	resp = s.Client.DELETE("/api/v1/algorithms/" + alg)
	s.requireStatus(resp, http.StatusNoContent)

	s.Equal(http.StatusNotFound, s.Client.GET("/api/v1/algorithms/"+alg).StatusCode)
	s.Equal(http.StatusNotFound, s.Client.GET("/api/v1/implementations/"+impl).StatusCode)

	// Linked entities survive; only the link is gone.
	s.Equal(http.StatusOK, s.Client.GET("/api/v1/publications/"+pub).StatusCode)
	algs := page[catalog.Algorithm](&s.catalogSuite, "/api/v1/publications/"+pub+"/algorithms")
	s.Empty(algs.Content)

	rels := page[catalog.AlgorithmRelation](&s.catalogSuite, "/api/v1/algorithms/"+other+"/algorithm-relations")
	s.Empty(rels.Content)

	s.Equal(http.StatusNotFound, s.Client.DELETE("/api/v1/algorithms/"+alg).StatusCode)
}

func (s *AlgorithmsSuite) TestRevisions() {
	id := s.quantumAlgorithm("HHL")

	resp := s.Client.PUT("/api/v1/algorithms/"+id, testutil.WithJSONBody(map[string]any{
		"name":                    "HHL",
		"computationModel":        "QUANTUM",
		"quantumComputationModel": "GATE_BASED",
		"speedUp":                 "exponential (conditional)",
	}))
	s.requireStatus(resp, http.StatusOK)

	revs := page[revisions.Summary](&s.catalogSuite, "/api/v1/algorithms/"+id+"/revisions")
	s.Require().Len(revs.Content, 2)
	s.Equal(revisions.TypeAdd, revs.Content[0].Type)
	s.Equal(revisions.TypeMod, revs.Content[1].Type)

	var rev revisions.Revision
	resp = s.Client.GET("/api/v1/algorithms/" + id + "/revisions/" + itoa(revs.Content[1].Number))
	s.requireStatus(resp, http.StatusOK)
	s.Require().NoError(resp.JSON(&rev))
	s.Contains(string(rev.Snapshot), "exponential (conditional)")

	resp = s.Client.GET("/api/v1/algorithms/" + id + "/revisions/999999")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
