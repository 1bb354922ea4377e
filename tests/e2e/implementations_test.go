package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/domain/revisions"
	"github.com/emergent-company/atlas/internal/testutil"
)

type ImplementationsSuite struct {
	catalogSuite
}

func TestImplementationsSuite(t *testing.T) {
	s := new(ImplementationsSuite)
	s.SetDBSuffix("implementations")
	suite.Run(t, s)
}

func (s *ImplementationsSuite) TestScopedCRUD() {
	alg := s.quantumAlgorithm("Grover")
	other := s.quantumAlgorithm("Shor")
	id := s.implementation(alg, "grover-cirq")

	resp := s.Client.GET("/api/v1/algorithms/" + alg + "/implementations/" + id)
	s.requireStatus(resp, http.StatusOK)

	var impl catalog.Implementation
	s.Require().NoError(resp.JSON(&impl))
	s.Equal(alg, impl.ImplementedAlgorithmID)
	s.Equal("qiskit", impl.Technology)

	s.Equal(http.StatusNotFound, s.Client.GET("/api/v1/algorithms/"+other+"/implementations/"+id).StatusCode)

	resp = s.Client.PUT("/api/v1/algorithms/"+alg+"/implementations/"+id, testutil.WithJSONBody(map[string]any{
		"name":    "grover-cirq",
		"version": "2.0",
	}))
	s.requireStatus(resp, http.StatusOK)
	s.Contains(resp.String(), `"version":"2.0"`)

	impls := page[catalog.Implementation](&s.catalogSuite, "/api/v1/algorithms/"+alg+"/implementations")
	s.Len(impls.Content, 1)
	s.Empty(page[catalog.Implementation](&s.catalogSuite, "/api/v1/algorithms/"+other+"/implementations").Content)

	s.requireStatus(s.Client.DELETE("/api/v1/implementations/"+id), http.StatusNoContent)
	s.Equal(http.StatusNotFound, s.Client.GET("/api/v1/implementations/"+id).StatusCode)
}

func (s *ImplementationsSuite) TestLinksAndTags() {
	alg := s.quantumAlgorithm("QAOA")
	impl := s.implementation(alg, "qaoa-pennylane")
	pub := s.publication("A Quantum Approximate Optimization Algorithm")
	sp := s.softwarePlatform("PennyLane")
	base := "/api/v1/implementations/" + impl

	s.link(base+"/publications", pub)
	s.link(base+"/software-platforms", sp)

	s.Len(page[catalog.Publication](&s.catalogSuite, base+"/publications").Content, 1)
	s.Len(page[catalog.Implementation](&s.catalogSuite, "/api/v1/publications/"+pub+"/implementations").Content, 1)

	resp := s.Client.POST(base+"/tags", testutil.WithJSONBody(map[string]string{"value": "variational"}))
	s.requireStatus(resp, http.StatusNoContent)
	s.Len(page[catalog.Implementation](&s.catalogSuite, "/api/v1/tags/variational/implementations").Content, 1)

	s.requireStatus(s.Client.DELETE("/api/v1/algorithms/"+alg+"/implementations/"+impl), http.StatusNoContent)

	s.Equal(http.StatusOK, s.Client.GET("/api/v1/publications/"+pub).StatusCode)
	s.Equal(http.StatusOK, s.Client.GET("/api/v1/software-platforms/"+sp).StatusCode)
	s.Empty(page[catalog.Implementation](&s.catalogSuite, "/api/v1/publications/"+pub+"/implementations").Content)
}

func (s *ImplementationsSuite) TestRevisions() {
	alg := s.quantumAlgorithm("VQE")
	impl := s.implementation(alg, "vqe-qiskit")

	resp := s.Client.PUT("/api/v1/implementations/"+impl, testutil.WithJSONBody(map[string]any{
		"name":    "vqe-qiskit",
		"license": "MIT",
	}))
	s.requireStatus(resp, http.StatusOK)

	revs := page[revisions.Summary](&s.catalogSuite, "/api/v1/implementations/"+impl+"/revisions")
	s.Require().Len(revs.Content, 2)
	s.Equal(revisions.TypeAdd, revs.Content[0].Type)
	s.Equal(revisions.TypeMod, revs.Content[1].Type)
}

func (s *ImplementationsSuite) TestCreateUnderUnknownAlgorithm() {
	resp := s.Client.POST("/api/v1/algorithms/00000000-0000-0000-0000-000000000000/implementations",
		testutil.WithJSONBody(map[string]any{"name": "ghost"}))
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
