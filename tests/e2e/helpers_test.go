package e2e

import (
	"net/http"
	"strconv"

	"github.com/emergent-company/atlas/internal/testutil"
	"github.com/emergent-company/atlas/pkg/paging"
)

// catalogSuite adds fixture builders on top of BaseSuite.
type catalogSuite struct {
	testutil.BaseSuite
}

func (s *catalogSuite) quantumAlgorithm(name string) string {
	return s.MustCreate("/api/v1/algorithms", map[string]any{
		"name":                    name,
		"computationModel":        "QUANTUM",
		"quantumComputationModel": "GATE_BASED",
		"nisqReady":               true,
		"speedUp":                 "exponential",
	})
}

func (s *catalogSuite) classicAlgorithm(name string) string {
	return s.MustCreate("/api/v1/algorithms", map[string]any{
		"name":             name,
		"computationModel": "CLASSIC",
	})
}

func (s *catalogSuite) implementation(algorithmID, name string) string {
	return s.MustCreate("/api/v1/algorithms/"+algorithmID+"/implementations", map[string]any{
		"name":       name,
		"technology": "qiskit",
	})
}

func (s *catalogSuite) publication(title string) string {
	return s.MustCreate("/api/v1/publications", map[string]any{
		"title":   title,
		"authors": []string{"Ada Lovelace"},
	})
}

func (s *catalogSuite) softwarePlatform(name string) string {
	return s.MustCreate("/api/v1/software-platforms", map[string]any{"name": name})
}

func (s *catalogSuite) computeResource(name string) string {
	return s.MustCreate("/api/v1/compute-resources", map[string]any{
		"name":                    name,
		"vendor":                  "IBM",
		"quantumComputationModel": "GATE_BASED",
	})
}

func (s *catalogSuite) cloudService(name string) string {
	return s.MustCreate("/api/v1/cloud-services", map[string]any{"name": name, "provider": "IBM"})
}

// link POSTs {"id": otherID} to path and requires 204.
func (s *catalogSuite) link(path, otherID string) {
	resp := s.Client.POST(path, testutil.WithJSONBody(map[string]string{"id": otherID}))
	s.Require().Equal(http.StatusNoContent, resp.StatusCode, resp.String())
}

// page GETs a list endpoint and decodes it into a page of T.
func page[T any](s *catalogSuite, path string) paging.Page[T] {
	resp := s.Client.GET(path)
	s.Require().Equal(http.StatusOK, resp.StatusCode, resp.String())
	var p paging.Page[T]
	s.Require().NoError(resp.JSON(&p))
	return p
}

func (s *catalogSuite) requireStatus(resp *testutil.HTTPResponse, status int) {
	s.Require().Equal(status, resp.StatusCode, resp.String())
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
