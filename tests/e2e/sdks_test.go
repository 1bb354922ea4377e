package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/testutil"
)

// SdksSuite covers SDKs, the compute resources they support and the
// implementations written against them.
type SdksSuite struct {
	catalogSuite
}

func TestSdksSuite(t *testing.T) {
	s := new(SdksSuite)
	s.SetDBSuffix("sdks")
	suite.Run(t, s)
}

func (s *SdksSuite) sdk(name string) string {
	return s.MustCreate("/api/v1/sdks", map[string]any{"name": name})
}

func (s *SdksSuite) getImplementation(id string) catalog.Implementation {
	resp := s.Client.GET("/api/v1/implementations/" + id)
	s.requireStatus(resp, http.StatusOK)
	var impl catalog.Implementation
	s.Require().NoError(resp.JSON(&impl))
	return impl
}

func (s *SdksSuite) TestDuplicateNameIsRejected() {
	s.sdk("Qiskit")

	resp := s.Client.POST("/api/v1/sdks", testutil.WithJSONBody(map[string]any{"name": "Qiskit"}))
	s.requireStatus(resp, http.StatusBadRequest)
	s.Equal("entity_reference_constraint_violation", resp.ErrorCode())

	other := s.sdk("Cirq")
	resp = s.Client.PUT("/api/v1/sdks/"+other, testutil.WithJSONBody(map[string]any{"name": "Qiskit"}))
	s.requireStatus(resp, http.StatusBadRequest)

	resp = s.Client.PUT("/api/v1/sdks/"+other, testutil.WithJSONBody(map[string]any{"name": "Cirq"}))
	s.requireStatus(resp, http.StatusOK)
}

func (s *SdksSuite) TestComputeResourceWithSupportedSdks() {
	qiskit := s.sdk("Qiskit")
	pyquil := s.sdk("pyQuil")

	id := s.MustCreate("/api/v1/compute-resources", map[string]any{
		"name":            "ibmq_toronto",
		"numberOfQubits":  27,
		"supportedSdkIds": []string{qiskit},
	})

	resp := s.Client.GET("/api/v1/compute-resources/" + id)
	s.requireStatus(resp, http.StatusOK)
	var cr catalog.ComputeResource
	s.Require().NoError(resp.JSON(&cr))
	s.Require().NotNil(cr.NumberOfQubits)
	s.Equal(27, *cr.NumberOfQubits)

	sdks := page[catalog.Sdk](&s.catalogSuite, "/api/v1/compute-resources/"+id+"/sdks")
	s.Require().Len(sdks.Content, 1)
	s.Equal("Qiskit", sdks.Content[0].Name)

	resp = s.Client.PUT("/api/v1/compute-resources/"+id, testutil.WithJSONBody(map[string]any{
		"name":            "ibmq_toronto",
		"numberOfQubits":  27,
		"supportedSdkIds": []string{pyquil},
	}))
	s.requireStatus(resp, http.StatusOK)
	sdks = page[catalog.Sdk](&s.catalogSuite, "/api/v1/compute-resources/"+id+"/sdks")
	s.Require().Len(sdks.Content, 1)
	s.Equal("pyQuil", sdks.Content[0].Name)

	resources := page[catalog.ComputeResource](&s.catalogSuite, "/api/v1/sdks/"+pyquil+"/compute-resources")
	s.Require().Len(resources.Content, 1)
	s.Equal(id, resources.Content[0].ID)
	s.Empty(page[catalog.ComputeResource](&s.catalogSuite, "/api/v1/sdks/"+qiskit+"/compute-resources").Content)
}

func (s *SdksSuite) TestComputeResourceWithUnknownSdkIsRejected() {
	resp := s.Client.POST("/api/v1/compute-resources", testutil.WithJSONBody(map[string]any{
		"name":            "rigetti_aspen",
		"supportedSdkIds": []string{"5c1f7f3e-0b5a-4c8e-9d2a-0e7c1b2d3f40"},
	}))
	s.requireStatus(resp, http.StatusBadRequest)
	s.Equal("validation_error", resp.ErrorCode())

	s.Empty(page[catalog.ComputeResource](&s.catalogSuite, "/api/v1/compute-resources?search=rigetti").Content)
}

func (s *SdksSuite) TestLinkComputeResource() {
	qiskit := s.sdk("Qiskit")
	cr := s.computeResource("ibmq_manila")

	s.link("/api/v1/sdks/"+qiskit+"/compute-resources", cr)

	resp := s.Client.POST("/api/v1/sdks/"+qiskit+"/compute-resources", testutil.WithJSONBody(map[string]string{"id": cr}))
	s.requireStatus(resp, http.StatusBadRequest)

	resp = s.Client.GET("/api/v1/sdks/" + qiskit + "/compute-resources/" + cr)
	s.requireStatus(resp, http.StatusOK)

	resp = s.Client.DELETE("/api/v1/sdks/" + qiskit + "/compute-resources/" + cr)
	s.requireStatus(resp, http.StatusNoContent)

	resp = s.Client.GET("/api/v1/sdks/" + qiskit + "/compute-resources/" + cr)
	s.requireStatus(resp, http.StatusNotFound)
}

func (s *SdksSuite) TestImplementationSdkFields() {
	qiskit := s.sdk("Qiskit")
	alg := s.quantumAlgorithm("Grover")

	id := s.MustCreate("/api/v1/algorithms/"+alg+"/implementations", map[string]any{
		"name":                "Grover on Qiskit",
		"sdkId":               qiskit,
		"programmingLanguage": "Python",
		"selectionRule":       "executionTime(X) :- X < 10.",
	})

	impl := s.getImplementation(id)
	s.Require().NotNil(impl.SdkID)
	s.Equal(qiskit, *impl.SdkID)
	s.Equal("Python", impl.ProgrammingLanguage)
	s.Equal("executionTime(X) :- X < 10.", impl.SelectionRule)

	impls := page[catalog.Implementation](&s.catalogSuite, "/api/v1/sdks/"+qiskit+"/implementations")
	s.Require().Len(impls.Content, 1)
	s.Equal(id, impls.Content[0].ID)
}

func (s *SdksSuite) TestImplementationWithUnknownSdkIsNotFound() {
	alg := s.quantumAlgorithm("Shor")

	resp := s.Client.POST("/api/v1/algorithms/"+alg+"/implementations", testutil.WithJSONBody(map[string]any{
		"name":  "Shor on nothing",
		"sdkId": "5c1f7f3e-0b5a-4c8e-9d2a-0e7c1b2d3f40",
	}))
	s.requireStatus(resp, http.StatusNotFound)
	s.Equal("not_found", resp.ErrorCode())
}

func (s *SdksSuite) TestDeleteClearsImplementationsAndLinks() {
	qiskit := s.sdk("Qiskit")
	cr := s.computeResource("ibmq_lima")
	s.link("/api/v1/sdks/"+qiskit+"/compute-resources", cr)
	alg := s.quantumAlgorithm("Deutsch-Jozsa")
	id := s.MustCreate("/api/v1/algorithms/"+alg+"/implementations", map[string]any{
		"name":  "DJ on Qiskit",
		"sdkId": qiskit,
	})

	resp := s.Client.DELETE("/api/v1/sdks/" + qiskit)
	s.requireStatus(resp, http.StatusNoContent)

	s.Nil(s.getImplementation(id).SdkID)
	s.Empty(page[catalog.Sdk](&s.catalogSuite, "/api/v1/compute-resources/"+cr+"/sdks").Content)

	resp = s.Client.GET("/api/v1/sdks/" + qiskit)
	s.requireStatus(resp, http.StatusNotFound)
}

func (s *SdksSuite) TestDeleteComputeResourceRemovesSdkLinks() {
	qiskit := s.sdk("Qiskit")
	cr := s.computeResource("ibmq_quito")
	s.link("/api/v1/sdks/"+qiskit+"/compute-resources", cr)

	resp := s.Client.DELETE("/api/v1/compute-resources/" + cr)
	s.requireStatus(resp, http.StatusNoContent)

	s.Empty(page[catalog.ComputeResource](&s.catalogSuite, "/api/v1/sdks/"+qiskit+"/compute-resources").Content)
}
