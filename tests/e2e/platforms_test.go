package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/testutil"
)

type PlatformsSuite struct {
	catalogSuite
}

func TestPlatformsSuite(t *testing.T) {
	s := new(PlatformsSuite)
	s.SetDBSuffix("platforms")
	suite.Run(t, s)
}

func (s *PlatformsSuite) TestSoftwarePlatformCRUD() {
	id := s.softwarePlatform("Qiskit")

	resp := s.Client.PUT("/api/v1/software-platforms/"+id, testutil.WithJSONBody(map[string]any{
		"name":    "Qiskit",
		"version": "1.0",
		"licence": "Apache-2.0",
	}))
	s.requireStatus(resp, http.StatusOK)

	var sp catalog.SoftwarePlatform
	s.Require().NoError(resp.JSON(&sp))
	s.Equal("1.0", sp.Version)
	s.Equal("Apache-2.0", sp.Licence)

	p := page[catalog.SoftwarePlatform](&s.catalogSuite, "/api/v1/software-platforms")
	s.Len(p.Content, 1)

	s.requireStatus(s.Client.DELETE("/api/v1/software-platforms/"+id), http.StatusNoContent)
	s.Equal(http.StatusNotFound, s.Client.GET("/api/v1/software-platforms/"+id).StatusCode)
}

func (s *PlatformsSuite) TestPlatformLinksBothDirections() {
	sp := s.softwarePlatform("Cirq")
	cs := s.cloudService("Quantum Engine")
	cr := s.computeResource("Sycamore")

	s.link("/api/v1/software-platforms/"+sp+"/cloud-services", cs)
	s.link("/api/v1/software-platforms/"+sp+"/compute-resources", cr)
	s.link("/api/v1/cloud-services/"+cs+"/compute-resources", cr)

	services := page[catalog.CloudService](&s.catalogSuite, "/api/v1/software-platforms/"+sp+"/cloud-services")
	s.Require().Len(services.Content, 1)
	s.Equal(cs, services.Content[0].ID)

	platforms := page[catalog.SoftwarePlatform](&s.catalogSuite, "/api/v1/compute-resources/"+cr+"/software-platforms")
	s.Require().Len(platforms.Content, 1)
	s.Equal(sp, platforms.Content[0].ID)

	services = page[catalog.CloudService](&s.catalogSuite, "/api/v1/compute-resources/"+cr+"/cloud-services")
	s.Len(services.Content, 1)

	platforms = page[catalog.SoftwarePlatform](&s.catalogSuite, "/api/v1/cloud-services/"+cs+"/software-platforms")
	s.Len(platforms.Content, 1)

	resp := s.Client.POST("/api/v1/software-platforms/"+sp+"/cloud-services",
		testutil.WithJSONBody(map[string]string{"id": cs}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	s.requireStatus(s.Client.DELETE("/api/v1/software-platforms/"+sp+"/cloud-services/"+cs), http.StatusNoContent)
	s.Equal(http.StatusNotFound, s.Client.GET("/api/v1/software-platforms/"+sp+"/cloud-services/"+cs).StatusCode)
}

func (s *PlatformsSuite) TestComputeResourceDeleteGuard() {
	sp := s.softwarePlatform("Braket SDK")
	cr := s.computeResource("Aria")
	s.link("/api/v1/software-platforms/"+sp+"/compute-resources", cr)

	resp := s.Client.DELETE("/api/v1/compute-resources/" + cr)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(resp.ErrorMessage(), "cannot be deleted")
	s.Equal(http.StatusOK, s.Client.GET("/api/v1/compute-resources/"+cr).StatusCode)

	s.requireStatus(s.Client.DELETE("/api/v1/software-platforms/"+sp+"/compute-resources/"+cr), http.StatusNoContent)
	s.requireStatus(s.Client.DELETE("/api/v1/compute-resources/"+cr), http.StatusNoContent)
}

func (s *PlatformsSuite) TestDeletingPlatformUnlinksImplementations() {
	alg := s.quantumAlgorithm("Grover")
	impl := s.implementation(alg, "grover-qiskit")
	sp := s.softwarePlatform("Qiskit")
	s.link("/api/v1/implementations/"+impl+"/software-platforms", sp)

	impls := page[catalog.Implementation](&s.catalogSuite, "/api/v1/software-platforms/"+sp+"/implementations")
	s.Require().Len(impls.Content, 1)
	s.Equal(impl, impls.Content[0].ID)

	s.requireStatus(s.Client.DELETE("/api/v1/software-platforms/"+sp), http.StatusNoContent)

	platforms := page[catalog.SoftwarePlatform](&s.catalogSuite, "/api/v1/implementations/"+impl+"/software-platforms")
	s.Empty(platforms.Content)
	s.Equal(http.StatusOK, s.Client.GET("/api/v1/implementations/"+impl).StatusCode)
}

func (s *PlatformsSuite) TestComputeResourceValidation() {
	resp := s.Client.POST("/api/v1/compute-resources", testutil.WithJSONBody(map[string]any{
		"name":                    "Bad",
		"quantumComputationModel": "ANALOG",
	}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.Client.POST("/api/v1/software-platforms", testutil.WithJSONBody(map[string]any{"name": ""}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
