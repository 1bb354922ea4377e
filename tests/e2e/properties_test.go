package e2e

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/testutil"
)

type PropertiesSuite struct {
	catalogSuite
}

func TestPropertiesSuite(t *testing.T) {
	s := new(PropertiesSuite)
	s.SetDBSuffix("properties")
	suite.Run(t, s)
}

func (s *PropertiesSuite) TestPropertyWithExistingType() {
	typeID := s.MustCreate("/api/v1/compute-resource-property-types", map[string]any{
		"name":     "gate fidelity",
		"datatype": "FLOAT",
	})
	cr := s.computeResource("Falcon")
	base := "/api/v1/compute-resources/" + cr + "/compute-resource-properties"

	resp := s.Client.POST(base, testutil.WithJSONBody(map[string]any{
		"value": " 0.9990 ",
		"type":  map[string]string{"id": typeID},
	}))
	s.requireStatus(resp, http.StatusCreated)

	var p catalog.ComputeResourceProperty
	s.Require().NoError(resp.JSON(&p))
	s.Equal("0.999", p.Value)
	s.Require().NotNil(p.ComputeResourceID)
	s.Equal(cr, *p.ComputeResourceID)
	s.Require().NotNil(p.Type)
	s.Equal(typeID, p.Type.ID)

	resp = s.Client.POST(base, testutil.WithJSONBody(map[string]any{
		"value": "high",
		"type":  map[string]string{"id": typeID},
	}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// The type is in use.
	s.Equal(http.StatusBadRequest, s.Client.DELETE("/api/v1/compute-resource-property-types/"+typeID).StatusCode)

	s.requireStatus(s.Client.DELETE(base+"/"+p.ID), http.StatusNoContent)
	s.requireStatus(s.Client.DELETE("/api/v1/compute-resource-property-types/"+typeID), http.StatusNoContent)
}

func (s *PropertiesSuite) TestPropertyCreatesTypeInline() {
	alg := s.quantumAlgorithm("Shor")
	base := "/api/v1/algorithms/" + alg + "/compute-resource-properties"

	resp := s.Client.POST(base, testutil.WithJSONBody(map[string]any{
		"value": "yes",
		"type":  map[string]string{"name": "error correction", "datatype": "BOOLEAN"},
	}))
	s.requireStatus(resp, http.StatusCreated)
	propID := resp.ID()

	props := page[catalog.ComputeResourceProperty](&s.catalogSuite, base)
	s.Require().Len(props.Content, 1)
	s.Equal("true", props.Content[0].Value)

	types := page[catalog.ComputeResourcePropertyType](&s.catalogSuite, "/api/v1/compute-resource-property-types")
	s.Require().Len(types.Content, 1)
	s.Equal(catalog.DataType("BOOLEAN"), types.Content[0].Datatype)

	resp = s.Client.PUT(base+"/"+propID, testutil.WithJSONBody(map[string]any{
		"value": "0",
		"type":  map[string]string{"id": types.Content[0].ID},
	}))
	s.requireStatus(resp, http.StatusOK)
	s.Contains(resp.String(), `"value":"false"`)
}

func (s *PropertiesSuite) TestPropertyScopedToOwner() {
	typeID := s.MustCreate("/api/v1/compute-resource-property-types", map[string]any{
		"name":     "qubits",
		"datatype": "INTEGER",
	})
	alg := s.quantumAlgorithm("Grover")
	other := s.quantumAlgorithm("QAOA")

	resp := s.Client.POST("/api/v1/algorithms/"+alg+"/compute-resource-properties", testutil.WithJSONBody(map[string]any{
		"value": "7",
		"type":  map[string]string{"id": typeID},
	}))
	s.requireStatus(resp, http.StatusCreated)
	propID := resp.ID()

	resp = s.Client.GET("/api/v1/algorithms/" + other + "/compute-resource-properties/" + propID)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	// A client-chosen id must refer to an existing property.
	resp = s.Client.POST("/api/v1/algorithms/"+alg+"/compute-resource-properties", testutil.WithJSONBody(map[string]any{
		"id":    uuid.NewString(),
		"value": "8",
		"type":  map[string]string{"id": typeID},
	}))
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.Client.POST("/api/v1/algorithms/"+alg+"/compute-resource-properties", testutil.WithJSONBody(map[string]any{
		"value": "8",
	}))
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
