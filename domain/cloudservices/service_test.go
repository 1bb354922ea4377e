package cloudservices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestCloudServiceRequest_Apply(t *testing.T) {
	cs := &catalog.CloudService{}
	err := CloudServiceRequest{
		Name:      " IBM Quantum ",
		Provider:  "IBM",
		URL:       "https://quantum-computing.ibm.com",
		CostModel: " pay-as-you-go ",
	}.apply(cs)

	require.NoError(t, err)
	assert.Equal(t, "IBM Quantum", cs.Name)
	assert.Equal(t, "pay-as-you-go", cs.CostModel)
}

func TestCloudServiceRequest_Apply_Invalid(t *testing.T) {
	assert.ErrorIs(t, CloudServiceRequest{}.apply(&catalog.CloudService{}), apperror.ErrValidation)
	assert.ErrorIs(t, CloudServiceRequest{Name: "x", URL: "not a url"}.apply(&catalog.CloudService{}), apperror.ErrValidation)
}
