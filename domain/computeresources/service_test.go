package computeresources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestComputeResourceRequest_Apply(t *testing.T) {
	cr := &catalog.ComputeResource{}
	err := ComputeResourceRequest{
		Name:                    " ibmq_manila ",
		Vendor:                  "IBM",
		Technology:              "superconducting",
		QuantumComputationModel: catalog.GateBased,
	}.apply(cr)

	require.NoError(t, err)
	assert.Equal(t, "ibmq_manila", cr.Name)
	assert.Equal(t, catalog.GateBased, cr.QuantumComputationModel)
}

func TestComputeResourceRequest_Apply_ModelIsOptional(t *testing.T) {
	cr := &catalog.ComputeResource{QuantumComputationModel: catalog.QuantumAnnealing}
	require.NoError(t, ComputeResourceRequest{Name: "simulator"}.apply(cr))
	assert.Empty(t, cr.QuantumComputationModel)
}

func TestComputeResourceRequest_Apply_Invalid(t *testing.T) {
	assert.ErrorIs(t, ComputeResourceRequest{}.apply(&catalog.ComputeResource{}), apperror.ErrValidation)
	assert.ErrorIs(t, ComputeResourceRequest{Name: "x", QuantumComputationModel: "ADIABATIC"}.apply(&catalog.ComputeResource{}), apperror.ErrValidation)
}

func TestComputeResourceRequest_Apply_Qubits(t *testing.T) {
	qubits := 27
	cr := &catalog.ComputeResource{}
	require.NoError(t, ComputeResourceRequest{Name: "ibmq_toronto", NumberOfQubits: &qubits}.apply(cr))
	require.NotNil(t, cr.NumberOfQubits)
	assert.Equal(t, 27, *cr.NumberOfQubits)

	negative := -1
	assert.ErrorIs(t, ComputeResourceRequest{Name: "x", NumberOfQubits: &negative}.apply(&catalog.ComputeResource{}), apperror.ErrValidation)
}

func TestComputeResourceRequest_Apply_SdkIDsMustBeUUIDs(t *testing.T) {
	err := ComputeResourceRequest{Name: "x", SupportedSdkIDs: []string{"qiskit"}}.apply(&catalog.ComputeResource{})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}
