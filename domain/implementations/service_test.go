package implementations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestImplementationRequest_Apply(t *testing.T) {
	impl := &catalog.Implementation{ImplementedAlgorithmID: "alg"}
	err := ImplementationRequest{
		Name:       "  Grover on Qiskit ",
		Version:    " 1.0 ",
		Technology: "Qiskit",
		License:    "Apache-2.0",
	}.apply(impl)
	require.NoError(t, err)
	assert.Equal(t, "Grover on Qiskit", impl.Name)
	assert.Equal(t, "1.0", impl.Version)
	assert.Equal(t, "Qiskit", impl.Technology)
	assert.Equal(t, "alg", impl.ImplementedAlgorithmID)
}

func TestImplementationRequest_ApplySdk(t *testing.T) {
	sdkID := "5c1f7f3e-0b5a-4c8e-9d2a-0e7c1b2d3f40"
	impl := &catalog.Implementation{}
	err := ImplementationRequest{
		Name:                "Grover",
		SdkID:               &sdkID,
		ProgrammingLanguage: " Python ",
		SelectionRule:       "executionTime(X) :- X < 10.",
	}.apply(impl)
	require.NoError(t, err)
	require.NotNil(t, impl.SdkID)
	assert.Equal(t, sdkID, *impl.SdkID)
	assert.Equal(t, "Python", impl.ProgrammingLanguage)
	assert.Equal(t, "executionTime(X) :- X < 10.", impl.SelectionRule)

	bad := "qiskit"
	err = ImplementationRequest{Name: "Grover", SdkID: &bad}.apply(&catalog.Implementation{})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestImplementationRequest_ApplyRequiresName(t *testing.T) {
	err := ImplementationRequest{Name: "   "}.apply(&catalog.Implementation{})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCheckOfAlgorithm(t *testing.T) {
	impl := &catalog.Implementation{ID: "impl-1", ImplementedAlgorithmID: "alg-1"}
	assert.NoError(t, CheckOfAlgorithm(impl, "alg-1"))

	err := CheckOfAlgorithm(impl, "alg-2")
	require.ErrorIs(t, err, apperror.ErrNotFound)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, `Implementation with ID "impl-1" is not linked to Algorithm with ID "alg-2"`, appErr.Message)
}
