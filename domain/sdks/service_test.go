package sdks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestSdkRequest_Apply(t *testing.T) {
	sdk := &catalog.Sdk{}
	require.NoError(t, SdkRequest{Name: " Qiskit "}.apply(sdk))
	assert.Equal(t, "Qiskit", sdk.Name)
}

func TestSdkRequest_Apply_Invalid(t *testing.T) {
	assert.ErrorIs(t, SdkRequest{Name: "  "}.apply(&catalog.Sdk{}), apperror.ErrValidation)
}

func TestDuplicate(t *testing.T) {
	err := duplicate("Qiskit")
	assert.ErrorIs(t, err, apperror.ErrConsistency)
	assert.Contains(t, err.Error(), `"Qiskit"`)
}
