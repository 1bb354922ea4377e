package patternrelations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestValidatePattern(t *testing.T) {
	assert.NoError(t, ValidatePattern("https://patterns.example.org/quantum/amplitude-amplification"))
	assert.NoError(t, ValidatePattern("urn:pattern:oracle"))

	for _, p := range []string{"", "amplitude-amplification", "/relative/path"} {
		err := ValidatePattern(p)
		assert.ErrorIs(t, err, apperror.ErrValidation, "pattern %q", p)
	}
}

func TestCheckAlgorithm(t *testing.T) {
	const id = "6f1c1c9e-5e0a-4c55-9d43-1c2b0a3f7d10"

	assert.NoError(t, CheckAlgorithm(id, PatternRelationRequest{AlgorithmID: id}))

	err := CheckAlgorithm(id, PatternRelationRequest{AlgorithmID: "0b3e8f52-93a4-4f0e-8f8e-6f3b2d9c1a22"})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, `AlgorithmId "`+id+`" does not match Id of the PatternRelation request body`, appErr.Message)
}
