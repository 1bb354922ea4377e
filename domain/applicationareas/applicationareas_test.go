package applicationareas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestApplicationAreaRequest_Name(t *testing.T) {
	name, err := ApplicationAreaRequest{Name: "  Chemistry "}.name()
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", name)

	_, err = ApplicationAreaRequest{Name: " "}.name()
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
