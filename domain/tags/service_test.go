package tags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestTagRequest_Normalize(t *testing.T) {
	tag, err := TagRequest{Value: "  optimization ", Category: " problem "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "optimization", tag.Value)
	assert.Equal(t, "problem", tag.Category)
}

func TestTagRequest_Normalize_Invalid(t *testing.T) {
	_, err := TagRequest{Value: "   "}.Normalize()
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = TagRequest{Value: strings.Repeat("x", MaxValueLength+1)}.Normalize()
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
