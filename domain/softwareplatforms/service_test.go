package softwareplatforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestSoftwarePlatformRequest_Apply(t *testing.T) {
	sp := &catalog.SoftwarePlatform{Name: "old"}
	err := SoftwarePlatformRequest{
		Name:    "Qiskit",
		Link:    "https://qiskit.org",
		Licence: " Apache 2.0 ",
		Version: "0.45",
	}.apply(sp)

	require.NoError(t, err)
	assert.Equal(t, "Qiskit", sp.Name)
	assert.Equal(t, "https://qiskit.org", sp.Link)
	assert.Equal(t, "Apache 2.0", sp.Licence)
	assert.Equal(t, "0.45", sp.Version)
}

func TestSoftwarePlatformRequest_Apply_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  SoftwarePlatformRequest
	}{
		{"missing name", SoftwarePlatformRequest{Link: "https://qiskit.org"}},
		{"relative link", SoftwarePlatformRequest{Name: "Qiskit", Link: "qiskit.org"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.req.apply(&catalog.SoftwarePlatform{}), apperror.ErrValidation)
		})
	}
}
