package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name     string
		datatype catalog.DataType
		value    string
		want     string
		wantErr  bool
	}{
		{"integer", catalog.DataTypeInteger, " 42 ", "42", false},
		{"negative integer", catalog.DataTypeInteger, "-7", "-7", false},
		{"integer rejects float", catalog.DataTypeInteger, "4.2", "", true},
		{"integer rejects text", catalog.DataTypeInteger, "many", "", true},
		{"float", catalog.DataTypeFloat, "0.001", "0.001", false},
		{"float from integer", catalog.DataTypeFloat, "5", "5", false},
		{"float exponent", catalog.DataTypeFloat, "1e-3", "0.001", false},
		{"float rejects text", catalog.DataTypeFloat, "fast", "", true},
		{"boolean true", catalog.DataTypeBoolean, "TRUE", "true", false},
		{"boolean yes", catalog.DataTypeBoolean, "yes", "true", false},
		{"boolean zero", catalog.DataTypeBoolean, "0", "false", false},
		{"boolean rejects text", catalog.DataTypeBoolean, "maybe", "", true},
		{"string keeps value", catalog.DataTypeString, " ibmq ", " ibmq ", false},
		{"empty value allowed", catalog.DataTypeInteger, "  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceValue(tt.datatype, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperror.ErrInvalidPropertyValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceValue_UnknownDatatype(t *testing.T) {
	_, err := CoerceValue(catalog.DataType("DATE"), "2020-01-01")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestValidateType(t *testing.T) {
	assert.NoError(t, validateType(PropertyTypeRequest{Name: "qubits", Datatype: catalog.DataTypeInteger}))
	assert.ErrorIs(t, validateType(PropertyTypeRequest{Name: " ", Datatype: catalog.DataTypeInteger}), apperror.ErrValidation)
	assert.ErrorIs(t, validateType(PropertyTypeRequest{Name: "qubits", Datatype: "NUMBER"}), apperror.ErrValidation)
}

func TestOwner(t *testing.T) {
	p := &catalog.ComputeResourceProperty{}
	alg := AlgorithmOwner("a1")
	alg.attach(p)

	assert.True(t, alg.owns(p))
	assert.False(t, ImplementationOwner("a1").owns(p))

	cr := ComputeResourceOwner("c1")
	cr.attach(p)
	assert.Nil(t, p.AlgorithmID)
	assert.True(t, cr.owns(p))
}
