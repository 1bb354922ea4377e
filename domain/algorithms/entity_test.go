package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
)

func ptr[T any](v T) *T { return &v }

func TestAlgorithmRequest_Apply(t *testing.T) {
	tests := []struct {
		name    string
		req     AlgorithmRequest
		wantErr error
		check   func(t *testing.T, a *catalog.Algorithm)
	}{
		{
			name: "quantum keeps quantum fields",
			req: AlgorithmRequest{
				Name:                    "Grover",
				Acronym:                 " GRV ",
				ComputationModel:        catalog.ComputationQuantum,
				NisqReady:               ptr(false),
				QuantumComputationModel: catalog.GateBased,
				SpeedUp:                 "quadratic",
			},
			check: func(t *testing.T, a *catalog.Algorithm) {
				assert.Equal(t, "GRV", a.Acronym)
				require.NotNil(t, a.NisqReady)
				assert.False(t, *a.NisqReady)
				assert.Equal(t, catalog.GateBased, a.QuantumComputationModel)
				assert.Equal(t, "quadratic", a.SpeedUp)
			},
		},
		{
			name: "classic clears quantum fields",
			req: AlgorithmRequest{
				Name:                    "Quicksort",
				ComputationModel:        catalog.ComputationClassic,
				NisqReady:               ptr(true),
				QuantumComputationModel: catalog.QuantumAnnealing,
				SpeedUp:                 "none",
			},
			check: func(t *testing.T, a *catalog.Algorithm) {
				assert.Nil(t, a.NisqReady)
				assert.Empty(t, a.QuantumComputationModel)
				assert.Empty(t, a.SpeedUp)
			},
		},
		{
			name:    "name required",
			req:     AlgorithmRequest{ComputationModel: catalog.ComputationHybrid},
			wantErr: apperror.ErrValidation,
		},
		{
			name:    "unknown computation model",
			req:     AlgorithmRequest{Name: "VQE", ComputationModel: "ANALOG"},
			wantErr: apperror.ErrValidation,
		},
		{
			name: "unknown quantum model on hybrid",
			req: AlgorithmRequest{
				Name:                    "VQE",
				ComputationModel:        catalog.ComputationHybrid,
				QuantumComputationModel: "PHOTONIC",
			},
			wantErr: apperror.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &catalog.Algorithm{
				NisqReady:               ptr(true),
				QuantumComputationModel: catalog.MeasurementBased,
				SpeedUp:                 "exponential",
			}
			err := tt.req.apply(a)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, a)
		})
	}
}
