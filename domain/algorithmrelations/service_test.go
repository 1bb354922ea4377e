package algorithmrelations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emergent-company/atlas/pkg/apperror"
)

const (
	algA = "6f1c1c9e-5e0a-4c55-9d43-1c2b0a3f7d10"
	algB = "0b3e8f52-93a4-4f0e-8f8e-6f3b2d9c1a22"
	algC = "c7d2a1e0-1f3b-4c8d-9e6a-2b4f5d7c8e33"
)

func TestValidateBody(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		req     RelationRequest
		wantErr error
		message string
	}{
		{
			name: "path is source",
			path: algA,
			req:  RelationRequest{SourceAlgorithmID: algA, TargetAlgorithmID: algB},
		},
		{
			name: "path is target",
			path: algB,
			req:  RelationRequest{SourceAlgorithmID: algA, TargetAlgorithmID: algB},
		},
		{
			name:    "path on neither end",
			path:    algC,
			req:     RelationRequest{SourceAlgorithmID: algA, TargetAlgorithmID: algB},
			wantErr: apperror.ErrBadRequest,
			message: `AlgorithmId "` + algC + `" does not match any Ids of the AlgorithmRelation request body`,
		},
		{
			name:    "target is not a uuid",
			path:    algA,
			req:     RelationRequest{SourceAlgorithmID: algA, TargetAlgorithmID: "grover"},
			wantErr: apperror.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBody(tt.path, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.message != "" {
				var appErr *apperror.Error
				if assert.ErrorAs(t, err, &appErr) {
					assert.Equal(t, tt.message, appErr.Message)
				}
			}
		})
	}
}
