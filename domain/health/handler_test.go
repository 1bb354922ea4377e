package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverall(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]Check
		want   string
	}{
		{"all healthy", map[string]Check{"database": {Status: StatusHealthy}, "storage": {Status: StatusHealthy}}, StatusHealthy},
		{"storage disabled", map[string]Check{"database": {Status: StatusHealthy}, "storage": {Status: StatusDisabled}}, StatusHealthy},
		{"storage failing", map[string]Check{"database": {Status: StatusHealthy}, "storage": {Status: StatusDegraded}}, StatusDegraded},
		{"database down", map[string]Check{"database": {Status: StatusUnhealthy}, "storage": {Status: StatusDegraded}}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overall(tt.checks))
		})
	}
}

func TestCheckOf(t *testing.T) {
	assert.Equal(t, Check{Status: StatusHealthy}, checkOf(nil, StatusUnhealthy))
	assert.Equal(t, Check{Status: StatusDegraded, Message: assert.AnError.Error()}, checkOf(assert.AnError, StatusDegraded))
}
