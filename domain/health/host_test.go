package health

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostSampler_Sample(t *testing.T) {
	s := &hostSampler{
		memStats: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 8 * 1024 * 1024 * 1024, UsedPercent: 42.5}, nil
		},
		loadAvg: func(context.Context) (*load.AvgStat, error) {
			return &load.AvgStat{Load1: 1, Load5: 0.5, Load15: 0.25}, nil
		},
	}

	st, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(8192), st.MemoryTotalMB)
	assert.Equal(t, 42.5, st.MemoryUsedPercent)
	assert.Equal(t, 0.25, st.Load15)
	assert.Positive(t, st.CPUCores)
}

func TestHostSampler_LoadUnavailable(t *testing.T) {
	s := &hostSampler{
		memStats: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 1024 * 1024}, nil
		},
		loadAvg: func(context.Context) (*load.AvgStat, error) {
			return nil, errors.New("not supported")
		},
	}

	st, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.Load1)
}

func TestHostSampler_MemoryError(t *testing.T) {
	s := &hostSampler{
		memStats: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return nil, errors.New("boom")
		},
	}
	_, err := s.Sample(context.Background())
	assert.Error(t, err)
}
