package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/internal/config"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: "unnamed"},
		{name: "simple filename", input: "grover.qasm", expected: "grover.qasm"},
		{name: "case is kept", input: "Grover.QASM", expected: "Grover.QASM"},
		{name: "spaces replaced with underscore", input: "shor circuit.py", expected: "shor_circuit.py"},
		{name: "multiple spaces collapsed", input: "shor   circuit.py", expected: "shor_circuit.py"},
		{name: "special characters replaced", input: "qft@#$%v2.py", expected: "qft_v2.py"},
		{name: "leading underscore trimmed", input: "_notebook.ipynb", expected: "notebook.ipynb"},
		{name: "parentheses replaced", input: "vqe (1).py", expected: "vqe_1_.py"},
		{name: "dashes preserved", input: "hhl-solver.py", expected: "hhl-solver.py"},
		{name: "all special chars becomes unnamed", input: "@#$%^&*()", expected: "unnamed"},
		{name: "very long filename truncated", input: strings.Repeat("a", 300), expected: strings.Repeat("a", 200)},
		{name: "path separators replaced", input: "../../etc/passwd", expected: ".._.._etc_passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestObjectKey(t *testing.T) {
	const impl = "0b3e8f52-93a4-4f0e-8f8e-6f3b2d9c1a22"

	assert.Equal(t, impl+"/grover.qasm", ObjectKey(impl, "grover.qasm"))
	assert.Equal(t, impl+"/unnamed", ObjectKey(impl, ""))
	assert.Equal(t, ObjectKey(impl, "shor circuit.py"), ObjectKey(impl, "shor  circuit.py"))
	assert.NotEqual(t, ObjectKey(impl, "A.txt"), ObjectKey(impl, "a.txt"))
}

func newTestService(attempts uint) *Service {
	return &Service{
		cfg: config.StorageConfig{RetryAttempts: attempts, RetryDelay: time.Millisecond},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRetry_RecoversFromTransientFailures(t *testing.T) {
	s := newTestService(3)
	calls := 0
	err := s.retry(context.Background(), "put", "k", func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUpAfterAttempts(t *testing.T) {
	s := newTestService(2)
	calls := 0
	err := s.retry(context.Background(), "put", "k", func() error {
		calls++
		return errors.New("connection reset")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put failed")
	assert.Equal(t, 2, calls)
}

func TestRetry_NotFoundIsNotRetried(t *testing.T) {
	s := newTestService(5)
	calls := 0
	err := s.retry(context.Background(), "get", "k", func() error {
		calls++
		return ErrObjectNotFound
	})
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Equal(t, 1, calls)
}

func TestDisabledService(t *testing.T) {
	s := newTestService(1)
	assert.False(t, s.Enabled())

	ctx := context.Background()
	assert.ErrorIs(t, s.Put(ctx, "k", []byte("x"), ""), ErrNotConfigured)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, s.Delete(ctx, "k"), ErrNotConfigured)
}
