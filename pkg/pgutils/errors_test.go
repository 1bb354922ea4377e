package pgutils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg error", &pgconn.PgError{Code: CodeForeignKeyViolation}, true},
		{"wrapped pg error", fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeForeignKeyViolation}), true},
		{"other pg code", &pgconn.PgError{Code: "23505"}, false},
		{"pgdriver message", errors.New("ERROR #23503 insert or update violates foreign key"), true},
		{"SQLSTATE message", errors.New("violates foreign key (SQLSTATE 23503)"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsForeignKeyViolation(tt.err))
		})
	}
}
