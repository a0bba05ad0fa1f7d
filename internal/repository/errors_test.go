package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

// TestMapPgErrorUniqueViolation проверяет преобразование нарушения уникальности.
func TestMapPgErrorUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})

	if got := mapPgError(wrapped); !errors.Is(got, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", got)
	}
}

// TestMapPgErrorPassthrough проверяет прозрачность для остальных ошибок.
func TestMapPgErrorPassthrough(t *testing.T) {
	other := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	if got := mapPgError(other); !errors.Is(got, other) {
		t.Fatalf("expected passthrough, got %v", got)
	}

	plain := errors.New("boom")
	if got := mapPgError(plain); !errors.Is(got, plain) {
		t.Fatalf("expected passthrough, got %v", got)
	}

	if got := mapPgError(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
