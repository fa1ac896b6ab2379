package scopeconfig

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/productattach/pkg/pg"
)

const (
	selectValueQuery = `SELECT value FROM core_config_data WHERE scope = $1 AND scope_id = $2 AND path = $3`
	upsertValueQuery = `INSERT INTO core_config_data (scope, scope_id, path, value, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (scope, scope_id, path) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// Querier is the part of *pgxpool.Pool used by PostgresSource.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresSource reads values from the core_config_data table.
type PostgresSource struct {
	db Querier
}

func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

// Lookup returns the value for one scope. A NULL value reads as "".
func (s *PostgresSource) Lookup(ctx context.Context, path string, scope Scope, scopeID int) (string, error) {
	k := newKey(path, scope, scopeID)

	var value *string
	err := s.db.QueryRow(ctx, selectValueQuery, string(k.scope), k.id, k.path).Scan(&value)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	if value == nil {
		return "", nil
	}
	return *value, nil
}

// Save inserts or replaces the value for one scope.
func (s *PostgresSource) Save(ctx context.Context, path string, scope Scope, scopeID int, value string) error {
	if !scope.Valid() {
		return ErrInvalidScope
	}
	k := newKey(path, scope, scopeID)
	if _, err := s.db.Exec(ctx, upsertValueQuery, string(k.scope), k.id, k.path, value); err != nil {
		return fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return nil
}
