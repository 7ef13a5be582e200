package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/okuafopa/order-core/internal/dal/interfaces/ikvrepo"
)

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresKVRepository is the durable key-value store backing cart
// persistence and the saved credential token.
type PostgresKVRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresKVRepository creates a new Postgres key-value repository.
func NewPostgresKVRepository(conn GenericConn) *PostgresKVRepository {
	return &PostgresKVRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get returns the stored value for key, or ikvrepo.ErrNotFound.
func (r *PostgresKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := r.sb.
		Select("value").
		From("kv_store").
		Where(sq.Eq{"key": key})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var value []byte
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ikvrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *PostgresKVRepository) Set(ctx context.Context, key string, value []byte) error {
	query := r.sb.
		Insert("kv_store").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes the value for key. Deleting a missing key is not an error.
func (r *PostgresKVRepository) Delete(ctx context.Context, key string) error {
	query := r.sb.
		Delete("kv_store").
		Where(sq.Eq{"key": key})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}
