package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sessionRepo implements SessionRepo on the session_payloads table.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Save(ctx context.Context, scope, key string, payload []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSessionPayloads).
		Columns("scope", "key", "payload", "updated_at").
		Values(scope, key, string(payload), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("scope", "key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session payload %s/%s: %w", scope, key, err)
	}
	return nil
}

func (r *sessionRepo) Load(ctx context.Context, scope, key string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("payload").
		From(entsql.Table(tableSessionPayloads)).
		Where(entsql.And(entsql.EQ("scope", scope), entsql.EQ("key", key))).
		Query()

	var payload string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session payload %s/%s: %w", scope, key, err)
	}
	return []byte(payload), nil
}

func (r *sessionRepo) Delete(ctx context.Context, scope, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(tableSessionPayloads).
		Where(entsql.And(entsql.EQ("scope", scope), entsql.EQ("key", key))).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session payload %s/%s: %w", scope, key, err)
	}
	return nil
}
