// Package sqlxstore keeps portal sessions in the postgres session_values table.
package sqlxstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

const (
	getQuery    = `SELECT value FROM session_values WHERE key = $1`
	upsertQuery = `INSERT INTO session_values (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteQuery = `DELETE FROM session_values WHERE key IN (?)`
	pruneQuery  = `DELETE FROM session_values WHERE updated_at < $1`
)

type Storage struct {
	db *sqlx.DB
}

var _ session.Storage = (*Storage)(nil)

func New(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.db.GetContext(ctx, &value, getQuery, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", session.ErrNotFound
		}
		return "", wrap(err, "reading session value")
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, upsertQuery, key, value); err != nil {
		return wrap(err, "writing session value")
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In(deleteQuery, keys)
	if err != nil {
		return errors.Wrap(err, "deleting session values")
	}
	if _, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return wrap(err, "deleting session values")
	}
	return nil
}

// Prune deletes values not written for `maxAge`, i.e. sessions whose cookie has expired.
func (s *Storage) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	res, err := s.db.ExecContext(ctx, pruneQuery, time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, errors.Wrap(err, "pruning session values")
	}
	return res.RowsAffected()
}

func wrap(err error, msg string) error {
	if errors.Is(err, sql.ErrConnDone) {
		return core.NewShutdownError(msg + ": " + err.Error())
	}
	return errors.Wrap(err, msg)
}
