package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/allwaveav/boq-backend/internal/contextcache"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ contextcache.Store = &CacheStatePostgres{}

// CacheStatePostgres persists context-cache handle records so the handle
// survives process restarts and is shared between replicas.
type CacheStatePostgres struct {
	db *pgxpool.Pool
}

func NewCacheStatePostgres(db *pgxpool.Pool) *CacheStatePostgres {
	return &CacheStatePostgres{db: db}
}

// Get returns the stored value for a key, or empty when absent.
func (r *CacheStatePostgres) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx,
		`SELECT value FROM cache_state WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get cache state: %w", err)
	}
	return value, nil
}

// Set upserts the value for a key.
func (r *CacheStatePostgres) Set(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO cache_state (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set cache state: %w", err)
	}
	return nil
}

// Remove deletes the record for a key. Removing an absent key is not an
// error.
func (r *CacheStatePostgres) Remove(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM cache_state WHERE key = $1`,
		key,
	)
	if err != nil {
		return fmt.Errorf("remove cache state: %w", err)
	}
	return nil
}
