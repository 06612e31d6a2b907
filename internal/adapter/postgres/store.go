package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements database.Store using PostgreSQL. Per-entity operations
// live in the store_*.go files; multi-row lifecycle operations run inside
// explicit transactions so a lease transition and its occupancy counter
// update commit or roll back together.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
