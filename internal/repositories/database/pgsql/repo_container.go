package pgsql

import (
	"github.com/corkboard/bulletin_board_app/internal/core/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds all pgx-backed repositories over a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) ports.RepositoryProvider {
	return ports.RepositoryProvider{
		UserRepo: newPgxUserRepository(dbPool),
		PostRepo: newPgxPostRepository(dbPool),
	}
}
