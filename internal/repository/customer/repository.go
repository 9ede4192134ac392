package customer

import (
	"context"

	"github.com/PiruU/web-import-export/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgx operations the repository needs. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so callers choose the session:
// the import orchestrator passes its transaction, tools pass the pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists customers.
type Repository interface {
	// UpsertAll writes every record, inserting or fully overwriting by id.
	// The returned count is the number of records processed, which equals
	// len(customers) on success.
	UpsertAll(ctx context.Context, db DB, customers []domain.Customer) (int, error)
	GetByID(ctx context.Context, db DB, id int64) (*domain.Customer, error)
}
