package purchase

import (
	"context"

	"github.com/PiruU/web-import-export/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgx operations the repository needs. Both
// *pgxpool.Pool and pgx.Tx satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists purchases.
type Repository interface {
	// UpsertAll writes every record, inserting or fully overwriting by id.
	// Reassigning a purchase to another customer is a plain overwrite of
	// customer_id. The returned count equals len(purchases) on success.
	UpsertAll(ctx context.Context, db DB, purchases []domain.Purchase) (int, error)
	CountByCustomer(ctx context.Context, db DB, customerID int64) (int, error)
}
