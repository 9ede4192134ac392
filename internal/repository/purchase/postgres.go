package purchase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/PiruU/web-import-export/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

type postgresRepo struct {
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{logger: logger}
}

func (r *postgresRepo) UpsertAll(ctx context.Context, db DB, purchases []domain.Purchase) (int, error) {
	const q = `
INSERT INTO purchases (id, customer_id, product_id, quantity, price, currency, date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    customer_id = EXCLUDED.customer_id,
    product_id = EXCLUDED.product_id,
    quantity = EXCLUDED.quantity,
    price = EXCLUDED.price,
    currency = EXCLUDED.currency,
    date = EXCLUDED.date
`
	for _, p := range purchases {
		_, err := db.Exec(ctx, q,
			p.ID,
			p.CustomerID,
			p.ProductID,
			p.Quantity,
			p.Price,
			p.Currency,
			p.Date,
		)
		if err != nil {
			r.logger.Printf("purchase repo: upsert id=%s error=%v", p.ID, err)
			return 0, mapPgError(err)
		}
	}
	r.logger.Printf("purchase repo: upserted count=%d", len(purchases))
	return len(purchases), nil
}

func (r *postgresRepo) CountByCustomer(ctx context.Context, db DB, customerID int64) (int, error) {
	const q = `
SELECT count(*)
FROM purchases
WHERE customer_id = $1
`
	var n int
	if err := db.QueryRow(ctx, q, customerID).Scan(&n); err != nil {
		r.logger.Printf("purchase repo: count customer_id=%d error=%v", customerID, err)
		return 0, err
	}
	return n, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23514":
			return fmt.Errorf("%w: %s", domain.ErrConstraint, pgErr.Message)
		}
	}
	return err
}
