package export

import (
	"context"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres. Reads run in their own
// session on the pool, decoupled from any import transaction.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListJoined(ctx context.Context) ([]Row, error) {
	const q = `
SELECT
    customer.id,
    customer.title,
    customer.lastname,
    customer.firstname,
    customer.zipcode,
    customer.city,
    customer.email,
    purchase.id,
    purchase.product_id,
    purchase.quantity,
    purchase.price,
    purchase.currency,
    purchase.date
FROM customers customer
LEFT JOIN purchases purchase ON purchase.customer_id = customer.id
ORDER BY customer.id, purchase.date, purchase.id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("export repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []Row{}
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.CustomerID,
			&row.Title,
			&row.LastName,
			&row.FirstName,
			&row.PostalCode,
			&row.City,
			&row.Email,
			&row.PurchaseID,
			&row.ProductID,
			&row.Quantity,
			&row.Price,
			&row.Currency,
			&row.Date,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("export repo: rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("export repo: listed rows=%d", len(result))
	return result, nil
}
