package customer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/PiruU/web-import-export/internal/domain"
	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) UpsertAll(ctx context.Context, db DB, customers []domain.Customer) (int, error) {
	const q = `
INSERT INTO customers (id, title, lastname, firstname, zipcode, city, email)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    lastname = EXCLUDED.lastname,
    firstname = EXCLUDED.firstname,
    zipcode = EXCLUDED.zipcode,
    city = EXCLUDED.city,
    email = EXCLUDED.email
`
	for _, c := range customers {
		_, err := db.Exec(ctx, q,
			c.ID,
			c.Title,
			textOrEmpty(c.LastName),
			textOrEmpty(c.FirstName),
			textOrEmpty(c.PostalCode),
			textOrEmpty(c.City),
			textOrEmpty(c.Email),
		)
		if err != nil {
			r.logger.Printf("customer repo: upsert id=%d error=%v", c.ID, err)
			return 0, mapPgError(err)
		}
	}
	r.logger.Printf("customer repo: upserted count=%d", len(customers))
	return len(customers), nil
}

func (r *postgresRepo) GetByID(ctx context.Context, db DB, id int64) (*domain.Customer, error) {
	const q = `
SELECT id, title, lastname, firstname, zipcode, city, email
FROM customers
WHERE id = $1
`
	var c domain.Customer
	err := db.QueryRow(ctx, q, id).Scan(&c.ID, &c.Title, &c.LastName, &c.FirstName, &c.PostalCode, &c.City, &c.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &c, nil
}

// textOrEmpty feeds nil pointers through the NULLIF guard so that absent
// and empty input normalize to the same stored NULL.
func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
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
