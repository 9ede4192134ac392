package seed

import (
	"context"
	"fmt"

	"github.com/PiruU/web-import-export/internal/domain"
	customerrepo "github.com/PiruU/web-import-export/internal/repository/customer"
	purchaserepo "github.com/PiruU/web-import-export/internal/repository/purchase"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts basic demo data for manual testing. It is idempotent via the
// repositories' upsert semantics.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	title := 1
	city := "Lyon"
	email := "jeanne.martin@example.com"

	customers := []domain.Customer{
		{ID: 1, Title: &title, LastName: strPtr("Martin"), FirstName: strPtr("Jeanne"), PostalCode: strPtr("69001"), City: &city, Email: &email},
		{ID: 2, LastName: strPtr("Durand"), FirstName: strPtr("Paul")},
	}
	purchases := []domain.Purchase{
		{ID: "ord-0001", CustomerID: 1, ProductID: 101, Quantity: 2, Price: 19.90, Currency: "EUR", Date: "2024-03-01"},
		{ID: "ord-0002", CustomerID: 1, ProductID: 102, Quantity: 1, Price: 5.50, Currency: "EUR", Date: "2024-03-15"},
		{ID: "ord-0003", CustomerID: 2, ProductID: 101, Quantity: 3, Price: 19.90, Currency: "EUR", Date: "2024-04-02"},
	}

	if _, err := customerrepo.NewPostgres(nil).UpsertAll(ctx, pool, customers); err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}
	if _, err := purchaserepo.NewPostgres(nil).UpsertAll(ctx, pool, purchases); err != nil {
		return fmt.Errorf("seed purchases: %w", err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
