package export

import "context"

// Row is one line of the flat export join. Purchase columns are nil when the
// left join matched no purchase for the customer.
type Row struct {
	CustomerID int64
	Title      *int
	LastName   *string
	FirstName  *string
	PostalCode *string
	City       *string
	Email      *string

	PurchaseID *string
	ProductID  *int64
	Quantity   *int
	Price      *float64
	Currency   *string
	Date       *string
}

// Repository reads the export join.
type Repository interface {
	// ListJoined returns all customers left-joined with their purchases,
	// ordered by customer id, then purchase date, then purchase id. An
	// empty store yields an empty slice.
	ListJoined(ctx context.Context) ([]Row, error)
}
