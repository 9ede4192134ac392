package export

import (
	"context"

	"github.com/PiruU/web-import-export/internal/domain"
	exportrepo "github.com/PiruU/web-import-export/internal/repository/export"
)

// Service assembles the nested export document from the flat join rows.
type Service struct {
	repo exportrepo.Repository
}

func New(repo exportrepo.Repository) *Service {
	return &Service{repo: repo}
}

// BuildDocument reads the ordered join and folds it into the nested
// customers document. An empty store yields a document with an empty,
// non-nil customers slice.
func (s *Service) BuildDocument(ctx context.Context) (domain.ExportDocument, error) {
	rows, err := s.repo.ListJoined(ctx)
	if err != nil {
		return domain.ExportDocument{}, err
	}
	return domain.ExportDocument{Customers: foldRows(rows)}, nil
}

// foldRows groups the ordered flat rows into one entry per customer. The
// rows must arrive sorted by customer id, then purchase date, then purchase
// id; a change of customer id starts a new entry, and a non-nil purchase id
// appends to the current one. A customer whose left join matched nothing
// contributes a single row with nil purchase columns and ends up with an
// empty purchase list.
func foldRows(rows []exportrepo.Row) []domain.ExportCustomer {
	customers := []domain.ExportCustomer{}
	var current *domain.ExportCustomer

	for _, row := range rows {
		if current == nil || current.CustomerID != row.CustomerID {
			customers = append(customers, domain.ExportCustomer{
				CustomerID: row.CustomerID,
				Title:      row.Title,
				LastName:   row.LastName,
				FirstName:  row.FirstName,
				PostalCode: row.PostalCode,
				City:       row.City,
				Email:      row.Email,
				Purchases:  []domain.ExportPurchase{},
			})
			current = &customers[len(customers)-1]
		}

		if row.PurchaseID != nil {
			current.Purchases = append(current.Purchases, domain.ExportPurchase{
				PurchaseID: *row.PurchaseID,
				ProductID:  *row.ProductID,
				Quantity:   *row.Quantity,
				Price:      *row.Price,
				Currency:   *row.Currency,
				Date:       *row.Date,
			})
		}
	}
	return customers
}
