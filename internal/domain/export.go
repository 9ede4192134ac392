package domain

// ExportPurchase is one purchase entry of the export document.
type ExportPurchase struct {
	PurchaseID string  `json:"purchase_id"`
	ProductID  int64   `json:"product_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Date       string  `json:"date"`
}

// ExportCustomer carries a customer's scalar fields plus its purchases,
// ordered by date then purchase id. Purchases is empty, never nil, so the
// document renders "purchases": [] for customers without any.
type ExportCustomer struct {
	CustomerID int64            `json:"customer_id"`
	Title      *int             `json:"title"`
	LastName   *string          `json:"lastname"`
	FirstName  *string          `json:"firstname"`
	PostalCode *string          `json:"postal_code"`
	City       *string          `json:"city"`
	Email      *string          `json:"email"`
	Purchases  []ExportPurchase `json:"purchases"`
}

// ExportDocument is the nested document posted to the export target.
type ExportDocument struct {
	Customers []ExportCustomer `json:"customers"`
}

// PurchaseCount sums purchases across all customers.
func (d ExportDocument) PurchaseCount() int {
	total := 0
	for _, c := range d.Customers {
		total += len(c.Purchases)
	}
	return total
}
