package domain

// Purchase is one row of the purchases source file. The id arrives under
// either "purchase_id" or "purchase_identifier" in the source header.
// Date is an opaque ISO-like string used only as a sort key.
type Purchase struct {
	ID         string  `json:"purchase_id"`
	CustomerID int64   `json:"customer_id"`
	ProductID  int64   `json:"product_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Date       string  `json:"date"`
}
