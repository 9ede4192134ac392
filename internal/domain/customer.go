package domain

// Customer is one row of the customers source file. Optional fields are nil
// when the source cell was empty; they persist as NULL, never as "".
type Customer struct {
	ID         int64   `json:"customer_id"`
	Title      *int    `json:"title"`
	LastName   *string `json:"lastname"`
	FirstName  *string `json:"firstname"`
	PostalCode *string `json:"postal_code"`
	City       *string `json:"city"`
	Email      *string `json:"email"`
}
