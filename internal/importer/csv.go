package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PiruU/web-import-export/internal/domain"
)

// fieldRule describes one logical field of a source file: its canonical
// name, the header names it is accepted under (first present wins), and
// whether a row may leave it empty.
type fieldRule struct {
	name     string
	keys     []string
	required bool
}

var customerRules = []fieldRule{
	{name: "customer_id", keys: []string{"customer_id"}, required: true},
	{name: "title", keys: []string{"title"}},
	{name: "lastname", keys: []string{"lastname"}},
	{name: "firstname", keys: []string{"firstname"}},
	{name: "postal_code", keys: []string{"postal_code"}},
	{name: "city", keys: []string{"city"}},
	{name: "email", keys: []string{"email"}},
}

var purchaseRules = []fieldRule{
	{name: "purchase_id", keys: []string{"purchase_id", "purchase_identifier"}, required: true},
	{name: "customer_id", keys: []string{"customer_id"}, required: true},
	{name: "product_id", keys: []string{"product_id"}, required: true},
	{name: "quantity", keys: []string{"quantity"}, required: true},
	{name: "price", keys: []string{"price"}, required: true},
	{name: "currency", keys: []string{"currency"}, required: true},
	{name: "date", keys: []string{"date"}, required: true},
}

// rawRow holds one parsed record as canonical field name → raw value, plus
// its line number (1-based, header included) for error reporting.
type rawRow struct {
	line   int
	values map[string]string
}

// ReadCustomers parses a semicolon-delimited customers file. Empty optional
// cells normalize to nil.
func ReadCustomers(r io.Reader) ([]domain.Customer, error) {
	rows, err := parseRows(r, customerRules)
	if err != nil {
		return nil, err
	}
	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		id, err := row.int64Field("customer_id")
		if err != nil {
			return nil, err
		}
		title, err := row.optionalIntField("title")
		if err != nil {
			return nil, err
		}
		customers = append(customers, domain.Customer{
			ID:         id,
			Title:      title,
			LastName:   row.optionalText("lastname"),
			FirstName:  row.optionalText("firstname"),
			PostalCode: row.optionalText("postal_code"),
			City:       row.optionalText("city"),
			Email:      row.optionalText("email"),
		})
	}
	return customers, nil
}

// ReadPurchases parses a semicolon-delimited purchases file. The identity
// column is accepted as either purchase_id or purchase_identifier.
func ReadPurchases(r io.Reader) ([]domain.Purchase, error) {
	rows, err := parseRows(r, purchaseRules)
	if err != nil {
		return nil, err
	}
	purchases := make([]domain.Purchase, 0, len(rows))
	for _, row := range rows {
		customerID, err := row.int64Field("customer_id")
		if err != nil {
			return nil, err
		}
		productID, err := row.int64Field("product_id")
		if err != nil {
			return nil, err
		}
		quantity, err := row.intField("quantity")
		if err != nil {
			return nil, err
		}
		price, err := row.floatField("price")
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, domain.Purchase{
			ID:         row.values["purchase_id"],
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   quantity,
			Price:      price,
			Currency:   row.values["currency"],
			Date:       row.values["date"],
		})
	}
	return purchases, nil
}

// parseRows reads every record of a delimited file and resolves raw header
// names to canonical field names per the rule table. Rows missing a required
// value fail here; type coercion happens in the typed accessors.
func parseRows(r io.Reader, rules []fieldRule) ([]rawRow, error) {
	csvr := csv.NewReader(r)
	csvr.Comma = ';'
	csvr.FieldsPerRecord = -1

	headers, err := csvr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.ParseError{Line: 1, Field: "", Reason: "empty file"}
		}
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	columns := make(map[string]int, len(rules))
	for _, rule := range rules {
		pos := -1
		for _, key := range rule.keys {
			if p, ok := index[key]; ok {
				pos = p
				break
			}
		}
		if pos < 0 && rule.required {
			return nil, &domain.ParseError{Line: 1, Field: rule.name, Reason: "missing column"}
		}
		columns[rule.name] = pos
	}

	var rows []rawRow
	for line := 2; ; line++ {
		record, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.ParseError{Line: line, Field: "", Reason: err.Error()}
		}

		values := make(map[string]string, len(rules))
		for _, rule := range rules {
			v := pick(record, columns[rule.name])
			if v == "" && rule.required {
				return nil, &domain.ParseError{Line: line, Field: rule.name, Reason: "required value missing"}
			}
			values[rule.name] = v
		}
		rows = append(rows, rawRow{line: line, values: values})
	}
	return rows, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, pos int) string {
	if pos < 0 || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func (r rawRow) int64Field(name string) (int64, error) {
	v, err := strconv.ParseInt(r.values[name], 10, 64)
	if err != nil {
		return 0, &domain.ParseError{Line: r.line, Field: name, Reason: "not an integer"}
	}
	return v, nil
}

func (r rawRow) intField(name string) (int, error) {
	v, err := strconv.Atoi(r.values[name])
	if err != nil {
		return 0, &domain.ParseError{Line: r.line, Field: name, Reason: "not an integer"}
	}
	return v, nil
}

func (r rawRow) floatField(name string) (float64, error) {
	v, err := strconv.ParseFloat(r.values[name], 64)
	if err != nil {
		return 0, &domain.ParseError{Line: r.line, Field: name, Reason: "not a number"}
	}
	return v, nil
}

// optionalIntField returns nil for an empty cell; empty never means zero.
func (r rawRow) optionalIntField(name string) (*int, error) {
	raw := r.values[name]
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &domain.ParseError{Line: r.line, Field: name, Reason: "not an integer"}
	}
	return &v, nil
}

func (r rawRow) optionalText(name string) *string {
	if v := r.values[name]; v != "" {
		return &v
	}
	return nil
}
