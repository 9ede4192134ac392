package export

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	exportrepo "github.com/PiruU/web-import-export/internal/repository/export"
	"github.com/stretchr/testify/require"
)

type stubExportRepo struct {
	rows []exportrepo.Row
	err  error
}

func (s *stubExportRepo) ListJoined(_ context.Context) ([]exportrepo.Row, error) {
	return s.rows, s.err
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func f64Ptr(v float64) *float64 {
	return &v
}

func purchaseRow(customerID int64, purchaseID, date string) exportrepo.Row {
	return exportrepo.Row{
		CustomerID: customerID,
		PurchaseID: strPtr(purchaseID),
		ProductID:  int64Ptr(101),
		Quantity:   intPtr(1),
		Price:      f64Ptr(9.90),
		Currency:   strPtr("EUR"),
		Date:       strPtr(date),
	}
}

func TestBuildDocument_GroupsOrderedRows(t *testing.T) {
	repo := &stubExportRepo{rows: []exportrepo.Row{
		purchaseRow(1, "ord-1", "2024-03-01"),
		purchaseRow(1, "ord-2", "2024-03-15"),
		purchaseRow(2, "ord-3", "2024-04-02"),
	}}

	doc, err := New(repo).BuildDocument(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Customers, 2)
	require.Equal(t, int64(1), doc.Customers[0].CustomerID)
	require.Equal(t, int64(2), doc.Customers[1].CustomerID)
	require.Len(t, doc.Customers[0].Purchases, 2)
	require.Equal(t, "ord-1", doc.Customers[0].Purchases[0].PurchaseID)
	require.Equal(t, "ord-2", doc.Customers[0].Purchases[1].PurchaseID)
	require.Len(t, doc.Customers[1].Purchases, 1)
	require.Equal(t, 3, doc.PurchaseCount())
}

func TestBuildDocument_ZeroPurchaseCustomer(t *testing.T) {
	repo := &stubExportRepo{rows: []exportrepo.Row{
		{CustomerID: 1, LastName: strPtr("Martin")},
		purchaseRow(2, "ord-1", "2024-03-01"),
	}}

	doc, err := New(repo).BuildDocument(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Customers, 2)
	require.NotNil(t, doc.Customers[0].Purchases)
	require.Empty(t, doc.Customers[0].Purchases)

	// Left-join sentinel rows must never render "purchases": null.
	raw, err := json.Marshal(doc.Customers[0])
	require.NoError(t, err)
	require.Contains(t, string(raw), `"purchases":[]`)
}

func TestBuildDocument_EmptyStore(t *testing.T) {
	doc, err := New(&stubExportRepo{}).BuildDocument(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.Customers)
	require.Empty(t, doc.Customers)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{"customers":[]}`, string(raw))
}

func TestBuildDocument_RepoError(t *testing.T) {
	repoErr := errors.New("boom")
	_, err := New(&stubExportRepo{err: repoErr}).BuildDocument(context.Background())
	require.ErrorIs(t, err, repoErr)
}

func TestClampTimeout(t *testing.T) {
	require.Equal(t, MinTimeout, ClampTimeout(0))
	require.Equal(t, MinTimeout, ClampTimeout(500*time.Millisecond))
	require.Equal(t, 15*time.Second, ClampTimeout(15*time.Second))
	require.Equal(t, MaxTimeout, ClampTimeout(10*time.Minute))
}
